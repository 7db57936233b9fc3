package handler

type ContextKey string

var (
	SubCtxKey        ContextKey = "sub"
	RosterSessionCtx ContextKey = "rosterSession"
	RosterResultCtx  ContextKey = "rosterResult"
)

package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPersonnel   = errors.New("无法识别的人员")
	ErrAmbiguousAlias     = errors.New("名单表中存在歧义的简称")
	ErrPeriodUndetermined = errors.New("无法确定值班表的月份")
	ErrMalformedRoster    = errors.New("值班表格式错误")
	ErrDuplicateDuty      = errors.New("重复的值班登记")
)

// Location 定位触发错误的表格单元格，行列均从 1 开始，0 表示不适用
type Location struct {
	Table  string `json:"table"`
	Row    int    `json:"row,omitempty"`
	Column int    `json:"column,omitempty"`
}

func (l Location) String() string {
	var sb strings.Builder
	if l.Table != "" {
		fmt.Fprintf(&sb, "表「%s」", l.Table)
	}
	if l.Row > 0 {
		fmt.Fprintf(&sb, "第 %d 行", l.Row)
	}
	if l.Column > 0 {
		fmt.Fprintf(&sb, "第 %d 列", l.Column)
	}
	return sb.String()
}

func prefix(l Location) string {
	if s := l.String(); s != "" {
		return s + "："
	}
	return ""
}

type UnknownPersonnelError struct {
	Location
	Token string
}

func (e *UnknownPersonnelError) Error() string {
	return fmt.Sprintf("%s%s「%s」", prefix(e.Location), ErrUnknownPersonnel, e.Token)
}

func (e *UnknownPersonnelError) Is(target error) bool {
	return target == ErrUnknownPersonnel
}

type AmbiguousAliasError struct {
	Location
	Alias  string
	First  string // 先登记该简称的人员
	Second string
}

func (e *AmbiguousAliasError) Error() string {
	return fmt.Sprintf("%s%s「%s」同时属于「%s」和「%s」", prefix(e.Location), ErrAmbiguousAlias, e.Alias, e.First, e.Second)
}

func (e *AmbiguousAliasError) Is(target error) bool {
	return target == ErrAmbiguousAlias
}

type PeriodUndeterminedError struct {
	Reason string
}

func (e *PeriodUndeterminedError) Error() string {
	if e.Reason == "" {
		return ErrPeriodUndetermined.Error() + "，请手动指定月份和年份"
	}
	return fmt.Sprintf("%s（%s），请手动指定月份和年份", ErrPeriodUndetermined, e.Reason)
}

func (e *PeriodUndeterminedError) Is(target error) bool {
	return target == ErrPeriodUndetermined
}

type MalformedRosterError struct {
	Location
	Reason string
}

func (e *MalformedRosterError) Error() string {
	return fmt.Sprintf("%s%s：%s", prefix(e.Location), ErrMalformedRoster, e.Reason)
}

func (e *MalformedRosterError) Is(target error) bool {
	return target == ErrMalformedRoster
}

type DuplicateDutyError struct {
	Location
	Day    int
	Person string
	Reason string
}

func (e *DuplicateDutyError) Error() string {
	return fmt.Sprintf("%s%s：「%s」在第 %d 天%s", prefix(e.Location), ErrDuplicateDuty, e.Person, e.Day, e.Reason)
}

func (e *DuplicateDutyError) Is(target error) bool {
	return target == ErrDuplicateDuty
}

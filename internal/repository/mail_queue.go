package repository

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/roster-calendar/backend/internal/domain"
)

const MailQueueName = "email_queue"

// MailQueue 把邮件任务发布到 rabbitmq，由 cmd/mail 消费
type MailQueue struct {
	cfg *config.Config
	ch  *amqp.Channel
}

func NewMailQueue(cfg *config.Config, ch *amqp.Channel) *MailQueue {
	return &MailQueue{
		cfg: cfg,
		ch:  ch,
	}
}

func (q *MailQueue) PublishMail(msg *domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(q.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return q.ch.PublishWithContext(
		ctx,
		"",
		MailQueueName,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

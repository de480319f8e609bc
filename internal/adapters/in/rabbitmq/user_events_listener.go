package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/his-appointment-scheduler/internal/config"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/in"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"
)

type UserEventResourceType string

const (
	UserEventResourceTypeDoctor  UserEventResourceType = "doctor"
	UserEventResourceTypePatient UserEventResourceType = "patient"
)

type UserEventAction string

const (
	UserEventActionDelete UserEventAction = "delete"
)

// Пример routingKey:
// his.appointment-scheduler.doctor.delete
// his.appointment-scheduler.patient.delete
type UserEventRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType UserEventResourceType
	Action       UserEventAction
}

type UserEventMessage struct {
	ID string `json:"id"`
}

// UserEventsListener слушает события жизненного цикла пользователей из
// вышестоящей учетной системы: при удалении врача или пациента каскадно
// удаляются его незавершенные слоты
type UserEventsListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.UserUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewUserEventsListener(useCase in.UserUseCase, cfg *config.Config, logger out.LoggerPort) (*UserEventsListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &UserEventsListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *UserEventsListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Error("rabbitmq.message.process_failed", out.LogFields{
						"routingKey": msg.RoutingKey,
						"error":      err.Error(),
					})
					msg.Nack(false, false)
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("rabbitmq.queue.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

func (l *UserEventsListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := parseUserEventRoutingKey(msg.RoutingKey)
	if err != nil {
		return err
	}

	if routingKey.Action != UserEventActionDelete {
		l.logger.Debug("rabbitmq.message.skipped", out.LogFields{
			"routingKey": msg.RoutingKey,
		})
		return nil
	}

	var event UserEventMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return err
	}

	switch routingKey.ResourceType {
	case UserEventResourceTypeDoctor:
		_, err = l.useCase.RemoveDoctor(ctx, event.ID)
	case UserEventResourceTypePatient:
		_, err = l.useCase.RemovePatient(ctx, event.ID)
	default:
		l.logger.Debug("rabbitmq.message.skipped", out.LogFields{
			"routingKey": msg.RoutingKey,
		})
		return nil
	}

	// Пользователь уже удален у нас - событие считаем обработанным
	if domainErr, ok := domain.AsDomainError(err); ok {
		l.logger.Warn("rabbitmq.message.domain_error", out.LogFields{
			"routingKey": msg.RoutingKey,
			"userId":     event.ID,
			"error":      domainErr.Message,
		})
		return nil
	}

	return err
}

func parseUserEventRoutingKey(routingKey string) (UserEventRoutingKey, error) {
	parts := strings.Split(routingKey, ".")
	if len(parts) < 4 {
		return UserEventRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return UserEventRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: UserEventResourceType(parts[2]),
		Action:       UserEventAction(parts[3]),
	}, nil
}

func (l *UserEventsListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

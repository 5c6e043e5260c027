package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/inventory-service/internal/queue"
)

// EventPublisher publishes domain events. Callers treat failures as
// non-fatal.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event queue.UserRegisteredEvent) error
}

// AMQPPublisher publishes to RabbitMQ, dialing a fresh connection per
// event. Registration is rare enough that a pooled channel is not needed.
type AMQPPublisher struct {
	URL string
	Log *logrus.Logger
}

func NewAMQPPublisher(url string, log *logrus.Logger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Log: log}
}

// PublishUserRegistered sends event to the durable user.registered queue
// as a persistent JSON message. Errors are logged and returned.
func (p *AMQPPublisher) PublishUserRegistered(ctx context.Context, event queue.UserRegisteredEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.Log.WithError(err).Error("rabbitmq: marshal event failed")
		return err
	}
	return p.publish(ctx, queue.UserRegisteredQueue, body)
}

func (p *AMQPPublisher) publish(ctx context.Context, queueName string, body []byte) error {
	log := p.Log.WithField("queue", queueName)

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}

// NopPublisher drops every event. Used when EVENTS_ENABLED is false.
type NopPublisher struct{}

func (NopPublisher) PublishUserRegistered(context.Context, queue.UserRegisteredEvent) error {
	return nil
}

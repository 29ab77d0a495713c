package rabbit

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Sender publishes JSON messages to a single exchange.
type Sender struct {
	channel  *amqp.Channel
	exchange string
}

func NewSender(ctx context.Context, connection *amqp.Connection, exchange string) (*Sender, error) {
	channel, err := connection.Channel()

	if err != nil {
		return nil, err
	}

	if err = channel.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		if err := channel.Close(); err != nil {
			logrus.Errorln("Failed to close rabbitmq channel, reason: ", err.Error())
		}
	}()

	return &Sender{channel: channel, exchange: exchange}, nil
}

func (s *Sender) SendMessage(ctx context.Context, routingKey string, message any) error {
	body, err := json.Marshal(message)

	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(ctx, s.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

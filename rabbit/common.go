package rabbit

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/shinonome-inc/0x-order-watcher/staticerr"
)

const (
	connectRetryDelay = 5 * time.Second
	connectTimeout    = 5 * time.Minute
)

// GetRabbitConnection dials the broker, retrying until it answers or the
// timeout elapses. Startup ordering with the broker container is not
// guaranteed, hence the retry loop.
func GetRabbitConnection(connectionString string) (*amqp.Connection, error) {
	deadline := time.Now().Add(connectTimeout)

	for {
		connection, err := amqp.Dial(connectionString)

		if err == nil {
			return connection, nil
		}

		if time.Now().After(deadline) {
			return nil, staticerr.ErrorRabbitConnectionFail
		}

		logrus.Errorln("Failed to connect to rabbitmq, retrying, reason: ", err.Error())
		time.Sleep(connectRetryDelay)
	}
}

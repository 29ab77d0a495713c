package rabbit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shinonome-inc/0x-order-watcher/models"
)

const (
	routingKeyOrdersRemoved = "orders.removed"
	routingKeyOrderUpdated  = "orders.updated"
)

type iMessageSender interface {
	SendMessage(ctx context.Context, routingKey string, message any) error
}

// OrderEventNotifier pushes order lifecycle messages to downstream
// consumers. Publishing is best effort: a broker failure is logged and
// never fails the store mutation it follows. A nil notifier is a no-op,
// which lets the watcher run without a broker configured.
type OrderEventNotifier struct {
	sender iMessageSender
}

func NewOrderEventNotifier(sender iMessageSender) *OrderEventNotifier {
	return &OrderEventNotifier{sender: sender}
}

func (n *OrderEventNotifier) NotifyOrdersRemoved(ctx context.Context, orderHashes []string, reason models.RemovalReason) {
	if n == nil {
		return
	}

	message := models.OrderRemovedMessage{
		OrderHashes: orderHashes,
		Reason:      reason,
		Timestamp:   time.Now().UTC().Unix(),
	}

	if err := n.sender.SendMessage(ctx, routingKeyOrdersRemoved, message); err != nil {
		logrus.WithField("reason", reason).Errorln("Failed to publish order removed message, reason: ", err.Error())
	}
}

func (n *OrderEventNotifier) NotifyOrderUpdated(ctx context.Context, orderHash string, remaining *models.BigInt) {
	if n == nil {
		return
	}

	message := models.OrderUpdatedMessage{
		OrderHash:                    orderHash,
		RemainingFillableTakerAmount: remaining,
		Timestamp:                    time.Now().UTC().Unix(),
	}

	if err := n.sender.SendMessage(ctx, routingKeyOrderUpdated, message); err != nil {
		logrus.WithField("orderHash", orderHash).Errorln("Failed to publish order updated message, reason: ", err.Error())
	}
}

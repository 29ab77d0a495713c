package zeroex

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"

	"github.com/shinonome-inc/0x-order-watcher/models"
)

type ParserFunc[T any] func(ethtypes.Log) (*T, error)
type HandlerFunc[T any] func(context.Context, *T)

type Processor[T any] struct {
	parser  ParserFunc[T]
	handler HandlerFunc[T]
}

func NewProcessor[T any](parser ParserFunc[T], handler HandlerFunc[T]) Processor[T] {
	return Processor[T]{parser: parser, handler: handler}
}

func (p *Processor[T]) processLog(ctx context.Context, log ethtypes.Log) {
	body, err := p.parser(log)

	if err != nil {
		logrus.WithField("txHash", log.TxHash.Hex()).Warningln("Failed to decode event log, skipping: ", err.Error())
		return
	}

	p.handler(ctx, body)
}

type iOrderEventSink interface {
	UpdateFilledOrders(ctx context.Context, events []models.OrderFilledEvent) error
	UpdateCanceledOrders(ctx context.Context, orderHashes []string) error
}

const resubscribeDelay = 5 * time.Second

// EventListener feeds LimitOrderFilled and OrderCancelled notifications from
// the exchange proxy into the watcher. Handler errors are logged and never
// stop the feed; a broken subscription is re-established after a delay.
type EventListener struct {
	client     *ethclient.Client
	exchange   common.Address
	abi        abi.ABI
	filled     Processor[models.OrderFilledEvent]
	canceled   Processor[models.OrderCanceledEvent]
	filledID   common.Hash
	canceledID common.Hash
	stop       chan struct{}
	done       chan struct{}
}

func NewEventListener(client *ethclient.Client, exchange common.Address, sink iOrderEventSink) (*EventListener, error) {
	parsed, err := abi.JSON(strings.NewReader(NativeOrdersFeatureABI))
	if err != nil {
		return nil, fmt.Errorf("parse NativeOrdersFeature ABI: %w", err)
	}

	l := &EventListener{
		client:     client,
		exchange:   exchange,
		abi:        parsed,
		filledID:   parsed.Events["LimitOrderFilled"].ID,
		canceledID: parsed.Events["OrderCancelled"].ID,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	l.filled = NewProcessor(l.parseFilledLog, func(ctx context.Context, event *models.OrderFilledEvent) {
		logrus.WithField("orderHash", event.OrderHash.Hex()).Debugln("filledOrderEvent received")
		if err := sink.UpdateFilledOrders(ctx, []models.OrderFilledEvent{*event}); err != nil {
			logrus.WithField("orderHash", event.OrderHash.Hex()).Errorln("Failed to apply fill event, reason: ", err.Error())
		}
	})

	l.canceled = NewProcessor(l.parseCanceledLog, func(ctx context.Context, event *models.OrderCanceledEvent) {
		logrus.WithField("orderHash", event.OrderHash.Hex()).Debugln("canceledOrderEvent received")
		if err := sink.UpdateCanceledOrders(ctx, []string{event.OrderHash.Hex()}); err != nil {
			logrus.WithField("orderHash", event.OrderHash.Hex()).Errorln("Failed to apply cancel event, reason: ", err.Error())
		}
	})

	return l, nil
}

func (l *EventListener) Start(ctx context.Context) {
	go l.run(ctx)
}

func (l *EventListener) Stop() {
	close(l.stop)
	<-l.done
}

func (l *EventListener) run(ctx context.Context) {
	defer close(l.done)

	query := ethereum.FilterQuery{
		Addresses: []common.Address{l.exchange},
		Topics:    [][]common.Hash{{l.filledID, l.canceledID}},
	}

	for {
		logs := make(chan ethtypes.Log, 256)

		sub, err := l.client.SubscribeFilterLogs(ctx, query, logs)

		if err != nil {
			logrus.Errorln("Event subscription failed, retrying, reason: ", err.Error())
			select {
			case <-l.stop:
				return
			case <-ctx.Done():
				return
			case <-time.After(resubscribeDelay):
				continue
			}
		}

		logrus.WithField("exchange", l.exchange.Hex()).Infoln("Subscribed to exchange proxy events")

		if !l.consume(ctx, sub, logs) {
			return
		}
	}
}

// consume drains the subscription until it breaks; returns false on shutdown.
func (l *EventListener) consume(ctx context.Context, sub ethereum.Subscription, logs chan ethtypes.Log) bool {
	defer sub.Unsubscribe()

	for {
		select {
		case log := <-logs:
			l.dispatch(ctx, log)
		case err := <-sub.Err():
			if err != nil {
				logrus.Errorln("Event subscription broken, resubscribing, reason: ", err.Error())
			}
			return true
		case <-l.stop:
			return false
		case <-ctx.Done():
			return false
		}
	}
}

func (l *EventListener) dispatch(ctx context.Context, log ethtypes.Log) {
	if len(log.Topics) == 0 {
		return
	}

	switch log.Topics[0] {
	case l.filledID:
		l.filled.processLog(ctx, log)
	case l.canceledID:
		l.canceled.processLog(ctx, log)
	}
}

type limitOrderFilledRaw struct {
	OrderHash                 [32]byte
	Maker                     common.Address
	Taker                     common.Address
	FeeRecipient              common.Address
	MakerToken                common.Address
	TakerToken                common.Address
	TakerTokenFilledAmount    *big.Int
	MakerTokenFilledAmount    *big.Int
	TakerTokenFeeFilledAmount *big.Int
	ProtocolFeePaid           *big.Int
	Pool                      [32]byte
}

type orderCancelledRaw struct {
	OrderHash [32]byte
	Maker     common.Address
}

func (l *EventListener) parseFilledLog(log ethtypes.Log) (*models.OrderFilledEvent, error) {
	var raw limitOrderFilledRaw

	if err := l.abi.UnpackIntoInterface(&raw, "LimitOrderFilled", log.Data); err != nil {
		return nil, err
	}

	return &models.OrderFilledEvent{
		OrderHash:                 common.Hash(raw.OrderHash),
		Maker:                     raw.Maker,
		Taker:                     raw.Taker,
		FeeRecipient:              raw.FeeRecipient,
		MakerToken:                raw.MakerToken,
		TakerToken:                raw.TakerToken,
		TakerTokenFilledAmount:    models.FromBig(raw.TakerTokenFilledAmount),
		MakerTokenFilledAmount:    models.FromBig(raw.MakerTokenFilledAmount),
		TakerTokenFeeFilledAmount: models.FromBig(raw.TakerTokenFeeFilledAmount),
		ProtocolFeePaid:           models.FromBig(raw.ProtocolFeePaid),
		Pool:                      common.Hash(raw.Pool),
	}, nil
}

func (l *EventListener) parseCanceledLog(log ethtypes.Log) (*models.OrderCanceledEvent, error) {
	var raw orderCancelledRaw

	if err := l.abi.UnpackIntoInterface(&raw, "OrderCancelled", log.Data); err != nil {
		return nil, err
	}

	return &models.OrderCanceledEvent{
		OrderHash: common.Hash(raw.OrderHash),
		Maker:     raw.Maker,
	}, nil
}

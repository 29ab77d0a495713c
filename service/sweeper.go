package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type iExpiredOrderSyncer interface {
	SyncExpiredOrders(ctx context.Context, now time.Time) ([]string, error)
}

// ExpirySweeper periodically evicts soon-to-expire orders. The tick interval
// is twice the expiration buffer, so an order is always swept before its
// buffer window closes. A failed sweep is logged and retried on the next
// tick.
type ExpirySweeper struct {
	syncer   iExpiredOrderSyncer
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewExpirySweeper(syncer iExpiredOrderSyncer, expirationBuffer time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		syncer:   syncer,
		interval: 2 * expirationBuffer,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *ExpirySweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *ExpirySweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *ExpirySweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Debugln("Start syncing expired orders...")

			if _, err := s.syncer.SyncExpiredOrders(ctx, time.Now().UTC()); err != nil {
				logrus.Errorln("Expiry sweep failed, retrying on next tick, reason: ", err.Error())
			}
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

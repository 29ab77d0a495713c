package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shinonome-inc/0x-order-watcher/models"
	"github.com/shinonome-inc/0x-order-watcher/staticerr"
	"github.com/shinonome-inc/0x-order-watcher/utils"
	"github.com/shinonome-inc/0x-order-watcher/zeroex"
)

type iOrderStorage interface {
	GetOrderFromStorage(ctx context.Context, orderHash string) (*models.OrderRecord, error)
	GetOrdersFromStorage(ctx context.Context, orderHashes []string) ([]models.OrderRecord, error)
	AddOrdersToStorage(ctx context.Context, orders []models.OrderRecord) error
	UpdateOrdersInfo(ctx context.Context, orders []models.OrderRecord) error
	DeleteOrdersFromStorage(ctx context.Context, orderHashes []string) error
	GetExpiredOrderHashes(ctx context.Context, threshold int64) ([]string, error)
	TryLockOrder(ctx context.Context, orderHash string, guid string) error
	TryUnlockOrder(ctx context.Context, orderHash string, guid string) error
}

type iOrderValidator interface {
	ValidateOrders(ctx context.Context, orders []models.SignedLimitOrder) (*models.OrderValidationResults, error)
}

type iOrderNotifier interface {
	NotifyOrdersRemoved(ctx context.Context, orderHashes []string, reason models.RemovalReason)
	NotifyOrderUpdated(ctx context.Context, orderHash string, remaining *models.BigInt)
}

const (
	lockRetries    = 5
	lockRetryDelay = 50 * time.Millisecond
)

// OrderWatcher reconciles the local order store against the ledger: it gates
// new submissions through on-chain validation, applies fill and cancel
// events, and evicts orders close to expiry. An order is present in the
// store iff it is still fillable.
type OrderWatcher struct {
	orderStorage     iOrderStorage
	validator        iOrderValidator
	notifier         iOrderNotifier
	expirationBuffer time.Duration
}

func NewOrderWatcher(orderStorage iOrderStorage, validator iOrderValidator, notifier iOrderNotifier, expirationBuffer time.Duration) *OrderWatcher {
	return &OrderWatcher{
		orderStorage:     orderStorage,
		validator:        validator,
		notifier:         notifier,
		expirationBuffer: expirationBuffer,
	}
}

// PostOrders validates a submission batch against the ledger in one call and
// upserts the accepted candidates. A single invalid signature rejects the
// whole batch before anything is written. Candidates the ledger reports as
// unfillable are dropped silently. Re-submitting a stored order overwrites
// it with identical content.
func (w *OrderWatcher) PostOrders(ctx context.Context, orders []models.SignedLimitOrder) error {
	if len(orders) == 0 {
		return nil
	}

	orderHashes := make([]string, len(orders))

	for i, order := range orders {
		orderHash, err := zeroex.ComputeOrderHash(order)

		if err != nil {
			return fmt.Errorf("compute order hash: %w", err)
		}

		orderHashes[i] = orderHash.Hex()
	}

	results, err := w.validator.ValidateOrders(ctx, orders)

	if err != nil {
		return fmt.Errorf("%w: %v", staticerr.ErrorLedgerUnavailable, err)
	}

	now := time.Now().UTC().Unix()
	accepted := make([]models.OrderRecord, 0, len(orders))

	for i, order := range orders {
		if !results.IsSignatureValids[i] {
			logrus.WithField("orderHash", orderHashes[i]).Warningln("Invalid signature, rejecting whole batch")
			return fmt.Errorf("%w: order %s", staticerr.ErrorInvalidSignature, orderHashes[i])
		}

		fillable := results.ActualFillableTakerTokenAmounts[i]
		status := results.OrderInfos[i].Status

		if fillable.Big().Sign() > 0 && status.IsAcceptable() {
			accepted = append(accepted, utils.MapSignedOrderToRecord(order, orderHashes[i], now))
			continue
		}

		logrus.WithFields(logrus.Fields{
			"orderHash": orderHashes[i],
			"status":    status,
		}).Debugln("Order is not fillable on ledger, dropping")
	}

	if len(accepted) == 0 {
		return nil
	}

	if err = w.orderStorage.AddOrdersToStorage(ctx, accepted); err != nil {
		return fmt.Errorf("%w: %v", staticerr.ErrorStoreUnavailable, err)
	}

	logrus.WithField("count", len(accepted)).Infoln("Orders accepted into store")
	return nil
}

// UpdateFilledOrders applies a batch of fill notifications. Amounts for the
// same order hash are summed before a single subtraction, and each order's
// read-modify-write runs under a per-order lock so concurrent writers on the
// same order cannot lose updates. Events for orders no longer in the store
// are no-ops.
func (w *OrderWatcher) UpdateFilledOrders(ctx context.Context, events []models.OrderFilledEvent) error {
	if len(events) == 0 {
		return nil
	}

	filled := make(map[string]*big.Int)
	orderHashes := make([]string, 0, len(events))

	for _, event := range events {
		orderHash := event.OrderHash.Hex()

		if sum, ok := filled[orderHash]; ok {
			sum.Add(sum, event.TakerTokenFilledAmount.Big())
			continue
		}

		filled[orderHash] = new(big.Int).Set(event.TakerTokenFilledAmount.Big())
		orderHashes = append(orderHashes, orderHash)
	}

	guid := uuid.NewString()
	locked := w.lockOrders(ctx, orderHashes, guid)
	defer w.unlockOrders(ctx, locked, guid)

	records, err := w.orderStorage.GetOrdersFromStorage(ctx, locked)

	if err != nil {
		return fmt.Errorf("%w: %v", staticerr.ErrorStoreUnavailable, err)
	}

	fullyFilled := make([]string, 0, len(records))
	partiallyFilled := make([]models.OrderRecord, 0, len(records))

	for _, record := range records {
		remaining := new(big.Int).Sub(record.RemainingFillableTakerAmount.Big(), filled[record.OrderHash])

		if remaining.Sign() < 0 {
			logrus.WithFields(logrus.Fields{
				"orderHash": record.OrderHash,
				"remaining": record.RemainingFillableTakerAmount.String(),
				"filled":    filled[record.OrderHash].String(),
			}).Warningln("Fill exceeds remaining amount, clamping to zero")
			remaining.SetInt64(0)
		}

		if remaining.Sign() == 0 {
			fullyFilled = append(fullyFilled, record.OrderHash)
			continue
		}

		record.RemainingFillableTakerAmount = models.FromBig(remaining)
		partiallyFilled = append(partiallyFilled, record)
	}

	if len(fullyFilled) > 0 {
		if err = w.orderStorage.DeleteOrdersFromStorage(ctx, fullyFilled); err != nil {
			return fmt.Errorf("%w: %v", staticerr.ErrorStoreUnavailable, err)
		}

		w.notifier.NotifyOrdersRemoved(ctx, fullyFilled, models.RemovalReasonFilled)
		logrus.Infoln("Fully filled orders removed: ", strings.Join(fullyFilled, ", "))
	}

	if len(partiallyFilled) > 0 {
		if err = w.orderStorage.UpdateOrdersInfo(ctx, partiallyFilled); err != nil {
			return fmt.Errorf("%w: %v", staticerr.ErrorStoreUnavailable, err)
		}

		for _, record := range partiallyFilled {
			w.notifier.NotifyOrderUpdated(ctx, record.OrderHash, record.RemainingFillableTakerAmount)
			logrus.WithFields(logrus.Fields{
				"orderHash": record.OrderHash,
				"remaining": record.RemainingFillableTakerAmount.String(),
			}).Infoln("Order partially filled")
		}
	}

	return nil
}

// UpdateCanceledOrders removes the given orders. Each removal runs under the
// same per-order lock the fill path holds, so a cancel can never land inside
// another writer's read-modify-write and be undone by its write-back.
// Canceling an order that is already gone is a no-op; a contended hash is
// skipped until the event is redelivered.
func (w *OrderWatcher) UpdateCanceledOrders(ctx context.Context, orderHashes []string) error {
	if len(orderHashes) == 0 {
		return nil
	}

	guid := uuid.NewString()
	locked := w.lockOrders(ctx, orderHashes, guid)
	defer w.unlockOrders(ctx, locked, guid)

	if len(locked) == 0 {
		return nil
	}

	if err := w.orderStorage.DeleteOrdersFromStorage(ctx, locked); err != nil {
		return fmt.Errorf("%w: %v", staticerr.ErrorStoreUnavailable, err)
	}

	w.notifier.NotifyOrdersRemoved(ctx, locked, models.RemovalReasonCanceled)
	logrus.Infoln("Canceled orders removed: ", strings.Join(locked, ", "))
	return nil
}

// SyncExpiredOrders evicts every order whose expiry falls at or below
// now + expiration buffer and reports the removed hashes. Eviction takes the
// per-order lock like every other writer; a contended hash is left for the
// next tick. Time is an explicit input so the sweep is testable without a
// clock.
func (w *OrderWatcher) SyncExpiredOrders(ctx context.Context, now time.Time) ([]string, error) {
	threshold := now.Unix() + int64(w.expirationBuffer/time.Second)

	orderHashes, err := w.orderStorage.GetExpiredOrderHashes(ctx, threshold)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", staticerr.ErrorStoreUnavailable, err)
	}

	if len(orderHashes) == 0 {
		return nil, nil
	}

	guid := uuid.NewString()
	locked := w.lockOrders(ctx, orderHashes, guid)
	defer w.unlockOrders(ctx, locked, guid)

	if len(locked) == 0 {
		return nil, nil
	}

	if err = w.orderStorage.DeleteOrdersFromStorage(ctx, locked); err != nil {
		return nil, fmt.Errorf("%w: %v", staticerr.ErrorStoreUnavailable, err)
	}

	w.notifier.NotifyOrdersRemoved(ctx, locked, models.RemovalReasonExpired)
	logrus.Infoln("Expired orders: ", strings.Join(locked, ", "))
	return locked, nil
}

// GetOrder returns the stored record for an order hash, or nil when the
// order is not in the store.
func (w *OrderWatcher) GetOrder(ctx context.Context, orderHash string) (*models.OrderRecord, error) {
	record, err := w.orderStorage.GetOrderFromStorage(ctx, orderHash)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", staticerr.ErrorStoreUnavailable, err)
	}

	return record, nil
}

// lockOrders acquires the per-order lock for each distinct hash. A hash
// whose lock cannot be acquired within the retry budget is skipped with a
// warning; delivery is at-least-once, so the skipped event is applied on
// redelivery or the next sweep tick.
func (w *OrderWatcher) lockOrders(ctx context.Context, orderHashes []string, guid string) []string {
	locked := make([]string, 0, len(orderHashes))
	seen := make(map[string]struct{}, len(orderHashes))

	for _, orderHash := range orderHashes {
		if _, ok := seen[orderHash]; ok {
			continue
		}
		seen[orderHash] = struct{}{}

		if err := w.lockOrder(ctx, orderHash, guid); err != nil {
			logrus.WithField("orderHash", orderHash).Warningln("Order is locked by another writer, skipping")
			continue
		}
		locked = append(locked, orderHash)
	}

	return locked
}

func (w *OrderWatcher) unlockOrders(ctx context.Context, orderHashes []string, guid string) {
	for _, orderHash := range orderHashes {
		if err := w.orderStorage.TryUnlockOrder(ctx, orderHash, guid); err != nil {
			logrus.WithField("orderHash", orderHash).Warningln("Failed to release order lock, reason: ", err.Error())
		}
	}
}

func (w *OrderWatcher) lockOrder(ctx context.Context, orderHash string, guid string) error {
	for attempt := 0; attempt < lockRetries; attempt++ {
		err := w.orderStorage.TryLockOrder(ctx, orderHash, guid)

		if err == nil {
			return nil
		}

		if !errors.Is(err, staticerr.ErrorResourceIsLocked) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	return staticerr.ErrorResourceIsLocked
}

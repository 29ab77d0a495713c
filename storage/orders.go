package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisLib "github.com/redis/go-redis/v9"

	"github.com/shinonome-inc/0x-order-watcher/models"
)

const (
	ordersHashKey   = "orders"
	ordersExpiryKey = "orders:expiry"
	ordersLocksKey  = "lock_order:"

	orderLockTTL = time.Minute
)

// OrdersStorage keeps one record per order hash in a Redis hash, plus a
// sorted set indexing order hash by expiry timestamp for the sweep range
// query. Saving is an upsert: insert if absent, otherwise overwrite all
// fields of the record.
type OrdersStorage struct {
	client *RedisClient
}

func NewOrdersStorage(client *RedisClient) *OrdersStorage {
	return &OrdersStorage{client: client}
}

func (o *OrdersStorage) GetOrderFromStorage(ctx context.Context, orderHash string) (*models.OrderRecord, error) {
	jsonData, err := o.client.getFromHash(ctx, ordersHashKey, orderHash)

	if err == redisLib.Nil {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var orderInfo models.OrderRecord

	if err = json.Unmarshal([]byte(*jsonData), &orderInfo); err != nil {
		return nil, err
	}

	return &orderInfo, nil
}

// GetOrdersFromStorage batch-fetches records; hashes absent from the store
// are silently skipped.
func (o *OrdersStorage) GetOrdersFromStorage(ctx context.Context, orderHashes []string) ([]models.OrderRecord, error) {
	if len(orderHashes) == 0 {
		return nil, nil
	}

	values, err := o.client.getManyFromHash(ctx, ordersHashKey, orderHashes...)

	if err != nil {
		return nil, err
	}

	records := make([]models.OrderRecord, 0, len(values))

	for i, value := range values {
		if value == nil {
			continue
		}

		jsonData, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type for order %s", orderHashes[i])
		}

		var orderInfo models.OrderRecord
		if err = json.Unmarshal([]byte(jsonData), &orderInfo); err != nil {
			return nil, err
		}

		records = append(records, orderInfo)
	}

	return records, nil
}

func (o *OrdersStorage) AddOrdersToStorage(ctx context.Context, orders []models.OrderRecord) error {
	if len(orders) == 0 {
		return nil
	}

	tx := o.client.performTx(ctx)

	for _, orderInfo := range orders {
		jsonData, err := json.Marshal(orderInfo)

		if err != nil {
			return err
		}

		tx.
			addInHash(ctx, ordersHashKey, orderInfo.OrderHash, jsonData).
			addInZSet(ctx, ordersExpiryKey, orderInfo.OrderHash, float64(orderInfo.Expiry))
	}

	return tx.execTx(ctx)
}

// UpdateOrdersInfo writes the given records back in one pipelined call,
// refreshing their update timestamps. Callers must hold the per-order lock
// for every record in the batch.
func (o *OrdersStorage) UpdateOrdersInfo(ctx context.Context, orders []models.OrderRecord) error {
	if len(orders) == 0 {
		return nil
	}

	now := time.Now().UTC().Unix()
	tx := o.client.performTx(ctx)

	for i := range orders {
		orders[i].UpdatedDate = now

		jsonData, err := json.Marshal(orders[i])

		if err != nil {
			return err
		}

		tx.addInHash(ctx, ordersHashKey, orders[i].OrderHash, jsonData)
	}

	return tx.execTx(ctx)
}

func (o *OrdersStorage) DeleteOrdersFromStorage(ctx context.Context, orderHashes []string) error {
	if len(orderHashes) == 0 {
		return nil
	}

	tx := o.client.performTx(ctx)

	for _, orderHash := range orderHashes {
		tx.
			removeFromHash(ctx, ordersHashKey, orderHash).
			removeFromZSet(ctx, ordersExpiryKey, orderHash)
	}

	return tx.execTx(ctx)
}

// GetExpiredOrderHashes returns the hashes of all records whose expiry is at
// or below the given unix-seconds threshold.
func (o *OrdersStorage) GetExpiredOrderHashes(ctx context.Context, threshold int64) ([]string, error) {
	return o.client.getRangeFromZSetByScore(ctx, ordersExpiryKey, "-inf", fmt.Sprintf("%d", threshold))
}

func (o *OrdersStorage) TryLockOrder(ctx context.Context, orderHash string, guid string) error {
	return o.client.setNX(ctx, ordersLocksKey+orderHash, guid, orderLockTTL)
}

func (o *OrdersStorage) TryUnlockOrder(ctx context.Context, orderHash string, guid string) error {
	return o.client.deleteWithValue(ctx, ordersLocksKey+orderHash, guid)
}

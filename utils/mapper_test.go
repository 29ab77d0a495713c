package utils

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/shinonome-inc/0x-order-watcher/models"
)

func TestMapSignedOrderToRecord(t *testing.T) {
	order := models.SignedLimitOrder{
		ChainID:             1,
		Maker:               common.HexToAddress("0x01"),
		MakerAmount:         models.NewBigInt(1000),
		TakerAmount:         models.NewBigInt(2000),
		TakerTokenFeeAmount: models.NewBigInt(5),
		Expiry:              1700000000,
		Salt:                models.NewBigInt(7),
	}

	record := MapSignedOrderToRecord(order, "0xhash", 1600000000)

	assert.Equal(t, "0xhash", record.OrderHash)
	assert.Equal(t, "2000", record.RemainingFillableTakerAmount.String())
	assert.Equal(t, int64(1700000000), record.Expiry)
	assert.Equal(t, int64(1600000000), record.CreatedDate)
	assert.Equal(t, int64(1600000000), record.UpdatedDate)
}

func TestRemainingAmountIsNotAliased(t *testing.T) {
	order := models.SignedLimitOrder{
		MakerAmount:         models.NewBigInt(1),
		TakerAmount:         models.NewBigInt(2000),
		TakerTokenFeeAmount: models.NewBigInt(0),
		Salt:                models.NewBigInt(1),
	}

	record := MapSignedOrderToRecord(order, "0xhash", 0)
	record.RemainingFillableTakerAmount.SetInt64(1)

	assert.Equal(t, "2000", record.TakerAmount.String())
	assert.Equal(t, "2000", order.TakerAmount.String())
}

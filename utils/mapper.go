package utils

import (
	"math/big"

	"github.com/shinonome-inc/0x-order-watcher/models"
)

// MapSignedOrderToRecord builds the persisted record for an accepted order.
// The remaining fillable amount is seeded from the declared taker amount;
// fill accounting from acceptance onward is driven by fill events.
func MapSignedOrderToRecord(order models.SignedLimitOrder, orderHash string, now int64) models.OrderRecord {
	return models.OrderRecord{
		OrderHash:                    orderHash,
		ChainID:                      order.ChainID,
		VerifyingContract:            order.VerifyingContract,
		MakerToken:                   order.MakerToken,
		TakerToken:                   order.TakerToken,
		MakerAmount:                  models.FromBig(order.MakerAmount.Big()),
		TakerAmount:                  models.FromBig(order.TakerAmount.Big()),
		TakerTokenFeeAmount:          models.FromBig(order.TakerTokenFeeAmount.Big()),
		Maker:                        order.Maker,
		Taker:                        order.Taker,
		Sender:                       order.Sender,
		FeeRecipient:                 order.FeeRecipient,
		Pool:                         order.Pool,
		Expiry:                       int64(order.Expiry),
		Salt:                         models.FromBig(order.Salt.Big()),
		Signature:                    order.Signature,
		RemainingFillableTakerAmount: models.FromBig(new(big.Int).Set(order.TakerAmount.Big())),
		CreatedDate:                  now,
		UpdatedDate:                  now,
	}
}

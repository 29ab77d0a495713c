package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// OrderFilledEvent carries the LimitOrderFilled notification from the
// exchange proxy. The watcher only consumes OrderHash and
// TakerTokenFilledAmount; the rest is kept for downstream consumers.
type OrderFilledEvent struct {
	OrderHash                 common.Hash    `json:"orderHash"`
	Maker                     common.Address `json:"maker"`
	Taker                     common.Address `json:"taker"`
	FeeRecipient              common.Address `json:"feeRecipient"`
	MakerToken                common.Address `json:"makerToken"`
	TakerToken                common.Address `json:"takerToken"`
	TakerTokenFilledAmount    *BigInt        `json:"takerTokenFilledAmount"`
	MakerTokenFilledAmount    *BigInt        `json:"makerTokenFilledAmount"`
	TakerTokenFeeFilledAmount *BigInt        `json:"takerTokenFeeFilledAmount"`
	ProtocolFeePaid           *BigInt        `json:"protocolFeePaid"`
	Pool                      common.Hash    `json:"pool"`
}

type OrderCanceledEvent struct {
	OrderHash common.Hash    `json:"orderHash"`
	Maker     common.Address `json:"maker"`
}

// OrderInfo is one element of the batched validation response.
type OrderInfo struct {
	OrderHash              common.Hash
	Status                 OrderStatus
	TakerTokenFilledAmount *BigInt
}

// OrderValidationResults holds the three positionally aligned result lists of
// batchGetLimitOrderRelevantStates.
type OrderValidationResults struct {
	OrderInfos                      []OrderInfo
	ActualFillableTakerTokenAmounts []*BigInt
	IsSignatureValids               []bool
}

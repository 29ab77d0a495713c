package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// OrderStatus mirrors the order info status reported by the exchange proxy.
type OrderStatus uint8

const (
	OrderStatusInvalid OrderStatus = iota
	OrderStatusFillable
	OrderStatusPartiallyFilled
	OrderStatusFilled
	OrderStatusCancelled
	OrderStatusExpired
)

// IsAcceptable reports whether an order in this status may enter the store.
func (s OrderStatus) IsAcceptable() bool {
	return s == OrderStatusFillable || s == OrderStatusPartiallyFilled
}

type SignatureType uint8

const (
	SignatureTypeIllegal SignatureType = iota
	SignatureTypeInvalid
	SignatureTypeEIP712
	SignatureTypeEthSign
	SignatureTypePreSigned
)

type Signature struct {
	SignatureType SignatureType `json:"signatureType"`
	V             uint8         `json:"v"`
	R             common.Hash   `json:"r"`
	S             common.Hash   `json:"s"`
}

// SignedLimitOrder is a ZeroEx v4 limit order as submitted over HTTP,
// field names matching the 0x API wire format.
type SignedLimitOrder struct {
	ChainID             int64          `json:"chainId"`
	VerifyingContract   common.Address `json:"verifyingContract"`
	MakerToken          common.Address `json:"makerToken"`
	TakerToken          common.Address `json:"takerToken"`
	MakerAmount         *BigInt        `json:"makerAmount"`
	TakerAmount         *BigInt        `json:"takerAmount"`
	TakerTokenFeeAmount *BigInt        `json:"takerTokenFeeAmount"`
	Maker               common.Address `json:"maker"`
	Taker               common.Address `json:"taker"`
	Sender              common.Address `json:"sender"`
	FeeRecipient        common.Address `json:"feeRecipient"`
	Pool                common.Hash    `json:"pool"`
	Expiry              uint64         `json:"expiry,string"`
	Salt                *BigInt        `json:"salt"`
	Signature           Signature      `json:"signature"`
}

// OrderRecord is the persisted shape of an accepted order. A record exists
// iff the order is still fillable; removal is the terminal state transition.
type OrderRecord struct {
	OrderHash                    string         `json:"order_hash"`
	ChainID                      int64          `json:"chain_id"`
	VerifyingContract            common.Address `json:"verifying_contract"`
	MakerToken                   common.Address `json:"maker_token"`
	TakerToken                   common.Address `json:"taker_token"`
	MakerAmount                  *BigInt        `json:"maker_amount"`
	TakerAmount                  *BigInt        `json:"taker_amount"`
	TakerTokenFeeAmount          *BigInt        `json:"taker_token_fee_amount"`
	Maker                        common.Address `json:"maker"`
	Taker                        common.Address `json:"taker"`
	Sender                       common.Address `json:"sender"`
	FeeRecipient                 common.Address `json:"fee_recipient"`
	Pool                         common.Hash    `json:"pool"`
	Expiry                       int64          `json:"expiry"`
	Salt                         *BigInt        `json:"salt"`
	Signature                    Signature      `json:"signature"`
	RemainingFillableTakerAmount *BigInt        `json:"remaining_fillable_taker_amount"`
	CreatedDate                  int64          `json:"created_date,omitempty"`
	UpdatedDate                  int64          `json:"updated_date,omitempty"`
}

package zeroex

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/shinonome-inc/0x-order-watcher/models"
)

const (
	eip712DomainName    = "ZeroEx"
	eip712DomainVersion = "1.0.0"
)

var limitOrderTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"LimitOrder": {
		{Name: "makerToken", Type: "address"},
		{Name: "takerToken", Type: "address"},
		{Name: "makerAmount", Type: "uint128"},
		{Name: "takerAmount", Type: "uint128"},
		{Name: "takerTokenFeeAmount", Type: "uint128"},
		{Name: "maker", Type: "address"},
		{Name: "taker", Type: "address"},
		{Name: "sender", Type: "address"},
		{Name: "feeRecipient", Type: "address"},
		{Name: "pool", Type: "bytes32"},
		{Name: "expiry", Type: "uint64"},
		{Name: "salt", Type: "uint256"},
	},
}

// ComputeOrderHash derives the canonical ZeroEx v4 limit order hash, the
// EIP-712 digest of the order's immutable fields scoped by chain id and
// verifying contract. Identical order content always collapses to the same
// hash.
func ComputeOrderHash(order models.SignedLimitOrder) (common.Hash, error) {
	domain := apitypes.TypedDataDomain{
		Name:              eip712DomainName,
		Version:           eip712DomainVersion,
		ChainId:           math.NewHexOrDecimal256(order.ChainID),
		VerifyingContract: order.VerifyingContract.Hex(),
	}

	message := map[string]interface{}{
		"makerToken":          order.MakerToken.Hex(),
		"takerToken":          order.TakerToken.Hex(),
		"makerAmount":         order.MakerAmount.Big(),
		"takerAmount":         order.TakerAmount.Big(),
		"takerTokenFeeAmount": order.TakerTokenFeeAmount.Big(),
		"maker":               order.Maker.Hex(),
		"taker":               order.Taker.Hex(),
		"sender":              order.Sender.Hex(),
		"feeRecipient":        order.FeeRecipient.Hex(),
		"pool":                order.Pool.Hex(),
		"expiry":              new(big.Int).SetUint64(order.Expiry),
		"salt":                order.Salt.Big(),
	}

	typedData := apitypes.TypedData{
		Types:       limitOrderTypes,
		PrimaryType: "LimitOrder",
		Domain:      domain,
		Message:     message,
	}

	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return common.Hash{}, err
	}

	structHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return common.Hash{}, err
	}

	rawData := []byte("\x19\x01")
	rawData = append(rawData, domainSeparator...)
	rawData = append(rawData, structHash...)

	return crypto.Keccak256Hash(rawData), nil
}

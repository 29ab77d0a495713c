package zeroex

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinonome-inc/0x-order-watcher/models"
)

func baseOrder() models.SignedLimitOrder {
	return models.SignedLimitOrder{
		ChainID:             137,
		VerifyingContract:   common.HexToAddress("0xDef1C0ded9bec7F1a1670819833240f027b25EfF"),
		MakerToken:          common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"),
		TakerToken:          common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		MakerAmount:         models.NewBigInt(1000),
		TakerAmount:         models.NewBigInt(2000),
		TakerTokenFeeAmount: models.NewBigInt(0),
		Maker:               common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Expiry:              1700000000,
		Salt:                models.NewBigInt(12345),
	}
}

func TestComputeOrderHashIsDeterministic(t *testing.T) {
	first, err := ComputeOrderHash(baseOrder())
	require.NoError(t, err)

	second, err := ComputeOrderHash(baseOrder())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, common.Hash{}, first)
}

func TestComputeOrderHashSensitivity(t *testing.T) {
	reference, err := ComputeOrderHash(baseOrder())
	require.NoError(t, err)

	mutations := map[string]func(*models.SignedLimitOrder){
		"salt":         func(o *models.SignedLimitOrder) { o.Salt = models.NewBigInt(54321) },
		"expiry":       func(o *models.SignedLimitOrder) { o.Expiry++ },
		"takerAmount":  func(o *models.SignedLimitOrder) { o.TakerAmount = models.NewBigInt(2001) },
		"maker":        func(o *models.SignedLimitOrder) { o.Maker = common.HexToAddress("0x03") },
		"chainId":      func(o *models.SignedLimitOrder) { o.ChainID = 1 },
		"verifier":     func(o *models.SignedLimitOrder) { o.VerifyingContract = common.HexToAddress("0x04") },
		"pool":         func(o *models.SignedLimitOrder) { o.Pool = common.HexToHash("0x05") },
		"feeRecipient": func(o *models.SignedLimitOrder) { o.FeeRecipient = common.HexToAddress("0x06") },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			order := baseOrder()
			mutate(&order)

			mutated, err := ComputeOrderHash(order)
			require.NoError(t, err)
			assert.NotEqual(t, reference, mutated, "changing %s must change the order hash", name)
		})
	}
}

func TestComputeOrderHashIgnoresSignature(t *testing.T) {
	reference, err := ComputeOrderHash(baseOrder())
	require.NoError(t, err)

	order := baseOrder()
	order.Signature = models.Signature{SignatureType: models.SignatureTypeEthSign, V: 28}

	withSignature, err := ComputeOrderHash(order)
	require.NoError(t, err)
	assert.Equal(t, reference, withSignature)
}

func TestNativeOrdersFeatureAbiParses(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(NativeOrdersFeatureABI))
	require.NoError(t, err)

	_, ok := parsed.Methods["batchGetLimitOrderRelevantStates"]
	assert.True(t, ok)

	_, ok = parsed.Events["LimitOrderFilled"]
	assert.True(t, ok)

	_, ok = parsed.Events["OrderCancelled"]
	assert.True(t, ok)
}

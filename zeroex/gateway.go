package zeroex

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/shinonome-inc/0x-order-watcher/models"
)

// Gateway wraps the exchange proxy's read surface. Validation is always a
// single eth_call regardless of batch size.
type Gateway struct {
	client   *ethclient.Client
	exchange common.Address
	abi      abi.ABI
}

func NewGateway(client *ethclient.Client, exchange common.Address) (*Gateway, error) {
	parsed, err := abi.JSON(strings.NewReader(NativeOrdersFeatureABI))
	if err != nil {
		return nil, fmt.Errorf("parse NativeOrdersFeature ABI: %w", err)
	}

	return &Gateway{client: client, exchange: exchange, abi: parsed}, nil
}

type limitOrderArg struct {
	MakerToken          common.Address
	TakerToken          common.Address
	MakerAmount         *big.Int
	TakerAmount         *big.Int
	TakerTokenFeeAmount *big.Int
	Maker               common.Address
	Taker               common.Address
	Sender              common.Address
	FeeRecipient        common.Address
	Pool                [32]byte
	Expiry              uint64
	Salt                *big.Int
}

type signatureArg struct {
	SignatureType uint8
	V             uint8
	R             [32]byte
	S             [32]byte
}

type orderInfoResult struct {
	OrderHash              [32]byte
	Status                 uint8
	TakerTokenFilledAmount *big.Int
}

// ValidateOrders asks the exchange proxy for the current state of every
// candidate in one batched call. The three result lists are positionally
// aligned with the input.
func (g *Gateway) ValidateOrders(ctx context.Context, orders []models.SignedLimitOrder) (*models.OrderValidationResults, error) {
	ordersArg := make([]limitOrderArg, len(orders))
	signaturesArg := make([]signatureArg, len(orders))

	for i, order := range orders {
		ordersArg[i] = limitOrderArg{
			MakerToken:          order.MakerToken,
			TakerToken:          order.TakerToken,
			MakerAmount:         order.MakerAmount.Big(),
			TakerAmount:         order.TakerAmount.Big(),
			TakerTokenFeeAmount: order.TakerTokenFeeAmount.Big(),
			Maker:               order.Maker,
			Taker:               order.Taker,
			Sender:              order.Sender,
			FeeRecipient:        order.FeeRecipient,
			Pool:                order.Pool,
			Expiry:              order.Expiry,
			Salt:                order.Salt.Big(),
		}
		signaturesArg[i] = signatureArg{
			SignatureType: uint8(order.Signature.SignatureType),
			V:             order.Signature.V,
			R:             order.Signature.R,
			S:             order.Signature.S,
		}
	}

	data, err := g.abi.Pack("batchGetLimitOrderRelevantStates", ordersArg, signaturesArg)
	if err != nil {
		return nil, fmt.Errorf("pack batchGetLimitOrderRelevantStates: %w", err)
	}

	result, err := g.client.CallContract(ctx, ethereum.CallMsg{To: &g.exchange, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call batchGetLimitOrderRelevantStates: %w", err)
	}

	out, err := g.abi.Unpack("batchGetLimitOrderRelevantStates", result)
	if err != nil {
		return nil, fmt.Errorf("unpack batchGetLimitOrderRelevantStates: %w", err)
	}

	infos := *abi.ConvertType(out[0], new([]orderInfoResult)).(*[]orderInfoResult)
	fillables := *abi.ConvertType(out[1], new([]*big.Int)).(*[]*big.Int)
	signatureValids := *abi.ConvertType(out[2], new([]bool)).(*[]bool)

	if len(infos) != len(orders) || len(fillables) != len(orders) || len(signatureValids) != len(orders) {
		return nil, fmt.Errorf("validation response not aligned with request: %d orders, %d/%d/%d results",
			len(orders), len(infos), len(fillables), len(signatureValids))
	}

	results := &models.OrderValidationResults{
		OrderInfos:                      make([]models.OrderInfo, len(infos)),
		ActualFillableTakerTokenAmounts: make([]*models.BigInt, len(fillables)),
		IsSignatureValids:               signatureValids,
	}

	for i := range infos {
		results.OrderInfos[i] = models.OrderInfo{
			OrderHash:              common.Hash(infos[i].OrderHash),
			Status:                 models.OrderStatus(infos[i].Status),
			TakerTokenFilledAmount: models.FromBig(infos[i].TakerTokenFilledAmount),
		}
		results.ActualFillableTakerTokenAmounts[i] = models.FromBig(fillables[i])
	}

	return results, nil
}

package zeroex

// NativeOrdersFeatureABI covers the slice of the ZeroEx exchange proxy the
// watcher needs: the batched limit-order state call and the two order
// lifecycle events.
const NativeOrdersFeatureABI = `[
	{
		"inputs": [
			{
				"components": [
					{"name": "makerToken", "type": "address"},
					{"name": "takerToken", "type": "address"},
					{"name": "makerAmount", "type": "uint128"},
					{"name": "takerAmount", "type": "uint128"},
					{"name": "takerTokenFeeAmount", "type": "uint128"},
					{"name": "maker", "type": "address"},
					{"name": "taker", "type": "address"},
					{"name": "sender", "type": "address"},
					{"name": "feeRecipient", "type": "address"},
					{"name": "pool", "type": "bytes32"},
					{"name": "expiry", "type": "uint64"},
					{"name": "salt", "type": "uint256"}
				],
				"name": "orders",
				"type": "tuple[]"
			},
			{
				"components": [
					{"name": "signatureType", "type": "uint8"},
					{"name": "v", "type": "uint8"},
					{"name": "r", "type": "bytes32"},
					{"name": "s", "type": "bytes32"}
				],
				"name": "signatures",
				"type": "tuple[]"
			}
		],
		"name": "batchGetLimitOrderRelevantStates",
		"outputs": [
			{
				"components": [
					{"name": "orderHash", "type": "bytes32"},
					{"name": "status", "type": "uint8"},
					{"name": "takerTokenFilledAmount", "type": "uint128"}
				],
				"name": "orderInfos",
				"type": "tuple[]"
			},
			{"name": "actualFillableTakerTokenAmounts", "type": "uint128[]"},
			{"name": "isSignatureValids", "type": "bool[]"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "orderHash", "type": "bytes32"},
			{"indexed": false, "name": "maker", "type": "address"},
			{"indexed": false, "name": "taker", "type": "address"},
			{"indexed": false, "name": "feeRecipient", "type": "address"},
			{"indexed": false, "name": "makerToken", "type": "address"},
			{"indexed": false, "name": "takerToken", "type": "address"},
			{"indexed": false, "name": "takerTokenFilledAmount", "type": "uint128"},
			{"indexed": false, "name": "makerTokenFilledAmount", "type": "uint128"},
			{"indexed": false, "name": "takerTokenFeeFilledAmount", "type": "uint128"},
			{"indexed": false, "name": "protocolFeePaid", "type": "uint256"},
			{"indexed": false, "name": "pool", "type": "bytes32"}
		],
		"name": "LimitOrderFilled",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "orderHash", "type": "bytes32"},
			{"indexed": false, "name": "maker", "type": "address"}
		],
		"name": "OrderCancelled",
		"type": "event"
	}
]`

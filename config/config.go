package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Config carries every runtime setting, read once at startup from the
// environment. AmqpUrl may be empty; the watcher then runs without
// publishing lifecycle messages.
type Config struct {
	RpcUrl           string
	WsRpcUrl         string
	RedisUrl         string
	AmqpUrl          string
	ExchangeProxy    common.Address
	ChainId          int64
	Port             string
	ExpirationBuffer time.Duration
	RequestTimeout   time.Duration
	LogLevel         string
	LogFile          string
}

func Load() (*Config, error) {
	exchangeProxy := getEnv("EXCHANGE_PROXY", "")

	if !common.IsHexAddress(exchangeProxy) {
		return nil, fmt.Errorf("EXCHANGE_PROXY is not a valid address: %q", exchangeProxy)
	}

	chainId, err := strconv.ParseInt(getEnv("CHAIN_ID", "1"), 10, 64)

	if err != nil {
		return nil, fmt.Errorf("CHAIN_ID is not a valid integer: %w", err)
	}

	bufferSeconds, err := strconv.ParseInt(getEnv("SRA_ORDER_EXPIRATION_BUFFER_SECONDS", "10"), 10, 64)

	if err != nil {
		return nil, fmt.Errorf("SRA_ORDER_EXPIRATION_BUFFER_SECONDS is not a valid integer: %w", err)
	}

	if bufferSeconds <= 0 {
		return nil, fmt.Errorf("SRA_ORDER_EXPIRATION_BUFFER_SECONDS must be positive, got %d", bufferSeconds)
	}

	return &Config{
		RpcUrl:           getEnv("RPC_URL", "http://localhost:8545"),
		WsRpcUrl:         getEnv("WS_RPC_URL", ""),
		RedisUrl:         getEnv("REDIS_URL", "localhost:6379"),
		AmqpUrl:          getEnv("AMQP_URL", ""),
		ExchangeProxy:    common.HexToAddress(exchangeProxy),
		ChainId:          chainId,
		Port:             getEnv("PORT", "8080"),
		ExpirationBuffer: time.Duration(bufferSeconds) * time.Second,
		RequestTimeout:   30 * time.Second,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", "logs/order-watcher.log"),
	}, nil
}

func getEnv(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

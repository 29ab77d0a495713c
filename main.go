package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/shinonome-inc/0x-order-watcher/api"
	"github.com/shinonome-inc/0x-order-watcher/config"
	"github.com/shinonome-inc/0x-order-watcher/logger"
	"github.com/shinonome-inc/0x-order-watcher/rabbit"
	"github.com/shinonome-inc/0x-order-watcher/service"
	"github.com/shinonome-inc/0x-order-watcher/storage"
	"github.com/shinonome-inc/0x-order-watcher/zeroex"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Infoln("No .env file found, using environment as is")
	}

	cfg, err := config.Load()

	if err != nil {
		logrus.Fatalln("Failed to load config, reason: ", err.Error())
	}

	if err = logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		logrus.Fatalln("Failed to init logger, reason: ", err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := storage.NewRedisClient(cfg.RedisUrl)

	if err != nil {
		logrus.Fatalln("Failed to connect to redis, reason: ", err.Error())
	}

	ethClient, err := ethclient.DialContext(ctx, cfg.RpcUrl)

	if err != nil {
		logrus.Fatalln("Failed to connect to rpc node, reason: ", err.Error())
	}

	chainId, err := ethClient.ChainID(ctx)

	if err != nil {
		logrus.Fatalln("Failed to query chain id, reason: ", err.Error())
	}

	if chainId.Int64() != cfg.ChainId {
		logrus.Fatalf("Chain id mismatch: node reports %d, config expects %d", chainId.Int64(), cfg.ChainId)
	}

	gateway, err := zeroex.NewGateway(ethClient, cfg.ExchangeProxy)

	if err != nil {
		logrus.Fatalln("Failed to init exchange gateway, reason: ", err.Error())
	}

	var notifier *rabbit.OrderEventNotifier

	if cfg.AmqpUrl != "" {
		connection, err := rabbit.GetRabbitConnection(cfg.AmqpUrl)

		if err != nil {
			logrus.Fatalln("Failed to connect to rabbitmq, reason: ", err.Error())
		}

		sender, err := rabbit.NewSender(ctx, connection, "order-watcher")

		if err != nil {
			logrus.Fatalln("Failed to init rabbitmq sender, reason: ", err.Error())
		}

		notifier = rabbit.NewOrderEventNotifier(sender)
	} else {
		logrus.Warningln("AMQP_URL is empty, order lifecycle messages will not be published")
	}

	ordersStorage := storage.NewOrdersStorage(redisClient)
	watcher := service.NewOrderWatcher(ordersStorage, gateway, notifier, cfg.ExpirationBuffer)

	if cfg.WsRpcUrl != "" {
		wsClient, err := ethclient.DialContext(ctx, cfg.WsRpcUrl)

		if err != nil {
			logrus.Fatalln("Failed to connect to ws rpc node, reason: ", err.Error())
		}

		listener, err := zeroex.NewEventListener(wsClient, cfg.ExchangeProxy, watcher)

		if err != nil {
			logrus.Fatalln("Failed to init event listener, reason: ", err.Error())
		}

		listener.Start(ctx)
		defer listener.Stop()
	} else {
		logrus.Warningln("WS_RPC_URL is empty, fill and cancel events will not be consumed")
	}

	sweeper := service.NewExpirySweeper(watcher, cfg.ExpirationBuffer)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	server := api.NewServer(watcher, cfg.RequestTimeout)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(),
	}

	go func() {
		logrus.Infoln("Order watcher listening on port ", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalln("Http server failed, reason: ", err.Error())
		}
	}()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)
	<-exit

	logrus.Infoln("Shutdown signal received, stopping...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.Errorln("Failed to shutdown http server gracefully, reason: ", err.Error())
	}
}

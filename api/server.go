package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shinonome-inc/0x-order-watcher/models"
	"github.com/shinonome-inc/0x-order-watcher/staticerr"
)

type iOrderWatcher interface {
	PostOrders(ctx context.Context, orders []models.SignedLimitOrder) error
	GetOrder(ctx context.Context, orderHash string) (*models.OrderRecord, error)
}

// Server exposes the order submission endpoint. Fills, cancels and expiry
// come in through the chain listener and the sweeper, not through HTTP.
type Server struct {
	watcher        iOrderWatcher
	requestTimeout time.Duration
}

func NewServer(watcher iOrderWatcher, requestTimeout time.Duration) *Server {
	return &Server{watcher: watcher, requestTimeout: requestTimeout}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/orders", s.postOrders)
	router.GET("/orders/:orderHash", s.getOrder)
	router.POST("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	return router
}

func (s *Server) getOrder(c *gin.Context) {
	orderHash := c.Param("orderHash")

	if !strings.HasPrefix(orderHash, "0x") || len(orderHash) != 66 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order hash: " + orderHash})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
	defer cancel()

	// Stored keys are lowercase hex; normalize the path parameter.
	record, err := s.watcher.GetOrder(ctx, common.HexToHash(orderHash).Hex())

	if err != nil {
		logrus.Errorln("Failed to read order, reason: ", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) postOrders(c *gin.Context) {
	var orders []models.SignedLimitOrder

	if err := c.ShouldBindJSON(&orders); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
	defer cancel()

	err := s.watcher.PostOrders(ctx, orders)

	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	switch {
	case errors.Is(err, staticerr.ErrorInvalidSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, staticerr.ErrorLedgerUnavailable), errors.Is(err, staticerr.ErrorStoreUnavailable):
		logrus.Errorln("Failed to process submitted orders, reason: ", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logrus.Errorln("Failed to process submitted orders, reason: ", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	_ "pix_checkout/docs" // This will be auto-generated
	"pix_checkout/internal/adapter/http/handlers"
	"pix_checkout/internal/adapter/persistence/repository"
	"pix_checkout/internal/config"
	"pix_checkout/internal/infrastructure/payments"
	"pix_checkout/internal/usecase"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Run will start the server and block until SIGINT or SIGTERM.
func Run(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, err := payments.NewGateway(cfg.Gateway)
	if err != nil {
		log.Fatalf("Failed to configure the payment gateway: %v", err.Error())
	}

	replay, closeReplay, err := repository.NewChargeReplayStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open the idempotency store: %v", err.Error())
	}
	defer closeReplay()

	chargeUseCase := usecase.NewChargeUseCase(gateway, replay, cfg.Idempotency.TTL)
	poller := usecase.NewStatusPoller(gateway, usecase.PollerConfig{
		Interval:               cfg.Polling.Interval,
		MaxDuration:            cfg.Polling.MaxDuration,
		MaxConsecutiveFailures: cfg.Polling.MaxConsecutiveFailures,
		FinishedRetention:      cfg.Polling.FinishedRetention,
	}, nil)

	router := NewRouter(handlers.NewChargeHandler(chargeUseCase), handlers.NewPollingHandler(poller))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[http][server] listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err.Error())
		}
	}()

	<-ctx.Done()
	log.Printf("[http][server] shutting down")

	// Ends open event streams so Shutdown does not wait on them.
	poller.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http][server] shutdown failed err=%v", err)
	}
}

// NewRouter builds the HTTP surface: /v1 API plus Swagger UI.
func NewRouter(chargeHandler *handlers.ChargeHandler, pollingHandler *handlers.PollingHandler) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addChargeRoutes(v1, chargeHandler, pollingHandler)
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

package routes

import (
	"pix_checkout/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCharges = "/charges"
)

func addChargeRoutes(rg *gin.RouterGroup, chargeHandler *handlers.ChargeHandler, pollingHandler *handlers.PollingHandler) {
	charges := rg.Group(PathCharges)
	{
		charges.POST("", chargeHandler.CreateCharge)
		charges.GET("/:transaction_id/status", chargeHandler.GetChargeStatus)

		charges.GET("/:transaction_id/events", pollingHandler.StreamEvents)
		charges.POST("/:transaction_id/polling", pollingHandler.StartPolling)
		charges.GET("/:transaction_id/polling", pollingHandler.GetPolling)
		charges.DELETE("/:transaction_id/polling", pollingHandler.CancelPolling)
	}
}

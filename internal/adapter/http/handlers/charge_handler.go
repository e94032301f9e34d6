package handlers

import (
	"log"
	"net/http"
	"pix_checkout/internal/adapter/http/dto/request"
	"pix_checkout/internal/adapter/http/dto/response"
	"pix_checkout/internal/usecase"
	"pix_checkout/pkg"
	"strings"

	"github.com/gin-gonic/gin"
)

const HeaderIdempotencyKey = "Idempotency-Key"

// ChargeHandler handles HTTP requests for Pix charges.

type ChargeHandler struct {
	usecase usecase.IChargeUseCase
}

func NewChargeHandler(uc usecase.IChargeUseCase) *ChargeHandler {
	return &ChargeHandler{usecase: uc}
}

// CreateCharge godoc
// @Summary      Create a Pix charge
// @Description  Creates a pending Pix charge for the given amount. Repeating a request with the same Idempotency-Key returns the first charge.
// @Tags         charges
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                        false  "Replay key"
// @Param        request          body      request.ChargeCreateRequest   true   "Amount in major units"
// @Success      201              {object}  response.ChargeEnvelope
// @Failure      400              {object}  pkg.HTTPError
// @Failure      409              {object}  pkg.HTTPError
// @Failure      502              {object}  pkg.HTTPError
// @Failure      503              {object}  pkg.HTTPError
// @Router       /charges [post]
func (h *ChargeHandler) CreateCharge(c *gin.Context) {
	var req request.ChargeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[charge][handler] invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if err := req.Validate(); err != nil {
		log.Printf("[charge][handler] invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amount must be a positive number", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	log.Printf("[charge][handler] create start amount=%v idempotent=%t", *req.Amount, key != "")

	charge, err := h.usecase.RequestIdempotentCharge(c.Request.Context(), key, *req.Amount)
	if err != nil {
		log.Printf("[charge][handler] create failed err=%v", err)
		appErr := mapChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[charge][handler] create success transaction_id=%s", charge.TransactionID)

	c.JSON(http.StatusCreated, response.FromCharge(charge))
}

// GetChargeStatus godoc
// @Summary      Check a charge status once
// @Tags         charges
// @Produce      json
// @Param        transaction_id  path      string  true  "Transaction id"
// @Success      200             {object}  response.ChargeStatusResponse
// @Failure      400             {object}  pkg.HTTPError
// @Failure      502             {object}  pkg.HTTPError
// @Router       /charges/{transaction_id}/status [get]
func (h *ChargeHandler) GetChargeStatus(c *gin.Context) {
	transactionID := c.Param("transaction_id")

	status, err := h.usecase.CheckStatus(c.Request.Context(), transactionID)
	if err != nil {
		log.Printf("[charge][handler] status failed transaction_id=%s err=%v", transactionID, err)
		appErr := mapChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromChargeStatus(transactionID, status))
}

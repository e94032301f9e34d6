package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"pix_checkout/internal/adapter/http/dto/response"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase"
	"pix_checkout/pkg"

	"github.com/gin-gonic/gin"
)

const eventBufferSize = 8

// PollingHandler exposes status polling sessions over HTTP, either bound to an
// SSE connection or detached.
type PollingHandler struct {
	poller usecase.IStatusPoller
}

func NewPollingHandler(poller usecase.IStatusPoller) *PollingHandler {
	return &PollingHandler{poller: poller}
}

// StreamEvents godoc
// @Summary      Stream status changes
// @Description  Polls the charge while the connection is open. Emits "status" and "error" events and a final "end" event with the session snapshot. Closing the connection cancels polling.
// @Tags         polling
// @Produce      text/event-stream
// @Param        transaction_id  path  string  true  "Transaction id"
// @Success      200
// @Failure      409  {object}  pkg.HTTPError
// @Router       /charges/{transaction_id}/events [get]
func (h *PollingHandler) StreamEvents(c *gin.Context) {
	transactionID := c.Param("transaction_id")
	ctx := c.Request.Context()

	updates := make(chan entities.ChargeStatus, eventBufferSize)
	failures := make(chan error, eventBufferSize)

	session, err := h.poller.StartPolling(ctx, entities.PendingCharge(transactionID),
		func(s entities.ChargeStatus) {
			select {
			case updates <- s:
			case <-ctx.Done():
			}
		},
		func(err error) {
			select {
			case failures <- err:
			default:
			}
		},
	)
	if err != nil {
		log.Printf("[polling][handler] stream start failed transaction_id=%s err=%v", transactionID, err)
		appErr := mapChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	defer h.poller.CancelPolling(session)
	log.Printf("[polling][handler] stream open transaction_id=%s session_id=%s", transactionID, session.ID)

	c.Stream(func(w io.Writer) bool {
		select {
		case s := <-updates:
			c.SSEvent("status", response.FromChargeStatus(transactionID, s))
			return true
		case err := <-failures:
			c.SSEvent("error", mapChargeError(err).ToHTTPError())
			return true
		case <-session.Done():
			flushPending(c, transactionID, updates, failures)
			c.SSEvent("end", response.FromPollingSnapshot(session.Snapshot()))
			return false
		case <-ctx.Done():
			log.Printf("[polling][handler] client disconnected transaction_id=%s", transactionID)
			return false
		}
	})
}

// flushPending writes events that were queued before the session finished.
func flushPending(c *gin.Context, transactionID string, updates <-chan entities.ChargeStatus, failures <-chan error) {
	for {
		select {
		case s := <-updates:
			c.SSEvent("status", response.FromChargeStatus(transactionID, s))
		case err := <-failures:
			c.SSEvent("error", mapChargeError(err).ToHTTPError())
		default:
			return
		}
	}
}

// StartPolling godoc
// @Summary      Start a detached polling session
// @Tags         polling
// @Produce      json
// @Param        transaction_id  path      string  true  "Transaction id"
// @Success      202             {object}  response.PollingSessionEnvelope
// @Failure      409             {object}  pkg.HTTPError
// @Router       /charges/{transaction_id}/polling [post]
func (h *PollingHandler) StartPolling(c *gin.Context) {
	transactionID := c.Param("transaction_id")

	session, err := h.poller.StartPolling(context.Background(), entities.PendingCharge(transactionID),
		func(s entities.ChargeStatus) {
			log.Printf("[polling][handler] status changed transaction_id=%s status=%s", transactionID, s)
		},
		func(err error) {
			log.Printf("[polling][handler] status check failed transaction_id=%s err=%v", transactionID, err)
		},
	)
	if err != nil {
		log.Printf("[polling][handler] start failed transaction_id=%s err=%v", transactionID, err)
		appErr := mapChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusAccepted, response.FromPollingSnapshot(session.Snapshot()))
}

// GetPolling godoc
// @Summary      Get a polling session
// @Tags         polling
// @Produce      json
// @Param        transaction_id  path      string  true  "Transaction id"
// @Success      200             {object}  response.PollingSessionEnvelope
// @Failure      404             {object}  pkg.HTTPError
// @Router       /charges/{transaction_id}/polling [get]
func (h *PollingHandler) GetPolling(c *gin.Context) {
	session, ok := h.poller.Session(c.Param("transaction_id"))
	if !ok {
		appErr := pkg.NewDomainErrorSimple("POLLING_NOT_FOUND", "Polling session not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPollingSnapshot(session.Snapshot()))
}

// CancelPolling godoc
// @Summary      Cancel a polling session
// @Tags         polling
// @Produce      json
// @Param        transaction_id  path      string  true  "Transaction id"
// @Success      200             {object}  response.PollingSessionEnvelope
// @Failure      404             {object}  pkg.HTTPError
// @Router       /charges/{transaction_id}/polling [delete]
func (h *PollingHandler) CancelPolling(c *gin.Context) {
	transactionID := c.Param("transaction_id")

	session, ok := h.poller.Session(transactionID)
	if !ok {
		appErr := pkg.NewDomainErrorSimple("POLLING_NOT_FOUND", "Polling session not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	h.poller.CancelPolling(session)
	log.Printf("[polling][handler] cancelled transaction_id=%s session_id=%s", transactionID, session.ID)

	c.JSON(http.StatusOK, response.FromPollingSnapshot(session.Snapshot()))
}

package handler

import (
	"net/http"

	"github.com/alibomaye27/yourvoice/internal/vapi"
	"github.com/gin-gonic/gin"
)

// VapiWebhook receives call lifecycle events from the voice provider. It
// acknowledges with 200 in every case except a structurally unparseable
// body: the provider retries non-2xx responses, and retry-storming a handler
// whose store is down helps nobody. Reconciliation failures are logged and
// swallowed instead.
func (h *Handler) VapiWebhook(c *gin.Context) {
	var event vapi.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unparseable webhook payload"})
		return
	}

	if err := h.Reconciler.Process(c.Request.Context(), &event); err != nil {
		h.Logger.Sugar().Errorw("webhook reconciliation failed",
			"type", event.Type, "call_id", event.Call.ID, "err", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

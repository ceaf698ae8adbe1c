package handler

import (
	"errors"
	"net/http"

	"github.com/alibomaye27/yourvoice/internal/screening"
	"github.com/alibomaye27/yourvoice/pkg/response"
	"github.com/gin-gonic/gin"
)

// InitiateCall places an outbound AI screening call for an application.
// Validation and routing resolution happen in the initiator so a missing
// field never reaches the provider.
func (h *Handler) InitiateCall(c *gin.Context) {
	var req screening.InitiateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.Initiator.InitiateCall(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, screening.ErrInvalidRequest):
			response.BadRequest(c, err.Error())
		case errors.Is(err, screening.ErrConfiguration):
			response.ValidationError(c, "could not find job or squad for this application")
		default:
			h.Logger.Sugar().Errorw("call initiation failed", "application_id", req.ApplicationID, "err", err)
			response.InternalError(c, "failed to initiate call")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                    true,
		"callId":                     result.CallID,
		"controlUrl":                 result.ControlURL,
		"candidateDocumentsInjected": result.DocumentsScheduled,
	})
}

package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/alibomaye27/yourvoice/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAgents(c *gin.Context) {
	agents, err := h.Vapi.ListAssistants(c.Request.Context())
	if err != nil {
		h.Logger.Sugar().Errorw("failed to fetch agents", "err", err)
		response.InternalError(c, "failed to fetch agents")
		return
	}
	response.OK(c, gin.H{"agents": agents})
}

// CreateAgent forwards an assistant definition to the provider unchanged.
func (h *Handler) CreateAgent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil || len(payload) == 0 {
		response.BadRequest(c, "request body is required")
		return
	}

	result, err := h.Vapi.CreateAssistant(c.Request.Context(), payload)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create assistant", "err", err)
		response.InternalError(c, "failed to create assistant")
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// UpdateAgent patches an assistant; the body is forwarded minus the id.
func (h *Handler) UpdateAgent(c *gin.Context) {
	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	delete(payload, "id")

	body, err := json.Marshal(payload)
	if err != nil {
		response.InternalError(c, "failed to encode payload")
		return
	}

	result, err := h.Vapi.UpdateAssistant(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to update assistant", "id", c.Param("id"), "err", err)
		response.InternalError(c, "failed to update assistant")
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

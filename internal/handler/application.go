package handler

import (
	"errors"

	"github.com/alibomaye27/yourvoice/internal/repository"
	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/alibomaye27/yourvoice/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubmitApplication upserts the candidate by email and creates the
// application. The screening call itself is initiated by a separate request
// so a provider outage never blocks the application from being recorded.
func (h *Handler) SubmitApplication(c *gin.Context) {
	var req model.SubmitApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()

	job, err := h.Repo.GetJobByID(ctx, req.JobID)
	if err != nil {
		response.NotFound(c, "job not found")
		return
	}
	if !job.IsActive {
		response.ValidationError(c, "job is no longer accepting applications")
		return
	}

	app, err := h.Repo.SubmitApplication(ctx, &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			response.Conflict(c, "you have already applied for this job")
			return
		}
		h.Logger.Sugar().Errorw("failed to create application", "job_id", req.JobID, "err", err)
		response.InternalError(c, "failed to create application")
		return
	}

	response.Created(c, app)
}

func (h *Handler) GetApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}

	ctx := c.Request.Context()
	app, err := h.Repo.GetApplicationByID(ctx, id)
	if err != nil {
		response.NotFound(c, "application not found")
		return
	}

	interviews, err := h.Repo.ListInterviewsByApplication(ctx, id)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list interviews", "application_id", id, "err", err)
		interviews = nil
	}

	response.OK(c, gin.H{"application": app, "interviews": interviews})
}

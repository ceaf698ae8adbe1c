package handler

import (
	"net/http"

	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/alibomaye27/yourvoice/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) CreateJob(c *gin.Context) {
	var req model.CreateJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	job, err := h.Repo.CreateJob(c.Request.Context(), &req)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create job", "err", err)
		response.InternalError(c, "failed to create job")
		return
	}
	response.Created(c, job)
}

type listJobsQuery struct {
	Page     int  `form:"page,default=1"`
	PageSize int  `form:"page_size,default=20"`
	Active   bool `form:"active"`
}

func (h *Handler) ListJobs(c *gin.Context) {
	var q listJobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	jobs, total, err := h.Repo.ListJobs(c.Request.Context(), q.Active, q.PageSize, (q.Page-1)*q.PageSize)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list jobs", "err", err)
		response.InternalError(c, "failed to list jobs")
		return
	}
	response.OKWithMeta(c, jobs, &response.Meta{
		Page:     q.Page,
		PageSize: q.PageSize,
		Total:    total,
		HasNext:  q.Page*q.PageSize < total,
	})
}

func (h *Handler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid job id")
		return
	}

	job, err := h.Repo.GetJobByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "job not found")
		return
	}
	response.OK(c, job)
}

func (h *Handler) SetJobActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid job id")
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.Repo.SetJobActive(c.Request.Context(), id, *req.IsActive); err != nil {
		response.NotFound(c, "job not found")
		return
	}
	response.Message(c, "job updated")
}

// GenerateJob expands a short brief into a complete posting using Gemini.
func (h *Handler) GenerateJob(c *gin.Context) {
	if h.Generator == nil {
		response.ValidationError(c, "job generation is not configured")
		return
	}

	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "prompt is required")
		return
	}

	job, err := h.Generator.GenerateJobPosting(c.Request.Context(), req.Prompt)
	if err != nil {
		h.Logger.Sugar().Errorw("job generation failed", "err", err)
		response.InternalError(c, "failed to generate job details")
		return
	}
	c.JSON(http.StatusOK, job)
}

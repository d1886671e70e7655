package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/service"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/response"
)

type jobService interface {
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	MyJobs(ctx context.Context, actor service.Actor) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, actor service.Actor, req service.CreateJobRequest) (*models.Job, error)
	Update(ctx context.Context, actor service.Actor, id string, req service.UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, actor service.Actor, id string) error
}

// JobHandler exposes job postings.
type JobHandler struct {
	service jobService
}

// NewJobHandler constructs the handler.
func NewJobHandler(svc jobService) *JobHandler {
	return &JobHandler{service: svc}
}

// List godoc
// @Summary List active jobs
// @Tags Jobs
// @Produce json
// @Param jobType query string false "Job type, or all"
// @Param location query string false "Location substring"
// @Param search query string false "Title, description or company substring"
// @Success 200 {array} models.Job
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter := models.JobFilter{
		JobType:  c.Query("jobType"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	}
	jobs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs)
}

// Get godoc
// @Summary Get job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.Job
// @Failure 404 {object} response.ErrorBody
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Job"))
		return
	}
	job, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// MyJobs godoc
// @Summary List own postings
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Job
// @Router /jobs/recruiter/my-jobs [get]
func (h *JobHandler) MyJobs(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	jobs, err := h.service.MyJobs(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs)
}

// Create godoc
// @Summary Post a job
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateJobRequest true "Job"
// @Success 201 {object} models.Job
// @Failure 400 {object} response.ErrorBody
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	job, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, job)
}

// Update godoc
// @Summary Update a posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param payload body service.UpdateJobRequest true "Fields to change"
// @Success 200 {object} models.Job
// @Failure 403 {object} response.ErrorBody
// @Router /jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	actor, id, ok := jobTarget(c)
	if !ok {
		return
	}
	var req service.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	job, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Delete godoc
// @Summary Close a posting
// @Description Soft delete; the job stops accepting applications.
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} response.MessageBody
// @Failure 403 {object} response.ErrorBody
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	actor, id, ok := jobTarget(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Job deleted successfully")
}

func jobTarget(c *gin.Context) (service.Actor, string, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return actor, "", false
	}
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Job"))
		return actor, "", false
	}
	return actor, id, true
}

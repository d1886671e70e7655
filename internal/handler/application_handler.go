package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/service"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/response"
)

type applicationService interface {
	Apply(ctx context.Context, actor service.Actor, req service.ApplyRequest) (*models.Application, error)
	MyApplications(ctx context.Context, actor service.Actor) ([]models.ApplicationDetail, error)
	ForJob(ctx context.Context, actor service.Actor, jobID string) ([]models.ApplicationDetail, error)
	Get(ctx context.Context, actor service.Actor, id string) (*models.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, actor service.Actor, id string, req service.UpdateApplicationStatusRequest, meta service.AuditMeta) (*models.ApplicationDetail, error)
	Withdraw(ctx context.Context, actor service.Actor, id string) error
	ResumeLink(ctx context.Context, actor service.Actor, id string) (*service.ResumeLink, error)
	OpenFile(token string) (io.ReadSeekCloser, string, error)
}

// ApplicationHandler exposes job applications and signed resume downloads.
type ApplicationHandler struct {
	service applicationService
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(svc applicationService) *ApplicationHandler {
	return &ApplicationHandler{service: svc}
}

// Apply godoc
// @Summary Apply to a job
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ApplyRequest true "Application"
// @Success 201 {object} models.Application
// @Failure 400 {object} response.ErrorBody
// @Router /applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	app, err := h.service.Apply(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, app)
}

// MyApplications godoc
// @Summary List own applications
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ApplicationDetail
// @Router /applications/my-applications [get]
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	apps, err := h.service.MyApplications(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps)
}

// ForJob godoc
// @Summary List applications for a posting
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {array} models.ApplicationDetail
// @Failure 403 {object} response.ErrorBody
// @Router /applications/job/{jobId} [get]
func (h *ApplicationHandler) ForJob(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		response.Error(c, notFound("Job"))
		return
	}
	apps, err := h.service.ForJob(c.Request.Context(), actor, jobID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps)
}

// Get godoc
// @Summary Get application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} models.ApplicationDetail
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	actor, id, ok := applicationTarget(c)
	if !ok {
		return
	}
	app, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, app)
}

// UpdateStatus godoc
// @Summary Accept or reject an application
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param payload body service.UpdateApplicationStatusRequest true "Decision"
// @Success 200 {object} models.ApplicationDetail
// @Failure 400 {object} response.ErrorBody
// @Router /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	actor, id, ok := applicationTarget(c)
	if !ok {
		return
	}
	var req service.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	app, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, app)
}

// Withdraw godoc
// @Summary Withdraw a pending application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	actor, id, ok := applicationTarget(c)
	if !ok {
		return
	}
	if err := h.service.Withdraw(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Application withdrawn successfully")
}

// Resume godoc
// @Summary Signed resume download link
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} service.ResumeLink
// @Failure 403 {object} response.ErrorBody
// @Router /applications/{id}/resume [get]
func (h *ApplicationHandler) Resume(c *gin.Context) {
	actor, id, ok := applicationTarget(c)
	if !ok {
		return
	}
	link, err := h.service.ResumeLink(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link)
}

// Download godoc
// @Summary Stream a signed file
// @Tags Files
// @Produce application/pdf
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /files/{token} [get]
func (h *ApplicationHandler) Download(c *gin.Context) {
	file, name, err := h.service.OpenFile(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Cache-Control", "private, no-store")
	http.ServeContent(c.Writer, c.Request, name, time.Time{}, file)
}

func applicationTarget(c *gin.Context) (service.Actor, string, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return actor, "", false
	}
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Application"))
		return actor, "", false
	}
	return actor, id, true
}

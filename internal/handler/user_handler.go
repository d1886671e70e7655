package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/service"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/response"
)

// Multipart field names accepted by the profile update.
const (
	formProfilePhoto = "profilePhoto"
	formResume       = "resume"
	formCompanyLogo  = "companyLogo"
)

const maxProfileForm = 32 << 20

type userService interface {
	UpdateProfile(ctx context.Context, userID string, req service.UpdateProfileRequest, uploads service.ProfileUploads) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	UpdateRole(ctx context.Context, actorID, targetID string, req service.UpdateRoleRequest, meta service.AuditMeta) (*models.User, error)
}

// UserHandler exposes profile and user administration endpoints.
type UserHandler struct {
	service userService
}

// NewUserHandler constructs the handler.
func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{service: svc}
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Multipart update. Students may attach profilePhoto and resume (PDF), recruiters a companyLogo.
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string false "Display name"
// @Param bio formData string false "Bio"
// @Param skills formData string false "Comma separated skills"
// @Param companyName formData string false "Company name"
// @Param companyDescription formData string false "Company description"
// @Param profilePhoto formData file false "Profile photo"
// @Param resume formData file false "Resume PDF"
// @Param companyLogo formData file false "Company logo"
// @Success 200 {object} models.User
// @Failure 400 {object} response.ErrorBody
// @Router /auth/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.UpdateProfileRequest
	if isMultipart(c) {
		if err := c.Request.ParseMultipartForm(maxProfileForm); err != nil {
			response.Error(c, invalidPayload(err))
			return
		}
		req = profileFromForm(c.Request.MultipartForm)
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	uploads, closers, err := profileUploads(c)
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), claims.UserID, req, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// List godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param search query string false "Name or email substring"
// @Success 200 {array} models.User
// @Failure 403 {object} response.ErrorBody
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	filter := models.UserFilter{Search: strings.TrimSpace(c.Query("search"))}
	if role := models.UserRole(strings.TrimSpace(c.Query("role"))); role != "" && role != "all" {
		if !role.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "role must be one of: user, admin, student, recruiter"))
			return
		}
		filter.Role = &role
	}

	users, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param payload body service.UpdateRoleRequest true "Role"
// @Success 200 {object} models.User
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("user"))
		return
	}
	var req service.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), actor.ID, id, req, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func profileFromForm(form *multipart.Form) service.UpdateProfileRequest {
	var req service.UpdateProfileRequest
	if form == nil {
		return req
	}
	field := func(name string) *string {
		values, ok := form.Value[name]
		if !ok || len(values) == 0 {
			return nil
		}
		v := values[0]
		return &v
	}
	req.Name = field("name")
	req.Bio = field("bio")
	req.CompanyName = field("companyName")
	req.CompanyDescription = field("companyDescription")
	if values, ok := form.Value["skills"]; ok {
		req.Skills = []string{}
		for _, v := range values {
			req.Skills = append(req.Skills, strings.Split(v, ",")...)
		}
	}
	return req
}

func profileUploads(c *gin.Context) (service.ProfileUploads, []io.Closer, error) {
	var uploads service.ProfileUploads
	var closers []io.Closer
	if c.Request.MultipartForm == nil {
		return uploads, closers, nil
	}
	open := func(name string) (io.Reader, error) {
		headers := c.Request.MultipartForm.File[name]
		if len(headers) == 0 {
			return nil, nil
		}
		f, err := headers[0].Open()
		if err != nil {
			return nil, appErrors.Internal(err, "failed to read upload")
		}
		closers = append(closers, f)
		return f, nil
	}

	var err error
	if uploads.ProfilePhoto, err = open(formProfilePhoto); err != nil {
		return uploads, closers, err
	}
	if uploads.Resume, err = open(formResume); err != nil {
		return uploads, closers, err
	}
	if uploads.CompanyLogo, err = open(formCompanyLogo); err != nil {
		return uploads, closers, err
	}
	return uploads, closers, nil
}

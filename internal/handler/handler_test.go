package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portal-api/internal/middleware"
	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/service"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/response"
)

func newContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, body)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, rec
}

func withClaims(c *gin.Context, id string, role models.UserRole) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: id, Role: role, Name: "Tester"})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type fakeAuthSrv struct {
	registerReq models.RegisterRequest
	loginErr    error
	meID        string
}

func (f *fakeAuthSrv) Register(_ context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.registerReq = req
	return &models.AuthResponse{Token: "tok", User: &models.User{Email: req.Email}}, nil
}

func (f *fakeAuthSrv) Login(context.Context, models.LoginRequest) (*models.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.AuthResponse{Token: "tok"}, nil
}

func (f *fakeAuthSrv) Me(_ context.Context, id string) (*models.User, error) {
	f.meID = id
	return &models.User{ID: id}, nil
}

func TestAuthHandlerRegister(t *testing.T) {
	srv := &fakeAuthSrv{}
	h := NewAuthHandler(srv)
	c, rec := newContext(http.MethodPost, "/auth/register", strings.NewReader(`{"name":"Ann","email":"ann@example.com","password":"secret1"}`))
	c.Request.Header.Set("User-Agent", "test-agent")

	h.Register(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "test-agent", srv.registerReq.UserAgent)
	var res models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "tok", res.Token)
}

func TestAuthHandlerLoginErrors(t *testing.T) {
	h := NewAuthHandler(&fakeAuthSrv{loginErr: appErrors.ErrInvalidCredentials})

	c, rec := newContext(http.MethodPost, "/auth/login", strings.NewReader(`{bad`))
	h.Login(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)

	c, rec = newContext(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.co","password":"x"}`))
	h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, rec).Code)
}

func TestAuthHandlerMe(t *testing.T) {
	srv := &fakeAuthSrv{}
	h := NewAuthHandler(srv)

	c, rec := newContext(http.MethodGet, "/auth/me", nil)
	h.Me(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newContext(http.MethodGet, "/auth/me", nil)
	withClaims(c, "u-1", models.RoleUser)
	h.Me(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", srv.meID)
}

type fakeUserSrv struct {
	req     service.UpdateProfileRequest
	photo   []byte
	resume  []byte
	roleReq service.UpdateRoleRequest
	filter  models.UserFilter
}

func (f *fakeUserSrv) UpdateProfile(_ context.Context, userID string, req service.UpdateProfileRequest, uploads service.ProfileUploads) (*models.User, error) {
	f.req = req
	if uploads.ProfilePhoto != nil {
		f.photo, _ = io.ReadAll(uploads.ProfilePhoto)
	}
	if uploads.Resume != nil {
		f.resume, _ = io.ReadAll(uploads.Resume)
	}
	return &models.User{ID: userID}, nil
}

func (f *fakeUserSrv) List(_ context.Context, filter models.UserFilter) ([]models.User, error) {
	f.filter = filter
	return []models.User{}, nil
}

func (f *fakeUserSrv) UpdateRole(_ context.Context, _, targetID string, req service.UpdateRoleRequest, _ service.AuditMeta) (*models.User, error) {
	f.roleReq = req
	return &models.User{ID: targetID, Role: req.Role}, nil
}

func TestUserHandlerUpdateProfileMultipart(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "Ann"))
	require.NoError(t, w.WriteField("skills", "go, sql"))
	part, err := w.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4 resume"))
	require.NoError(t, w.Close())

	srv := &fakeUserSrv{}
	h := NewUserHandler(srv)
	c, rec := newContext(http.MethodPut, "/auth/profile", nil)
	c.Request = httptest.NewRequest(http.MethodPut, "/auth/profile", &body)
	c.Request.Header.Set("Content-Type", w.FormDataContentType())
	withClaims(c, "u-1", models.RoleStudent)

	h.UpdateProfile(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.req.Name)
	assert.Equal(t, "Ann", *srv.req.Name)
	assert.Nil(t, srv.req.Bio)
	assert.Equal(t, []string{"go", " sql"}, srv.req.Skills)
	assert.Equal(t, "%PDF-1.4 resume", string(srv.resume))
	assert.Nil(t, srv.photo)
}

func TestUserHandlerUpdateProfileJSON(t *testing.T) {
	srv := &fakeUserSrv{}
	h := NewUserHandler(srv)
	c, rec := newContext(http.MethodPut, "/auth/profile", strings.NewReader(`{"bio":"hello"}`))
	withClaims(c, "u-1", models.RoleUser)

	h.UpdateProfile(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.req.Bio)
	assert.Equal(t, "hello", *srv.req.Bio)
}

func TestUserHandlerListRejectsUnknownRole(t *testing.T) {
	srv := &fakeUserSrv{}
	h := NewUserHandler(srv)

	c, rec := newContext(http.MethodGet, "/admin/users?role=owner", nil)
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodGet, "/admin/users?role=student&search=ann", nil)
	h.List(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.filter.Role)
	assert.Equal(t, models.RoleStudent, *srv.filter.Role)
	assert.Equal(t, "ann", srv.filter.Search)
}

func TestUserHandlerUpdateRoleMalformedID(t *testing.T) {
	h := NewUserHandler(&fakeUserSrv{})
	c, rec := newContext(http.MethodPut, "/admin/users/nope/role", strings.NewReader(`{"role":"admin"}`))
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	withClaims(c, "a-1", models.RoleAdmin)

	h.UpdateRole(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeProductSrv struct {
	filter  models.ProductFilter
	created service.CreateProductRequest
	getErr  error
}

func (f *fakeProductSrv) List(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	f.filter = filter
	return []models.Product{{Name: "Mug"}}, nil
}

func (f *fakeProductSrv) Get(_ context.Context, id string) (*models.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.Product{ID: id}, nil
}

func (f *fakeProductSrv) Create(_ context.Context, req service.CreateProductRequest) (*models.Product, error) {
	f.created = req
	return &models.Product{Name: req.Name}, nil
}

func (f *fakeProductSrv) Update(_ context.Context, id string, _ service.UpdateProductRequest) (*models.Product, error) {
	return &models.Product{ID: id}, nil
}

func (f *fakeProductSrv) Delete(context.Context, string) error { return nil }

func TestProductHandlerList(t *testing.T) {
	srv := &fakeProductSrv{}
	h := NewProductHandler(srv)
	c, rec := newContext(http.MethodGet, "/products?category=Books&sort=price-low&search=go", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Books", srv.filter.Category)
	assert.Equal(t, models.ProductSortPriceLow, srv.filter.Sort)
	assert.Equal(t, "go", srv.filter.Search)
}

func TestProductHandlerGetNotFound(t *testing.T) {
	h := NewProductHandler(&fakeProductSrv{getErr: appErrors.Clone(appErrors.ErrNotFound, "Product not found")})

	c, rec := newContext(http.MethodGet, "/products/x", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decodeError(t, rec).Error)

	id := uuid.NewString()
	c, rec = newContext(http.MethodGet, "/products/"+id, nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandlerCreateParsesDecimal(t *testing.T) {
	srv := &fakeProductSrv{}
	h := NewProductHandler(srv)
	c, rec := newContext(http.MethodPost, "/products", strings.NewReader(`{"name":"Mug","category":"Home","price":12.5}`))

	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, srv.created.Price)
	assert.Equal(t, "12.5", srv.created.Price.String())
}

type fakeOrderSrv struct {
	actor   service.Actor
	invoice []byte
}

func (f *fakeOrderSrv) Create(_ context.Context, actor service.Actor, _ service.CreateOrderRequest) (*models.Order, error) {
	f.actor = actor
	return &models.Order{UserID: actor.ID}, nil
}

func (f *fakeOrderSrv) MyOrders(context.Context, service.Actor) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (f *fakeOrderSrv) List(context.Context, string) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (f *fakeOrderSrv) Get(_ context.Context, _ service.Actor, _ string) (*models.Order, error) {
	return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized to view this order")
}

func (f *fakeOrderSrv) UpdateStatus(context.Context, service.Actor, string, service.UpdateOrderStatusRequest, service.AuditMeta) (*models.Order, error) {
	return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "cannot change order status from delivered to pending")
}

func (f *fakeOrderSrv) Cancel(context.Context, service.Actor, string, service.AuditMeta) (*models.Order, error) {
	return &models.Order{}, nil
}

func (f *fakeOrderSrv) Invoice(_ context.Context, _ service.Actor, id string) ([]byte, string, error) {
	return f.invoice, "invoice-" + id + ".pdf", nil
}

func TestOrderHandlerCreateUsesActor(t *testing.T) {
	srv := &fakeOrderSrv{}
	h := NewOrderHandler(srv)

	c, rec := newContext(http.MethodPost, "/orders", strings.NewReader(`{}`))
	h.Create(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newContext(http.MethodPost, "/orders", strings.NewReader(`{"items":[]}`))
	withClaims(c, "u-9", models.RoleUser)
	h.Create(c)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u-9", srv.actor.ID)
}

func TestOrderHandlerErrorsPassThrough(t *testing.T) {
	h := NewOrderHandler(&fakeOrderSrv{})
	id := uuid.NewString()

	c, rec := newContext(http.MethodGet, "/orders/"+id, nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	withClaims(c, "u-1", models.RoleUser)
	h.Get(c)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = newContext(http.MethodPut, "/orders/"+id+"/status", strings.NewReader(`{"status":"pending"}`))
	c.Params = gin.Params{{Key: "id", Value: id}}
	withClaims(c, "a-1", models.RoleAdmin)
	h.UpdateStatus(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_TRANSITION", decodeError(t, rec).Code)
}

func TestOrderHandlerInvoice(t *testing.T) {
	h := NewOrderHandler(&fakeOrderSrv{invoice: []byte("%PDF")})
	id := uuid.NewString()
	c, rec := newContext(http.MethodGet, "/orders/"+id+"/invoice", nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	withClaims(c, "u-1", models.RoleUser)

	h.Invoice(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "invoice-"+id+".pdf")
	assert.Equal(t, "%PDF", rec.Body.String())
}

type fakeAdminSrv struct{ status string }

func (f *fakeAdminSrv) Stats(context.Context) (*models.AdminStats, error) {
	return &models.AdminStats{TotalUsers: 3}, nil
}

func (f *fakeAdminSrv) ExportOrders(_ context.Context, status string) ([]byte, error) {
	f.status = status
	return []byte("Order ID\n"), nil
}

func TestAdminHandlerExport(t *testing.T) {
	srv := &fakeAdminSrv{}
	h := NewAdminHandler(srv)
	h.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	c, rec := newContext(http.MethodGet, "/admin/orders/export?status=shipped", nil)

	h.ExportOrders(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shipped", srv.status)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "orders-20240309.csv")
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
}

type fakeQuizSrv struct {
	actor  service.Actor
	filter models.QuizFilter
	limit  int
}

func (f *fakeQuizSrv) ListPublic(_ context.Context, filter models.QuizFilter) ([]models.Quiz, error) {
	f.filter = filter
	return []models.Quiz{}, nil
}
func (f *fakeQuizSrv) MyQuizzes(context.Context, service.Actor) ([]models.Quiz, error) {
	return nil, nil
}
func (f *fakeQuizSrv) Get(_ context.Context, actor service.Actor, id string) (*models.Quiz, error) {
	f.actor = actor
	return &models.Quiz{ID: id}, nil
}
func (f *fakeQuizSrv) Create(context.Context, service.Actor, service.CreateQuizRequest) (*models.Quiz, error) {
	return &models.Quiz{}, nil
}
func (f *fakeQuizSrv) Update(context.Context, service.Actor, string, service.UpdateQuizRequest) (*models.Quiz, error) {
	return &models.Quiz{}, nil
}
func (f *fakeQuizSrv) Delete(context.Context, service.Actor, string) error { return nil }
func (f *fakeQuizSrv) Submit(context.Context, service.Actor, string, service.SubmitQuizRequest) (*models.SubmissionResult, error) {
	return &models.SubmissionResult{Score: 2, TotalQuestions: 2, Grade: "A", Passed: true}, nil
}
func (f *fakeQuizSrv) History(_ context.Context, _ service.Actor, limit int) ([]models.QuizResult, error) {
	f.limit = limit
	return nil, nil
}
func (f *fakeQuizSrv) Leaderboard(_ context.Context, _ service.Actor, _ string, limit int) ([]models.LeaderboardEntry, error) {
	f.limit = limit
	return nil, nil
}
func (f *fakeQuizSrv) Stats(context.Context, service.Actor, string) (*models.QuizStats, error) {
	return &models.QuizStats{}, nil
}

func TestQuizHandlerListLimit(t *testing.T) {
	srv := &fakeQuizSrv{}
	h := NewQuizHandler(srv)

	c, rec := newContext(http.MethodGet, "/quizzes?limit=abc", nil)
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit must be a positive integer", decodeError(t, rec).Error)

	c, rec = newContext(http.MethodGet, "/quizzes?limit=5&difficulty=Hard", nil)
	h.List(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, srv.filter.Limit)
	assert.Equal(t, "Hard", srv.filter.Difficulty)
}

func TestQuizHandlerGetAnonymous(t *testing.T) {
	srv := &fakeQuizSrv{}
	h := NewQuizHandler(srv)
	id := uuid.NewString()
	c, rec := newContext(http.MethodGet, "/quizzes/"+id, nil)
	c.Params = gin.Params{{Key: "id", Value: id}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, srv.actor.ID)
}

func TestQuizHandlerSubmit(t *testing.T) {
	h := NewQuizHandler(&fakeQuizSrv{})
	id := uuid.NewString()
	c, rec := newContext(http.MethodPost, "/quizzes/"+id+"/submit", strings.NewReader(`{"answers":[0,1],"timeTaken":30}`))
	c.Params = gin.Params{{Key: "id", Value: id}}
	withClaims(c, "u-1", models.RoleUser)

	h.Submit(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var res models.SubmissionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "A", res.Grade)
	assert.True(t, res.Passed)
}

type fakeApplicationSrv struct {
	openErr error
}

func (f *fakeApplicationSrv) Apply(_ context.Context, actor service.Actor, req service.ApplyRequest) (*models.Application, error) {
	return &models.Application{JobID: req.JobID, ApplicantID: actor.ID}, nil
}
func (f *fakeApplicationSrv) MyApplications(context.Context, service.Actor) ([]models.ApplicationDetail, error) {
	return nil, nil
}
func (f *fakeApplicationSrv) ForJob(context.Context, service.Actor, string) ([]models.ApplicationDetail, error) {
	return nil, nil
}
func (f *fakeApplicationSrv) Get(context.Context, service.Actor, string) (*models.ApplicationDetail, error) {
	return nil, nil
}
func (f *fakeApplicationSrv) UpdateStatus(context.Context, service.Actor, string, service.UpdateApplicationStatusRequest, service.AuditMeta) (*models.ApplicationDetail, error) {
	return nil, nil
}
func (f *fakeApplicationSrv) Withdraw(context.Context, service.Actor, string) error { return nil }
func (f *fakeApplicationSrv) ResumeLink(context.Context, service.Actor, string) (*service.ResumeLink, error) {
	return &service.ResumeLink{URL: "/files/abc"}, nil
}
func (f *fakeApplicationSrv) OpenFile(string) (io.ReadSeekCloser, string, error) {
	if f.openErr != nil {
		return nil, "", f.openErr
	}
	return nopSeekCloser{strings.NewReader("%PDF-1.4")}, "resume.pdf", nil
}

type nopSeekCloser struct{ *strings.Reader }

func (nopSeekCloser) Close() error { return nil }

func TestApplicationHandlerDownload(t *testing.T) {
	h := NewApplicationHandler(&fakeApplicationSrv{})
	c, rec := newContext(http.MethodGet, "/files/tok", nil)
	c.Params = gin.Params{{Key: "token", Value: "tok"}}

	h.Download(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "resume.pdf")
}

func TestApplicationHandlerDownloadExpired(t *testing.T) {
	h := NewApplicationHandler(&fakeApplicationSrv{openErr: appErrors.Clone(appErrors.ErrForbidden, "download link has expired")})
	c, rec := newContext(http.MethodGet, "/files/tok", nil)
	c.Params = gin.Params{{Key: "token", Value: "tok"}}

	h.Download(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "download link has expired", decodeError(t, rec).Error)
}

func TestApplicationHandlerApply(t *testing.T) {
	h := NewApplicationHandler(&fakeApplicationSrv{})
	c, rec := newContext(http.MethodPost, "/applications", strings.NewReader(`{"jobId":"j-1","coverLetter":"hi"}`))
	withClaims(c, "s-1", models.RoleStudent)

	h.Apply(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var app models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.Equal(t, "j-1", app.JobID)
	assert.Equal(t, "s-1", app.ApplicantID)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestMetricsHandlerHealth(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/health", nil)
	NewMetricsHandler(nil, stubPinger{}).Health(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodGet, "/health", nil)
	NewMetricsHandler(nil, stubPinger{err: errors.New("down")}).Health(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	c, rec = newContext(http.MethodGet, "/metrics", nil)
	NewMetricsHandler(nil, nil).Prometheus(c)
	c.Writer.WriteHeaderNow() // flush buffered status as the gin engine does after the handler chain
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

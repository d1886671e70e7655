// Package client is a Go client for the portal API. Authenticated calls take
// an explicit *Session instead of reading a global token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/portal-api/internal/models"
)

// APIError is a non-2xx response decoded from the {error, code} body.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// IsUnauthorized reports whether err means the session is missing, expired or rejected.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNoSession) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client talks to one API deployment.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL (for example http://localhost:5000/api).
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role,omitempty"`
}

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, &res); err != nil {
		return nil, err
	}
	return &Session{Token: res.Token, User: res.User}, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, payload, &res); err != nil {
		return nil, err
	}
	return &Session{Token: res.Token, User: res.User}, nil
}

// Me fetches the current profile.
func (c *Client) Me(ctx context.Context, s *Session) (*models.User, error) {
	var user models.User
	if err := c.authed(ctx, http.MethodGet, "/auth/me", s, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProductQuery filters the catalogue.
type ProductQuery struct {
	Category string
	Search   string
	Sort     models.ProductSort
}

// ListProducts returns the catalogue.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	params := url.Values{}
	setParam(params, "category", q.Category)
	setParam(params, "search", q.Search)
	setParam(params, "sort", string(q.Sort))
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, withQuery("/products", params), nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// OrderLineInput is one product and quantity to order.
type OrderLineInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PaymentInput carries the card; the server keeps only the last four digits.
type PaymentInput struct {
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
}

// OrderInput is the checkout payload.
type OrderInput struct {
	Items        []OrderLineInput    `json:"items"`
	ShippingInfo models.ShippingInfo `json:"shippingInfo"`
	PaymentInfo  PaymentInput        `json:"paymentInfo"`
	Total        *decimal.Decimal    `json:"total,omitempty"`
}

// PlaceOrder submits an order for the session user.
func (c *Client) PlaceOrder(ctx context.Context, s *Session, in OrderInput) (*models.Order, error) {
	var order models.Order
	if err := c.authed(ctx, http.MethodPost, "/orders", s, in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders lists the session user's orders, newest first.
func (c *Client) MyOrders(ctx context.Context, s *Session) ([]models.Order, error) {
	var orders []models.Order
	if err := c.authed(ctx, http.MethodGet, "/orders/my-orders", s, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// QuizQuery filters the public quiz list.
type QuizQuery struct {
	Search     string
	Category   string
	Difficulty string
	Limit      int
}

// ListQuizzes returns public quizzes without answers.
func (c *Client) ListQuizzes(ctx context.Context, q QuizQuery) ([]models.Quiz, error) {
	params := url.Values{}
	setParam(params, "search", q.Search)
	setParam(params, "category", q.Category)
	setParam(params, "difficulty", q.Difficulty)
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	var quizzes []models.Quiz
	if err := c.do(ctx, http.MethodGet, withQuery("/quizzes", params), nil, nil, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// GetQuiz fetches a quiz. s may be nil; a session lets owners see private quizzes.
func (c *Client) GetQuiz(ctx context.Context, s *Session, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := c.do(ctx, http.MethodGet, "/quizzes/"+url.PathEscape(id), s, nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// SubmitQuiz sends a complete attempt for grading.
func (c *Client) SubmitQuiz(ctx context.Context, s *Session, attempt *QuizAttempt, timeTaken int) (*models.SubmissionResult, error) {
	payload := struct {
		Answers   []int `json:"answers"`
		TimeTaken int   `json:"timeTaken"`
	}{Answers: attempt.Answers, TimeTaken: timeTaken}
	var result models.SubmissionResult
	if err := c.authed(ctx, http.MethodPost, "/quizzes/"+url.PathEscape(attempt.QuizID)+"/submit", s, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// JobQuery filters active postings.
type JobQuery struct {
	JobType  string
	Location string
	Search   string
}

// ListJobs returns active postings.
func (c *Client) ListJobs(ctx context.Context, q JobQuery) ([]models.Job, error) {
	params := url.Values{}
	setParam(params, "jobType", q.JobType)
	setParam(params, "location", q.Location)
	setParam(params, "search", q.Search)
	var jobs []models.Job
	if err := c.do(ctx, http.MethodGet, withQuery("/jobs", params), nil, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Apply submits the session student's application to jobID.
func (c *Client) Apply(ctx context.Context, s *Session, jobID, coverLetter string) (*models.Application, error) {
	payload := map[string]string{"jobId": jobID, "coverLetter": coverLetter}
	var app models.Application
	if err := c.authed(ctx, http.MethodPost, "/applications", s, payload, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Withdraw deletes a pending application.
func (c *Client) Withdraw(ctx context.Context, s *Session, applicationID string) error {
	return c.authed(ctx, http.MethodDelete, "/applications/"+url.PathEscape(applicationID), s, nil, nil)
}

func (c *Client) authed(ctx context.Context, method, path string, s *Session, in, out interface{}) error {
	if s == nil || s.Token == "" {
		return ErrNoSession
	}
	return c.do(ctx, method, path, s, in, out)
}

func (c *Client) do(ctx context.Context, method, path string, s *Session, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s != nil && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}

func setParam(params url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params.Set(key, value)
	}
}

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

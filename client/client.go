// Package client is the Go SDK for the Fitzer API: a resty-backed remote
// persistence client, a session/token manager, a local snapshot store and
// the diet plan generator.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fitzer-app/fitzer/backend/internal/models"
	"github.com/fitzer-app/fitzer/backend/internal/types"
)

const defaultTimeout = 15 * time.Second

// RequestError is returned for any non-2xx response. Message carries the
// server's {error} body when one was sent.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// AuthResponse is the body of register and login calls.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// SaveResponse is the body of resource-creating calls.
type SaveResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Client talks to the Fitzer API. It is safe for concurrent use; the
// bearer token is attached to every request once set.
type Client struct {
	http *resty.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(defaultTimeout),
	}
}

// SetToken replaces the bearer token used on authenticated calls. An
// empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Register(ctx context.Context, name, username, email string) (*AuthResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(types.RegisterRequest{Name: name, Username: username, Email: email}).
		Post("/api/v1/auth/register")
	if err != nil {
		return nil, fmt.Errorf("register request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode register response: %w", err)
	}

	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Login(ctx context.Context, name, username string) (*AuthResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(types.LoginRequest{Name: name, Username: username}).
		Post("/api/v1/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	resp, err := c.authedRequest(ctx).Get("/api/v1/user/profile")
	if err != nil {
		return nil, fmt.Errorf("profile request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out struct {
		User models.User `json:"user"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	return &out.User, nil
}

// SaveSnapshot persists a calculator result; the server appends one
// weight history point alongside it.
func (c *Client) SaveSnapshot(ctx context.Context, snapshot types.SaveBMIRequest) (*SaveResponse, error) {
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(snapshot).
		Post("/api/v1/bmi")
	if err != nil {
		return nil, fmt.Errorf("save snapshot request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out SaveResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode save snapshot response: %w", err)
	}
	return &out, nil
}

// LatestSnapshot returns the newest saved snapshot, or nil when the user
// has never saved one.
func (c *Client) LatestSnapshot(ctx context.Context) (*models.BMIRecord, error) {
	resp, err := c.authedRequest(ctx).Get("/api/v1/bmi")
	if err != nil {
		return nil, fmt.Errorf("snapshot request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out struct {
		BMIData *models.BMIRecord `json:"bmiData"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode snapshot response: %w", err)
	}
	// The server answers {} rather than null for a missing snapshot.
	if out.BMIData == nil || out.BMIData.BMI == 0 {
		return nil, nil
	}
	return out.BMIData, nil
}

func (c *Client) WeightHistory(ctx context.Context) ([]models.WeightEntry, error) {
	resp, err := c.authedRequest(ctx).Get("/api/v1/weight-history")
	if err != nil {
		return nil, fmt.Errorf("weight history request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out struct {
		History []models.WeightEntry `json:"history"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode weight history response: %w", err)
	}
	return out.History, nil
}

func (c *Client) SaveDietPlan(ctx context.Context, dietType, category string, items []string) (*SaveResponse, error) {
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(types.SaveDietPlanRequest{DietType: dietType, Category: category, Items: items}).
		Post("/api/v1/diet-plan")
	if err != nil {
		return nil, fmt.Errorf("save diet plan request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out SaveResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode save diet plan response: %w", err)
	}
	return &out, nil
}

// LatestDietPlan returns the retained plan, or nil when none was saved.
func (c *Client) LatestDietPlan(ctx context.Context) (*models.DietPlan, error) {
	resp, err := c.authedRequest(ctx).Get("/api/v1/diet-plan")
	if err != nil {
		return nil, fmt.Errorf("diet plan request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out struct {
		DietPlan *models.DietPlan `json:"dietPlan"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode diet plan response: %w", err)
	}
	return out.DietPlan, nil
}

func (c *Client) SaveModules(ctx context.Context, modules []types.ModuleInput) error {
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(types.SaveModulesRequest{Modules: modules}).
		Post("/api/v1/modules")
	if err != nil {
		return fmt.Errorf("save modules request: %w", err)
	}
	return mapHTTPError(resp)
}

func (c *Client) Modules(ctx context.Context) ([]models.UserModule, error) {
	resp, err := c.authedRequest(ctx).Get("/api/v1/modules")
	if err != nil {
		return nil, fmt.Errorf("modules request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out struct {
		Modules []models.UserModule `json:"modules"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode modules response: %w", err)
	}
	return out.Modules, nil
}

func (c *Client) Preferences(ctx context.Context) (*models.UserPreference, error) {
	resp, err := c.authedRequest(ctx).Get("/api/v1/preferences")
	if err != nil {
		return nil, fmt.Errorf("preferences request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out struct {
		Preferences models.UserPreference `json:"preferences"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode preferences response: %w", err)
	}
	return &out.Preferences, nil
}

func (c *Client) SetTheme(ctx context.Context, theme string) error {
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(types.UpdatePreferencesRequest{Theme: theme}).
		Put("/api/v1/preferences")
	if err != nil {
		return fmt.Errorf("set theme request: %w", err)
	}
	return mapHTTPError(resp)
}

func (c *Client) authedRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// mapHTTPError turns any non-2xx response into a RequestError carrying
// the server's {error} message when one was sent.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	message := "request failed"
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		message = body.Error
	}

	return &RequestError{StatusCode: resp.StatusCode(), Message: message}
}

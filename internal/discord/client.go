package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// Client tuning
const (
	apiPrefix          = "/api/v1"
	apiKeyHeader       = "X-API-Key"
	clientTimeout      = 10 * time.Second
	clientMaxRetries   = 3
	clientRetryWaitMin = 250 * time.Millisecond
	clientRetryWaitMax = 2 * time.Second
	maxErrorBodyBytes  = 4096
)

// APIError is a non-2xx answer from the museum API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// APIClient talks to the museum HTTP API. 5xx answers and connection
// failures are retried with backoff.
type APIClient struct {
	BaseURL string
	APIKey  string
	http    *retryablehttp.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = clientMaxRetries
	rc.RetryWaitMin = clientRetryWaitMin
	rc.RetryWaitMax = clientRetryWaitMax
	rc.HTTPClient.Timeout = clientTimeout
	rc.Logger = slog.Default()

	return &APIClient{BaseURL: baseURL, APIKey: apiKey, http: rc}
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var raw interface{}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		raw = b
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.BaseURL+apiPrefix+path, raw)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set(apiKeyHeader, c.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		msg := gjson.GetBytes(b, "error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type list[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// ListCrops lists the catalog, optionally filtered
func (c *APIClient) ListCrops(ctx context.Context, search, rarity string) ([]domain.Crop, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if rarity != "" {
		q.Set("rarity", rarity)
	}
	path := "/crops"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var res list[domain.Crop]
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// GetCrop fetches one crop
func (c *APIClient) GetCrop(ctx context.Context, id int) (*domain.Crop, error) {
	var crop domain.Crop
	if err := c.do(ctx, http.MethodGet, "/crops/"+strconv.Itoa(id), nil, &crop); err != nil {
		return nil, err
	}
	return &crop, nil
}

// StartAdoption opens a checkout for the crop
func (c *APIClient) StartAdoption(ctx context.Context, userID string, cropID int) (*domain.CheckoutSession, error) {
	req := map[string]interface{}{"user_id": userID, "crop_id": cropID}
	var cs domain.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/adoptions", req, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// GetAdoption fetches a checkout session
func (c *APIClient) GetAdoption(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error) {
	var cs domain.CheckoutSession
	if err := c.do(ctx, http.MethodGet, "/adoptions/"+id.String(), nil, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// AdoptionStep posts a bodiless step action (proceed, back, confirm, cancel)
func (c *APIClient) AdoptionStep(ctx context.Context, id uuid.UUID, action string) (*domain.CheckoutSession, error) {
	var cs domain.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/adoptions/"+id.String()+"/"+action, nil, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// SelectPayment picks the payment method, with a wallet provider for crypto
func (c *APIClient) SelectPayment(ctx context.Context, id uuid.UUID, method, wallet string) (*domain.CheckoutSession, error) {
	req := map[string]string{"method": method, "wallet_provider": wallet}
	var cs domain.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/adoptions/"+id.String()+"/payment", req, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// ListQuests lists every province with the visitor's progress
func (c *APIClient) ListQuests(ctx context.Context, userID string) ([]domain.ProvinceView, error) {
	var res list[domain.ProvinceView]
	if err := c.do(ctx, http.MethodGet, "/quests?user="+url.QueryEscape(userID), nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// CurrentQuestion fetches the visitor's next question in a province
func (c *APIClient) CurrentQuestion(ctx context.Context, provinceID, userID string) (*domain.CurrentQuestion, error) {
	var q domain.CurrentQuestion
	path := "/quests/" + url.PathEscape(provinceID) + "?user=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Answer submits an option for the current question
func (c *APIClient) Answer(ctx context.Context, provinceID, userID string, option int) (*domain.AnswerResult, error) {
	req := map[string]interface{}{"user_id": userID, "option": option}
	var res domain.AnswerResult
	if err := c.do(ctx, http.MethodPost, "/quests/"+url.PathEscape(provinceID)+"/answer", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Profile fetches the visitor's dashboard summary, creating the visitor if new
func (c *APIClient) Profile(ctx context.Context, userID string) (*domain.ProfileSummary, error) {
	var s domain.ProfileSummary
	if err := c.do(ctx, http.MethodGet, "/profiles/"+url.PathEscape(userID), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Leaderboard fetches the top contributors
func (c *APIClient) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var res list[domain.LeaderboardEntry]
	if err := c.do(ctx, http.MethodGet, "/leaderboard?limit="+strconv.Itoa(limit), nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Ask queries the heritage guide
func (c *APIClient) Ask(ctx context.Context, query, language string) (*domain.GuideAnswer, error) {
	req := map[string]string{"query": query, "language": language}
	var a domain.GuideAnswer
	if err := c.do(ctx, http.MethodPost, "/guide/ask", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Healthy reports whether the API answers its liveness probe
func (c *APIClient) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.HTTPClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

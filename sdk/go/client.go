// Package doafacil provides a Go client for the DoaFacil directory API
package doafacil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the DoaFacil API client
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sets an admin bearer token for authenticated endpoints
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new DoaFacil client
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// envelope is the uniform response wrapper returned by every endpoint
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
	Details    map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s (status %d)", e.Message, e.StatusCode)
}

// Login authenticates an admin and returns a bearer token. The token is
// retained on the client for subsequent authenticated calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	var result struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
		ExpiresIn   int    `json:"expiresIn"`
	}
	if err := c.do(ctx, "POST", "/api/v1/auth/login", body, &result); err != nil {
		return "", err
	}

	c.token = result.AccessToken
	return result.AccessToken, nil
}

// SearchInstitutions lists active institutions matching the given filters
func (c *Client) SearchInstitutions(ctx context.Context, params *SearchParams) (*InstitutionList, error) {
	path := "/api/v1/institutions"
	if params != nil {
		query := url.Values{}
		if params.SearchText != "" {
			query.Set("searchText", params.SearchText)
		}
		if params.Category != "" {
			query.Set("categoryName", params.Category)
		}
		if params.City != "" {
			query.Set("cityName", params.City)
		}
		if params.State != "" {
			query.Set("stateName", params.State)
		}
		if params.DonationType != "" {
			query.Set("donationTypeName", params.DonationType)
		}
		if params.Page > 0 {
			query.Set("page", strconv.Itoa(params.Page))
		}
		if params.Limit > 0 {
			query.Set("limit", strconv.Itoa(params.Limit))
		}
		if encoded := query.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}

	var result InstitutionList
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetInstitution fetches a single institution by id
func (c *Client) GetInstitution(ctx context.Context, id string) (*Institution, error) {
	var result Institution
	if err := c.do(ctx, "GET", "/api/v1/institutions/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateInstitution registers a new institution
func (c *Client) CreateInstitution(ctx context.Context, req *CreateInstitutionRequest) (*Institution, error) {
	var result Institution
	if err := c.do(ctx, "POST", "/api/v1/institutions", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateInstitution applies a partial update to an institution (admin only)
func (c *Client) UpdateInstitution(ctx context.Context, id string, req *UpdateInstitutionRequest) (*Institution, error) {
	var result Institution
	if err := c.do(ctx, "PUT", "/api/v1/institutions/"+id, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteInstitution removes an institution from the directory (admin only)
func (c *Client) DeleteInstitution(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/api/v1/institutions/"+id, nil, nil)
}

// VerifyInstitution sets the verification flag on an institution (admin only)
func (c *Client) VerifyInstitution(ctx context.Context, id string, verified bool) (*Institution, error) {
	body := map[string]bool{"verified": verified}

	var result Institution
	if err := c.do(ctx, "PATCH", "/api/v1/institutions/"+id+"/verify", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCategories lists all categories
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var result []Category
	if err := c.do(ctx, "GET", "/api/v1/categories", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateCategory creates a category (admin only)
func (c *Client) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	body := map[string]string{"name": name, "description": description}

	var result Category
	if err := c.do(ctx, "POST", "/api/v1/categories", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateDonationType creates a donation type (admin only)
func (c *Client) CreateDonationType(ctx context.Context, name, description string) (*DonationType, error) {
	body := map[string]string{"name": name, "description": description}

	var result DonationType
	if err := c.do(ctx, "POST", "/api/v1/donation-types", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListDonationTypes lists all donation types
func (c *Client) ListDonationTypes(ctx context.Context) ([]DonationType, error) {
	var result []DonationType
	if err := c.do(ctx, "GET", "/api/v1/donation-types", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Stats fetches aggregate directory statistics
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var result Stats
	if err := c.do(ctx, "GET", "/api/v1/stats", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		message := env.Error
		if message == "" {
			message = env.Message
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Details:    env.Details,
		}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// Package api implements the HTTP client for the remote onboarding service:
// subdomain/email availability checks, lead upserts, account registration,
// store-creation triggers, and provisioning status queries. Responses use a
// `{status, data, message}` envelope; business errors arrive as a message
// with status "error" and are surfaced verbatim.
package api

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
	"time"
)

// ErrMalformed marks responses that were not valid envelope JSON. Callers use
// it to distinguish a broken payload from a transport failure.
var ErrMalformed = errors.New("malformed response")

const (
	// DefaultEndpoint is the production onboarding API base URL.
	DefaultEndpoint = "https://laracom.brandwik.com/api/v1"

	checkEmailPath     = "/onboard/check-email"
	checkSubdomainPath = "/onboard/check-subdomain"
	leadPath           = "/onboard/lead"
	registerPath       = "/onboard/register"
	createStorePath    = "/customer/store/create"
	storeStatusPath    = "/customer/store/status"
)

// Client talks to the onboarding API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the given API base URL. An empty endpoint
// falls back to the production default.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithHTTPClient creates a client with a custom http.Client (for
// tests that need short timeouts or transport stubs).
func NewClientWithHTTPClient(endpoint string, hc *http.Client) *Client {
	c := NewClient(endpoint)
	c.httpClient = hc
	return c
}

// envelope is the standard response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Availability is the result of a uniqueness check.
type Availability struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// CheckSubdomain asks whether the sanitized subdomain is free.
func (c *Client) CheckSubdomain(ctx context.Context, subdomain string) (*Availability, error) {
	q := url.Values{"subdomain": {subdomain}}
	var out Availability
	if err := c.getJSON(ctx, checkSubdomainPath, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckEmail asks whether the email address is unregistered.
func (c *Client) CheckEmail(ctx context.Context, email string) (*Availability, error) {
	q := url.Values{"email": {email}}
	var out Availability
	if err := c.getJSON(ctx, checkEmailPath, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LeadResult is the server's view of the lead after an upsert.
type LeadResult struct {
	LeadID string
	Fields map[string]any
}

// UpsertLead creates or updates the lead record. The server creates when id
// is empty and updates the same record when it carries the previously
// returned lead id.
func (c *Client) UpsertLead(ctx context.Context, id string, fields map[string]any) (*LeadResult, error) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	if id != "" {
		body["id"] = id
	} else {
		body["id"] = nil
	}

	data, err := c.postJSON(ctx, leadPath, body)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse lead response: %w", err)
		}
	}
	return &LeadResult{LeadID: stringField(raw, "lead_id"), Fields: raw}, nil
}

// Register promotes a lead into a customer account. The returned map carries
// the server's `site` and `customer` sections and is merged into the state
// tree as-is.
func (c *Client) Register(ctx context.Context, leadID, password string) (map[string]any, error) {
	data, err := c.postJSON(ctx, registerPath, map[string]any{
		"lead_id":  leadID,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse register response: %w", err)
	}
	return out, nil
}

// CreateStore triggers asynchronous provisioning for the site and returns the
// server's acknowledgement message.
func (c *Client) CreateStore(ctx context.Context, siteID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+createStorePath,
		bytes.NewReader(mustMarshal(map[string]any{"site_id": siteID})))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	env, httpErr := c.do(req)
	if httpErr != nil {
		return "", httpErr
	}
	if env.Status != "success" {
		return "", fmt.Errorf("store creation rejected: %s", messageOrDefault(env.Message, "unknown error"))
	}
	return env.Message, nil
}

// StoreStatus is the provisioning state of a site.
type StoreStatus struct {
	Status   string   `json:"status"`
	Timeline []string `json:"timeline"`
}

// GetStoreStatus polls the provisioning status for the site.
func (c *Client) GetStoreStatus(ctx context.Context, siteID string) (*StoreStatus, error) {
	q := url.Values{"site_id": {siteID}}
	var out StoreStatus
	if err := c.getJSON(ctx, storeStatusPath, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getJSON performs a GET and decodes the envelope's data section into out.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.endpoint + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	env, err := c.do(req)
	if err != nil {
		return err
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("empty response data: %w", ErrMalformed)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to parse response data: %w", ErrMalformed)
	}
	return nil
}

// postJSON performs a POST and returns the envelope's raw data section.
func (c *Client) postJSON(ctx context.Context, path string, body any) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(mustMarshal(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// do executes the request and rejects transport failures, non-2xx statuses,
// and error envelopes.
func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to parse response: %w", ErrMalformed)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || env.Status == "error" {
		return nil, fmt.Errorf("%s", messageOrDefault(env.Message, "API returned status "+strconv.Itoa(resp.StatusCode)))
	}
	return &env, nil
}

func messageOrDefault(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// Request bodies are maps of JSON-safe values; this cannot fail.
		panic(err)
	}
	return data
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return ""
}

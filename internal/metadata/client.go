package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"metaed/internal/schema"
)

// ServiceError is a non-2xx response from the metadata service. All service
// failures surface through this one type so callers have a single server
// error pathway.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("metadata service error (status %d): %s", e.StatusCode, e.Body)
}

// Client is a client for the metadata service REST API.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a new metadata service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		client:  http.DefaultClient,
	}
}

// schemasResponse is the schema listing envelope.
type schemasResponse struct {
	Namespace string           `json:"namespace"`
	Schemas   []*schema.Schema `json:"schemas"`
}

// recordsResponse is the record listing envelope.
type recordsResponse struct {
	Namespace string    `json:"namespace"`
	Records   []*Record `json:"records"`
}

// GetSchemas fetches every schema defined for a namespace.
func (c *Client) GetSchemas(ctx context.Context, namespace string) ([]*schema.Schema, error) {
	var resp schemasResponse
	if err := c.get(ctx, fmt.Sprintf("%s/api/schema/%s", c.BaseURL, url.PathEscape(namespace)), &resp); err != nil {
		return nil, err
	}
	return resp.Schemas, nil
}

// GetAll fetches every record in a namespace.
func (c *Client) GetAll(ctx context.Context, namespace string) ([]*Record, error) {
	var resp recordsResponse
	if err := c.get(ctx, fmt.Sprintf("%s/api/metadata/%s", c.BaseURL, url.PathEscape(namespace)), &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// Create posts a new record to the namespace and returns the stored record,
// including the name the service assigned.
func (c *Client) Create(ctx context.Context, namespace string, record *Record) (*Record, error) {
	u := fmt.Sprintf("%s/api/metadata/%s", c.BaseURL, url.PathEscape(namespace))
	return c.send(ctx, http.MethodPost, u, record)
}

// Update replaces the named record and returns the stored result.
func (c *Client) Update(ctx context.Context, namespace, name string, record *Record) (*Record, error) {
	u := fmt.Sprintf("%s/api/metadata/%s/%s", c.BaseURL, url.PathEscape(namespace), url.PathEscape(name))
	return c.send(ctx, http.MethodPut, u, record)
}

// Delete removes the named record.
func (c *Client) Delete(ctx context.Context, namespace, name string) error {
	u := fmt.Sprintf("%s/api/metadata/%s/%s", c.BaseURL, url.PathEscape(namespace), url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return serviceError(resp)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return serviceError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, url string, record *Record) (*Record, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serviceError(resp)
	}

	var stored Record
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &stored, nil
}

func serviceError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &ServiceError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(raw))}
}

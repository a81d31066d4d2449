package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Resource names served by the CRM backend.
const (
	ResourceCustomers     = "customers"
	ResourceClusters      = "clusters"
	ResourceLoadshare     = "loadshare"
	ResourceOtherClients  = "other-clients"
	ResourceRecharges     = "recharges"
	ResourceIssues        = "issues"
	ResourceAudit         = "audit"
	ResourceOperators     = "operators"
	ResourceNotifications = "notifications"
	ResourceUsers         = "auth/users"
)

// ResourceClient provides list/detail/delete access to the CRM REST
// collections. Every response is passed through the envelope adapter.
type ResourceClient struct {
	http    *http.Client
	baseURL string
}

// ResourceOptions configures ResourceClient construction.
type ResourceOptions struct {
	HTTPClient *http.Client
}

// ResourceOption mutates ResourceOptions.
type ResourceOption func(*ResourceOptions)

// WithResourceHTTPClient overrides the HTTP client used for resource calls.
func WithResourceHTTPClient(client *http.Client) ResourceOption {
	return func(opts *ResourceOptions) {
		opts.HTTPClient = client
	}
}

// NewResourceClient creates a client for the backend at baseURL.
// http.DefaultClient is used when no client is supplied.
func NewResourceClient(baseURL string, optFns ...ResourceOption) *ResourceClient {
	opts := ResourceOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	return &ResourceClient{
		http:    opts.HTTPClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// List fetches every record of a collection.
func (c *ResourceClient) List(ctx context.Context, resource string) ([]Record, error) {
	body, err := c.do(ctx, http.MethodGet, resource)
	if err != nil {
		return nil, err
	}
	return UnwrapList(body), nil
}

// Get fetches one record by identifier.
func (c *ResourceClient) Get(ctx context.Context, resource, id string) (Record, error) {
	if id == "" {
		return nil, fmt.Errorf("%s: id is required", resource)
	}
	body, err := c.do(ctx, http.MethodGet, resource, id)
	if err != nil {
		return nil, err
	}
	obj := UnwrapObject(body)
	if obj == nil {
		return nil, fmt.Errorf("%s/%s: response holds no record", resource, id)
	}
	return Record(obj), nil
}

// Delete removes one record by identifier.
func (c *ResourceClient) Delete(ctx context.Context, resource, id string) error {
	if id == "" {
		return fmt.Errorf("%s: id is required", resource)
	}
	_, err := c.do(ctx, http.MethodDelete, resource, id)
	return err
}

func (c *ResourceClient) do(ctx context.Context, method, resource string, segments ...string) (any, error) {
	parts := append([]string{strings.Trim(resource, "/")}, segments...)
	for i := 1; i < len(parts); i++ {
		parts[i] = url.PathEscape(parts[i])
	}
	endpoint := c.baseURL + "/" + strings.Join(parts, "/")

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, resource, err)
	}
	defer resp.Body.Close()

	body, readErr := readBody(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: messageOf(body)}
	}
	if readErr != nil {
		return nil, readErr
	}
	return body, nil
}

// Package servicenow provides a read-only client for the ServiceNow Table API.
package servicenow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cragr/snow-incident-agent/internal/config"
	"github.com/cragr/snow-incident-agent/internal/metrics"
	"github.com/cragr/snow-incident-agent/internal/models"
)

// ConnectionConfig identifies a ServiceNow instance and the credentials used
// for a single lookup. It is built from form input and never persisted.
type ConnectionConfig struct {
	InstanceURL string
	Username    string
	Password    string
}

// Complete reports whether every connection field was supplied.
func (c ConnectionConfig) Complete() bool {
	return c.InstanceURL != "" && c.Username != "" && c.Password != ""
}

// Client looks up incidents in the ServiceNow Table API.
type Client struct {
	conn         ConnectionConfig
	endpointPath string
	httpClient   *http.Client
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewClient creates a new ServiceNow API client for one connection.
// The HTTP client keeps the transport defaults; no timeout is configured.
func NewClient(conn ConnectionConfig, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *Client {
	return &Client{
		conn:         conn,
		endpointPath: cfg.ServiceNowEndpointPath,
		httpClient:   &http.Client{},
		metrics:      m,
		logger:       logger,
	}
}

// Fetch queries the incident table for an exact match on number and returns
// the first row. Empty results and non-200 responses are reported in the
// returned LookupResult; the error return is reserved for transport and
// decoding failures.
func (c *Client) Fetch(ctx context.Context, number string) (models.LookupResult, error) {
	endpoint := c.lookupURL(number)

	c.logger.Debug("looking up incident in ServiceNow",
		"incident_number", number,
		"instance_url", c.conn.InstanceURL,
		"username", c.conn.Username,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.LookupResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveServiceNowError()
		return models.LookupResult{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveServiceNowStatus(resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		c.logAPIError(ctx, resp, number)
		return models.Failed(models.NewAPIError(resp.StatusCode)), nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.LookupResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	var listResp models.IncidentListResponse
	if err := json.Unmarshal(respBody, &listResp); err != nil {
		return models.LookupResult{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(listResp.Result) == 0 {
		c.logger.Info("incident not found", "incident_number", number)
		return models.Failed(models.NewNotFoundError()), nil
	}

	return models.Found(listResp.Result[0].Record()), nil
}

// lookupURL builds the filtered, single-row query URL for an incident number.
func (c *Client) lookupURL(number string) string {
	query := url.Values{}
	query.Set("sysparm_query", "number="+number)
	query.Set("sysparm_limit", "1")

	return strings.TrimRight(c.conn.InstanceURL, "/") + c.endpointPath + "?" + query.Encode()
}

// setHeaders sets common headers for ServiceNow API requests.
func (c *Client) setHeaders(req *http.Request) {
	req.SetBasicAuth(c.conn.Username, c.conn.Password)
	req.Header.Set("Accept", "application/json")
}

// logAPIError records a non-200 response from ServiceNow.
func (c *Client) logAPIError(ctx context.Context, resp *http.Response, number string) {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	level := slog.LevelError
	if IsClientError(resp.StatusCode) {
		level = slog.LevelWarn
	}

	c.logger.Log(ctx, level, "ServiceNow API error",
		"incident_number", number,
		"status_code", resp.StatusCode,
		"status_class", statusClass(resp.StatusCode),
		"response", string(body),
	)
}

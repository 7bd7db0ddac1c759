// Package web serves the interactive incident lookup form.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/cragr/snow-incident-agent/internal/agent"
	"github.com/cragr/snow-incident-agent/internal/config"
	"github.com/cragr/snow-incident-agent/internal/incident"
	"github.com/cragr/snow-incident-agent/internal/metrics"
	"github.com/cragr/snow-incident-agent/internal/models"
	"github.com/cragr/snow-incident-agent/internal/servicenow"
)

const (
	missingInputMessage = "Please enter your ServiceNow credentials and an incident ID."
	failureMessage      = "Error while processing request."
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// FetcherFactory builds a lookup client for one set of form credentials.
type FetcherFactory func(conn servicenow.ConnectionConfig) incident.Fetcher

// pageData is the view model for the form page. The password is never echoed.
type pageData struct {
	InstanceURL string
	Username    string
	IncidentID  string

	Info   string
	Output string
	Error  string
	Detail string
}

// Handler serves the lookup form and processes submissions.
type Handler struct {
	runner             agent.Runner
	newFetcher         FetcherFactory
	defaultInstanceURL string
	metrics            *metrics.Metrics
	logger             *slog.Logger
}

// NewHandler creates a new form handler.
func NewHandler(runner agent.Runner, newFetcher FetcherFactory, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		runner:             runner,
		newFetcher:         newFetcher,
		defaultInstanceURL: cfg.ServiceNowDefaultInstanceURL,
		metrics:            m,
		logger:             logger,
	}
}

// ServeHTTP renders the form on GET and runs a lookup on POST.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.render(w, http.StatusOK, pageData{InstanceURL: h.defaultInstanceURL})
	case http.MethodPost:
		h.handleSubmit(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSubmit validates the form and runs one lookup.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse form", "error", err)
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	conn := servicenow.ConnectionConfig{
		InstanceURL: strings.TrimSpace(r.PostFormValue("instance_url")),
		Username:    strings.TrimSpace(r.PostFormValue("username")),
		Password:    r.PostFormValue("password"),
	}
	// The identifier is passed on verbatim; only an empty field counts as missing.
	incidentID := r.PostFormValue("incident_id")

	data := pageData{
		InstanceURL: conn.InstanceURL,
		Username:    conn.Username,
		IncidentID:  incidentID,
	}

	if !conn.Complete() || incidentID == "" {
		h.metrics.ObserveLookup(metrics.OutcomeMissingInput)
		data.Info = missingInputMessage
		h.render(w, http.StatusOK, data)
		return
	}

	logger := h.logger.With(
		"request_id", uuid.NewString(),
		"incident_number", incidentID,
		"instance_url", conn.InstanceURL,
		"username", conn.Username,
	)
	logger.Info("processing incident lookup")

	output, outcome, err := h.runQuery(r.Context(), conn, incidentID)
	if err != nil {
		h.metrics.ObserveLookup(metrics.OutcomeFailed)
		logger.Error("incident lookup failed", "error", err)
		data.Error = failureMessage
		data.Detail = err.Error()
		h.render(w, http.StatusInternalServerError, data)
		return
	}

	h.metrics.ObserveLookup(outcome)
	logger.Info("incident lookup completed", "outcome", outcome)

	data.Output = output
	h.render(w, http.StatusOK, data)
}

// runQuery hands the incident number to the runner with the lookup tool as
// its only capability and reports the outcome of the underlying fetch.
func (h *Handler) runQuery(ctx context.Context, conn servicenow.ConnectionConfig, incidentID string) (string, string, error) {
	fetcher := &outcomeFetcher{inner: h.newFetcher(conn), outcome: metrics.OutcomeNoLookup}
	tools := []agent.Tool{incident.NewLookupTool(fetcher)}

	output, err := h.runner.Run(ctx, incidentID, tools)
	if err != nil {
		return "", "", err
	}
	return output, fetcher.outcome, nil
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("failed to render page", "error", err)
	}
}

// outcomeFetcher remembers how the most recent fetch ended.
type outcomeFetcher struct {
	inner   incident.Fetcher
	outcome string
}

func (f *outcomeFetcher) Fetch(ctx context.Context, number string) (models.LookupResult, error) {
	result, err := f.inner.Fetch(ctx, number)
	switch {
	case err != nil:
		f.outcome = metrics.OutcomeFailed
	case result.OK():
		f.outcome = metrics.OutcomeFound
	case result.Failure != nil && result.Failure.Kind == models.NotFound:
		f.outcome = metrics.OutcomeNotFound
	default:
		f.outcome = metrics.OutcomeAPIError
	}
	return result, err
}

// Package metrics defines the Prometheus counters exported on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes recorded by ObserveLookup.
const (
	OutcomeFound        = "found"
	OutcomeNotFound     = "not_found"
	OutcomeAPIError     = "api_error"
	OutcomeFailed       = "failed"
	OutcomeMissingInput = "missing_input"
	OutcomeNoLookup     = "no_lookup"
)

// Metrics groups the application counters. A nil *Metrics records nothing.
type Metrics struct {
	lookups            *prometheus.CounterVec
	serviceNowRequests *prometheus.CounterVec
	completionRequests *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snowagent_lookups_total",
				Help: "Total number of incident lookups submitted through the form",
			},
			[]string{"outcome"},
		),
		serviceNowRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snowagent_servicenow_requests_total",
				Help: "Total number of requests to ServiceNow",
			},
			[]string{"status"},
		),
		completionRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snowagent_completion_requests_total",
				Help: "Total number of requests to the completion service",
			},
			[]string{"provider", "status"},
		),
	}

	reg.MustRegister(m.lookups, m.serviceNowRequests, m.completionRequests)
	return m
}

// ObserveLookup counts one form submission by outcome.
func (m *Metrics) ObserveLookup(outcome string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(outcome).Inc()
}

// ObserveServiceNowStatus counts one ServiceNow response by status code.
func (m *Metrics) ObserveServiceNowStatus(statusCode int) {
	if m == nil {
		return
	}
	m.serviceNowRequests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// ObserveServiceNowError counts one ServiceNow request that got no response.
func (m *Metrics) ObserveServiceNowError() {
	if m == nil {
		return
	}
	m.serviceNowRequests.WithLabelValues("error").Inc()
}

// ObserveCompletion counts one completion request.
func (m *Metrics) ObserveCompletion(provider string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.completionRequests.WithLabelValues(provider, status).Inc()
}

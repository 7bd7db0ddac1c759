package servicenow

import "net/http"

// IsClientError checks if the status code indicates a client error (4xx).
func IsClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// IsServerError checks if the status code indicates a server error (5xx).
func IsServerError(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError
}

// statusClass returns a coarse label for a response status used in log lines.
func statusClass(statusCode int) string {
	switch {
	case IsServerError(statusCode):
		return "server_error"
	case IsClientError(statusCode):
		return "client_error"
	default:
		return "unexpected"
	}
}

// Package models holds the ServiceNow wire types and the lookup result types.
package models

import "fmt"

// IncidentRecord is the normalized view of one incident. State and priority
// are the raw codes from ServiceNow and UpdatedAt is the raw timestamp.
type IncidentRecord struct {
	Number           string
	ShortDescription string
	State            string
	Priority         string
	AssignedTo       string
	UpdatedAt        string
}

// LookupErrorKind distinguishes the expected failure outcomes of a lookup.
type LookupErrorKind int

const (
	// NotFound means the query succeeded but returned no rows.
	NotFound LookupErrorKind = iota + 1
	// APIError means ServiceNow answered with a non-200 status.
	APIError
)

// LookupError is an expected, user-facing lookup failure.
type LookupError struct {
	Kind       LookupErrorKind
	StatusCode int
	Message    string
}

func (e *LookupError) Error() string {
	return e.Message
}

// NewNotFoundError returns the error for an empty result list.
func NewNotFoundError() *LookupError {
	return &LookupError{Kind: NotFound, Message: "Incident not found"}
}

// NewAPIError returns the error for a non-200 response.
func NewAPIError(statusCode int) *LookupError {
	return &LookupError{
		Kind:       APIError,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("API Error: %d", statusCode),
	}
}

// LookupResult holds exactly one of Record or Failure.
type LookupResult struct {
	Record  *IncidentRecord
	Failure *LookupError
}

// Found wraps a successful lookup.
func Found(record IncidentRecord) LookupResult {
	return LookupResult{Record: &record}
}

// Failed wraps an expected lookup failure.
func Failed(err *LookupError) LookupResult {
	return LookupResult{Failure: err}
}

// OK reports whether the lookup produced a record.
func (r LookupResult) OK() bool {
	return r.Record != nil
}

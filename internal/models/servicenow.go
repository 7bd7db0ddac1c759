package models

import (
	"bytes"
	"encoding/json"
)

// NotAvailable is shown for an assignee the remote system did not resolve.
const NotAvailable = "N/A"

// IncidentListResponse represents the response from ServiceNow Table API for list queries.
type IncidentListResponse struct {
	Result []IncidentRow `json:"result"`
}

// IncidentRow represents a single incident record as returned by the Table API.
type IncidentRow struct {
	Number           string    `json:"number"`
	ShortDescription string    `json:"short_description"`
	State            string    `json:"state"`
	Priority         string    `json:"priority"`
	AssignedTo       Reference `json:"assigned_to"`
	UpdatedOn        string    `json:"sys_updated_on"`
}

// Reference is a reference field that ServiceNow returns either as an object
// carrying a display_value or as a plain string. It is normalized to a single
// display string while decoding.
type Reference struct {
	Display string
}

// UnmarshalJSON accepts {"display_value": "..."}, "..." and null. Any other
// shape leaves the reference empty so it renders as NotAvailable.
func (r *Reference) UnmarshalJSON(data []byte) error {
	r.Display = ""

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			DisplayValue any `json:"display_value"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if display, ok := obj.DisplayValue.(string); ok {
			r.Display = display
		}
		return nil
	case '"':
		return json.Unmarshal(data, &r.Display)
	default:
		return nil
	}
}

// String returns the display value, or NotAvailable when none was present.
func (r Reference) String() string {
	if r.Display == "" {
		return NotAvailable
	}
	return r.Display
}

// Record converts the wire row into the normalized IncidentRecord.
func (row IncidentRow) Record() IncidentRecord {
	return IncidentRecord{
		Number:           row.Number,
		ShortDescription: row.ShortDescription,
		State:            row.State,
		Priority:         row.Priority,
		AssignedTo:       row.AssignedTo.String(),
		UpdatedAt:        row.UpdatedOn,
	}
}

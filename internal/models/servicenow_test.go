package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "object with display value", input: `{"assigned_to":{"display_value":"Alice"}}`, expected: "Alice"},
		{name: "plain string", input: `{"assigned_to":"Alice"}`, expected: "Alice"},
		{name: "null", input: `{"assigned_to":null}`, expected: NotAvailable},
		{name: "absent", input: `{}`, expected: NotAvailable},
		{name: "empty string", input: `{"assigned_to":""}`, expected: NotAvailable},
		{name: "object without display value", input: `{"assigned_to":{"link":"https://x/api","value":"abc"}}`, expected: NotAvailable},
		{name: "object with empty display value", input: `{"assigned_to":{"display_value":""}}`, expected: NotAvailable},
		{name: "object with numeric display value", input: `{"assigned_to":{"display_value":7}}`, expected: NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row IncidentRow
			require.NoError(t, json.Unmarshal([]byte(tt.input), &row))
			assert.Equal(t, tt.expected, row.AssignedTo.String())
		})
	}
}

func TestReference_UnmarshalJSON_UnexpectedShapes(t *testing.T) {
	for _, input := range []string{`42`, `true`, `["Alice"]`} {
		t.Run(input, func(t *testing.T) {
			var row IncidentRow
			body := `{"number":"INC1","assigned_to":` + input + `}`

			require.NoError(t, json.Unmarshal([]byte(body), &row))
			assert.Equal(t, NotAvailable, row.AssignedTo.String())
			assert.Equal(t, "INC1", row.Number)
		})
	}
}

func TestIncidentRow_Record(t *testing.T) {
	var resp IncidentListResponse
	body := `{"result":[{"number":"INC0010001","short_description":"VPN down","state":"2","priority":"1","assigned_to":{"display_value":"Bob"},"sys_updated_on":"2024-01-01 10:00:00"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.Equal(t, IncidentRecord{
		Number:           "INC0010001",
		ShortDescription: "VPN down",
		State:            "2",
		Priority:         "1",
		AssignedTo:       "Bob",
		UpdatedAt:        "2024-01-01 10:00:00",
	}, resp.Result[0].Record())
}

func TestLookupResult_ExactlyOne(t *testing.T) {
	found := Found(IncidentRecord{Number: "INC1"})
	assert.True(t, found.OK())
	assert.Nil(t, found.Failure)

	failed := Failed(NewAPIError(500))
	assert.False(t, failed.OK())
	require.NotNil(t, failed.Failure)
	assert.Equal(t, "API Error: 500", failed.Failure.Error())
	assert.Equal(t, APIError, failed.Failure.Kind)
	assert.Equal(t, 500, failed.Failure.StatusCode)

	assert.Equal(t, "Incident not found", NewNotFoundError().Error())
	assert.Equal(t, NotFound, NewNotFoundError().Kind)
}

package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTool_FunctionName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "ServiceNow Incident Lookup", expected: "servicenow_incident_lookup"},
		{name: "  lookup  ", expected: "lookup"},
		{name: "get-status v2", expected: "get-status_v2"},
		{name: "Ünïcode Tool", expected: "n_code_tool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tool{Name: tt.name}.FunctionName())
		})
	}
}

func TestTool_Definition(t *testing.T) {
	tool := Tool{
		Name:             "ServiceNow Incident Lookup",
		Description:      "Gets incident status from ServiceNow by incident number",
		InputName:        "incident_number",
		InputDescription: "Incident number such as INC0010001",
	}

	def := tool.Definition()

	assert.Equal(t, "servicenow_incident_lookup", def.Name)
	assert.Equal(t, "Gets incident status from ServiceNow by incident number", def.Description)
	assert.Equal(t, []string{"incident_number"}, def.Parameters["required"])
	assert.Contains(t, def.Parameters["properties"], "incident_number")
}

func TestTool_ParseInput(t *testing.T) {
	tool := Tool{InputName: "incident_number"}

	assert.Equal(t, "INC0010001", tool.ParseInput(`{"incident_number":"INC0010001"}`))
	assert.Equal(t, " INC0010001 ", tool.ParseInput(`{"incident_number":" INC0010001 "}`))
	assert.Equal(t, "INC0010001", tool.ParseInput(`"INC0010001"`))
	assert.Equal(t, "INC0010001", tool.ParseInput(`INC0010001`))
	assert.Equal(t, "", tool.ParseInput(`{"number":"INC0010001"}`))
	assert.Equal(t, "", tool.ParseInput(``))
	assert.Equal(t, "INC1", Tool{}.ParseInput(`{"input":"INC1"}`))
}

// Package incident turns ServiceNow lookups into the text shown to users and
// exposes the lookup as an agent tool.
package incident

import (
	"fmt"

	"github.com/cragr/snow-incident-agent/internal/models"
)

// Render formats a lookup result. A record renders as six labelled lines,
// a failure as a single line.
func Render(result models.LookupResult) string {
	if result.Failure != nil {
		return RenderError(result.Failure)
	}
	if result.Record == nil {
		return RenderError(&models.LookupError{Message: "Empty lookup result"})
	}
	return RenderRecord(*result.Record)
}

// RenderRecord formats a found incident.
func RenderRecord(r models.IncidentRecord) string {
	assignedTo := r.AssignedTo
	if assignedTo == "" {
		assignedTo = models.NotAvailable
	}
	return fmt.Sprintf(
		"📄 Incident: %s\n"+
			"📝 Description: %s\n"+
			"📌 State: %s\n"+
			"⚠️ Priority: %s\n"+
			"👤 Assigned To: %s\n"+
			"🕒 Last Updated: %s",
		r.Number, r.ShortDescription, r.State, r.Priority, assignedTo, r.UpdatedAt,
	)
}

// RenderError formats an expected lookup failure.
func RenderError(err *models.LookupError) string {
	return "❌ " + err.Message
}

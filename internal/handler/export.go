// Package handler: export.go implements GET /api/export.
// Returns the caller's itinerary as a flat table, one row per activity.
// Supports ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "destination", "country", "start_date", "end_date", "status",
	"budget_amount", "budget_currency",
	"activity_name", "activity_date", "activity_location", "activity_notes",
}

// ExportRow is the JSON shape of one export row.
type ExportRow struct {
	TripID           string            `json:"tripId"`
	Destination      string            `json:"destination"`
	Country          string            `json:"country"`
	StartDate        time.Time         `json:"startDate"`
	EndDate          time.Time         `json:"endDate"`
	Status           domain.TripStatus `json:"status"`
	Budget           domain.Budget     `json:"budget"`
	ActivityName     *string           `json:"activityName,omitempty"`
	ActivityDate     *time.Time        `json:"activityDate,omitempty"`
	ActivityLocation *string           `json:"activityLocation,omitempty"`
	ActivityNotes    *string           `json:"activityNotes,omitempty"`
}

// GetExport handles GET /api/export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid format parameter")
		return
	}

	rows, err := s.export.Export(r.Context(), owner)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}

	if format != nil && *format == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the JSON response shape.
func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRow{
			TripID:           r.TripID,
			Destination:      r.Destination,
			Country:          r.Country,
			StartDate:        r.StartDate,
			EndDate:          r.EndDate,
			Status:           r.Status,
			Budget:           r.Budget,
			ActivityName:     nilIfEmpty(r.ActivityName),
			ActivityDate:     r.ActivityDate,
			ActivityLocation: nilIfEmpty(r.ActivityLocation),
			ActivityNotes:    nilIfEmpty(r.ActivityNotes),
		})
	}
	return out
}

// writeCSV encodes domain rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(csvRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// csvRecord flattens a row. Nil times are encoded as empty strings.
func csvRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.Destination,
		r.Country,
		r.StartDate.UTC().Format(time.RFC3339),
		r.EndDate.UTC().Format(time.RFC3339),
		string(r.Status),
		strconv.FormatFloat(r.Budget.Amount, 'f', -1, 64),
		r.Budget.Currency,
		r.ActivityName,
		formatOptionalTime(r.ActivityDate),
		r.ActivityLocation,
		r.ActivityNotes,
	}
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// nilIfEmpty converts an empty string to a nil pointer so optional JSON
// fields are omitted rather than sent as "".
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// errBadBody means the body was not a JSON object at all. Field-level type
// problems are collected in TripPatch.Rejected instead.
var errBadBody = errors.New("request body must be a JSON object")

// dateLayouts are the ISO-8601 string forms accepted for date-like fields,
// tried in order. Strings without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// decodeTripPatch reads a create or update body into a presence-aware patch.
// Only keys present in the body are marked Set. Store-managed keys (id,
// userId, createdAt, updatedAt) and unknown keys are ignored.
//
// Date-like fields are normalized here: an ISO-8601 string or a number of
// epoch milliseconds becomes a UTC time, while null and "" mean no date.
//
// Members of the wrong type do not fail the call. They are collected in
// TripPatch.Rejected so the service can report them alongside the rule
// violations of the rest of the payload. The only error returned is for a
// body that cannot be read or is not a JSON object.
func decodeTripPatch(r *http.Request) (domain.TripPatch, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return domain.TripPatch{}, err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil || members == nil {
		return domain.TripPatch{}, errBadBody
	}

	d := &payloadDecoder{errs: domain.NewValidationError()}
	var p domain.TripPatch

	if raw, ok := members["destination"]; ok {
		p.Destination = domain.Some(d.str("destination", raw))
	}
	if raw, ok := members["country"]; ok {
		p.Country = domain.Some(d.str("country", raw))
	}
	if raw, ok := members["startDate"]; ok {
		p.StartDate = domain.Some(d.requiredDate("startDate", raw))
	}
	if raw, ok := members["endDate"]; ok {
		p.EndDate = domain.Some(d.requiredDate("endDate", raw))
	}
	if raw, ok := members["description"]; ok {
		p.Description = domain.Some(d.str("description", raw))
	}
	if raw, ok := members["image"]; ok {
		p.Image = domain.Some(d.str("image", raw))
	}
	if raw, ok := members["status"]; ok {
		p.Status = domain.Some(domain.TripStatus(d.str("status", raw)))
	}
	if raw, ok := members["budget"]; ok {
		p.Budget = domain.Some(d.budget(raw))
	}
	if raw, ok := members["activities"]; ok {
		p.Activities = domain.Some(d.activities(raw))
	}
	if raw, ok := members["accommodation"]; ok {
		p.Accommodation = domain.Some(d.accommodation(raw))
	}
	if raw, ok := members["transportation"]; ok {
		p.Transportation = domain.Some(d.transportation(raw))
	}

	if !d.errs.Empty() {
		p.Rejected = d.errs.Fields
	}
	return p, nil
}

// payloadDecoder converts raw JSON members to Go values, recording a
// field-keyed error for every member of the wrong type.
type payloadDecoder struct {
	errs *domain.ValidationError
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// str decodes a string member. null decodes to "".
func (d *payloadDecoder) str(path string, raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		d.errs.Add(path, path+" must be a string")
		return ""
	}
	return s
}

// object decodes an object member. ok is false for null and for values of
// the wrong type (the latter also records an error).
func (d *payloadDecoder) object(path string, raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if isNull(raw) {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		d.errs.Add(path, path+" must be an object")
		return nil, false
	}
	return m, true
}

// date decodes a date-like member into a normalized time, or nil when the
// member is null or an empty string.
func (d *payloadDecoder) date(path string, raw json.RawMessage) *time.Time {
	if isNull(raw) {
		return nil
	}
	t, err := parseDateLike(raw)
	if err != nil {
		d.errs.Add(path, path+" must be an ISO-8601 date or epoch milliseconds")
		return nil
	}
	return t
}

// requiredDate is date for fields whose absence the validator rejects:
// a missing value is returned as the zero time.
func (d *payloadDecoder) requiredDate(path string, raw json.RawMessage) time.Time {
	if t := d.date(path, raw); t != nil {
		return *t
	}
	return time.Time{}
}

func (d *payloadDecoder) budget(raw json.RawMessage) domain.Budget {
	m, ok := d.object("budget", raw)
	if !ok {
		return domain.Budget{}
	}

	var b domain.Budget
	if amount, present := m["amount"]; present && !isNull(amount) {
		if err := json.Unmarshal(amount, &b.Amount); err != nil {
			d.errs.Add("budget.amount", "budget.amount must be a number")
		}
	} else {
		d.errs.Add("budget.amount", "budget.amount is required")
	}
	b.Currency = d.str("budget.currency", m["currency"])
	return b
}

func (d *payloadDecoder) activities(raw json.RawMessage) []domain.Activity {
	if isNull(raw) {
		return []domain.Activity{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.errs.Add("activities", "activities must be an array")
		return nil
	}

	out := make([]domain.Activity, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("activities[%d]", i)
		m, ok := d.object(path, item)
		if !ok {
			// A null entry still occupies its slot so later indexes line up.
			out = append(out, domain.Activity{})
			continue
		}
		out = append(out, domain.Activity{
			Name:     d.str(path+".name", m["name"]),
			Date:     d.requiredDate(path+".date", m["date"]),
			Location: d.str(path+".location", m["location"]),
			Notes:    d.str(path+".notes", m["notes"]),
		})
	}
	return out
}

func (d *payloadDecoder) accommodation(raw json.RawMessage) *domain.Accommodation {
	m, ok := d.object("accommodation", raw)
	if !ok {
		return nil
	}
	return &domain.Accommodation{
		Name:             d.str("accommodation.name", m["name"]),
		Address:          d.str("accommodation.address", m["address"]),
		CheckIn:          d.date("accommodation.checkIn", m["checkIn"]),
		CheckOut:         d.date("accommodation.checkOut", m["checkOut"]),
		BookingReference: d.str("accommodation.bookingReference", m["bookingReference"]),
	}
}

func (d *payloadDecoder) transportation(raw json.RawMessage) *domain.Transportation {
	m, ok := d.object("transportation", raw)
	if !ok {
		return nil
	}
	return &domain.Transportation{
		Type:             d.str("transportation.type", m["type"]),
		BookingReference: d.str("transportation.bookingReference", m["bookingReference"]),
		DepartureTime:    d.date("transportation.departureTime", m["departureTime"]),
		ArrivalTime:      d.date("transportation.arrivalTime", m["arrivalTime"]),
		Notes:            d.str("transportation.notes", m["notes"]),
	}
}

// parseDateLike normalizes the wire forms of a date: a JSON string in one
// of dateLayouts, or a JSON number of whole milliseconds since the Unix
// epoch. An empty string yields nil. Times outside years 0 to 9999 are
// rejected because they have no RFC 3339 form to be written back in.
func parseDateLike(raw json.RawMessage) (*time.Time, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return inRange(t.UTC())
			}
		}
		return nil, fmt.Errorf("unrecognized date %q", s)
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return nil, err
	}
	ms, err := epochMillis(num)
	if err != nil {
		return nil, err
	}
	return inRange(time.UnixMilli(ms).UTC())
}

// epochMillis accepts integers, including exponent forms such as 1.7172e12,
// and rejects fractions and values that do not fit in an int64.
func epochMillis(num json.Number) (int64, error) {
	if n, err := num.Int64(); err == nil {
		return n, nil
	}
	f, err := num.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("epoch milliseconds %s is not a whole int64", num)
	}
	return int64(f), nil
}

func inRange(t time.Time) (*time.Time, error) {
	if y := t.Year(); y < 0 || y > 9999 {
		return nil, fmt.Errorf("year %d outside 0-9999", y)
	}
	return &t, nil
}

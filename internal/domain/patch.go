package domain

import "time"

// Optional is one field of a partial payload. Set reports whether the key
// was present at all; Value may legitimately be the zero value.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// TripPatch is a create or update payload after wire decoding and date
// normalization. Only fields with Set are applied.
//
// Nested sub-documents are replaced wholesale, never merged field by field:
// supplying {"budget":{"amount":5}} replaces the whole budget. A set
// Accommodation or Transportation holding nil clears it.
type TripPatch struct {
	Destination    Optional[string]
	Country        Optional[string]
	StartDate      Optional[time.Time]
	EndDate        Optional[time.Time]
	Description    Optional[string]
	Image          Optional[string]
	Status         Optional[TripStatus]
	Budget         Optional[Budget]
	Activities     Optional[[]Activity]
	Accommodation  Optional[*Accommodation]
	Transportation Optional[*Transportation]

	// Rejected holds field-keyed messages for keys that were present but
	// could not be decoded, such as a number where a string belongs. Those
	// keys are still marked Set with a zero Value. A patch with rejections
	// is never persisted; they are reported together with any rule
	// violations of the rest of the payload.
	Rejected map[string]string
}

// Fields returns the wire names of every supplied top-level key.
func (p TripPatch) Fields() map[string]bool {
	set := make(map[string]bool)
	mark := func(name string, ok bool) {
		if ok {
			set[name] = true
		}
	}
	mark("destination", p.Destination.Set)
	mark("country", p.Country.Set)
	mark("startDate", p.StartDate.Set)
	mark("endDate", p.EndDate.Set)
	mark("description", p.Description.Set)
	mark("image", p.Image.Set)
	mark("status", p.Status.Set)
	mark("budget", p.Budget.Set)
	mark("activities", p.Activities.Set)
	mark("accommodation", p.Accommodation.Set)
	mark("transportation", p.Transportation.Set)
	return set
}

// Apply returns a copy of t with every set field of p replacing the stored
// value. Identity, owner and timestamps are never touched.
func (t Trip) Apply(p TripPatch) Trip {
	if p.Destination.Set {
		t.Destination = p.Destination.Value
	}
	if p.Country.Set {
		t.Country = p.Country.Value
	}
	if p.StartDate.Set {
		t.StartDate = p.StartDate.Value
	}
	if p.EndDate.Set {
		t.EndDate = p.EndDate.Value
	}
	if p.Description.Set {
		t.Description = p.Description.Value
	}
	if p.Image.Set {
		t.Image = p.Image.Value
	}
	if p.Status.Set {
		t.Status = p.Status.Value
	}
	if p.Budget.Set {
		t.Budget = p.Budget.Value
	}
	if p.Activities.Set {
		t.Activities = p.Activities.Value
		if t.Activities == nil {
			t.Activities = []Activity{}
		}
	}
	if p.Accommodation.Set {
		t.Accommodation = p.Accommodation.Value
	}
	if p.Transportation.Set {
		t.Transportation = p.Transportation.Value
	}
	return t
}

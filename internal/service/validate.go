package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// tripValidator checks domain.Trip against the validate struct tags declared
// on the domain types. Field paths are reported with their JSON names.
type tripValidator struct {
	v *validator.Validate
}

func newTripValidator() *tripValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &tripValidator{v: v}
}

// validate runs every rule against trip and returns the field-keyed
// failures. When only is non-nil, failures are kept only for paths whose
// top-level key is in only; that is how a partial update ignores fields it
// did not supply.
//
// Rules:
//   - destination, country, startDate, endDate are required
//   - endDate must not be before startDate (reported on endDate)
//   - budget.amount >= 0 and budget.currency is required
//   - status is one of the four lifecycle values
//   - every activity has a name, date and location
func (tv *tripValidator) validate(trip domain.Trip, only map[string]bool) *domain.ValidationError {
	verr := domain.NewValidationError()

	if err := tv.v.Struct(trip); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			// InvalidValidationError only happens on programmer error.
			panic(fmt.Sprintf("service: validate trip: %v", err))
		}
		for _, fe := range fieldErrs {
			path := fieldPath(fe)
			if only != nil && !only[rootKey(path)] {
				continue
			}
			verr.Add(path, fieldMessage(path, fe))
		}
	}

	datesSupplied := only == nil || only["startDate"] || only["endDate"]
	if datesSupplied && !trip.StartDate.IsZero() && !trip.EndDate.IsZero() && trip.StartDate.After(trip.EndDate) {
		verr.Add("endDate", "endDate must not be before startDate")
	}

	return verr
}

// fieldPath strips the root struct name from the validator namespace:
// "Trip.activities[0].name" becomes "activities[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// rootKey returns the top-level wire key of a field path.
func rootKey(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

func fieldMessage(path string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", path, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", path, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return path + " must be a valid URL"
	default:
		return fmt.Sprintf("%s is invalid (%s)", path, fe.Tag())
	}
}

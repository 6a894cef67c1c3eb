// Package domain contains the core data types for the Trip Planner application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, client).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip as chosen by its owner.
type TripStatus string

const (
	StatusPlanned   TripStatus = "planned"
	StatusOngoing   TripStatus = "ongoing"
	StatusCompleted TripStatus = "completed"
	StatusCancelled TripStatus = "cancelled"
)

// Trip is the root document: one planned journey owned by a single identity.
// Budget, Activities, Accommodation and Transportation are embedded
// sub-documents; they have no identity of their own.
//
// The json tags are the wire format of the REST API and the storage format
// of the JSONB sub-document columns.
type Trip struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        string          `json:"userId" validate:"required"`
	Destination    string          `json:"destination" validate:"required"`
	Country        string          `json:"country" validate:"required"`
	StartDate      time.Time       `json:"startDate" validate:"required"`
	EndDate        time.Time       `json:"endDate" validate:"required"`
	Description    string          `json:"description"`
	Image          string          `json:"image,omitempty" validate:"omitempty,url"`
	Status         TripStatus      `json:"status" validate:"required,oneof=planned ongoing completed cancelled"`
	Budget         Budget          `json:"budget"`
	Activities     []Activity      `json:"activities" validate:"dive"`
	Accommodation  *Accommodation  `json:"accommodation"`
	Transportation *Transportation `json:"transportation"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Budget is the planned spend for a trip. Zero is a valid amount.
type Budget struct {
	Amount   float64 `json:"amount" validate:"gte=0"`
	Currency string  `json:"currency" validate:"required"`
}

// Activity is one planned event. Activities keep the order the owner gave
// them; they are displayed in that order and never sorted by date.
type Activity struct {
	Name     string    `json:"name" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	Location string    `json:"location" validate:"required"`
	Notes    string    `json:"notes,omitempty"`
}

// Accommodation is where the traveller stays. Every field is optional.
type Accommodation struct {
	Name             string     `json:"name,omitempty"`
	Address          string     `json:"address,omitempty"`
	CheckIn          *time.Time `json:"checkIn"`
	CheckOut         *time.Time `json:"checkOut"`
	BookingReference string     `json:"bookingReference,omitempty"`
}

// Transportation describes how the traveller gets there. Every field is optional.
type Transportation struct {
	Type             string     `json:"type,omitempty"`
	BookingReference string     `json:"bookingReference,omitempty"`
	DepartureTime    *time.Time `json:"departureTime"`
	ArrivalTime      *time.Time `json:"arrivalTime"`
	Notes            string     `json:"notes,omitempty"`
}

// NewTrip returns the defaults every trip starts from before a create
// payload is applied.
func NewTrip(ownerID string) Trip {
	return Trip{
		OwnerID:    ownerID,
		Status:     StatusPlanned,
		Activities: []Activity{},
	}
}

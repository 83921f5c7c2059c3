package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/pet-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventOwnerCreated   EventType = "owner_created"
	EventOwnerUpdated   EventType = "owner_updated"
	EventOwnerDeleted   EventType = "owner_deleted"
	EventPetCreated     EventType = "pet_created"
	EventPetUpdated     EventType = "pet_updated"
	EventPetDeleted     EventType = "pet_deleted"
)

// AllEventTypes lists every event the services publish.
var AllEventTypes = []EventType{
	EventUserRegistered,
	EventOwnerCreated,
	EventOwnerUpdated,
	EventOwnerDeleted,
	EventPetCreated,
	EventPetUpdated,
	EventPetDeleted,
}

// AffectsStatistics reports whether the event changes registry counts.
func (t EventType) AffectsStatistics() bool {
	return t != EventUserRegistered
}

// Actor identifies who triggered an event. Empty for anonymous callers.
type Actor struct {
	Subject string `json:"subject,omitempty"`
	UserID  string `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ResourceID string    `json:"resource_id"`
	Actor      Actor     `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, resourceID string, actor Actor, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	OwnerID  string `json:"owner_id,omitempty"`
}

// OwnerPayload payload for owner lifecycle events.
type OwnerPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// PetPayload payload for pet lifecycle events.
type PetPayload struct {
	OwnerID         string         `json:"owner_id"`
	PreviousOwnerID string         `json:"previous_owner_id,omitempty"`
	Name            string         `json:"name"`
	Type            domain.PetType `json:"type"`
}

package models

import (
	"fmt"
	"time"
)

type ListingAction string

const (
	ListingCreated ListingAction = "created"
	ListingUpdated ListingAction = "updated"
	ListingDeleted ListingAction = "deleted"
)

// ListingEvent is published after a venue, artist or show change has been
// committed.
type ListingEvent struct {
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	ID         int64     `json:"id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewListingEvent builds an event such as "venue.created".
func NewListingEvent(entity string, action ListingAction, id int64, name string, at time.Time) ListingEvent {
	return ListingEvent{
		Type:       fmt.Sprintf("%s.%s", entity, action),
		Entity:     entity,
		ID:         id,
		Name:       name,
		OccurredAt: at.UTC(),
	}
}

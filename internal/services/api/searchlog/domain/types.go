// Package domain holds the search event log types and ports
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is one executed search as written to the event log
type Event struct {
	ID        uuid.UUID
	At        time.Time
	Term      string
	Page      int
	Total     int
	Elapsed   time.Duration
	Outcome   string
	RequestID string
}

// TopInput selects the window and size of the popular terms report
type TopInput struct {
	Hours int `query:"hours,lenient" validate:"omitempty,min=1,max=720" example:"24"`
	Limit int `query:"limit,lenient" validate:"omitempty,min=1,max=100" example:"10"`
}

// TopTerm is one row of the popular terms report
type TopTerm struct {
	Term     string    `json:"term" example:"neko"`
	Searches uint64    `json:"searches" example:"42"`
	LastSeen time.Time `json:"last_seen"`
}

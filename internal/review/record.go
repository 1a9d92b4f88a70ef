package review

import (
	"time"

	"github.com/google/uuid"
)

// Status is the review outcome stored in the Status column. The persisted
// strings contain spaces, so the constants carry the literal values.
type Status string

const (
	StatusCleared        Status = "Cleared"
	StatusNotCleared     Status = "Not Cleared"
	StatusGradingPending Status = "Grading Pending"
)

// Record is one student row of the record store.
type Record struct {
	StudentCode string
	AuthCode    string
	ResumeLink  string
	Status      Status
	Feedback    string
}

// Update holds the three columns a resubmission is allowed to overwrite.
type Update struct {
	ResumeLink string
	Status     Status
	Feedback   string
}

// StatusView is what a student gets back from a status lookup.
type StatusView struct {
	ResumeLink string
	Status     Status
	Feedback   string
}

// Receipt is returned from a successful resubmission.
type Receipt struct {
	Message string
	EventID uuid.UUID
	Backend string
}

// Resubmission describes an accepted resume resubmission.
type Resubmission struct {
	ID           uuid.UUID `json:"id"`
	StudentCode  string    `json:"student_code"`
	PreviousLink string    `json:"previous_link"`
	NewLink      string    `json:"new_link"`
	Feedback     string    `json:"feedback"`
	Backend      string    `json:"backend"`
	At           time.Time `json:"at"`
}

package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StatusPending is the only status the system assigns on its own; updates
// overwrite it with whatever string the caller sends.
const StatusPending = "pending"

var ErrNotFound = errors.New("application not found")

type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	Email       string    `json:"email"`
	LinkedinUrl string    `json:"linkedinUrl"`
	ResumePath  string    `json:"resumePath,omitempty"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// New builds a pending application. The jobId is stored as an opaque string
// and deliberately not checked against the jobs table.
func New(jobID, email, linkedinUrl, resumePath string) Application {
	return Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		Email:       email,
		LinkedinUrl: linkedinUrl,
		ResumePath:  resumePath,
		Status:      StatusPending,
		SubmittedAt: time.Now().UTC(),
	}
}

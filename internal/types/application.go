// Package types provides type definitions for the records exchanged by the application tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Status is the pipeline stage of an application. Any status may move to any other.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Statuses lists the recognized application statuses in pipeline order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Job types accepted for Application.JobType.
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeInternship = "Internship"
)

// Interview types accepted for Interview.Type.
const (
	InterviewPhone      = "Phone"
	InterviewVideo      = "Video"
	InterviewOnsite     = "Onsite"
	InterviewTechnical  = "Technical"
	InterviewBehavioral = "Behavioral"
)

// Application is one tracked job opportunity owned by a single user.
type Application struct {
	ID          int64      `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Company     string     `json:"company"`
	Role        string     `json:"role"`
	Location    *string    `json:"location"`
	JobType     *string    `json:"jobType"`
	Status      Status     `json:"status"`
	DateApplied *time.Time `json:"dateApplied"`
	Link        *string    `json:"link"`
	SalaryMin   *int64     `json:"salaryMin"`
	SalaryMax   *int64     `json:"salaryMax"`
	Description *string    `json:"description"`
	Notes       *string    `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Interview is a scheduled or past interview for one application.
// It has no owner of its own; ownership is that of the parent application.
type Interview struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"applicationId"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	Location      *string   `json:"location"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ApplicationWithInterviews is an application together with its interviews ordered by date.
type ApplicationWithInterviews struct {
	Application
	Interviews []Interview `json:"interviews"`
}

// Stats holds per-status application counts for one user.
type Stats struct {
	Total        int `json:"total"`
	Applied      int `json:"applied"`
	Interviewing int `json:"interviewing"`
	Offered      int `json:"offered"`
	Rejected     int `json:"rejected"`
}

// ComputeStats folds a user's applications into per-status counts.
// Total is always len(apps); an application with an unrecognized status only counts toward Total.
func ComputeStats(apps []Application) Stats {
	stats := Stats{Total: len(apps)}
	for _, app := range apps {
		switch app.Status {
		case StatusApplied:
			stats.Applied++
		case StatusInterview:
			stats.Interviewing++
		case StatusOffer:
			stats.Offered++
		case StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

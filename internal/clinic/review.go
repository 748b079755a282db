package clinic

import (
	"fmt"
	"strings"
	"time"
)

const (
	minRating     = 1
	maxRating     = 5
	minCommentLen = 5
	maxCommentLen = 1000
)

// Review is patient feedback on a doctor.
type Review struct {
	ID           string
	PatientName  string
	DoctorName   string
	Rating       int
	Comment      string
	IsAnonymous  bool
	CreatedAt    time.Time
	HelpfulCount int
}

// NewReview builds a review with a fresh ID and timestamp.
func NewReview(patientName, doctorName string, rating int, comment string, anonymous bool) Review {
	return Review{
		ID:          NewID(),
		PatientName: patientName,
		DoctorName:  doctorName,
		Rating:      rating,
		Comment:     strings.TrimSpace(comment),
		IsAnonymous: anonymous,
		CreatedAt:   time.Now(),
	}
}

// Validate checks rating and comment constraints.
func (r *Review) Validate() error {
	if r.Rating < minRating || r.Rating > maxRating {
		return fmt.Errorf("clinic: rating must be between %d and %d", minRating, maxRating)
	}
	comment := strings.TrimSpace(r.Comment)
	if comment == "" {
		return fmt.Errorf("clinic: comment cannot be empty")
	}
	if len(comment) < minCommentLen || len(comment) > maxCommentLen {
		return fmt.Errorf("clinic: comment must be %d-%d characters", minCommentLen, maxCommentLen)
	}
	if strings.TrimSpace(r.PatientName) == "" || strings.TrimSpace(r.DoctorName) == "" {
		return fmt.Errorf("clinic: reviewer and doctor names are required")
	}
	return nil
}

// Reviewer returns the display name, hiding it for anonymous reviews.
func (r *Review) Reviewer() string {
	if r.IsAnonymous {
		return "Anonymous"
	}
	return r.PatientName
}

// MarkHelpful increments and returns the helpful counter.
func (r *Review) MarkHelpful() int {
	r.HelpfulCount++
	return r.HelpfulCount
}

func (r *Review) String() string {
	comment := r.Comment
	if len(comment) > 50 {
		comment = comment[:50] + "..."
	}
	return fmt.Sprintf("%d/5 by %s: %s", r.Rating, r.Reviewer(), comment)
}

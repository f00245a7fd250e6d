package types

import "time"

// Division identifies the organizational division an event belongs to.
type Division string

const (
	DivisionLnT Division = "LnT"
	DivisionEEO Division = "EEO"
	DivisionPR  Division = "PR"
	DivisionHRD Division = "HRD"
	DivisionRnD Division = "RnD"
)

// FeedbackStatus tracks where a feedback entry sits in the review workflow.
type FeedbackStatus string

const (
	FeedbackStatusOpen     FeedbackStatus = "open"
	FeedbackStatusInReview FeedbackStatus = "in-review"
	FeedbackStatusResolved FeedbackStatus = "resolved"
)

// Feedback represents a feedback entry stored in the database.
// Status is nil until a reviewer sets it via an update.
type Feedback struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	EventName  string          `json:"eventName"`
	Division   Division        `json:"division"`
	Rating     int             `json:"rating"`
	Comment    *string         `json:"comment"`
	Suggestion *string         `json:"suggestion"`
	Status     *FeedbackStatus `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// FeedbackCreate represents the request body for submitting feedback.
// Status is intentionally absent: new entries start without one.
type FeedbackCreate struct {
	Name       string  `json:"name" binding:"required,min=1,max=50"`
	Email      string  `json:"email" binding:"required,email,max=50"`
	EventName  string  `json:"eventName" binding:"required,min=1,max=50"`
	Division   string  `json:"division" binding:"required,oneof=LnT EEO PR HRD RnD"`
	Rating     int     `json:"rating" binding:"required,min=1,max=5"`
	Comment    *string `json:"comment"`
	Suggestion *string `json:"suggestion"`
}

// FeedbackUpdate represents the request body for replacing a feedback entry.
// Every field is re-validated; the record is replaced wholesale, not patched.
type FeedbackUpdate struct {
	Name       string  `json:"name" binding:"required,min=1,max=50"`
	Email      string  `json:"email" binding:"required,email,max=50"`
	EventName  string  `json:"eventName" binding:"required,min=1,max=50"`
	Division   string  `json:"division" binding:"required,oneof=LnT EEO PR HRD RnD"`
	Rating     int     `json:"rating" binding:"required,min=1,max=5"`
	Comment    *string `json:"comment"`
	Suggestion *string `json:"suggestion"`
	Status     *string `json:"status" binding:"omitempty,oneof=open in-review resolved"`
}

// Record builds the storable entity from a create request.
func (r *FeedbackCreate) Record() *Feedback {
	return &Feedback{
		Name:       r.Name,
		Email:      r.Email,
		EventName:  r.EventName,
		Division:   Division(r.Division),
		Rating:     r.Rating,
		Comment:    r.Comment,
		Suggestion: r.Suggestion,
	}
}

// Record builds the storable entity from an update request.
func (r *FeedbackUpdate) Record() *Feedback {
	fb := &Feedback{
		Name:       r.Name,
		Email:      r.Email,
		EventName:  r.EventName,
		Division:   Division(r.Division),
		Rating:     r.Rating,
		Comment:    r.Comment,
		Suggestion: r.Suggestion,
	}
	if r.Status != nil {
		status := FeedbackStatus(*r.Status)
		fb.Status = &status
	}
	return fb
}

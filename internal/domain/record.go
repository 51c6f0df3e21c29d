package domain

import "time"

// PlanRecord is a generated plan kept in local history together with the
// options and outcome of the request that produced it.
type PlanRecord struct {
	ID            string
	ShortID       string
	Options       PlanOptions
	Source        PlanSource
	FailureCode   string
	FailureReason string
	Model         string
	MimeType      string
	ImageSHA256   string
	Plan          WoodworkingPlan
	CreatedAt     time.Time
}

// DisplayID returns the short ID, or the first 8 characters of the ID.
func (r *PlanRecord) DisplayID() string {
	if r.ShortID != "" {
		return r.ShortID
	}
	if len(r.ID) >= 8 {
		return r.ID[:8]
	}
	return r.ID
}

// IsFallback reports whether the plan was produced without the AI service.
func (r *PlanRecord) IsFallback() bool {
	return r.Source == SourceFallback
}

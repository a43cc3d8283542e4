package domain

import "time"

// DefaultVisibilityDelay is how long a candidate sees the placeholder status.
const DefaultVisibilityDelay = 48 * time.Hour

// PlaceholderStatus is shown to the candidate before the decision is revealed.
const PlaceholderStatus = StatusUnderReview

type StatusView struct {
	Status    ShortlistStatus `json:"status"`
	Revealed  bool            `json:"revealed"`
	VisibleAt time.Time       `json:"visibleAt"`
}

// CandidateView returns what the candidate may see at now.
func CandidateView(r *EvaluationResult, now time.Time) StatusView {
	if now.Before(r.VisibleAt) {
		return StatusView{Status: PlaceholderStatus, VisibleAt: r.VisibleAt}
	}
	return StatusView{Status: r.InternalStatus, Revealed: true, VisibleAt: r.VisibleAt}
}

// OrganizationView always exposes the internal status.
func OrganizationView(r *EvaluationResult) StatusView {
	return StatusView{Status: r.InternalStatus, Revealed: true, VisibleAt: r.VisibleAt}
}

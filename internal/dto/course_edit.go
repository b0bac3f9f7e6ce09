package dto

// ── Course edit DTOs ──

// EditStatus is the outcome of a course edit.
type EditStatus string

const (
	EditApplied                 EditStatus = "applied"
	EditPendingDecision         EditStatus = "pending_decision"
	EditAppliedWithStaleClasses EditStatus = "applied_with_stale_classes"
	EditAppliedClassesCleared   EditStatus = "applied_classes_cleared"
	EditAborted                 EditStatus = "aborted"
)

// Resolutions accepted for a pending day change.
const (
	ResolutionKeep      = "keep"
	ResolutionDeleteAll = "delete_all"
	ResolutionCancel    = "cancel"
)

// CourseEditResponse describes what an edit did, or what it is waiting for.
// Token, OriginalDay, NewDay and AffectedClasses are set while a decision is
// pending.
type CourseEditResponse struct {
	Status          EditStatus      `json:"status"`
	Course          *CourseResponse `json:"course,omitempty"`
	Token           string          `json:"token,omitempty"`
	OriginalDay     string          `json:"original_day,omitempty"`
	NewDay          string          `json:"new_day,omitempty"`
	AffectedClasses int             `json:"affected_classes,omitempty"`
	ClassesDeleted  int64           `json:"classes_deleted,omitempty"`
}

// ResolveCourseEditRequest answers a pending day change.
type ResolveCourseEditRequest struct {
	Resolution string `json:"resolution" binding:"required,oneof=keep delete_all cancel"`
}

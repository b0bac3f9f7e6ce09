package dto

// ── Sync DTOs ──

// SyncPayload is the full-dataset upload body. Field names follow the
// remote server's camelCase contract.
type SyncPayload struct {
	Courses []SyncCourse `json:"courses"`
	Classes []SyncClass  `json:"classes"`
}

// SyncCourse is one course in the upload.
type SyncCourse struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	DayOfWeek   string  `json:"dayOfWeek"`
	TimeOfDay   string  `json:"timeOfDay"`
	Duration    int     `json:"duration"`
	Capacity    int     `json:"capacity"`
	Price       any     `json:"price"` // float64, or a "%.2f" string for servers that expect one
	Description *string `json:"description"`
}

// SyncClass is one class in the upload.
type SyncClass struct {
	ID       int64   `json:"id"`
	CourseID int64   `json:"courseId"`
	Date     string  `json:"date"`
	Teacher  string  `json:"teacher"`
	Comments *string `json:"comments"`
}

// SyncResultResponse reports a successful upload.
type SyncResultResponse struct {
	Message string `json:"message"`
	Courses int    `json:"courses"`
	Classes int    `json:"classes"`
}

// SyncAcceptedResponse acknowledges a background upload.
type SyncAcceptedResponse struct {
	Status string `json:"status"`
}

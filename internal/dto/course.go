package dto

// ── Course DTOs ──

// CourseRequest is the full course form. Updates replace every field.
type CourseRequest struct {
	Type        string   `json:"type"        binding:"required,max=100"`
	DayOfWeek   string   `json:"day_of_week" binding:"required"`
	TimeOfDay   string   `json:"time_of_day" binding:"required"`
	Duration    int      `json:"duration"`
	Capacity    int      `json:"capacity"`
	Price       *float64 `json:"price"       binding:"required"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
}

// CourseResponse is a stored course.
type CourseResponse struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	DayOfWeek   string  `json:"day_of_week"`
	TimeOfDay   string  `json:"time_of_day"`
	Duration    int     `json:"duration"`
	Capacity    int     `json:"capacity"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

// DeleteCourseResponse reports what a cascade delete removed.
type DeleteCourseResponse struct {
	CourseID       int64 `json:"course_id"`
	ClassesRemoved int   `json:"classes_removed"`
}

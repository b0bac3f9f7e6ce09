package dto

// ── Search DTOs ──

// TeacherSearchRequest is a teacher-name substring query.
type TeacherSearchRequest struct {
	Q string `form:"q"`
}

// DateSearchRequest is an exact class-date query.
type DateSearchRequest struct {
	Date string `form:"date" binding:"required"`
}

// DaySearchRequest is a course weekday query.
type DaySearchRequest struct {
	Day string `form:"day" binding:"required"`
}

// SearchResultResponse is one class joined with its course.
type SearchResultResponse struct {
	ClassID     int64  `json:"class_id"`
	CourseID    int64  `json:"course_id"`
	CourseType  string `json:"course_type"`
	ClassDate   string `json:"class_date"`
	TeacherName string `json:"teacher_name"`
	CourseTime  string `json:"course_time"`
	CourseDay   string `json:"course_day"`
}

package dto

// ── Class DTOs ──

// ClassRequest is the class form. The owning course comes from the path on
// create and from the stored class on update.
type ClassRequest struct {
	Date     string  `json:"date"     binding:"required"`
	Teacher  string  `json:"teacher"  binding:"required,max=100"`
	Comments *string `json:"comments" binding:"omitempty,max=1000"`
}

// ClassResponse is a stored class.
type ClassResponse struct {
	ID       int64   `json:"id"`
	CourseID int64   `json:"course_id"`
	Date     string  `json:"date"`
	Teacher  string  `json:"teacher"`
	Comments *string `json:"comments"`
}

// ClassDatesRequest asks for the next valid dates of a course.
type ClassDatesRequest struct {
	From  string `form:"from"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=52"`
}

// GetLimit returns the limit with its default.
func (r *ClassDatesRequest) GetLimit() int {
	if r.Limit <= 0 {
		return 8
	}
	return r.Limit
}

// ClassDatesResponse lists dates a class of the course may be scheduled on.
type ClassDatesResponse struct {
	CourseID  int64    `json:"course_id"`
	DayOfWeek string   `json:"day_of_week"`
	Dates     []string `json:"dates"`
}

// ValidateClassDateRequest carries the candidate date.
type ValidateClassDateRequest struct {
	Date string `form:"date" binding:"required"`
}

// ValidateClassDateResponse is the date-validity verdict.
type ValidateClassDateResponse struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Valid     bool   `json:"valid"`
}

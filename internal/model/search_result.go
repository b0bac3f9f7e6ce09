package model

// SearchResult is a class joined with its parent course.
type SearchResult struct {
	ClassID     int64  `gorm:"column:class_id"`
	CourseID    int64  `gorm:"column:course_id"`
	CourseType  string `gorm:"column:course_type"`
	ClassDate   string `gorm:"column:class_date"`
	TeacherName string `gorm:"column:teacher_name"`
	CourseTime  string `gorm:"column:course_time"`
	CourseDay   string `gorm:"column:course_day"`
}

package model

// Class is one dated occurrence of a course. Table: classes.
type Class struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CourseID int64   `gorm:"column:course_id;not null"          json:"course_id"`
	Date     string  `gorm:"column:date;not null"               json:"date"` // ClassDateLayout
	Teacher  string  `gorm:"column:teacher;not null"            json:"teacher"`
	Comments *string `gorm:"column:comments"                    json:"comments,omitempty"`
}

// TableName names the table.
func (Class) TableName() string { return "classes" }

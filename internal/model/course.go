package model

// Course is a recurring weekly offering. Table: courses.
type Course struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Type        string  `gorm:"column:type;not null"               json:"type"`
	DayOfWeek   string  `gorm:"column:day_of_week;not null"        json:"day_of_week"`
	TimeOfDay   string  `gorm:"column:time_of_day;not null"        json:"time_of_day"`
	Duration    int     `gorm:"column:duration;not null"           json:"duration"` // minutes
	Capacity    int     `gorm:"column:capacity;not null"           json:"capacity"`
	Price       float64 `gorm:"column:price;not null"              json:"price"`
	Description *string `gorm:"column:description"                 json:"description,omitempty"`
}

// TableName names the table.
func (Course) TableName() string { return "courses" }

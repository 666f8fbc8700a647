package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Published   bool     `gorm:"default:false;index" json:"published"`
	Modules     []Module `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

package model

// Module groups the lessons of a course and owns at most one project.
// Order must be unique within a course; the content service enforces this
// on create/update because soft deletes defeat a plain unique index.
type Module struct {
	BaseModel
	CourseID    uint     `gorm:"index;not null" json:"courseId"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Order       int      `gorm:"column:sort_order;default:0" json:"order"`
	Lessons     []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
	Project     *Project `gorm:"foreignKey:ModuleID" json:"project,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

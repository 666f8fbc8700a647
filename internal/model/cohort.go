package model

import "time"

// Cohort is a named, time-boxed group of students enrolled together.
type Cohort struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	CourseID  uint      `gorm:"index;not null" json:"courseId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Students  []User    `gorm:"foreignKey:CohortID" json:"students,omitempty"`
}

func (Cohort) TableName() string {
	return "cohorts"
}

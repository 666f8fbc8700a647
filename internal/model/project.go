package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type RubricItem struct {
	Criterion   string `json:"criterion"`
	Points      int    `json:"points"`
	Description string `json:"description,omitempty"`
}

type Rubric []RubricItem

func (r Rubric) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	return string(b), err
}

func (r *Rubric) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		*r = nil
		return nil
	}
	return errors.New("unsupported type for Rubric")
}

// Project is the capstone of a module, gated behind completion of every
// lesson in that module.
type Project struct {
	BaseModel
	ModuleID       uint       `gorm:"uniqueIndex;not null" json:"moduleId"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Requirements   StringList `gorm:"type:text" json:"requirements"`
	Deliverables   StringList `gorm:"type:text" json:"deliverables"`
	Rubric         Rubric     `gorm:"type:text" json:"rubric"`
	EstimatedHours int        `gorm:"default:0" json:"estimatedHours"`
	GithubRequired bool       `gorm:"default:false" json:"githubRequired"`
}

func (Project) TableName() string {
	return "projects"
}

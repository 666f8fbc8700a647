package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

const DefaultPassingScore = 70

type Quiz struct {
	BaseModel
	LessonID     uint           `gorm:"uniqueIndex;not null" json:"lessonId"`
	PassingScore int            `gorm:"default:70" json:"passingScore"`
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// StringList stores a JSON array of strings in a single text column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	}
	return errors.New("unsupported type for StringList")
}

type QuizQuestion struct {
	BaseModel
	QuizID        uint       `gorm:"index;not null" json:"quizId"`
	Order         int        `gorm:"column:sort_order;default:0" json:"order"`
	Prompt        string     `gorm:"type:text;not null" json:"prompt"`
	Options       StringList `gorm:"type:text;not null" json:"options"`
	CorrectOption int        `gorm:"not null" json:"-"`
	Explanation   string     `gorm:"type:text" json:"explanation,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

package model

// Activity is a free-text practical exercise attached to a lesson. Word
// count bounds apply to the student's submission when set.
type Activity struct {
	BaseModel
	LessonID     uint   `gorm:"uniqueIndex;not null" json:"lessonId"`
	Instructions string `gorm:"type:text;not null" json:"instructions"`
	MinWords     *int   `json:"minWords,omitempty"`
	MaxWords     *int   `json:"maxWords,omitempty"`
}

func (Activity) TableName() string {
	return "activities"
}

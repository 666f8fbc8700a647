package model

type LessonType string

const (
	LessonTheory   LessonType = "theory"
	LessonVideo    LessonType = "video"
	LessonReading  LessonType = "reading"
	LessonQuiz     LessonType = "quiz"
	LessonActivity LessonType = "activity"
)

// Lesson is a tagged union: Type selects which payload is meaningful.
// theory/reading carry Body, video carries VideoURL, quiz and activity
// carry their sub-documents. The content service rejects mismatches so a
// quiz lesson without a Quiz payload never reaches the store.
type Lesson struct {
	BaseModel
	ModuleID      uint       `gorm:"index;not null" json:"moduleId"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Order         int        `gorm:"column:sort_order;default:0" json:"order"`
	Type          LessonType `gorm:"type:enum('theory','video','reading','quiz','activity');not null" json:"type"`
	Body          string     `gorm:"type:longtext" json:"body,omitempty"`
	VideoURL      string     `gorm:"size:512" json:"videoUrl,omitempty"`
	VideoDuration float64    `gorm:"default:0" json:"videoDuration,omitempty"`
	Quiz          *Quiz      `gorm:"foreignKey:LessonID" json:"quiz,omitempty"`
	Activity      *Activity  `gorm:"foreignKey:LessonID" json:"activity,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// HasPayloadFor reports whether the lesson carries the payload its type
// demands.
func (l *Lesson) HasPayloadFor(t LessonType) bool {
	switch t {
	case LessonTheory, LessonReading:
		return l.Body != ""
	case LessonVideo:
		return l.VideoURL != ""
	case LessonQuiz:
		return l.Quiz != nil && len(l.Quiz.Questions) > 0
	case LessonActivity:
		return l.Activity != nil && l.Activity.Instructions != ""
	}
	return false
}

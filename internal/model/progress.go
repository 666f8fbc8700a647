package model

import "time"

// Progress is the single live record per (student, course). OverallProgress
// is a cache of the derived percentage, refreshed transactionally whenever
// a lesson is newly completed; reads never mutate it.
type Progress struct {
	BaseModel
	UserID          uint      `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID        uint      `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
	OverallProgress int       `gorm:"default:0" json:"overallProgress"`
	StartedAt       time.Time `json:"startedAt"`
	LastActivityAt  time.Time `json:"lastActivityAt"`
}

func (Progress) TableName() string {
	return "progress"
}

// LessonCompletion is one element of the completed-lesson set.
type LessonCompletion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProgressID  uint      `gorm:"uniqueIndex:idx_progress_lesson;not null" json:"progressId"`
	LessonID    uint      `gorm:"uniqueIndex:idx_progress_lesson;not null" json:"lessonId"`
	CompletedAt time.Time `json:"completedAt"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}

// ProjectCompletion is one element of the completed-project set, added when
// an instructor approves a project submission.
type ProjectCompletion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProgressID  uint      `gorm:"uniqueIndex:idx_progress_project;not null" json:"progressId"`
	ProjectID   uint      `gorm:"uniqueIndex:idx_progress_project;not null" json:"projectId"`
	CompletedAt time.Time `json:"completedAt"`
}

func (ProjectCompletion) TableName() string {
	return "project_completions"
}

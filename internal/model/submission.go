package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionInReview SubmissionStatus = "in_review"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Terminal reports whether the status can never change again. A rejected
// submission stays rejected; resubmission is a brand-new record.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionApproved || s == SubmissionRejected
}

type SubmissionKind string

const (
	TargetProject SubmissionKind = "project"
	TargetLesson  SubmissionKind = "lesson"
)

// Submission is a student's attempt at a project, or at a lesson's quiz or
// activity. TargetKind tells which of ProjectID/LessonID is populated;
// exactly one must be set.
type Submission struct {
	BaseModel
	UserID        uint             `gorm:"index;not null" json:"userId"`
	TargetKind    SubmissionKind   `gorm:"type:enum('project','lesson');not null" json:"targetKind"`
	ProjectID     *uint            `gorm:"index" json:"projectId,omitempty"`
	LessonID      *uint            `gorm:"index" json:"lessonId,omitempty"`
	Status        SubmissionStatus `gorm:"type:enum('pending','in_review','approved','rejected');default:'pending';index" json:"status"`
	GithubURL     string           `gorm:"size:512" json:"githubUrl,omitempty"`
	Content       string           `gorm:"type:longtext" json:"content,omitempty"`
	AttachmentURL string           `gorm:"size:512" json:"attachmentUrl,omitempty"`
	Feedback      string           `gorm:"type:text" json:"feedback,omitempty"`
	Grade         *int             `json:"grade,omitempty"`
	ReviewedBy    *uint            `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time       `json:"reviewedAt,omitempty"`
	SubmittedAt   time.Time        `gorm:"index;not null" json:"submittedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

var errSubmissionTarget = errors.New("submission must reference exactly one of project or lesson")

func (s *Submission) BeforeSave(tx *gorm.DB) error {
	switch s.TargetKind {
	case TargetProject:
		if s.ProjectID == nil || s.LessonID != nil {
			return errSubmissionTarget
		}
	case TargetLesson:
		if s.LessonID == nil || s.ProjectID != nil {
			return errSubmissionTarget
		}
	default:
		return errSubmissionTarget
	}
	return nil
}

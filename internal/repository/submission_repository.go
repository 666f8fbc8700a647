package repository

import (
	"bootcamp_lms_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) ByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	if err := r.DB.First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// SaveReview writes the review fields of one submission row. Concurrent
// reviews of the same row serialize on the row lock; last writer wins.
func (r *SubmissionRepository) SaveReview(submission *model.Submission) error {
	return r.DB.Model(&model.Submission{}).
		Where("id = ?", submission.ID).
		Updates(map[string]interface{}{
			"status":      submission.Status,
			"feedback":    submission.Feedback,
			"grade":       submission.Grade,
			"reviewed_by": submission.ReviewedBy,
			"reviewed_at": submission.ReviewedAt,
		}).Error
}

// ListForProject returns a student's full submission history for a project,
// newest first.
func (r *SubmissionRepository) ListForProject(userID, projectID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// CurrentForProject is the one submission that counts for unlock/progress:
// the most recent by submitted_at.
func (r *SubmissionRepository) CurrentForProject(userID, projectID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Order("submitted_at DESC").
		First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) ListQueue(status, kind string, page, limit int) ([]model.Submission, int64, error) {
	var submissions []model.Submission
	var total int64

	query := r.DB.Model(&model.Submission{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if kind != "" {
		query = query.Where("target_kind = ?", kind)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("submitted_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}

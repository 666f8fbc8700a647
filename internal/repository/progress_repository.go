package repository

import (
	"bootcamp_lms_backend/internal/model"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Get returns the live progress record for (user, course), or nil when the
// student has not started the course. Reads never create.
func (r *ProgressRepository) Get(userID, courseID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetOrCreate enforces at most one record per (user, course) through the
// composite unique index.
func (r *ProgressRepository) GetOrCreate(userID, courseID uint) (*model.Progress, error) {
	now := time.Now()
	progress := model.Progress{
		UserID:         userID,
		CourseID:       courseID,
		StartedAt:      now,
		LastActivityAt: now,
	}
	err := r.DB.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		FirstOrCreate(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) CompletedLessonIDs(progressID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("progress_id = ?", progressID).
		Pluck("lesson_id", &ids).Error
	return ids, err
}

func (r *ProgressRepository) CompletedProjectIDs(progressID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.ProjectCompletion{}).
		Where("progress_id = ?", progressID).
		Pluck("project_id", &ids).Error
	return ids, err
}

// AddLessonCompletion records the completion and refreshes the cached
// percentage in one transaction, so a follow-up read observes both.
func (r *ProgressRepository) AddLessonCompletion(progressID, lessonID uint, overall int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		completion := model.LessonCompletion{
			ProgressID:  progressID,
			LessonID:    lessonID,
			CompletedAt: time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&completion).Error; err != nil {
			return err
		}
		return tx.Model(&model.Progress{}).Where("id = ?", progressID).
			Updates(map[string]interface{}{
				"overall_progress": overall,
				"last_activity_at": time.Now(),
			}).Error
	})
}

// AddProjectCompletion is an idempotent set add; approving the same
// submission twice credits the project once.
func (r *ProgressRepository) AddProjectCompletion(progressID, projectID uint) error {
	completion := model.ProjectCompletion{
		ProgressID:  progressID,
		ProjectID:   projectID,
		CompletedAt: time.Now(),
	}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&completion).Error
}

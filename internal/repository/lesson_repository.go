package repository

import (
	"bootcamp_lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

// Create persists the lesson with whatever payload it carries in one
// transaction; gorm cascades the Quiz/Activity associations.
func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(lesson).Error
}

func (r *LessonRepository) ByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.
		Preload("Quiz.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.sort_order")
		}).
		Preload("Activity").
		First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) IDsForModule(moduleID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Lesson{}).
		Where("module_id = ?", moduleID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *LessonRepository) IDsForCourse(courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ? AND modules.deleted_at IS NULL", courseID).
		Pluck("lessons.id", &ids).Error
	return ids, err
}

func (r *LessonRepository) OrderTaken(moduleID uint, order int, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Lesson{}).
		Where("module_id = ? AND sort_order = ?", moduleID, order)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Replace rewrites the lesson row and swaps its quiz/activity payload in one
// transaction. The lesson keeps its id, so completion rows referencing it
// stay valid across edits.
func (r *LessonRepository) Replace(lesson *model.Lesson) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteLessonPayloads(tx, []uint{lesson.ID}); err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(lesson).Error
	})
}

// Delete removes the lesson together with its quiz/activity payload. The
// store does not cascade this on its own.
func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteLessonPayloads(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&model.Lesson{}, id).Error
	})
}

func deleteLessonPayloads(tx *gorm.DB, lessonIDs []uint) error {
	var quizIDs []uint
	if err := tx.Model(&model.Quiz{}).Where("lesson_id IN ?", lessonIDs).
		Pluck("id", &quizIDs).Error; err != nil {
		return err
	}
	if len(quizIDs) > 0 {
		if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", quizIDs).Delete(&model.Quiz{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.Activity{}).Error
}

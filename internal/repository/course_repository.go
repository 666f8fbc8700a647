package repository

import (
	"bootcamp_lms_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// ByID loads the full course tree: ordered modules, ordered lessons with
// their payloads, and each module's project.
func (r *CourseRepository) ByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("modules.sort_order")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.sort_order")
		}).
		Preload("Modules.Lessons.Quiz.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.sort_order")
		}).
		Preload("Modules.Lessons.Activity").
		Preload("Modules.Project").
		First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) List(publishedOnly bool) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.Order("id")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	err := query.Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

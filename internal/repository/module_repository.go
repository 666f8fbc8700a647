package repository

import (
	"bootcamp_lms_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) Update(module *model.Module) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) ByID(id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.sort_order")
		}).
		Preload("Project").
		First(&module, id).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// OrderTaken reports whether another live module of the course already uses
// this order value.
func (r *ModuleRepository) OrderTaken(courseID uint, order int, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Module{}).
		Where("course_id = ? AND sort_order = ?", courseID, order)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the module and everything under it: lessons with their
// quiz/activity payloads, and the module's project.
func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).Where("module_id = ?", id).
			Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := deleteLessonPayloads(tx, lessonIDs); err != nil {
				return err
			}
			if err := tx.Where("module_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("module_id = ?", id).Delete(&model.Project{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Module{}, id).Error
	})
}

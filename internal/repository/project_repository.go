package repository

import (
	"bootcamp_lms_backend/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(project *model.Project) error {
	return r.DB.Create(project).Error
}

func (r *ProjectRepository) Update(project *model.Project) error {
	return r.DB.Save(project).Error
}

func (r *ProjectRepository) ByID(id uint) (*model.Project, error) {
	var project model.Project
	if err := r.DB.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) ByModuleID(moduleID uint) (*model.Project, error) {
	var project model.Project
	if err := r.DB.Where("module_id = ?", moduleID).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Project{}, id).Error
}

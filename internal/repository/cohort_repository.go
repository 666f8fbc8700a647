package repository

import (
	"bootcamp_lms_backend/internal/model"

	"gorm.io/gorm"
)

type CohortRepository struct {
	DB *gorm.DB
}

func NewCohortRepository(db *gorm.DB) *CohortRepository {
	return &CohortRepository{DB: db}
}

func (r *CohortRepository) Create(cohort *model.Cohort) error {
	return r.DB.Create(cohort).Error
}

func (r *CohortRepository) Update(cohort *model.Cohort) error {
	return r.DB.Save(cohort).Error
}

func (r *CohortRepository) ByID(id uint) (*model.Cohort, error) {
	var cohort model.Cohort
	if err := r.DB.First(&cohort, id).Error; err != nil {
		return nil, err
	}
	return &cohort, nil
}

func (r *CohortRepository) List() ([]model.Cohort, error) {
	var cohorts []model.Cohort
	err := r.DB.Order("start_date DESC").Find(&cohorts).Error
	return cohorts, err
}

func (r *CohortRepository) Students(cohortID uint) ([]model.User, error) {
	var students []model.User
	err := r.DB.
		Where("cohort_id = ? AND role = ?", cohortID, model.Student).
		Order("name").
		Find(&students).Error
	return students, err
}

func (r *CohortRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("cohort_id = ?", id).
			Update("cohort_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Cohort{}, id).Error
	})
}

package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/repository"
	"bootcamp_lms_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type CohortService struct {
	cohorts  *repository.CohortRepository
	progress *ProgressService
}

func NewCohortService(cohorts *repository.CohortRepository, progress *ProgressService) *CohortService {
	return &CohortService{cohorts: cohorts, progress: progress}
}

type CohortRequest struct {
	Name      string    `json:"name" binding:"required"`
	CourseID  uint      `json:"courseId" binding:"required"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (s *CohortService) Create(req CohortRequest) (*model.Cohort, error) {
	cohort := &model.Cohort{
		Name:      req.Name,
		CourseID:  req.CourseID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.cohorts.Create(cohort); err != nil {
		return nil, err
	}
	return cohort, nil
}

func (s *CohortService) Update(id uint, req CohortRequest) (*model.Cohort, error) {
	cohort, err := s.byID(id)
	if err != nil {
		return nil, err
	}

	cohort.Name = req.Name
	cohort.CourseID = req.CourseID
	cohort.StartDate = req.StartDate
	cohort.EndDate = req.EndDate
	if err := s.cohorts.Update(cohort); err != nil {
		return nil, err
	}
	return cohort, nil
}

func (s *CohortService) Delete(id uint) error {
	if _, err := s.byID(id); err != nil {
		return err
	}
	return s.cohorts.Delete(id)
}

func (s *CohortService) List() ([]model.Cohort, error) {
	return s.cohorts.List()
}

func (s *CohortService) byID(id uint) (*model.Cohort, error) {
	cohort, err := s.cohorts.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCohortNotFound
		}
		return nil, err
	}
	return cohort, nil
}

type StudentProgress struct {
	UserID          uint   `json:"userId"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	OverallProgress int    `json:"overallProgress"`
}

// ProgressOverview gives instructors one row per student with the overall
// percentage for the cohort's course.
func (s *CohortService) ProgressOverview(cohortID uint) ([]StudentProgress, error) {
	cohort, err := s.byID(cohortID)
	if err != nil {
		return nil, err
	}

	students, err := s.cohorts.Students(cohortID)
	if err != nil {
		return nil, err
	}

	overview := make([]StudentProgress, 0, len(students))
	for _, student := range students {
		progress, err := s.progress.Overall(student.ID, cohort.CourseID)
		if err != nil {
			return nil, err
		}
		overview = append(overview, StudentProgress{
			UserID:          student.ID,
			Name:            student.Name,
			Email:           student.Email,
			OverallProgress: progress.OverallProgress,
		})
	}
	return overview, nil
}

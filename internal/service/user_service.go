package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/repository"
	"bootcamp_lms_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type UserService struct {
	users   *repository.UserRepository
	cohorts *repository.CohortRepository
}

func NewUserService(users *repository.UserRepository, cohorts *repository.CohortRepository) *UserService {
	return &UserService{users: users, cohorts: cohorts}
}

func (s *UserService) List(role string, page, limit int) ([]model.User, int64, error) {
	return s.users.List(role, page, limit)
}

type UserAdminRequest struct {
	Role     model.UserRole `json:"role"`
	CohortID *uint          `json:"cohortId"`
	Disabled *bool          `json:"disabled"`
}

// AdminUpdate changes role, cohort membership and the disabled flag. The
// fields are applied only when present in the request.
func (s *UserService) AdminUpdate(userID uint, req UserAdminRequest) (*model.User, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if req.Role != "" {
		switch req.Role {
		case model.Student, model.Instructor, model.Admin:
			user.Role = req.Role
		default:
			return nil, util.NewValidationError("role", "unknown role")
		}
	}
	if req.CohortID != nil {
		if *req.CohortID == 0 {
			user.CohortID = nil
		} else {
			if _, err := s.cohorts.ByID(*req.CohortID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, util.ErrCohortNotFound
				}
				return nil, err
			}
			user.CohortID = req.CohortID
		}
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

package database

import (
	"bootcamp_lms_backend/internal/model"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminName     = "Administrator"
	defaultAdminEmail    = "admin@bootcamp.local"
	defaultAdminPassword = "change-me-on-first-login"
)

// Seed fills an empty installation with a usable starting point: an admin
// account and an unpublished starter course shell. It is a no-op as soon as
// any user exists, so it never touches live data.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin, err := defaultAdmin()
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		return tx.Create(starterCourse()).Error
	})
	if err != nil {
		return err
	}

	log.Printf("Seeded default admin %s and starter course", admin.Email)
	return nil
}

// defaultAdmin builds the bootstrap admin. Credentials come from
// LMS_ADMIN_EMAIL / LMS_ADMIN_PASSWORD when set; the fallback password is a
// placeholder meant to be rotated right after the first login.
func defaultAdmin() (*model.User, error) {
	email := os.Getenv("LMS_ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("LMS_ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &model.User{
		Name:     defaultAdminName,
		Email:    email,
		Password: string(hashed),
		Role:     model.Admin,
	}, nil
}

// starterCourse is an unpublished shell for admins to flesh out; students
// never see it until it is published.
func starterCourse() *model.Course {
	return &model.Course{
		Title:       "Getting Started",
		Description: "A starter course shell. Rename it, add modules and lessons, then publish.",
		Published:   false,
		Modules: []model.Module{
			{
				Title:       "Orientation",
				Description: "How the bootcamp works.",
				Order:       1,
				Lessons: []model.Lesson{
					{
						Title: "Welcome",
						Order: 1,
						Type:  model.LessonTheory,
						Body:  "Welcome aboard! Replace this lesson with your own material.",
					},
				},
			},
		},
	}
}

package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/util"
	"bootcamp_lms_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const catalogCacheKey = "lms:catalog:published"
const catalogCacheTTL = 60 * time.Second

// CourseStore, ModuleStore, LessonStore and ProjectStore are the slices of
// the repositories the authoring side writes through.
type CourseStore interface {
	Create(course *model.Course) error
	Update(course *model.Course) error
	ByID(id uint) (*model.Course, error)
	List(publishedOnly bool) ([]model.Course, error)
	Delete(id uint) error
}

type ModuleStore interface {
	Create(module *model.Module) error
	Update(module *model.Module) error
	ByID(id uint) (*model.Module, error)
	OrderTaken(courseID uint, order int, excludeID uint) (bool, error)
	Delete(id uint) error
}

type LessonStore interface {
	Create(lesson *model.Lesson) error
	Replace(lesson *model.Lesson) error
	ByID(id uint) (*model.Lesson, error)
	OrderTaken(moduleID uint, order int, excludeID uint) (bool, error)
	Delete(id uint) error
}

type ProjectStore interface {
	Create(project *model.Project) error
	Update(project *model.Project) error
	ByModuleID(moduleID uint) (*model.Project, error)
	Delete(id uint) error
}

// ContentService owns the authoring side of the course tree. Students only
// ever read what it writes.
type ContentService struct {
	courses  CourseStore
	modules  ModuleStore
	lessons  LessonStore
	projects ProjectStore
	rdb      *redis.Client
}

func NewContentService(
	courses CourseStore,
	modules ModuleStore,
	lessons LessonStore,
	projects ProjectStore,
	rdb *redis.Client,
) *ContentService {
	return &ContentService{
		courses:  courses,
		modules:  modules,
		lessons:  lessons,
		projects: projects,
		rdb:      rdb,
	}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

func (s *ContentService) CreateCourse(req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
	}
	if err := s.courses.Create(course); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return course, nil
}

func (s *ContentService) UpdateCourse(id uint, req CourseRequest) (*model.Course, error) {
	course, err := s.courses.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Published = req.Published
	if err := s.courses.Update(course); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return course, nil
}

func (s *ContentService) DeleteCourse(id uint) error {
	course, err := s.courses.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	for _, m := range course.Modules {
		if err := s.modules.Delete(m.ID); err != nil {
			return err
		}
	}
	if err := s.courses.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

func (s *ContentService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.courses.ByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

// Catalog lists published courses, served from redis for up to a minute.
// Any authoring write invalidates the cache.
func (s *ContentService) Catalog() ([]model.Course, error) {
	ctx := context.Background()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, catalogCacheKey).Result(); err == nil {
			var courses []model.Course
			if err := json.Unmarshal([]byte(cached), &courses); err == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.courses.List(true)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(courses); err == nil {
			s.rdb.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
		}
	}
	return courses, nil
}

func (s *ContentService) ListCourses() ([]model.Course, error) {
	return s.courses.List(false)
}

func (s *ContentService) invalidateCatalog() {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(context.Background(), catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}

type ModuleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (s *ContentService) CreateModule(courseID uint, req ModuleRequest) (*model.Module, error) {
	if _, err := s.courses.ByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	taken, err := s.modules.OrderTaken(courseID, req.Order, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrDuplicateOrder
	}

	module := &model.Module{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.modules.Create(module); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return module, nil
}

func (s *ContentService) UpdateModule(id uint, req ModuleRequest) (*model.Module, error) {
	module, err := s.modules.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	taken, err := s.modules.OrderTaken(module.CourseID, req.Order, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrDuplicateOrder
	}

	module.Title = req.Title
	module.Description = req.Description
	module.Order = req.Order
	if err := s.modules.Update(module); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return module, nil
}

func (s *ContentService) DeleteModule(id uint) error {
	if _, err := s.modules.ByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}
	if err := s.modules.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

func (s *ContentService) GetModule(id uint) (*model.Module, error) {
	module, err := s.modules.ByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	return module, err
}

type QuizQuestionRequest struct {
	Prompt        string   `json:"prompt" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectOption int      `json:"correctOption"`
	Explanation   string   `json:"explanation"`
}

type QuizRequest struct {
	PassingScore int                   `json:"passingScore"`
	Questions    []QuizQuestionRequest `json:"questions" binding:"required"`
}

type ActivityRequest struct {
	Instructions string `json:"instructions" binding:"required"`
	MinWords     *int   `json:"minWords"`
	MaxWords     *int   `json:"maxWords"`
}

type LessonRequest struct {
	Title    string           `json:"title" binding:"required"`
	Order    int              `json:"order"`
	Type     model.LessonType `json:"type" binding:"required"`
	Body     string           `json:"body"`
	VideoURL string           `json:"videoUrl"`
	Quiz     *QuizRequest     `json:"quiz"`
	Activity *ActivityRequest `json:"activity"`
}

// buildLesson assembles the lesson from the request and rejects
// type/payload mismatches, so an ill-formed lesson (a quiz lesson without
// questions, a video lesson without a URL) never reaches the store.
func buildLesson(moduleID uint, req LessonRequest) (*model.Lesson, error) {
	lesson := &model.Lesson{
		ModuleID: moduleID,
		Title:    req.Title,
		Order:    req.Order,
		Type:     req.Type,
	}

	switch req.Type {
	case model.LessonTheory, model.LessonReading:
		lesson.Body = req.Body
	case model.LessonVideo:
		lesson.VideoURL = req.VideoURL
	case model.LessonQuiz:
		if req.Quiz != nil {
			quiz, err := buildQuiz(req.Quiz)
			if err != nil {
				return nil, err
			}
			lesson.Quiz = quiz
		}
	case model.LessonActivity:
		if req.Activity != nil {
			if req.Activity.MinWords != nil && req.Activity.MaxWords != nil &&
				*req.Activity.MinWords > *req.Activity.MaxWords {
				return nil, util.NewValidationError("activity", "minWords exceeds maxWords")
			}
			lesson.Activity = &model.Activity{
				Instructions: req.Activity.Instructions,
				MinWords:     req.Activity.MinWords,
				MaxWords:     req.Activity.MaxWords,
			}
		}
	default:
		return nil, util.NewValidationError("type", "unknown lesson type")
	}

	if !lesson.HasPayloadFor(req.Type) {
		return nil, util.NewValidationError(payloadField(req.Type),
			"required for "+string(req.Type)+" lessons")
	}
	return lesson, nil
}

func buildQuiz(req *QuizRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{PassingScore: req.PassingScore}
	if quiz.PassingScore <= 0 {
		quiz.PassingScore = model.DefaultPassingScore
	}
	for i, q := range req.Questions {
		if len(q.Options) < 2 || len(q.Options) > 6 {
			return nil, util.NewValidationError("quiz.questions", "each question needs 2 to 6 options")
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return nil, util.NewValidationError("quiz.questions", "correctOption out of range")
		}
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Order:         i,
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
		})
	}
	return quiz, nil
}

func payloadField(t model.LessonType) string {
	switch t {
	case model.LessonVideo:
		return "videoUrl"
	case model.LessonQuiz:
		return "quiz"
	case model.LessonActivity:
		return "activity"
	}
	return "body"
}

func (s *ContentService) CreateLesson(moduleID uint, req LessonRequest) (*model.Lesson, error) {
	if _, err := s.modules.ByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	taken, err := s.lessons.OrderTaken(moduleID, req.Order, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrDuplicateOrder
	}

	lesson, err := buildLesson(moduleID, req)
	if err != nil {
		return nil, err
	}
	if err := s.lessons.Create(lesson); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return lesson, nil
}

func (s *ContentService) UpdateLesson(id uint, req LessonRequest) (*model.Lesson, error) {
	existing, err := s.lessons.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	taken, err := s.lessons.OrderTaken(existing.ModuleID, req.Order, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrDuplicateOrder
	}

	// Rebuild the payload from scratch; changing type swaps the payload.
	// The lesson row itself is updated in place: its id must survive the
	// edit, or completion rows pointing at it would stop counting and
	// student progress would silently drop.
	lesson, err := buildLesson(existing.ModuleID, req)
	if err != nil {
		return nil, err
	}
	lesson.ID = existing.ID
	lesson.CreatedAt = existing.CreatedAt
	if err := s.lessons.Replace(lesson); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return lesson, nil
}

func (s *ContentService) DeleteLesson(id uint) error {
	if _, err := s.lessons.ByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	if err := s.lessons.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

func (s *ContentService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.lessons.ByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

type ProjectRequest struct {
	Title          string             `json:"title" binding:"required"`
	Description    string             `json:"description"`
	Requirements   []string           `json:"requirements"`
	Deliverables   []string           `json:"deliverables"`
	Rubric         []model.RubricItem `json:"rubric"`
	EstimatedHours int                `json:"estimatedHours"`
	GithubRequired bool               `json:"githubRequired"`
}

// UpsertProject creates or replaces the module's single project.
func (s *ContentService) UpsertProject(moduleID uint, req ProjectRequest) (*model.Project, error) {
	if _, err := s.modules.ByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	project, err := s.projects.ByModuleID(moduleID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if project == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		project = &model.Project{ModuleID: moduleID}
	}

	project.Title = req.Title
	project.Description = req.Description
	project.Requirements = req.Requirements
	project.Deliverables = req.Deliverables
	project.Rubric = req.Rubric
	project.EstimatedHours = req.EstimatedHours
	project.GithubRequired = req.GithubRequired

	if project.ID == 0 {
		err = s.projects.Create(project)
	} else {
		err = s.projects.Update(project)
	}
	if err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return project, nil
}

func (s *ContentService) DeleteProject(moduleID uint) error {
	project, err := s.projects.ByModuleID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProjectNotFound
		}
		return err
	}
	if err := s.projects.Delete(project.ID); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/util"
	"errors"
	"math"

	"gorm.io/gorm"
)

// LessonReader is the slice of lesson access the progress tracker needs.
type LessonReader interface {
	ByID(id uint) (*model.Lesson, error)
	IDsForModule(moduleID uint) ([]uint, error)
	IDsForCourse(courseID uint) ([]uint, error)
}

// ModuleReader resolves a module to its owning course.
type ModuleReader interface {
	ByID(id uint) (*model.Module, error)
}

// ProgressStore persists the per-(student, course) record and its
// completion sets. AddLessonCompletion must apply the set add and the
// cached percentage atomically.
type ProgressStore interface {
	Get(userID, courseID uint) (*model.Progress, error)
	GetOrCreate(userID, courseID uint) (*model.Progress, error)
	CompletedLessonIDs(progressID uint) ([]uint, error)
	CompletedProjectIDs(progressID uint) ([]uint, error)
	AddLessonCompletion(progressID, lessonID uint, overall int) error
	AddProjectCompletion(progressID, projectID uint) error
}

type ProgressService struct {
	lessons LessonReader
	modules ModuleReader
	store   ProgressStore
}

func NewProgressService(lessons LessonReader, modules ModuleReader, store ProgressStore) *ProgressService {
	return &ProgressService{
		lessons: lessons,
		modules: modules,
		store:   store,
	}
}

// ProjectGate is what the UI needs to render a locked project:
// "2/5 lessons done".
type ProjectGate struct {
	Locked           bool `json:"locked"`
	CompletedLessons int  `json:"completedLessons"`
	TotalLessons     int  `json:"totalLessons"`
}

// CourseProgress is the JSON shape for a progress read.
type CourseProgress struct {
	OverallProgress  int  `json:"overallProgress"`
	CompletedLessons int  `json:"completedLessons"`
	TotalLessons     int  `json:"totalLessons"`
	Started          bool `json:"started"`
}

// Overall derives the completion percentage from the completed-lesson set
// and the course's lesson set. A pure read: it never creates or touches the
// progress record.
func (s *ProgressService) Overall(userID, courseID uint) (*CourseProgress, error) {
	lessonIDs, err := s.lessons.IDsForCourse(courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.store.Get(userID, courseID)
	if err != nil {
		return nil, err
	}

	var completed []uint
	if progress != nil {
		completed, err = s.store.CompletedLessonIDs(progress.ID)
		if err != nil {
			return nil, err
		}
	}

	completedCount := countIntersection(completed, lessonIDs)
	return &CourseProgress{
		OverallProgress:  percentage(completedCount, len(lessonIDs)),
		CompletedLessons: completedCount,
		TotalLessons:     len(lessonIDs),
		Started:          progress != nil,
	}, nil
}

// Gate evaluates the project unlock rule for a module: unlocked iff the
// student's completed-lesson set covers every lesson of the module. A
// module with zero lessons is vacuously unlocked. Order of completion is
// irrelevant.
func (s *ProgressService) Gate(userID, moduleID uint) (*ProjectGate, error) {
	module, err := s.modules.ByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	lessonIDs, err := s.lessons.IDsForModule(moduleID)
	if err != nil {
		return nil, err
	}

	progress, err := s.store.Get(userID, module.CourseID)
	if err != nil {
		return nil, err
	}

	var completed []uint
	if progress != nil {
		completed, err = s.store.CompletedLessonIDs(progress.ID)
		if err != nil {
			return nil, err
		}
	}

	completedCount := countIntersection(completed, lessonIDs)
	return &ProjectGate{
		Locked:           completedCount < len(lessonIDs),
		CompletedLessons: completedCount,
		TotalLessons:     len(lessonIDs),
	}, nil
}

// MarkLessonComplete adds the lesson to the student's completed set and
// refreshes the cached percentage in the same store transaction. Re-marking
// a completed lesson is a no-op, not an error.
func (s *ProgressService) MarkLessonComplete(userID, lessonID uint) (*CourseProgress, error) {
	lesson, err := s.lessons.ByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	module, err := s.modules.ByID(lesson.ModuleID)
	if err != nil {
		return nil, err
	}
	courseID := module.CourseID

	progress, err := s.store.GetOrCreate(userID, courseID)
	if err != nil {
		return nil, err
	}

	completed, err := s.store.CompletedLessonIDs(progress.ID)
	if err != nil {
		return nil, err
	}

	lessonIDs, err := s.lessons.IDsForCourse(courseID)
	if err != nil {
		return nil, err
	}

	completedSet := toSet(completed)
	if !completedSet[lessonID] {
		completedSet[lessonID] = true
		overall := percentage(countSetIntersection(completedSet, lessonIDs), len(lessonIDs))
		if err := s.store.AddLessonCompletion(progress.ID, lessonID, overall); err != nil {
			return nil, err
		}
	}

	completedCount := countSetIntersection(completedSet, lessonIDs)
	return &CourseProgress{
		OverallProgress:  percentage(completedCount, len(lessonIDs)),
		CompletedLessons: completedCount,
		TotalLessons:     len(lessonIDs),
		Started:          true,
	}, nil
}

// CreditProject idempotently adds the project to the student's
// completed-project set. Called on submission approval.
func (s *ProgressService) CreditProject(userID, projectID, moduleID uint) error {
	module, err := s.modules.ByID(moduleID)
	if err != nil {
		return err
	}

	progress, err := s.store.GetOrCreate(userID, module.CourseID)
	if err != nil {
		return err
	}

	return s.store.AddProjectCompletion(progress.ID, projectID)
}

// CompletedProjects exposes the completed-project set for a course.
func (s *ProgressService) CompletedProjects(userID, courseID uint) ([]uint, error) {
	progress, err := s.store.Get(userID, courseID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return nil, nil
	}
	return s.store.CompletedProjectIDs(progress.ID)
}

// percentage rounds to the nearest integer and guards the empty course.
func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

func toSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func countIntersection(completed, lessonIDs []uint) int {
	return countSetIntersection(toSet(completed), lessonIDs)
}

func countSetIntersection(completed map[uint]bool, lessonIDs []uint) int {
	count := 0
	for _, id := range lessonIDs {
		if completed[id] {
			count++
		}
	}
	return count
}

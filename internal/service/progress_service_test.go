package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/util"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repositories, so the business rules can be
// exercised without a database.

type fakeModules struct {
	modules map[uint]*model.Module
}

func (f *fakeModules) ByID(id uint) (*model.Module, error) {
	m, ok := f.modules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

type fakeLessons struct {
	lessons []*model.Lesson
	modules *fakeModules
}

func (f *fakeLessons) ByID(id uint) (*model.Lesson, error) {
	for _, l := range f.lessons {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLessons) IDsForModule(moduleID uint) ([]uint, error) {
	var ids []uint
	for _, l := range f.lessons {
		if l.ModuleID == moduleID {
			ids = append(ids, l.ID)
		}
	}
	return ids, nil
}

func (f *fakeLessons) IDsForCourse(courseID uint) ([]uint, error) {
	var ids []uint
	for _, l := range f.lessons {
		m, ok := f.modules.modules[l.ModuleID]
		if ok && m.CourseID == courseID {
			ids = append(ids, l.ID)
		}
	}
	return ids, nil
}

type progressKey struct {
	userID   uint
	courseID uint
}

type fakeProgressStore struct {
	nextID      uint
	records     map[progressKey]*model.Progress
	lessonSets  map[uint]map[uint]bool
	projectSets map[uint]map[uint]bool

	lessonAdds int // counts writes, to assert idempotency
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{
		records:     make(map[progressKey]*model.Progress),
		lessonSets:  make(map[uint]map[uint]bool),
		projectSets: make(map[uint]map[uint]bool),
	}
}

func (f *fakeProgressStore) Get(userID, courseID uint) (*model.Progress, error) {
	return f.records[progressKey{userID, courseID}], nil
}

func (f *fakeProgressStore) GetOrCreate(userID, courseID uint) (*model.Progress, error) {
	key := progressKey{userID, courseID}
	if p, ok := f.records[key]; ok {
		return p, nil
	}
	f.nextID++
	p := &model.Progress{
		UserID:    userID,
		CourseID:  courseID,
		StartedAt: time.Now(),
	}
	p.ID = f.nextID
	f.records[key] = p
	f.lessonSets[p.ID] = make(map[uint]bool)
	f.projectSets[p.ID] = make(map[uint]bool)
	return p, nil
}

func (f *fakeProgressStore) CompletedLessonIDs(progressID uint) ([]uint, error) {
	var ids []uint
	for id := range f.lessonSets[progressID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeProgressStore) CompletedProjectIDs(progressID uint) ([]uint, error) {
	var ids []uint
	for id := range f.projectSets[progressID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeProgressStore) AddLessonCompletion(progressID, lessonID uint, overall int) error {
	if f.lessonSets[progressID][lessonID] {
		return nil
	}
	f.lessonSets[progressID][lessonID] = true
	f.lessonAdds++
	for _, p := range f.records {
		if p.ID == progressID {
			p.OverallProgress = overall
		}
	}
	return nil
}

func (f *fakeProgressStore) AddProjectCompletion(progressID, projectID uint) error {
	f.projectSets[progressID][projectID] = true
	return nil
}

// newCourseFixture builds course 1 with two modules: module 10 has three
// lessons (101..103), module 20 has none.
func newCourseFixture() (*fakeLessons, *fakeModules, *fakeProgressStore) {
	modules := &fakeModules{modules: map[uint]*model.Module{
		10: {CourseID: 1, Title: "Fundamentals"},
		20: {CourseID: 1, Title: "Capstone prep"},
	}}
	modules.modules[10].ID = 10
	modules.modules[20].ID = 20

	lessons := &fakeLessons{modules: modules}
	for i, id := range []uint{101, 102, 103} {
		l := &model.Lesson{ModuleID: 10, Title: "Lesson", Order: i + 1, Type: model.LessonTheory, Body: "text"}
		l.ID = id
		lessons.lessons = append(lessons.lessons, l)
	}

	return lessons, modules, newFakeProgressStore()
}

func TestOverallProgressRounding(t *testing.T) {
	lessons, modules, store := newCourseFixture()

	// pad to six lessons so 3/6 is an exact half
	for _, id := range []uint{104, 105, 106} {
		l := &model.Lesson{ModuleID: 10, Type: model.LessonTheory, Body: "text"}
		l.ID = id
		lessons.lessons = append(lessons.lessons, l)
	}

	svc := NewProgressService(lessons, modules, store)

	for _, id := range []uint{101, 102, 103} {
		_, err := svc.MarkLessonComplete(7, id)
		require.NoError(t, err)
	}

	progress, err := svc.Overall(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.OverallProgress)
	assert.Equal(t, 3, progress.CompletedLessons)
	assert.Equal(t, 6, progress.TotalLessons)
	assert.True(t, progress.Started)
}

func TestOverallProgressRoundsToNearest(t *testing.T) {
	lessons, modules, store := newCourseFixture()
	svc := NewProgressService(lessons, modules, store)

	_, err := svc.MarkLessonComplete(7, 101)
	require.NoError(t, err)

	progress, err := svc.Overall(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 33, progress.OverallProgress) // 1/3

	_, err = svc.MarkLessonComplete(7, 102)
	require.NoError(t, err)

	progress, err = svc.Overall(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 67, progress.OverallProgress) // 2/3 rounds up
}

func TestOverallProgressEmptyCourse(t *testing.T) {
	modules := &fakeModules{modules: map[uint]*model.Module{
		30: {CourseID: 2},
	}}
	modules.modules[30].ID = 30
	lessons := &fakeLessons{modules: modules}
	store := newFakeProgressStore()

	svc := NewProgressService(lessons, modules, store)

	progress, err := svc.Overall(7, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.OverallProgress)
	assert.Equal(t, 0, progress.TotalLessons)
	assert.False(t, progress.Started)

	// a read never materializes a progress record
	assert.Empty(t, store.records)
}

func TestOverallProgressMonotonic(t *testing.T) {
	lessons, modules, store := newCourseFixture()
	svc := NewProgressService(lessons, modules, store)

	last := 0
	for _, id := range []uint{103, 101, 102} {
		progress, err := svc.MarkLessonComplete(7, id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, progress.OverallProgress, last)
		last = progress.OverallProgress
	}
	assert.Equal(t, 100, last)
}

func TestMarkLessonCompleteIdempotent(t *testing.T) {
	lessons, modules, store := newCourseFixture()
	svc := NewProgressService(lessons, modules, store)

	first, err := svc.MarkLessonComplete(7, 101)
	require.NoError(t, err)

	second, err := svc.MarkLessonComplete(7, 101)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.lessonAdds)
}

func TestMarkLessonCompleteUnknownLesson(t *testing.T) {
	lessons, modules, store := newCourseFixture()
	svc := NewProgressService(lessons, modules, store)

	_, err := svc.MarkLessonComplete(7, 999)
	assert.True(t, errors.Is(err, util.ErrLessonNotFound))
	assert.Empty(t, store.records)
}

func TestGateUnlocksAfterAllLessons(t *testing.T) {
	lessons, modules, store := newCourseFixture()
	svc := NewProgressService(lessons, modules, store)

	gate, err := svc.Gate(7, 10)
	require.NoError(t, err)
	assert.True(t, gate.Locked)
	assert.Equal(t, 0, gate.CompletedLessons)
	assert.Equal(t, 3, gate.TotalLessons)

	// completion order does not matter
	for _, id := range []uint{103, 101, 102} {
		_, err := svc.MarkLessonComplete(7, id)
		require.NoError(t, err)
	}

	gate, err = svc.Gate(7, 10)
	require.NoError(t, err)
	assert.False(t, gate.Locked)
	assert.Equal(t, 3, gate.CompletedLessons)
}

func TestGateLockedWithPartialProgress(t *testing.T) {
	lessons, modules, store := newCourseFixture()
	svc := NewProgressService(lessons, modules, store)

	_, err := svc.MarkLessonComplete(7, 101)
	require.NoError(t, err)

	gate, err := svc.Gate(7, 10)
	require.NoError(t, err)
	assert.True(t, gate.Locked)
	assert.Equal(t, 1, gate.CompletedLessons)
	assert.Equal(t, 3, gate.TotalLessons)
}

func TestGateVacuouslyOpenForEmptyModule(t *testing.T) {
	lessons, modules, store := newCourseFixture()
	svc := NewProgressService(lessons, modules, store)

	// module 20 has no lessons and the student has never started the course
	gate, err := svc.Gate(7, 20)
	require.NoError(t, err)
	assert.False(t, gate.Locked)
	assert.Equal(t, 0, gate.TotalLessons)
}

func TestGateUnknownModule(t *testing.T) {
	lessons, modules, store := newCourseFixture()
	svc := NewProgressService(lessons, modules, store)

	_, err := svc.Gate(7, 999)
	assert.True(t, errors.Is(err, util.ErrModuleNotFound))
}

func TestCreditProjectIdempotent(t *testing.T) {
	lessons, modules, store := newCourseFixture()
	svc := NewProgressService(lessons, modules, store)

	require.NoError(t, svc.CreditProject(7, 55, 10))
	require.NoError(t, svc.CreditProject(7, 55, 10))

	completed, err := svc.CompletedProjects(7, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{55}, completed)
}

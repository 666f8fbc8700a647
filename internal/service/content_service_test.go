package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCourseStore struct {
	courses map[uint]*model.Course
	nextID  uint
}

func (f *fakeCourseStore) Create(course *model.Course) error {
	f.nextID++
	course.ID = f.nextID
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) Update(course *model.Course) error {
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) ByID(id uint) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCourseStore) List(publishedOnly bool) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.courses {
		if publishedOnly && !c.Published {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourseStore) Delete(id uint) error {
	delete(f.courses, id)
	return nil
}

type fakeModuleStore struct {
	modulesByID map[uint]*model.Module
	nextID      uint
}

func (f *fakeModuleStore) Create(module *model.Module) error {
	f.nextID++
	module.ID = f.nextID
	f.modulesByID[module.ID] = module
	return nil
}

func (f *fakeModuleStore) Update(module *model.Module) error {
	f.modulesByID[module.ID] = module
	return nil
}

func (f *fakeModuleStore) ByID(id uint) (*model.Module, error) {
	m, ok := f.modulesByID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeModuleStore) OrderTaken(courseID uint, order int, excludeID uint) (bool, error) {
	for _, m := range f.modulesByID {
		if m.CourseID == courseID && m.Order == order && m.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeModuleStore) Delete(id uint) error {
	delete(f.modulesByID, id)
	return nil
}

type fakeLessonStore struct {
	lessonsByID map[uint]*model.Lesson
	nextID      uint

	creates  int
	replaces int
}

func (f *fakeLessonStore) Create(lesson *model.Lesson) error {
	f.nextID++
	lesson.ID = f.nextID
	f.lessonsByID[lesson.ID] = lesson
	f.creates++
	return nil
}

func (f *fakeLessonStore) Replace(lesson *model.Lesson) error {
	if _, ok := f.lessonsByID[lesson.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.lessonsByID[lesson.ID] = lesson
	f.replaces++
	return nil
}

func (f *fakeLessonStore) ByID(id uint) (*model.Lesson, error) {
	l, ok := f.lessonsByID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (f *fakeLessonStore) OrderTaken(moduleID uint, order int, excludeID uint) (bool, error) {
	for _, l := range f.lessonsByID {
		if l.ModuleID == moduleID && l.Order == order && l.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLessonStore) Delete(id uint) error {
	delete(f.lessonsByID, id)
	return nil
}

type fakeProjectStore struct {
	projects map[uint]*model.Project // keyed by module id
	nextID   uint
}

func (f *fakeProjectStore) Create(project *model.Project) error {
	f.nextID++
	project.ID = f.nextID
	f.projects[project.ModuleID] = project
	return nil
}

func (f *fakeProjectStore) Update(project *model.Project) error {
	f.projects[project.ModuleID] = project
	return nil
}

func (f *fakeProjectStore) ByModuleID(moduleID uint) (*model.Project, error) {
	p, ok := f.projects[moduleID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProjectStore) Delete(id uint) error {
	for moduleID, p := range f.projects {
		if p.ID == id {
			delete(f.projects, moduleID)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// newContentFixture seeds course 1 with module 1 holding two lessons: a
// theory lesson at order 1 and a video lesson at order 2.
func newContentFixture() (*ContentService, *fakeLessonStore) {
	courses := &fakeCourseStore{courses: map[uint]*model.Course{}}
	modules := &fakeModuleStore{modulesByID: map[uint]*model.Module{}}
	lessons := &fakeLessonStore{lessonsByID: map[uint]*model.Lesson{}}
	projects := &fakeProjectStore{projects: map[uint]*model.Project{}}

	course := &model.Course{Title: "Go Bootcamp", Published: true}
	courses.Create(course)
	module := &model.Module{CourseID: course.ID, Title: "Basics", Order: 1}
	modules.Create(module)

	theory := &model.Lesson{
		ModuleID: module.ID,
		Title:    "Welcome",
		Order:    1,
		Type:     model.LessonTheory,
		Body:     "hello",
	}
	lessons.Create(theory)
	theory.CreatedAt = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	video := &model.Lesson{
		ModuleID: module.ID,
		Title:    "Setup",
		Order:    2,
		Type:     model.LessonVideo,
		VideoURL: "https://cdn.example.com/setup.mp4",
	}
	lessons.Create(video)

	svc := NewContentService(courses, modules, lessons, projects, nil)
	lessons.creates = 0
	return svc, lessons
}

func TestUpdateLessonKeepsIdentity(t *testing.T) {
	svc, lessons := newContentFixture()
	before, err := lessons.ByID(1)
	require.NoError(t, err)
	createdAt := before.CreatedAt

	updated, err := svc.UpdateLesson(1, LessonRequest{
		Title: "Welcome, revised",
		Order: 1,
		Type:  model.LessonQuiz,
		Quiz: &QuizRequest{
			PassingScore: 80,
			Questions: []QuizQuestionRequest{
				{Prompt: "2+2?", Options: []string{"3", "4"}, CorrectOption: 1},
			},
		},
	})
	require.NoError(t, err)

	// Completion rows reference the lesson by id, so an edit must never
	// mint a new one.
	assert.Equal(t, uint(1), updated.ID)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Equal(t, 0, lessons.creates)
	assert.Equal(t, 1, lessons.replaces)

	stored, err := lessons.ByID(1)
	require.NoError(t, err)
	assert.Equal(t, model.LessonQuiz, stored.Type)
	require.NotNil(t, stored.Quiz)
	assert.Equal(t, 80, stored.Quiz.PassingScore)
}

func TestUpdateLessonDuplicateOrder(t *testing.T) {
	svc, lessons := newContentFixture()

	_, err := svc.UpdateLesson(1, LessonRequest{
		Title: "Welcome",
		Order: 2, // already held by lesson 2
		Type:  model.LessonTheory,
		Body:  "hello",
	})
	assert.ErrorIs(t, err, util.ErrDuplicateOrder)
	assert.Equal(t, 0, lessons.replaces)
}

func TestUpdateLessonKeepingOwnOrder(t *testing.T) {
	svc, _ := newContentFixture()

	updated, err := svc.UpdateLesson(1, LessonRequest{
		Title: "Welcome",
		Order: 1,
		Type:  model.LessonTheory,
		Body:  "hello again",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello again", updated.Body)
}

func TestUpdateLessonNotFound(t *testing.T) {
	svc, _ := newContentFixture()

	_, err := svc.UpdateLesson(99, LessonRequest{
		Title: "Ghost",
		Type:  model.LessonTheory,
		Body:  "x",
	})
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestBuildLessonPayloadValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   LessonRequest
		field string
	}{
		{
			name:  "theory without body",
			req:   LessonRequest{Title: "t", Type: model.LessonTheory},
			field: "body",
		},
		{
			name:  "reading without body",
			req:   LessonRequest{Title: "t", Type: model.LessonReading},
			field: "body",
		},
		{
			name:  "video without url",
			req:   LessonRequest{Title: "t", Type: model.LessonVideo},
			field: "videoUrl",
		},
		{
			name:  "quiz without payload",
			req:   LessonRequest{Title: "t", Type: model.LessonQuiz},
			field: "quiz",
		},
		{
			name: "quiz without questions",
			req: LessonRequest{
				Title: "t", Type: model.LessonQuiz,
				Quiz: &QuizRequest{PassingScore: 70},
			},
			field: "quiz",
		},
		{
			name:  "activity without payload",
			req:   LessonRequest{Title: "t", Type: model.LessonActivity},
			field: "activity",
		},
		{
			name: "activity without instructions",
			req: LessonRequest{
				Title: "t", Type: model.LessonActivity,
				Activity: &ActivityRequest{},
			},
			field: "activity",
		},
		{
			name:  "unknown type",
			req:   LessonRequest{Title: "t", Type: "podcast"},
			field: "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildLesson(1, tt.req)
			var verr *util.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestBuildLessonQuizChecks(t *testing.T) {
	_, err := buildLesson(1, LessonRequest{
		Title: "t", Type: model.LessonQuiz,
		Quiz: &QuizRequest{Questions: []QuizQuestionRequest{
			{Prompt: "only one option", Options: []string{"a"}},
		}},
	})
	var verr *util.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quiz.questions", verr.Field)

	_, err = buildLesson(1, LessonRequest{
		Title: "t", Type: model.LessonQuiz,
		Quiz: &QuizRequest{Questions: []QuizQuestionRequest{
			{Prompt: "out of range", Options: []string{"a", "b"}, CorrectOption: 2},
		}},
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quiz.questions", verr.Field)

	lesson, err := buildLesson(1, LessonRequest{
		Title: "t", Type: model.LessonQuiz,
		Quiz: &QuizRequest{Questions: []QuizQuestionRequest{
			{Prompt: "ok", Options: []string{"a", "b"}, CorrectOption: 1},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPassingScore, lesson.Quiz.PassingScore)
}

func TestBuildLessonActivityWordBounds(t *testing.T) {
	min, max := 200, 100
	_, err := buildLesson(1, LessonRequest{
		Title: "t", Type: model.LessonActivity,
		Activity: &ActivityRequest{
			Instructions: "write a summary",
			MinWords:     &min,
			MaxWords:     &max,
		},
	})
	var verr *util.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "activity", verr.Field)
}

func TestCreateLessonUnknownModule(t *testing.T) {
	svc, lessons := newContentFixture()

	_, err := svc.CreateLesson(42, LessonRequest{
		Title: "t", Type: model.LessonTheory, Body: "x",
	})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
	assert.Equal(t, 0, lessons.creates)
}

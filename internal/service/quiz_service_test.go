package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/util"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizFixture(t *testing.T) (*QuizService, *ProgressService, *fakeSubmissions) {
	t.Helper()

	lessons, modules, progressStore := newCourseFixture()
	progress := NewProgressService(lessons, modules, progressStore)

	quiz := &model.Quiz{LessonID: 104, PassingScore: 70}
	for i, correct := range []int{0, 2, 1} {
		q := model.QuizQuestion{
			QuizID:        1,
			Order:         i + 1,
			Prompt:        "pick one",
			Options:       model.StringList{"a", "b", "c"},
			CorrectOption: correct,
		}
		q.ID = uint(200 + i)
		quiz.Questions = append(quiz.Questions, q)
	}

	lesson := &model.Lesson{ModuleID: 10, Title: "Checkpoint quiz", Type: model.LessonQuiz, Quiz: quiz}
	lesson.ID = 104
	lessons.lessons = append(lessons.lessons, lesson)

	store := &fakeSubmissions{}
	return NewQuizService(lessons, store, progress), progress, store
}

func TestQuizAttemptPassCompletesLesson(t *testing.T) {
	svc, progress, store := newQuizFixture(t)

	result, err := svc.SubmitAttempt(7, 104, QuizAttemptRequest{Answers: []int{0, 2, 1}})
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 70, result.PassingScore)
	require.Len(t, result.Questions, 3)
	for _, q := range result.Questions {
		assert.True(t, q.Correct)
	}

	// the attempt is recorded as an auto-graded approved submission
	submission, err := store.ByID(result.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionApproved, submission.Status)
	require.NotNil(t, submission.Grade)
	assert.Equal(t, 100, *submission.Grade)

	overall, err := progress.Overall(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, overall.CompletedLessons)
}

func TestQuizAttemptFailDoesNotComplete(t *testing.T) {
	svc, progress, store := newQuizFixture(t)

	result, err := svc.SubmitAttempt(7, 104, QuizAttemptRequest{Answers: []int{0, 0, 0}})
	require.NoError(t, err)

	assert.Equal(t, 33, result.Score)
	assert.False(t, result.Passed)

	submission, err := store.ByID(result.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionRejected, submission.Status)

	overall, err := progress.Overall(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, overall.CompletedLessons)
}

func TestQuizFailAfterPassKeepsCompletion(t *testing.T) {
	svc, progress, _ := newQuizFixture(t)

	_, err := svc.SubmitAttempt(7, 104, QuizAttemptRequest{Answers: []int{0, 2, 1}})
	require.NoError(t, err)

	_, err = svc.SubmitAttempt(7, 104, QuizAttemptRequest{Answers: []int{1, 1, 2}})
	require.NoError(t, err)

	overall, err := progress.Overall(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, overall.CompletedLessons)
}

func TestQuizAttemptAnswerCountMismatch(t *testing.T) {
	svc, _, store := newQuizFixture(t)

	_, err := svc.SubmitAttempt(7, 104, QuizAttemptRequest{Answers: []int{0}})

	var validation *util.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "answers", validation.Field)
	assert.Empty(t, store.submissions)
}

func TestQuizAttemptOnNonQuizLesson(t *testing.T) {
	svc, _, _ := newQuizFixture(t)

	// lesson 101 is a theory lesson
	_, err := svc.SubmitAttempt(7, 101, QuizAttemptRequest{Answers: []int{0}})

	var validation *util.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "lessonId", validation.Field)
}

func TestQuizAttemptUnknownLesson(t *testing.T) {
	svc, _, _ := newQuizFixture(t)

	_, err := svc.SubmitAttempt(7, 999, QuizAttemptRequest{Answers: []int{0}})
	assert.True(t, errors.Is(err, util.ErrLessonNotFound))
}

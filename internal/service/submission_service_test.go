package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/util"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProjects struct {
	projects map[uint]*model.Project
}

func (f *fakeProjects) ByID(id uint) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type fakeSubmissions struct {
	nextID      uint
	submissions []*model.Submission
}

func (f *fakeSubmissions) Create(submission *model.Submission) error {
	f.nextID++
	submission.ID = f.nextID
	f.submissions = append(f.submissions, submission)
	return nil
}

func (f *fakeSubmissions) ByID(id uint) (*model.Submission, error) {
	for _, s := range f.submissions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubmissions) SaveReview(submission *model.Submission) error {
	for i, s := range f.submissions {
		if s.ID == submission.ID {
			f.submissions[i] = submission
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeSubmissions) ListForProject(userID, projectID uint) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range f.submissions {
		if s.UserID == userID && s.ProjectID != nil && *s.ProjectID == projectID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (f *fakeSubmissions) CurrentForProject(userID, projectID uint) (*model.Submission, error) {
	list, err := f.ListForProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &list[0], nil
}

func (f *fakeSubmissions) ListQueue(status, kind string, page, limit int) ([]model.Submission, int64, error) {
	var out []model.Submission
	for _, s := range f.submissions {
		if status != "" && string(s.Status) != status {
			continue
		}
		if kind != "" && string(s.TargetKind) != kind {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

// newSubmissionFixture wires a submission service over the course fixture:
// project 55 sits on module 10 (three lessons) and requires a GitHub link.
func newSubmissionFixture(t *testing.T) (*SubmissionService, *ProgressService, *fakeSubmissions, *fakeProgressStore) {
	t.Helper()

	lessons, modules, progressStore := newCourseFixture()
	progress := NewProgressService(lessons, modules, progressStore)

	project := &model.Project{ModuleID: 10, Title: "CLI tool", GithubRequired: true}
	project.ID = 55
	projects := &fakeProjects{projects: map[uint]*model.Project{55: project}}

	store := &fakeSubmissions{}
	svc := NewSubmissionService(store, projects, lessons, progress)
	return svc, progress, store, progressStore
}

func completeModuleLessons(t *testing.T, progress *ProgressService, userID uint) {
	t.Helper()
	for _, id := range []uint{101, 102, 103} {
		_, err := progress.MarkLessonComplete(userID, id)
		require.NoError(t, err)
	}
}

func TestSubmitProjectLocked(t *testing.T) {
	svc, progress, store, _ := newSubmissionFixture(t)

	_, err := progress.MarkLessonComplete(7, 101)
	require.NoError(t, err)

	_, err = svc.SubmitProject(7, 55, ProjectSubmissionRequest{GithubURL: "https://github.com/x/y"})

	var locked *util.LockedError
	require.True(t, errors.As(err, &locked))
	assert.Equal(t, 1, locked.CompletedLessons)
	assert.Equal(t, 3, locked.TotalLessons)
	assert.Empty(t, store.submissions)
}

func TestSubmitProjectRequiresGithubURL(t *testing.T) {
	svc, progress, store, _ := newSubmissionFixture(t)
	completeModuleLessons(t, progress, 7)

	_, err := svc.SubmitProject(7, 55, ProjectSubmissionRequest{Notes: "done"})

	var validation *util.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "githubUrl", validation.Field)
	assert.Empty(t, store.submissions)
}

func TestSubmitProjectRejectsMalformedURL(t *testing.T) {
	svc, progress, _, _ := newSubmissionFixture(t)
	completeModuleLessons(t, progress, 7)

	_, err := svc.SubmitProject(7, 55, ProjectSubmissionRequest{GithubURL: "not a url"})

	var validation *util.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "githubUrl", validation.Field)
}

func TestSubmitProjectCreatesPending(t *testing.T) {
	svc, progress, _, _ := newSubmissionFixture(t)
	completeModuleLessons(t, progress, 7)

	submission, err := svc.SubmitProject(7, 55, ProjectSubmissionRequest{
		GithubURL: "https://github.com/student/cli-tool",
		Notes:     "first try",
	})
	require.NoError(t, err)

	assert.Equal(t, model.SubmissionPending, submission.Status)
	assert.Equal(t, model.TargetProject, submission.TargetKind)
	assert.False(t, submission.SubmittedAt.IsZero())
	require.NotNil(t, submission.ProjectID)
	assert.Equal(t, uint(55), *submission.ProjectID)
}

func TestSubmitProjectUnknownProject(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)

	_, err := svc.SubmitProject(7, 999, ProjectSubmissionRequest{})
	assert.True(t, errors.Is(err, util.ErrProjectNotFound))
}

func TestResubmissionAfterRejectionIsNewRecord(t *testing.T) {
	svc, progress, store, _ := newSubmissionFixture(t)
	completeModuleLessons(t, progress, 7)

	first, err := svc.SubmitProject(7, 55, ProjectSubmissionRequest{GithubURL: "https://github.com/s/v1"})
	require.NoError(t, err)

	_, err = svc.Review(3, first.ID, ReviewRequest{
		Status:   model.SubmissionRejected,
		Feedback: "missing tests",
		Grade:    40,
	})
	require.NoError(t, err)

	second, err := svc.SubmitProject(7, 55, ProjectSubmissionRequest{GithubURL: "https://github.com/s/v2"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, model.SubmissionPending, second.Status)

	// the earlier rejection is untouched and the new attempt is current
	rejected, err := store.ByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionRejected, rejected.Status)

	current, err := store.CurrentForProject(7, 55)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	history, err := svc.HistoryForProject(7, 55)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestReviewValidation(t *testing.T) {
	svc, progress, store, _ := newSubmissionFixture(t)
	completeModuleLessons(t, progress, 7)

	submission, err := svc.SubmitProject(7, 55, ProjectSubmissionRequest{GithubURL: "https://github.com/s/v1"})
	require.NoError(t, err)

	cases := []struct {
		name  string
		req   ReviewRequest
		field string
	}{
		{"grade above range", ReviewRequest{Status: model.SubmissionApproved, Feedback: "ok", Grade: 150}, "grade"},
		{"grade below range", ReviewRequest{Status: model.SubmissionApproved, Feedback: "ok", Grade: -1}, "grade"},
		{"empty feedback", ReviewRequest{Status: model.SubmissionApproved, Feedback: "   ", Grade: 90}, "feedback"},
		{"non-terminal status", ReviewRequest{Status: model.SubmissionInReview, Feedback: "ok", Grade: 90}, "status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Review(3, submission.ID, tc.req)

			var validation *util.ValidationError
			require.True(t, errors.As(err, &validation))
			assert.Equal(t, tc.field, validation.Field)

			// invalid reviews must not move the submission
			stored, err := store.ByID(submission.ID)
			require.NoError(t, err)
			assert.Equal(t, model.SubmissionPending, stored.Status)
		})
	}
}

func TestReviewApproveCreditsProject(t *testing.T) {
	svc, progress, _, progressStore := newSubmissionFixture(t)
	completeModuleLessons(t, progress, 7)

	submission, err := svc.SubmitProject(7, 55, ProjectSubmissionRequest{GithubURL: "https://github.com/s/v1"})
	require.NoError(t, err)

	reviewed, err := svc.Review(3, submission.ID, ReviewRequest{
		Status:   model.SubmissionApproved,
		Feedback: "clean work",
		Grade:    92,
	})
	require.NoError(t, err)

	assert.Equal(t, model.SubmissionApproved, reviewed.Status)
	require.NotNil(t, reviewed.Grade)
	assert.Equal(t, 92, *reviewed.Grade)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, uint(3), *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)

	completed, err := progress.CompletedProjects(7, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{55}, completed)

	// double approval is a no-op, the credit stays single
	again, err := svc.Review(3, submission.ID, ReviewRequest{
		Status:   model.SubmissionApproved,
		Feedback: "still fine",
		Grade:    92,
	})
	require.NoError(t, err)
	assert.Equal(t, reviewed.ID, again.ID)

	completed, err = progress.CompletedProjects(7, 1)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
	assert.Len(t, progressStore.projectSets, 1)
}

func TestReviewTerminalStatusIsFinal(t *testing.T) {
	svc, progress, _, _ := newSubmissionFixture(t)
	completeModuleLessons(t, progress, 7)

	submission, err := svc.SubmitProject(7, 55, ProjectSubmissionRequest{GithubURL: "https://github.com/s/v1"})
	require.NoError(t, err)

	_, err = svc.Review(3, submission.ID, ReviewRequest{
		Status:   model.SubmissionApproved,
		Feedback: "good",
		Grade:    88,
	})
	require.NoError(t, err)

	_, err = svc.Review(3, submission.ID, ReviewRequest{
		Status:   model.SubmissionRejected,
		Feedback: "changed my mind",
		Grade:    10,
	})
	assert.True(t, errors.Is(err, util.ErrSubmissionFinal))

	stored, err := svc.ByID(submission.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionApproved, stored.Status)
}

func TestMarkInReview(t *testing.T) {
	svc, progress, _, _ := newSubmissionFixture(t)
	completeModuleLessons(t, progress, 7)

	submission, err := svc.SubmitProject(7, 55, ProjectSubmissionRequest{GithubURL: "https://github.com/s/v1"})
	require.NoError(t, err)

	claimed, err := svc.MarkInReview(submission.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionInReview, claimed.Status)

	// claiming twice is fine
	claimed, err = svc.MarkInReview(submission.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionInReview, claimed.Status)

	_, err = svc.Review(3, submission.ID, ReviewRequest{
		Status:   model.SubmissionRejected,
		Feedback: "incomplete",
		Grade:    30,
	})
	require.NoError(t, err)

	_, err = svc.MarkInReview(submission.ID)
	assert.True(t, errors.Is(err, util.ErrSubmissionFinal))
}

func TestSubmitActivityWordBounds(t *testing.T) {
	lessons, modules, progressStore := newCourseFixture()
	progress := NewProgressService(lessons, modules, progressStore)

	min, max := 3, 5
	activity := &model.Activity{LessonID: 104, Instructions: "Write a short reflection", MinWords: &min, MaxWords: &max}
	lesson := &model.Lesson{ModuleID: 10, Title: "Reflection", Type: model.LessonActivity, Activity: activity}
	lesson.ID = 104
	lessons.lessons = append(lessons.lessons, lesson)

	store := &fakeSubmissions{}
	svc := NewSubmissionService(store, &fakeProjects{projects: map[uint]*model.Project{}}, lessons, progress)

	var validation *util.ValidationError

	_, err := svc.SubmitActivity(7, 104, ActivitySubmissionRequest{Content: "too short"})
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "content", validation.Field)

	_, err = svc.SubmitActivity(7, 104, ActivitySubmissionRequest{Content: "one two three four five six"})
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "content", validation.Field)

	submission, err := svc.SubmitActivity(7, 104, ActivitySubmissionRequest{Content: "one two three four"})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionPending, submission.Status)
	assert.Equal(t, model.TargetLesson, submission.TargetKind)
}

func TestApprovedActivityCompletesLesson(t *testing.T) {
	lessons, modules, progressStore := newCourseFixture()
	progress := NewProgressService(lessons, modules, progressStore)

	activity := &model.Activity{LessonID: 104, Instructions: "Summarize the module"}
	lesson := &model.Lesson{ModuleID: 10, Title: "Summary", Type: model.LessonActivity, Activity: activity}
	lesson.ID = 104
	lessons.lessons = append(lessons.lessons, lesson)

	store := &fakeSubmissions{}
	svc := NewSubmissionService(store, &fakeProjects{projects: map[uint]*model.Project{}}, lessons, progress)

	submission, err := svc.SubmitActivity(7, 104, ActivitySubmissionRequest{Content: "a decent summary of the module"})
	require.NoError(t, err)

	_, err = svc.Review(3, submission.ID, ReviewRequest{
		Status:   model.SubmissionApproved,
		Feedback: "well written",
		Grade:    85,
	})
	require.NoError(t, err)

	overall, err := progress.Overall(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, overall.CompletedLessons)
	assert.Equal(t, 25, overall.OverallProgress) // 1 of 4 lessons
}

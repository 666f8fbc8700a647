package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/util"
	"bootcamp_lms_backend/pkg/monitoring"
	"errors"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SubmissionStore persists submissions and encodes the "current submission"
// selection rule (most recent by submitted_at).
type SubmissionStore interface {
	Create(submission *model.Submission) error
	ByID(id uint) (*model.Submission, error)
	SaveReview(submission *model.Submission) error
	ListForProject(userID, projectID uint) ([]model.Submission, error)
	CurrentForProject(userID, projectID uint) (*model.Submission, error)
	ListQueue(status, kind string, page, limit int) ([]model.Submission, int64, error)
}

// ProjectReader resolves project ids.
type ProjectReader interface {
	ByID(id uint) (*model.Project, error)
}

type SubmissionService struct {
	store    SubmissionStore
	projects ProjectReader
	lessons  LessonReader
	progress *ProgressService
}

func NewSubmissionService(store SubmissionStore, projects ProjectReader, lessons LessonReader, progress *ProgressService) *SubmissionService {
	return &SubmissionService{
		store:    store,
		projects: projects,
		lessons:  lessons,
		progress: progress,
	}
}

type ProjectSubmissionRequest struct {
	GithubURL string `json:"githubUrl"`
	Notes     string `json:"notes"`
}

// SubmitProject creates a fresh pending submission. Prior submissions are
// never overwritten; resubmission after rejection is a new record.
func (s *SubmissionService) SubmitProject(userID, projectID uint, req ProjectSubmissionRequest) (*model.Submission, error) {
	project, err := s.projects.ByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProjectNotFound
		}
		return nil, err
	}

	gate, err := s.progress.Gate(userID, project.ModuleID)
	if err != nil {
		return nil, err
	}
	if gate.Locked {
		return nil, &util.LockedError{
			CompletedLessons: gate.CompletedLessons,
			TotalLessons:     gate.TotalLessons,
		}
	}

	if project.GithubRequired {
		if strings.TrimSpace(req.GithubURL) == "" {
			return nil, util.NewValidationError("githubUrl", "a GitHub link is required for this project")
		}
	}
	if req.GithubURL != "" {
		if u, err := url.ParseRequestURI(req.GithubURL); err != nil || u.Scheme == "" || u.Host == "" {
			return nil, util.NewValidationError("githubUrl", "must be a valid URL")
		}
	}

	submission := &model.Submission{
		UserID:      userID,
		TargetKind:  model.TargetProject,
		ProjectID:   &projectID,
		Status:      model.SubmissionPending,
		GithubURL:   req.GithubURL,
		Content:     req.Notes,
		SubmittedAt: time.Now(),
	}
	if err := s.store.Create(submission); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(string(model.TargetProject)).Inc()
	return submission, nil
}

type ActivitySubmissionRequest struct {
	Content       string `json:"content"`
	AttachmentURL string `json:"attachmentUrl"`
}

// SubmitActivity queues a lesson activity for instructor review, enforcing
// the activity's word-count bounds when set.
func (s *SubmissionService) SubmitActivity(userID, lessonID uint, req ActivitySubmissionRequest) (*model.Submission, error) {
	lesson, err := s.lessons.ByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if lesson.Type != model.LessonActivity || lesson.Activity == nil {
		return nil, util.NewValidationError("lessonId", "lesson has no activity")
	}

	words := len(strings.Fields(req.Content))
	if words == 0 {
		return nil, util.NewValidationError("content", "submission content is required")
	}
	if min := lesson.Activity.MinWords; min != nil && words < *min {
		return nil, util.NewValidationError("content", "submission is shorter than the required word count")
	}
	if max := lesson.Activity.MaxWords; max != nil && words > *max {
		return nil, util.NewValidationError("content", "submission exceeds the allowed word count")
	}

	submission := &model.Submission{
		UserID:        userID,
		TargetKind:    model.TargetLesson,
		LessonID:      &lessonID,
		Status:        model.SubmissionPending,
		Content:       req.Content,
		AttachmentURL: req.AttachmentURL,
		SubmittedAt:   time.Now(),
	}
	if err := s.store.Create(submission); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(string(model.TargetLesson)).Inc()
	return submission, nil
}

type ReviewRequest struct {
	Status   model.SubmissionStatus `json:"status"`
	Feedback string                 `json:"feedback"`
	Grade    int                    `json:"grade"`
}

// Review moves a pending/in_review submission to a terminal state. Terminal
// submissions never move back; re-reviewing with the same terminal status is
// a no-op apart from re-asserting the idempotent project credit.
func (s *SubmissionService) Review(reviewerID, submissionID uint, req ReviewRequest) (*model.Submission, error) {
	if req.Status != model.SubmissionApproved && req.Status != model.SubmissionRejected {
		return nil, util.NewValidationError("status", "must be approved or rejected")
	}
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, util.NewValidationError("feedback", "feedback is required")
	}
	if req.Grade < 0 || req.Grade > 100 {
		return nil, util.NewValidationError("grade", "must be between 0 and 100")
	}

	submission, err := s.store.ByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	if submission.Status.Terminal() {
		if submission.Status != req.Status {
			return nil, util.ErrSubmissionFinal
		}
		if submission.Status == model.SubmissionApproved {
			if err := s.credit(submission); err != nil {
				return nil, err
			}
		}
		return submission, nil
	}

	now := time.Now()
	grade := req.Grade
	submission.Status = req.Status
	submission.Feedback = req.Feedback
	submission.Grade = &grade
	submission.ReviewedBy = &reviewerID
	submission.ReviewedAt = &now

	if err := s.store.SaveReview(submission); err != nil {
		return nil, err
	}

	if req.Status == model.SubmissionApproved {
		if err := s.credit(submission); err != nil {
			return nil, err
		}
	}

	monitoring.ReviewCounter.WithLabelValues(string(req.Status)).Inc()
	return submission, nil
}

// credit propagates an approval into the student's progress: project
// approvals join the completed-project set, activity approvals complete the
// lesson.
func (s *SubmissionService) credit(submission *model.Submission) error {
	switch submission.TargetKind {
	case model.TargetProject:
		project, err := s.projects.ByID(*submission.ProjectID)
		if err != nil {
			return err
		}
		return s.progress.CreditProject(submission.UserID, project.ID, project.ModuleID)
	case model.TargetLesson:
		_, err := s.progress.MarkLessonComplete(submission.UserID, *submission.LessonID)
		return err
	}
	return nil
}

// MarkInReview claims a pending submission for grading. Terminal states are
// left alone.
func (s *SubmissionService) MarkInReview(submissionID uint) (*model.Submission, error) {
	submission, err := s.store.ByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	if submission.Status.Terminal() {
		return nil, util.ErrSubmissionFinal
	}
	if submission.Status == model.SubmissionInReview {
		return submission, nil
	}

	submission.Status = model.SubmissionInReview
	if err := s.store.SaveReview(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *SubmissionService) HistoryForProject(userID, projectID uint) ([]model.Submission, error) {
	if _, err := s.projects.ByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProjectNotFound
		}
		return nil, err
	}
	return s.store.ListForProject(userID, projectID)
}

func (s *SubmissionService) Queue(status, kind string, page, limit int) ([]model.Submission, int64, error) {
	return s.store.ListQueue(status, kind, page, limit)
}

func (s *SubmissionService) ByID(id uint) (*model.Submission, error) {
	submission, err := s.store.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return submission, nil
}

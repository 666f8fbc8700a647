package service

import (
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/internal/util"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// QuizService grades quiz attempts synchronously against the stored answer
// key. A passing attempt completes the lesson; completion is never revoked
// by a later failing attempt.
type QuizService struct {
	lessons  LessonReader
	store    SubmissionStore
	progress *ProgressService
}

func NewQuizService(lessons LessonReader, store SubmissionStore, progress *ProgressService) *QuizService {
	return &QuizService{
		lessons:  lessons,
		store:    store,
		progress: progress,
	}
}

type QuizAttemptRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

type QuestionResult struct {
	QuestionID    uint   `json:"questionId"`
	Correct       bool   `json:"correct"`
	CorrectOption int    `json:"correctOption"`
	Explanation   string `json:"explanation,omitempty"`
}

type QuizAttemptResult struct {
	Score        int              `json:"score"`
	PassingScore int              `json:"passingScore"`
	Passed       bool             `json:"passed"`
	Questions    []QuestionResult `json:"questions"`
	SubmissionID uint             `json:"submissionId"`
}

func (s *QuizService) SubmitAttempt(userID, lessonID uint, req QuizAttemptRequest) (*QuizAttemptResult, error) {
	lesson, err := s.lessons.ByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if lesson.Type != model.LessonQuiz || lesson.Quiz == nil {
		return nil, util.NewValidationError("lessonId", "lesson has no quiz")
	}

	quiz := lesson.Quiz
	if len(req.Answers) != len(quiz.Questions) {
		return nil, util.NewValidationError("answers",
			fmt.Sprintf("expected %d answers, got %d", len(quiz.Questions), len(req.Answers)))
	}

	result := grade(quiz, req.Answers)

	status := model.SubmissionRejected
	feedback := fmt.Sprintf("Automatically graded: %d%% (passing score %d%%)", result.Score, result.PassingScore)
	if result.Passed {
		status = model.SubmissionApproved
	}

	score := result.Score
	submission := &model.Submission{
		UserID:      userID,
		TargetKind:  model.TargetLesson,
		LessonID:    &lessonID,
		Status:      status,
		Grade:       &score,
		Feedback:    feedback,
		SubmittedAt: time.Now(),
	}
	if err := s.store.Create(submission); err != nil {
		return nil, err
	}
	result.SubmissionID = submission.ID

	// Completion is a follow-up write, not part of the submission insert.
	// It is idempotent, so if it fails here the student retries the quiz
	// and a re-pass converges on the same state.
	if result.Passed {
		if _, err := s.progress.MarkLessonComplete(userID, lessonID); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func grade(quiz *model.Quiz, answers []int) *QuizAttemptResult {
	passingScore := quiz.PassingScore
	if passingScore <= 0 {
		passingScore = model.DefaultPassingScore
	}

	correct := 0
	questions := make([]QuestionResult, len(quiz.Questions))
	for i, q := range quiz.Questions {
		ok := answers[i] == q.CorrectOption
		if ok {
			correct++
		}
		questions[i] = QuestionResult{
			QuestionID:    q.ID,
			Correct:       ok,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
		}
	}

	score := percentage(correct, len(quiz.Questions))
	return &QuizAttemptResult{
		Score:        score,
		PassingScore: passingScore,
		Passed:       score >= passingScore,
		Questions:    questions,
	}
}

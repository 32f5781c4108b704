package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sinataee/ielts-reading-app/internal/cache"
	"github.com/sinataee/ielts-reading-app/internal/domain"
	"github.com/sinataee/ielts-reading-app/internal/dto"
	"github.com/sinataee/ielts-reading-app/internal/evaluation"
	"github.com/sinataee/ielts-reading-app/internal/logger"
	"github.com/sinataee/ielts-reading-app/internal/session"
	"github.com/sinataee/ielts-reading-app/internal/util"

	"go.uber.org/zap"
)

// ExamService defines the exam-session operations exposed to the
// presentation layer. The service owns a registry of live sessions; all
// exam-lifetime mutable state lives inside each session.
type ExamService interface {
	CreateExam(ctx context.Context, packageID string) (*dto.ExamResponse, error)
	StartExam(sessionID string) (*dto.ExamResponse, error)
	PauseExam(sessionID string) (*dto.ExamResponse, error)
	ResumeExam(sessionID string) (*dto.ExamResponse, error)
	RecordAnswer(sessionID string, req *dto.RecordAnswerRequest) error
	RecordHighlight(sessionID string, req *dto.RecordHighlightRequest) error
	EndExam(sessionID string) (*dto.ExamResponse, error)
	GetExam(sessionID string) (*dto.ExamResponse, error)
	GetResult(ctx context.Context, sessionID string) (*dto.EvaluationReport, error)
}

// examService implements ExamService.
type examService struct {
	store        domain.PackageStore
	attempts     domain.AttemptRepository
	reportCache  domain.Cache
	examDuration time.Duration
	cacheTTL     time.Duration

	mu           sync.Mutex
	sessions     map[string]*session.ExamSession
	attemptSaved map[string]bool
}

// NewExamService creates a new instance of examService. The attempt
// repository and cache are optional; a nil cache disables report caching.
func NewExamService(store domain.PackageStore, attempts domain.AttemptRepository, reportCache domain.Cache, examDuration, cacheTTL time.Duration) ExamService {
	if examDuration <= 0 {
		examDuration = session.DefaultDuration
	}
	return &examService{
		store:        store,
		attempts:     attempts,
		reportCache:  reportCache,
		examDuration: examDuration,
		cacheTTL:     cacheTTL,
		sessions:     make(map[string]*session.ExamSession),
		attemptSaved: make(map[string]bool),
	}
}

// CreateExam loads the package and registers an idle session over it.
func (s *examService) CreateExam(ctx context.Context, packageID string) (*dto.ExamResponse, error) {
	pkg, err := s.store.Load(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	sess := session.New(util.NewULID(), pkg, logger.Get(), session.WithDuration(s.examDuration))

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	logger.Get().Info("Exam session created",
		zap.String("session_id", sess.ID()),
		zap.String("package_id", packageID),
	)
	return toExamResponse(sess), nil
}

func (s *examService) lookup(sessionID string) (*session.ExamSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return sess, nil
}

// StartExam begins the countdown. Idempotent once started.
func (s *examService) StartExam(sessionID string) (*dto.ExamResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Start()
	return toExamResponse(sess), nil
}

// PauseExam freezes the countdown.
func (s *examService) PauseExam(sessionID string) (*dto.ExamResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Pause()
	return toExamResponse(sess), nil
}

// ResumeExam continues a paused countdown.
func (s *examService) ResumeExam(sessionID string) (*dto.ExamResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Resume()
	return toExamResponse(sess), nil
}

// RecordAnswer forwards the candidate's answer to the session.
func (s *examService) RecordAnswer(sessionID string, req *dto.RecordAnswerRequest) error {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	return sess.RecordAnswer(req.QuestionID, req.Answer)
}

// RecordHighlight appends a highlight action to the session's audit log.
func (s *examService) RecordHighlight(sessionID string, req *dto.RecordHighlightRequest) error {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	return sess.RecordHighlight(req.SelectionRange, req.Color)
}

// EndExam submits the exam manually. If the timer already ended the session
// the original timeout reason stands.
func (s *examService) EndExam(sessionID string) (*dto.ExamResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.End(session.EndReasonManual); err != nil {
		return nil, err
	}
	return toExamResponse(sess), nil
}

// GetExam reports the session's observable state.
func (s *examService) GetExam(sessionID string) (*dto.ExamResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return toExamResponse(sess), nil
}

// GetResult evaluates an ended session's snapshot and exports the report.
// Reports are cached per session; the underlying snapshot is immutable, so
// repeated calls always replay the same result. The first evaluation after
// the session ends also records the attempt in history.
func (s *examService) GetResult(ctx context.Context, sessionID string) (*dto.EvaluationReport, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State() != session.StateEnded {
		return nil, domain.NewInvalidSessionStateError("cannot evaluate a session that has not ended")
	}

	cacheKey := cache.GenerateCacheKey("exam", "report", sessionID)
	if s.reportCache != nil {
		if cached, err := s.reportCache.Get(ctx, cacheKey); err == nil {
			var report dto.EvaluationReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				return &report, nil
			}
			logger.Get().Warn("Discarding malformed cached report", zap.String("session_id", sessionID))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Error("Report cache read failed", zap.Error(err), zap.String("session_id", sessionID))
		}
	}

	pkg := sess.Package()
	result := evaluation.Evaluate(pkg, sess.Snapshot())
	report := buildReport(sess, pkg, result)

	s.recordAttempt(ctx, sess, result)

	if s.reportCache != nil {
		if encoded, err := json.Marshal(report); err == nil {
			if err := s.reportCache.Set(ctx, cacheKey, string(encoded), s.cacheTTL); err != nil {
				logger.Get().Error("Report cache write failed", zap.Error(err), zap.String("session_id", sessionID))
			}
		}
	}

	return report, nil
}

// recordAttempt persists the attempt row exactly once per session. A
// persistence failure is logged, not surfaced: the report itself is the
// caller's result and must not depend on history bookkeeping.
func (s *examService) recordAttempt(ctx context.Context, sess *session.ExamSession, result *domain.EvaluationResult) {
	if s.attempts == nil {
		return
	}

	s.mu.Lock()
	if s.attemptSaved[sess.ID()] {
		s.mu.Unlock()
		return
	}
	s.attemptSaved[sess.ID()] = true
	s.mu.Unlock()

	attempt := &domain.ExamAttempt{
		SessionID:       sess.ID(),
		PackageID:       sess.Package().PackageID,
		CorrectCount:    result.CorrectCount,
		IncorrectCount:  result.IncorrectCount,
		UnansweredCount: result.UnansweredCount,
		TotalQuestions:  result.TotalQuestions,
		BandScore:       result.BandScore,
		EndReason:       string(sess.Reason()),
		StartedAt:       sess.StartedAt(),
		EndedAt:         sess.EndedAt(),
	}
	if err := s.attempts.SaveAttempt(ctx, attempt); err != nil {
		logger.Get().Error("Failed to record exam attempt",
			zap.Error(err),
			zap.String("session_id", sess.ID()),
		)
	}
}

func buildReport(sess *session.ExamSession, pkg *domain.ReadingPackage, result *domain.EvaluationResult) *dto.EvaluationReport {
	feedback := make([]dto.FeedbackItemResponse, 0, len(result.PerQuestionFeedback))
	for _, fb := range result.PerQuestionFeedback {
		feedback = append(feedback, dto.FeedbackItemResponse{
			QuestionID:    fb.QuestionID,
			IsCorrect:     fb.IsCorrect,
			CorrectAnswer: fb.CorrectAnswer,
			UserAnswer:    fb.UserAnswer,
		})
	}
	return &dto.EvaluationReport{
		SessionID:           sess.ID(),
		PackageID:           pkg.PackageID,
		CorrectCount:        result.CorrectCount,
		IncorrectCount:      result.IncorrectCount,
		UnansweredCount:     result.UnansweredCount,
		TotalQuestions:      result.TotalQuestions,
		BandScore:           result.BandScore,
		Interpretation:      evaluation.BandInterpretation(result.BandScore),
		EndReason:           string(sess.Reason()),
		PerQuestionFeedback: feedback,
		TypeStatistics:      evaluation.StatisticsByType(pkg, result),
	}
}

func toExamResponse(sess *session.ExamSession) *dto.ExamResponse {
	return &dto.ExamResponse{
		SessionID:        sess.ID(),
		PackageID:        sess.Package().PackageID,
		State:            string(sess.State()),
		RemainingSeconds: sess.Remaining(),
		EndReason:        string(sess.Reason()),
	}
}

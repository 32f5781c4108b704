// Package session owns all mutable state of one exam attempt: the answer and
// highlight records, the countdown timer, and the Idle/Running/Paused/Ended
// state machine. Every transition and mutation is serialized behind a single
// mutex, so the interactive caller and the timer goroutine never race.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/sinataee/ielts-reading-app/internal/domain"

	"go.uber.org/zap"
)

// State is the lifecycle phase of an exam session.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateEnded   State = "ended"
)

// EndReason records which actor ended the session.
type EndReason string

const (
	EndReasonManual  EndReason = "manual"
	EndReasonTimeout EndReason = "timeout"
)

// DefaultDuration is the standard exam length.
const DefaultDuration = 3600 * time.Second

// ExamSession orchestrates one exam attempt over a loaded package.
type ExamSession struct {
	id     string
	pkg    *domain.ReadingPackage
	logger *zap.Logger
	tick   time.Duration

	mu         sync.Mutex
	state      State
	remaining  int // seconds, decremented only while running
	reason     EndReason
	records    map[string]*domain.AnswerRecord
	order      []string
	highlights []domain.HighlightRecord
	snapshot   []*domain.AnswerRecord
	startedAt  time.Time
	endedAt    time.Time
	done       chan struct{}
}

// Option configures a session at construction time.
type Option func(*ExamSession)

// WithDuration overrides the default exam duration.
func WithDuration(d time.Duration) Option {
	return func(s *ExamSession) {
		s.remaining = int(d / time.Second)
	}
}

// withTickInterval shortens the timer tick. Tests only; the exam clock
// decrements one second per tick regardless of the real interval.
func withTickInterval(interval time.Duration) Option {
	return func(s *ExamSession) {
		s.tick = interval
	}
}

// New creates an idle session for the package. The timer does not run until
// Start is called.
func New(id string, pkg *domain.ReadingPackage, logger *zap.Logger, opts ...Option) *ExamSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExamSession{
		id:        id,
		pkg:       pkg,
		logger:    logger,
		tick:      time.Second,
		state:     StateIdle,
		remaining: int(DefaultDuration / time.Second),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *ExamSession) ID() string { return s.id }

// Package returns the package under examination.
func (s *ExamSession) Package() *domain.ReadingPackage { return s.pkg }

// Start transitions Idle to Running: one AnswerRecord per question is
// created unanswered and the countdown begins. Calling Start while already
// Running, Paused or Ended is a no-op.
func (s *ExamSession) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return
	}

	s.records = make(map[string]*domain.AnswerRecord)
	s.order = s.order[:0]
	for _, q := range s.pkg.AllQuestions() {
		s.records[q.QuestionID] = domain.NewAnswerRecord(q.QuestionID)
		s.order = append(s.order, q.QuestionID)
	}
	s.state = StateRunning
	s.startedAt = time.Now()
	go s.runTimer()

	s.logger.Info("Exam session started",
		zap.String("session_id", s.id),
		zap.String("package_id", s.pkg.PackageID),
		zap.Int("remaining_seconds", s.remaining),
	)
}

// runTimer decrements the remaining time once per tick while the session is
// Running. The goroutine stops the moment the session ends, whoever ends it.
func (s *ExamSession) runTimer() {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if s.onTick() {
				return
			}
		}
	}
}

// onTick advances the countdown. It reports true once the session has ended
// so the timer goroutine can exit without waiting on the done channel.
func (s *ExamSession) onTick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEnded {
		return true
	}
	if s.state != StateRunning {
		return false
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.endLocked(EndReasonTimeout)
		return true
	}
	return false
}

// Pause freezes the countdown. A no-op unless Running.
func (s *ExamSession) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return
	}
	s.state = StatePaused
	s.logger.Info("Exam session paused", zap.String("session_id", s.id), zap.Int("remaining_seconds", s.remaining))
}

// Resume continues the countdown with the remaining time unchanged. A no-op
// unless Paused.
func (s *ExamSession) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePaused {
		return
	}
	s.state = StateRunning
	s.logger.Info("Exam session resumed", zap.String("session_id", s.id), zap.Int("remaining_seconds", s.remaining))
}

// RecordAnswer overwrites the question's answer record and refreshes its
// timestamp. Legal only while Running or Paused.
func (s *ExamSession) RecordAnswer(questionID, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning && s.state != StatePaused {
		return domain.NewInvalidSessionStateError(fmt.Sprintf("cannot record answer while session is %s", s.state))
	}
	rec, ok := s.records[questionID]
	if !ok {
		return domain.NewValidationFailedError("unknown question id: " + questionID)
	}
	rec.UserAnswer = &answer
	rec.Timestamp = time.Now()
	return nil
}

// RecordHighlight appends to the highlight audit log. A nil color means the
// candidate removed a highlight; the removal is logged as its own record.
// Legal only while Running or Paused.
func (s *ExamSession) RecordHighlight(selectionRange string, color *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning && s.state != StatePaused {
		return domain.NewInvalidSessionStateError(fmt.Sprintf("cannot record highlight while session is %s", s.state))
	}
	rec := domain.HighlightRecord{
		SelectionRange: selectionRange,
		Timestamp:      time.Now(),
	}
	if color == nil || *color == "" {
		rec.Removal = true
	} else {
		rec.Color = *color
	}
	s.highlights = append(s.highlights, rec)
	return nil
}

// End transitions to Ended from Running or Paused, freezing the timer and
// snapshotting the answer records. Ending an Idle session is rejected;
// ending an already Ended session is a no-op and the original reason stands.
func (s *ExamSession) End(reason EndReason) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateIdle:
		return domain.NewInvalidSessionStateError("cannot end a session that has not started")
	case StateEnded:
		return nil
	}
	s.endLocked(reason)
	return nil
}

// endLocked performs the terminal transition. The state check in every
// caller makes this the single gate: whichever actor reaches it first wins
// the race and the reason is recorded exactly once.
func (s *ExamSession) endLocked(reason EndReason) {
	s.state = StateEnded
	s.reason = reason
	s.endedAt = time.Now()
	close(s.done)

	s.snapshot = make([]*domain.AnswerRecord, 0, len(s.order))
	for _, qid := range s.order {
		rec := *s.records[qid]
		s.snapshot = append(s.snapshot, &rec)
	}

	s.logger.Info("Exam session ended",
		zap.String("session_id", s.id),
		zap.String("reason", string(reason)),
		zap.Int("remaining_seconds", s.remaining),
	)
}

// State returns the current lifecycle phase.
func (s *ExamSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining returns the countdown value in seconds.
func (s *ExamSession) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Reason returns the recorded end reason, empty until the session ends.
func (s *ExamSession) Reason() EndReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// StartedAt returns when the session started, zero while Idle.
func (s *ExamSession) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// EndedAt returns when the session ended, zero until Ended.
func (s *ExamSession) EndedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}

// Snapshot returns the answer records. After the session has ended this is
// the immutable end-of-exam snapshot and every call replays the same data;
// before that it is a point-in-time copy.
func (s *ExamSession) Snapshot() []*domain.AnswerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEnded {
		out := make([]*domain.AnswerRecord, 0, len(s.snapshot))
		for _, rec := range s.snapshot {
			c := *rec
			out = append(out, &c)
		}
		return out
	}
	out := make([]*domain.AnswerRecord, 0, len(s.order))
	for _, qid := range s.order {
		rec := *s.records[qid]
		out = append(out, &rec)
	}
	return out
}

// Highlights returns a copy of the highlight audit log.
func (s *ExamSession) Highlights() []domain.HighlightRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HighlightRecord, len(s.highlights))
	copy(out, s.highlights)
	return out
}

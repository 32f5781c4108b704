package repository

import (
	"context"
	"time"

	"github.com/sinataee/ielts-reading-app/internal/domain"
	"github.com/sinataee/ielts-reading-app/internal/repository/models"
	"github.com/sinataee/ielts-reading-app/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.ExamAttempt) *domain.ExamAttempt {
	if m == nil {
		return nil
	}
	return &domain.ExamAttempt{
		ID:              m.ID,
		SessionID:       m.SessionID,
		PackageID:       m.PackageID,
		CorrectCount:    m.CorrectCount,
		IncorrectCount:  m.IncorrectCount,
		UnansweredCount: m.UnansweredCount,
		TotalQuestions:  m.TotalQuestions,
		BandScore:       m.BandScore,
		EndReason:       m.EndReason,
		StartedAt:       m.StartedAt,
		EndedAt:         m.EndedAt,
	}
}

func fromDomainAttempt(a *domain.ExamAttempt) *models.ExamAttempt {
	if a == nil {
		return nil
	}
	return &models.ExamAttempt{
		ID:              a.ID,
		SessionID:       a.SessionID,
		PackageID:       a.PackageID,
		CorrectCount:    a.CorrectCount,
		IncorrectCount:  a.IncorrectCount,
		UnansweredCount: a.UnansweredCount,
		TotalQuestions:  a.TotalQuestions,
		BandScore:       a.BandScore,
		EndReason:       a.EndReason,
		StartedAt:       a.StartedAt,
		EndedAt:         a.EndedAt,
		CreatedAt:       time.Now(),
	}
}

const insertAttemptQuery = `INSERT INTO exam_attempts (
	id, session_id, package_id, correct_count, incorrect_count,
	unanswered_count, total_questions, band_score, end_reason,
	started_at, ended_at, created_at
) VALUES (
	:id, :session_id, :package_id, :correct_count, :incorrect_count,
	:unanswered_count, :total_questions, :band_score, :end_reason,
	:started_at, :ended_at, :created_at
)`

// SaveAttempt persists one ended session's evaluation outcome.
func (r *sqlxAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.ExamAttempt) error {
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	model := fromDomainAttempt(attempt)
	if _, err := r.db.NamedExecContext(ctx, insertAttemptQuery, model); err != nil {
		return domain.NewPersistenceError("failed to save exam attempt", err)
	}
	return nil
}

// GetAttemptsByPackage returns attempts for a package, newest first.
func (r *sqlxAttemptRepository) GetAttemptsByPackage(ctx context.Context, packageID string) ([]*domain.ExamAttempt, error) {
	query := `SELECT id, session_id, package_id, correct_count, incorrect_count,
		unanswered_count, total_questions, band_score, end_reason,
		started_at, ended_at, created_at
	FROM exam_attempts WHERE package_id = ? ORDER BY ended_at DESC`

	var rows []models.ExamAttempt
	if err := r.db.SelectContext(ctx, &rows, query, packageID); err != nil {
		return nil, domain.NewPersistenceError("failed to load exam attempts", err)
	}

	attempts := make([]*domain.ExamAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainAttempt(&rows[i]))
	}
	return attempts, nil
}

package domain

import (
	"context"
	"time"
)

// PackageStore defines the interface for reading-package persistence.
// Implementations persist packages as opaque units; a load after save must
// reproduce every field verbatim, including created_at.
type PackageStore interface {
	// Save persists the package under its package ID.
	Save(ctx context.Context, pkg *ReadingPackage) error

	// Load retrieves a package by ID.
	Load(ctx context.Context, packageID string) (*ReadingPackage, error)

	// List returns every stored package.
	List(ctx context.Context) ([]*ReadingPackage, error)
}

// ExamAttempt is one completed exam session's outcome, kept for history.
type ExamAttempt struct {
	ID              string
	SessionID       string
	PackageID       string
	CorrectCount    int
	IncorrectCount  int
	UnansweredCount int
	TotalQuestions  int
	BandScore       float64
	EndReason       string
	StartedAt       time.Time
	EndedAt         time.Time
}

// AttemptRepository defines the interface for attempt-history persistence.
type AttemptRepository interface {
	// SaveAttempt persists one ended session's evaluation outcome.
	SaveAttempt(ctx context.Context, attempt *ExamAttempt) error

	// GetAttemptsByPackage returns attempts for a package, newest first.
	GetAttemptsByPackage(ctx context.Context, packageID string) ([]*ExamAttempt, error)
}

// Cache is the port for the evaluation-report cache.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

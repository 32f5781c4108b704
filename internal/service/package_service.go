package service

import (
	"context"

	"github.com/sinataee/ielts-reading-app/internal/domain"
	"github.com/sinataee/ielts-reading-app/internal/dto"
	"github.com/sinataee/ielts-reading-app/internal/logger"
	"github.com/sinataee/ielts-reading-app/internal/util"

	"go.uber.org/zap"
)

// PackageService defines the authoring operations over reading packages.
type PackageService interface {
	CreatePackage(ctx context.Context, req *dto.CreatePackageRequest) (*dto.PackageResponse, error)
	GetPackage(ctx context.Context, packageID string) (*domain.ReadingPackage, error)
	ListPackages(ctx context.Context) ([]*dto.PackageResponse, error)
}

// packageService implements PackageService over a PackageStore.
type packageService struct {
	store domain.PackageStore
}

// NewPackageService creates a new instance of packageService.
func NewPackageService(store domain.PackageStore) PackageService {
	return &packageService{store: store}
}

// CreatePackage validates the authoring input, assembles a package with a
// fresh identifier, and persists it. Question groups are built through the
// domain constructor, so blank questions are excluded and the 2-10 bound
// enforced before anything touches disk.
func (s *packageService) CreatePackage(ctx context.Context, req *dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	if req.Title == "" {
		return nil, domain.NewValidationFailedError("package title is required")
	}
	if len(req.QuestionGroups) == 0 {
		return nil, domain.NewValidationFailedError("at least one question group is required")
	}

	pkg := domain.NewReadingPackage(util.NewULID())
	pkg.ReadingContent = domain.ReadingContent{
		Explanation: req.Explanation,
		Title:       req.Title,
	}
	for _, p := range req.Paragraphs {
		pkg.ReadingContent.Paragraphs = append(pkg.ReadingContent.Paragraphs, domain.Paragraph{
			Title: p.Title,
			Body:  p.Body,
		})
	}

	for _, g := range req.QuestionGroups {
		qt, err := domain.ParseQuestionType(g.Type)
		if err != nil {
			return nil, err
		}
		inputs := make([]domain.QuestionInput, 0, len(g.Questions))
		for _, q := range g.Questions {
			inputs = append(inputs, domain.QuestionInput{Text: q.Text, Answer: q.Answer})
		}
		var ai *domain.AdditionalInput
		if g.AdditionalData != nil {
			ai = domain.NewAdditionalInput(qt, *g.AdditionalData)
		}
		group, err := domain.NewQuestionGroup(g.Explanation, qt, inputs, ai)
		if err != nil {
			return nil, err
		}
		if err := pkg.AppendGroup(group); err != nil {
			return nil, err
		}
	}

	if err := s.store.Save(ctx, pkg); err != nil {
		return nil, err
	}

	logger.Get().Info("Package created",
		zap.String("package_id", pkg.PackageID),
		zap.String("title", pkg.ReadingContent.Title),
		zap.Int("groups", len(pkg.QuestionGroups)),
		zap.Int("questions", pkg.TotalQuestions()),
	)

	return toPackageResponse(pkg), nil
}

// GetPackage loads one package by ID.
func (s *packageService) GetPackage(ctx context.Context, packageID string) (*domain.ReadingPackage, error) {
	return s.store.Load(ctx, packageID)
}

// ListPackages summarizes every stored package, newest first.
func (s *packageService) ListPackages(ctx context.Context) ([]*dto.PackageResponse, error) {
	packages, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		responses = append(responses, toPackageResponse(pkg))
	}
	return responses, nil
}

func toPackageResponse(pkg *domain.ReadingPackage) *dto.PackageResponse {
	return &dto.PackageResponse{
		PackageID:      pkg.PackageID,
		Title:          pkg.ReadingContent.Title,
		GroupCount:     len(pkg.QuestionGroups),
		TotalQuestions: pkg.TotalQuestions(),
		CreatedAt:      pkg.CreatedAt,
	}
}

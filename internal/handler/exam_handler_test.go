package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sinataee/ielts-reading-app/internal/domain"
	"github.com/sinataee/ielts-reading-app/internal/dto"
	"github.com/sinataee/ielts-reading-app/internal/handler"
	"github.com/sinataee/ielts-reading-app/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockExamService
type MockExamService struct {
	CreateExamFunc      func(ctx context.Context, packageID string) (*dto.ExamResponse, error)
	StartExamFunc       func(sessionID string) (*dto.ExamResponse, error)
	PauseExamFunc       func(sessionID string) (*dto.ExamResponse, error)
	ResumeExamFunc      func(sessionID string) (*dto.ExamResponse, error)
	RecordAnswerFunc    func(sessionID string, req *dto.RecordAnswerRequest) error
	RecordHighlightFunc func(sessionID string, req *dto.RecordHighlightRequest) error
	EndExamFunc         func(sessionID string) (*dto.ExamResponse, error)
	GetExamFunc         func(sessionID string) (*dto.ExamResponse, error)
	GetResultFunc       func(ctx context.Context, sessionID string) (*dto.EvaluationReport, error)
}

func (m *MockExamService) CreateExam(ctx context.Context, packageID string) (*dto.ExamResponse, error) {
	if m.CreateExamFunc != nil {
		return m.CreateExamFunc(ctx, packageID)
	}
	panic("MockExamService.CreateExamFunc not implemented")
}
func (m *MockExamService) StartExam(sessionID string) (*dto.ExamResponse, error) {
	if m.StartExamFunc != nil {
		return m.StartExamFunc(sessionID)
	}
	panic("MockExamService.StartExamFunc not implemented")
}
func (m *MockExamService) PauseExam(sessionID string) (*dto.ExamResponse, error) {
	if m.PauseExamFunc != nil {
		return m.PauseExamFunc(sessionID)
	}
	panic("MockExamService.PauseExamFunc not implemented")
}
func (m *MockExamService) ResumeExam(sessionID string) (*dto.ExamResponse, error) {
	if m.ResumeExamFunc != nil {
		return m.ResumeExamFunc(sessionID)
	}
	panic("MockExamService.ResumeExamFunc not implemented")
}
func (m *MockExamService) RecordAnswer(sessionID string, req *dto.RecordAnswerRequest) error {
	if m.RecordAnswerFunc != nil {
		return m.RecordAnswerFunc(sessionID, req)
	}
	panic("MockExamService.RecordAnswerFunc not implemented")
}
func (m *MockExamService) RecordHighlight(sessionID string, req *dto.RecordHighlightRequest) error {
	if m.RecordHighlightFunc != nil {
		return m.RecordHighlightFunc(sessionID, req)
	}
	panic("MockExamService.RecordHighlightFunc not implemented")
}
func (m *MockExamService) EndExam(sessionID string) (*dto.ExamResponse, error) {
	if m.EndExamFunc != nil {
		return m.EndExamFunc(sessionID)
	}
	panic("MockExamService.EndExamFunc not implemented")
}
func (m *MockExamService) GetExam(sessionID string) (*dto.ExamResponse, error) {
	if m.GetExamFunc != nil {
		return m.GetExamFunc(sessionID)
	}
	panic("MockExamService.GetExamFunc not implemented")
}
func (m *MockExamService) GetResult(ctx context.Context, sessionID string) (*dto.EvaluationReport, error) {
	if m.GetResultFunc != nil {
		return m.GetResultFunc(ctx, sessionID)
	}
	panic("MockExamService.GetResultFunc not implemented")
}

func setupExamApp(svc *MockExamService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewExamHandler(svc)
	api := app.Group("/api")
	api.Post("/exams", h.CreateExam)
	api.Get("/exams/:id", h.GetExam)
	api.Post("/exams/:id/start", h.StartExam)
	api.Post("/exams/:id/pause", h.PauseExam)
	api.Post("/exams/:id/resume", h.ResumeExam)
	api.Post("/exams/:id/answers", h.RecordAnswer)
	api.Post("/exams/:id/highlights", h.RecordHighlight)
	api.Post("/exams/:id/end", h.EndExam)
	api.Get("/exams/:id/result", h.GetResult)
	return app
}

const testULID = "01ARZ3NDEKTSV4RRFFQ69G5FAV"

func TestCreateExamHandler(t *testing.T) {
	svc := &MockExamService{
		CreateExamFunc: func(ctx context.Context, packageID string) (*dto.ExamResponse, error) {
			return &dto.ExamResponse{SessionID: "sess1", PackageID: packageID, State: "idle", RemainingSeconds: 3600}, nil
		},
	}
	app := setupExamApp(svc)

	body, _ := json.Marshal(dto.CreateExamRequest{PackageID: testULID})
	req := httptest.NewRequest("POST", "/api/exams", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var exam dto.ExamResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&exam))
	assert.Equal(t, "sess1", exam.SessionID)
	assert.Equal(t, "idle", exam.State)
}

func TestCreateExamHandler_ValidationError(t *testing.T) {
	app := setupExamApp(&MockExamService{})

	body, _ := json.Marshal(dto.CreateExamRequest{PackageID: "not-a-ulid"})
	req := httptest.NewRequest("POST", "/api/exams", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errResp middleware.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, string(domain.CodeValidation), errResp.Code)
	require.Len(t, errResp.Errors, 1)
	assert.Equal(t, "package_id", errResp.Errors[0].Field)
}

func TestCreateExamHandler_PackageNotFound(t *testing.T) {
	svc := &MockExamService{
		CreateExamFunc: func(ctx context.Context, packageID string) (*dto.ExamResponse, error) {
			return nil, domain.NewPackageNotFoundError(packageID)
		},
	}
	app := setupExamApp(svc)

	body, _ := json.Marshal(dto.CreateExamRequest{PackageID: testULID})
	req := httptest.NewRequest("POST", "/api/exams", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var errResp middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, string(domain.CodePackageNotFound), errResp.Code)
}

func TestStartExamHandler(t *testing.T) {
	svc := &MockExamService{
		StartExamFunc: func(sessionID string) (*dto.ExamResponse, error) {
			return &dto.ExamResponse{SessionID: sessionID, State: "running", RemainingSeconds: 3600}, nil
		},
	}
	app := setupExamApp(svc)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/exams/sess1/start", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var exam dto.ExamResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&exam))
	assert.Equal(t, "running", exam.State)
}

func TestStartExamHandler_SessionNotFound(t *testing.T) {
	svc := &MockExamService{
		StartExamFunc: func(sessionID string) (*dto.ExamResponse, error) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		},
	}
	app := setupExamApp(svc)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/exams/absent/start", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRecordAnswerHandler(t *testing.T) {
	var gotSession string
	var gotReq *dto.RecordAnswerRequest
	svc := &MockExamService{
		RecordAnswerFunc: func(sessionID string, req *dto.RecordAnswerRequest) error {
			gotSession = sessionID
			gotReq = req
			return nil
		},
	}
	app := setupExamApp(svc)

	body, _ := json.Marshal(dto.RecordAnswerRequest{QuestionID: "PKG_qg0_q0", Answer: "Paris"})
	req := httptest.NewRequest("POST", "/api/exams/sess1/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "sess1", gotSession)
	require.NotNil(t, gotReq)
	assert.Equal(t, "Paris", gotReq.Answer)
}

func TestRecordAnswerHandler_InvalidState(t *testing.T) {
	svc := &MockExamService{
		RecordAnswerFunc: func(sessionID string, req *dto.RecordAnswerRequest) error {
			return domain.NewInvalidSessionStateError("cannot record answer while session is ended")
		},
	}
	app := setupExamApp(svc)

	body, _ := json.Marshal(dto.RecordAnswerRequest{QuestionID: "PKG_qg0_q0", Answer: "Paris"})
	req := httptest.NewRequest("POST", "/api/exams/sess1/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var errResp middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, string(domain.CodeInvalidSessionState), errResp.Code)
}

func TestRecordAnswerHandler_MissingQuestionID(t *testing.T) {
	app := setupExamApp(&MockExamService{})

	body, _ := json.Marshal(dto.RecordAnswerRequest{Answer: "Paris"})
	req := httptest.NewRequest("POST", "/api/exams/sess1/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecordHighlightHandler_NullColor(t *testing.T) {
	var gotReq *dto.RecordHighlightRequest
	svc := &MockExamService{
		RecordHighlightFunc: func(sessionID string, req *dto.RecordHighlightRequest) error {
			gotReq = req
			return nil
		},
	}
	app := setupExamApp(svc)

	req := httptest.NewRequest("POST", "/api/exams/sess1/highlights",
		bytes.NewReader([]byte(`{"selection_range":"p1:10-25","color":null}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	require.NotNil(t, gotReq)
	assert.Equal(t, "p1:10-25", gotReq.SelectionRange)
	assert.Nil(t, gotReq.Color, "null color must survive parsing as nil")
}

func TestEndExamHandler(t *testing.T) {
	svc := &MockExamService{
		EndExamFunc: func(sessionID string) (*dto.ExamResponse, error) {
			return &dto.ExamResponse{SessionID: sessionID, State: "ended", EndReason: "manual"}, nil
		},
	}
	app := setupExamApp(svc)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/exams/sess1/end", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var exam dto.ExamResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&exam))
	assert.Equal(t, "manual", exam.EndReason)
}

func TestGetResultHandler(t *testing.T) {
	svc := &MockExamService{
		GetResultFunc: func(ctx context.Context, sessionID string) (*dto.EvaluationReport, error) {
			return &dto.EvaluationReport{
				SessionID:      sessionID,
				PackageID:      testULID,
				CorrectCount:   25,
				TotalQuestions: 40,
				BandScore:      8.0,
				Interpretation: "Very good user - You handle complex detailed argumentation well.",
				EndReason:      "timeout",
			}, nil
		},
	}
	app := setupExamApp(svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/exams/sess1/result", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report dto.EvaluationReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 8.0, report.BandScore)
	assert.Equal(t, "timeout", report.EndReason)
}

func TestGetResultHandler_NotEnded(t *testing.T) {
	svc := &MockExamService{
		GetResultFunc: func(ctx context.Context, sessionID string) (*dto.EvaluationReport, error) {
			return nil, domain.NewInvalidSessionStateError("cannot evaluate a session that has not ended")
		},
	}
	app := setupExamApp(svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/exams/sess1/result", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), string(domain.CodeInvalidSessionState))
}

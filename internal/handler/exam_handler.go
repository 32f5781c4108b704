package handler

import (
	"github.com/sinataee/ielts-reading-app/internal/domain"
	"github.com/sinataee/ielts-reading-app/internal/dto"
	"github.com/sinataee/ielts-reading-app/internal/service"
	"github.com/sinataee/ielts-reading-app/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ExamHandler handles exam-session requests
type ExamHandler struct {
	service   service.ExamService
	validator *validation.Validator
}

// NewExamHandler creates a new ExamHandler instance
func NewExamHandler(service service.ExamService) *ExamHandler {
	return &ExamHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateExam godoc
// @Summary Open an exam session
// @Description Loads a package and registers an idle session over it
// @Tags exams
// @Accept json
// @Produce json
// @Param exam body dto.CreateExamRequest true "Exam"
// @Success 201 {object} dto.ExamResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /exams [post]
func (h *ExamHandler) CreateExam(c *fiber.Ctx) error {
	var req dto.CreateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationFailedError("invalid request body")
	}
	if errs := h.validator.ValidateCreateExamRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.CreateExam(c.Context(), req.PackageID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// StartExam godoc
// @Summary Start the exam countdown
// @Tags exams
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /exams/{id}/start [post]
func (h *ExamHandler) StartExam(c *fiber.Ctx) error {
	resp, err := h.service.StartExam(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PauseExam godoc
// @Summary Pause the exam countdown
// @Tags exams
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /exams/{id}/pause [post]
func (h *ExamHandler) PauseExam(c *fiber.Ctx) error {
	resp, err := h.service.PauseExam(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResumeExam godoc
// @Summary Resume a paused exam
// @Tags exams
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /exams/{id}/resume [post]
func (h *ExamHandler) ResumeExam(c *fiber.Ctx) error {
	resp, err := h.service.ResumeExam(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RecordAnswer godoc
// @Summary Record an answer
// @Description Overwrites the candidate's answer to one question
// @Tags exams
// @Accept json
// @Param id path string true "Session ID"
// @Param answer body dto.RecordAnswerRequest true "Answer"
// @Success 204
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /exams/{id}/answers [post]
func (h *ExamHandler) RecordAnswer(c *fiber.Ctx) error {
	var req dto.RecordAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationFailedError("invalid request body")
	}
	if errs := h.validator.ValidateRecordAnswerRequest(&req); len(errs) > 0 {
		return errs
	}

	if err := h.service.RecordAnswer(c.Params("id"), &req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordHighlight godoc
// @Summary Record a highlight action
// @Description Appends to the highlight audit log; a null color logs a removal
// @Tags exams
// @Accept json
// @Param id path string true "Session ID"
// @Param highlight body dto.RecordHighlightRequest true "Highlight"
// @Success 204
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /exams/{id}/highlights [post]
func (h *ExamHandler) RecordHighlight(c *fiber.Ctx) error {
	var req dto.RecordHighlightRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationFailedError("invalid request body")
	}
	if errs := h.validator.ValidateRecordHighlightRequest(&req); len(errs) > 0 {
		return errs
	}

	if err := h.service.RecordHighlight(c.Params("id"), &req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EndExam godoc
// @Summary End the exam and submit answers
// @Tags exams
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /exams/{id}/end [post]
func (h *ExamHandler) EndExam(c *fiber.Ctx) error {
	resp, err := h.service.EndExam(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetExam godoc
// @Summary Get exam session state
// @Tags exams
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /exams/{id} [get]
func (h *ExamHandler) GetExam(c *fiber.Ctx) error {
	resp, err := h.service.GetExam(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetResult godoc
// @Summary Get the evaluation report
// @Description Evaluates the ended session's snapshot and exports the report
// @Tags exams
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.EvaluationReport
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /exams/{id}/result [get]
func (h *ExamHandler) GetResult(c *fiber.Ctx) error {
	report, err := h.service.GetResult(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(report)
}

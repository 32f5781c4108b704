package handler

import (
	"github.com/sinataee/ielts-reading-app/internal/domain"
	"github.com/sinataee/ielts-reading-app/internal/dto"
	"github.com/sinataee/ielts-reading-app/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PackageHandler handles reading-package authoring requests
type PackageHandler struct {
	service service.PackageService
}

// NewPackageHandler creates a new PackageHandler instance
func NewPackageHandler(service service.PackageService) *PackageHandler {
	return &PackageHandler{service: service}
}

// CreatePackage godoc
// @Summary Create a reading package
// @Description Assembles and persists a passage with its question groups
// @Tags packages
// @Accept json
// @Produce json
// @Param package body dto.CreatePackageRequest true "Package"
// @Success 201 {object} dto.PackageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /packages [post]
func (h *PackageHandler) CreatePackage(c *fiber.Ctx) error {
	var req dto.CreatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationFailedError("invalid request body")
	}

	resp, err := h.service.CreatePackage(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetPackage godoc
// @Summary Get a reading package
// @Description Returns the full package, including passage and questions
// @Tags packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} domain.ReadingPackage
// @Failure 404 {object} middleware.ErrorResponse
// @Router /packages/{id} [get]
func (h *PackageHandler) GetPackage(c *fiber.Ctx) error {
	pkg, err := h.service.GetPackage(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(pkg)
}

// ListPackages godoc
// @Summary List reading packages
// @Description Returns summaries of every stored package, newest first
// @Tags packages
// @Produce json
// @Success 200 {array} dto.PackageResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /packages [get]
func (h *PackageHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.service.ListPackages(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(packages)
}

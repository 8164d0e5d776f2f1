package handlers

import (
	"errors"
	"strconv"

	"github.com/voltfleet/voltfleet-backend/internal/dto"
	"github.com/voltfleet/voltfleet-backend/internal/middleware"
	"github.com/voltfleet/voltfleet-backend/internal/services"
	"github.com/voltfleet/voltfleet-backend/internal/storage"
	"github.com/voltfleet/voltfleet-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type StationHandler struct {
	stationService *services.StationService
}

func NewStationHandler(stationService *services.StationService) *StationHandler {
	return &StationHandler{stationService: stationService}
}

func (h *StationHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Unauthorized"})
	}

	filter := storage.StationFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	stations, err := h.stationService.List(c.Context(), userID, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Failed to fetch stations",
		})
	}

	return c.JSON(stations)
}

func (h *StationHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Unauthorized"})
	}

	var in validation.CreateStationInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}

	station, err := h.stationService.Create(c.Context(), userID, &in)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Validation failed",
				Errors:  verr.Fields,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Failed to create station",
		})
	}

	return c.JSON(station)
}

func (h *StationHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Unauthorized"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid station ID"})
	}

	station, err := h.stationService.Get(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, storage.ErrStationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Station not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Failed to fetch station",
		})
	}

	return c.JSON(station)
}

func (h *StationHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Unauthorized"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid station ID"})
	}

	var in validation.UpdateStationInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}

	station, err := h.stationService.Update(c.Context(), id, userID, &in)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Validation failed",
				Errors:  verr.Fields,
			})
		}
		if errors.Is(err, storage.ErrStationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Station not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Failed to update station",
		})
	}

	return c.JSON(station)
}

func (h *StationHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Unauthorized"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid station ID"})
	}

	if err := h.stationService.Delete(c.Context(), id, userID); err != nil {
		if errors.Is(err, storage.ErrStationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Station not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Failed to delete station",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *StationHandler) Stats(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Unauthorized"})
	}

	stats, err := h.stationService.Stats(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Failed to fetch stats",
		})
	}

	return c.JSON(stats)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

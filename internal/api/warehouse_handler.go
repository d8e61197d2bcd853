package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/warehouse-bot/internal/domain/warehouse"
)

// WarehouseHandler — CRUD по складам.
type WarehouseHandler struct {
	repo *warehouse.Repo
}

func NewWarehouseHandler(repo *warehouse.Repo) *WarehouseHandler {
	return &WarehouseHandler{repo: repo}
}

func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "name обязателен"})
	}
	w, err := h.repo.CreateWarehouse(c.Context(), in.Name, in.Location)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	list, err := h.repo.ListWarehouses(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if list == nil {
		list = []warehouse.Warehouse{}
	}
	return c.JSON(list)
}

func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "MISSING_ID", Message: "id обязателен"})
	}
	w, err := h.repo.GetWarehouse(c.Context(), int64(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if w == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "склад не найден"})
	}
	return c.JSON(w)
}

func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "MISSING_ID", Message: "id обязателен"})
	}
	var in UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "name обязателен"})
	}
	if err := h.repo.UpdateWarehouse(c.Context(), int64(id), in.Name, in.Location); err != nil {
		if errors.Is(err, warehouse.ErrWarehouseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "склад не найден"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "MISSING_ID", Message: "id обязателен"})
	}
	if err := h.repo.DeleteWarehouse(c.Context(), int64(id)); err != nil {
		if errors.Is(err, warehouse.ErrWarehouseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "склад не найден"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

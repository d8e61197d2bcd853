package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/warehouse-bot/internal/domain/warehouse"
)

// StockHandler — остатки по складам. Количество через этот handler не
// меняется, только порог; движения идут через MovementHandler.
type StockHandler struct {
	repo *warehouse.Repo
}

func NewStockHandler(repo *warehouse.Repo) *StockHandler {
	return &StockHandler{repo: repo}
}

func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	if in.WarehouseID <= 0 || in.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "warehouse_id и product_id обязательны"})
	}
	if in.Quantity.IsNegative() || in.MinQuantity.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "количество не может быть отрицательным"})
	}
	s, err := h.repo.CreateStock(c.Context(), in.WarehouseID, in.ProductID, in.Quantity, in.MinQuantity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// List — остатки; фильтры warehouse_id, product_id и low_stock=true
// (только позиции на пороге или ниже).
func (h *StockHandler) List(c *fiber.Ctx) error {
	f := warehouse.StockFilter{
		WarehouseID: int64(c.QueryInt("warehouse_id", 0)),
		ProductID:   int64(c.QueryInt("product_id", 0)),
		LowOnly:     c.QueryBool("low_stock", false),
	}
	list, err := h.repo.ListStocks(c.Context(), f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if list == nil {
		list = []warehouse.Stock{}
	}
	return c.JSON(list)
}

func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "MISSING_ID", Message: "id обязателен"})
	}
	s, err := h.repo.GetStock(c.Context(), int64(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if s == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "остаток не найден"})
	}
	return c.JSON(s)
}

func (h *StockHandler) UpdateThreshold(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "MISSING_ID", Message: "id обязателен"})
	}
	var in UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	if in.MinQuantity.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "min_quantity не может быть отрицательным"})
	}
	if err := h.repo.UpdateStockThreshold(c.Context(), int64(id), in.MinQuantity); err != nil {
		if errors.Is(err, warehouse.ErrStockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "остаток не найден"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "MISSING_ID", Message: "id обязателен"})
	}
	if err := h.repo.DeleteStock(c.Context(), int64(id)); err != nil {
		if errors.Is(err, warehouse.ErrStockNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "остаток не найден"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/warehouse-bot/internal/domain/warehouse"
	"github.com/Spok95/warehouse-bot/internal/infra/metrics"
)

// MovementHandler регистрирует движения по остаткам.
type MovementHandler struct {
	repo *warehouse.Repo
}

func NewMovementHandler(repo *warehouse.Repo) *MovementHandler {
	return &MovementHandler{repo: repo}
}

func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	if in.StockID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "stock_id обязателен"})
	}
	if !warehouse.ValidMovementType(in.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "type должен быть in или out"})
	}
	if !in.Quantity.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "quantity должно быть больше нуля"})
	}

	m, err := h.repo.CreateMovement(c.Context(), in.StockID, warehouse.MovementType(in.Type), in.Quantity, in.Note)
	if err != nil {
		var insufficient *warehouse.InsufficientStockError
		switch {
		case errors.Is(err, warehouse.ErrStockNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "остаток не найден"})
		case errors.As(err, &insufficient):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Code:      "INSUFFICIENT_STOCK",
				Message:   "недостаточно товара на складе",
				Available: &insufficient.Available,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	metrics.TransactionsTotal.WithLabelValues(in.Type).Inc()
	return c.Status(fiber.StatusCreated).JSON(m)
}

// List — история движений; фильтры stock_id и movement_type.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	f := warehouse.MovementFilter{
		StockID: int64(c.QueryInt("stock_id", 0)),
		Type:    c.Query("movement_type"),
		Limit:   c.QueryInt("limit", 50),
	}
	list, err := h.repo.ListMovements(c.Context(), f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if list == nil {
		list = []warehouse.StockMovement{}
	}
	return c.JSON(list)
}

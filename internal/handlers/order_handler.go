package handlers

import (
	"ordermgmt/internal/models"
	"ordermgmt/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/customer/:email", h.HandleGetOrdersByCustomerEmail)
	orderRoutes.Get("/status/:status", h.HandleGetOrdersByStatus)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleGetOrdersByCustomerEmail retrieves the orders of one customer.
func (h *OrderHandler) HandleGetOrdersByCustomerEmail(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByCustomerEmail(c.Params("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrdersByStatus retrieves the orders in a given status.
func (h *OrderHandler) HandleGetOrdersByStatus(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByStatus(models.OrderStatus(c.Params("status")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleCreateOrder creates a new order. Every referenced product is
// validated against the product service before anything is persisted.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var draft models.Order
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.CreateOrder(c.Context(), draft)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleUpdateOrder overwrites customer name, email, shipping address
// and status. Items and totals are never touched by an update.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var fields models.Order
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.UpdateOrder(c.Params("id"), fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder deletes an order and its items.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

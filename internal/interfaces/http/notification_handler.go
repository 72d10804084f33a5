package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-pos/internal/application/dto"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// NotificationHandler expone las notificaciones recientes (informativas).
type NotificationHandler struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(notifRepo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifRepo: notifRepo}
}

// ListRecent godoc
// @Summary      Notificaciones recientes
// @Tags         notifications
// @Produce      json
// @Param        limit  query  int  false  "Límite"
// @Success      200  {array}  entity.Notification
// @Router       /api/notifications [get]
func (h *NotificationHandler) ListRecent(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.notifRepo.ListRecent(page.Limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/inventopredict/backend-go/internal/domain"
	"github.com/inventopredict/backend-go/internal/service"
)

type ReminderHandler struct {
	service *service.ReminderService
}

func NewReminderHandler(service *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

type createRemindersRequest struct {
	Email   string                     `json:"email" binding:"required,email"`
	Results []service.SubscriptionItem `json:"results" binding:"required"`
}

// Create stores stockout reminders for the requested products and sends a
// confirmation notification to the subscriber.
func (h *ReminderHandler) Create(c *gin.Context) {
	var req createRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.Email, req.Results)
	if err != nil {
		var dataErr *domain.DataError
		if errors.As(err, &dataErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": dataErr.Error()})
			return
		}
		log.Error().Err(err).Msg("failed to create reminders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create reminders"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Reminders created", "count": created})
}

// Clear deletes every stored reminder.
func (h *ReminderHandler) Clear(c *gin.Context) {
	deleted, err := h.service.Clear(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to clear reminders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminders cleared", "deleted": deleted})
}

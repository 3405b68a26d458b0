package booking

import (
	"net/http"
	"strconv"
	"time"

	"cospace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations/my", h.GetMyReservations)
	rg.POST("/reservations/:id/cancel", h.CancelReservation)
	rg.GET("/areas/:id/availability", h.GetAreaAvailability)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.UserID = c.GetInt64("user_id")

	res, err := h.service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidDateRange:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation date range")
		case ErrAreaNotFound:
			response.Error(c, http.StatusNotFound, "AREA_NOT_FOUND", "One or more areas do not belong to this workspace")
		case ErrWorkspaceNotBookable:
			response.Error(c, http.StatusUnprocessableEntity, "WORKSPACE_NOT_BOOKABLE", "Workspace is not approved for booking")
		case ErrCapacityUnavailable, ErrConcurrencyConflict:
			response.Error(c, http.StatusConflict, "CAPACITY_UNAVAILABLE", "The selected areas are no longer available for these dates")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create reservation")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": res})
}

func (h *Handler) GetMyReservations(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.service.GetMyReservations(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reservations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": rows})
}

func (h *Handler) CancelReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	var req CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	res, err := h.service.CancelReservation(c.Request.Context(), id, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your reservation")
		case ErrInvalidTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Reservation can no longer be cancelled")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel reservation")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) GetAreaAvailability(c *gin.Context) {
	areaID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid area ID")
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid from date")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid to date")
		return
	}

	resp, err := h.service.GetAreaAvailability(c.Request.Context(), areaID, from, to)
	if err != nil {
		switch err {
		case ErrInvalidDateRange:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability date range")
		case ErrAreaNotFound:
			response.Error(c, http.StatusNotFound, "AREA_NOT_FOUND", "Area not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

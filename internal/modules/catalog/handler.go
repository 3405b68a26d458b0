package catalog

import (
	"net/http"
	"strconv"

	"cospace/internal/pkg/response"
	"cospace/internal/pkg/validator"
	"cospace/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	users   *repository.UserRepository
}

func NewHandler(service *Service, users *repository.UserRepository) *Handler {
	return &Handler{service: service, users: users}
}

// RegisterPublicRoutes mounts the read-only catalog endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/spaces", h.ListSpaces)
	rg.GET("/spaces/:id", h.GetSpace)
}

// RegisterProtectedRoutes mounts the hoster endpoints behind auth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/spaces", h.CreateSpace)
	rg.POST("/spaces/:id/areas", h.CreateArea)
}

func (h *Handler) ListSpaces(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	spaces, total, err := h.service.ListSpaces(c.Request.Context(), repository.SpaceFilters{
		City:   c.Query("city"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load spaces")
		return
	}

	response.Paginated(c, "spaces", spaces, total)
}

func (h *Handler) GetSpace(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid space ID")
		return
	}

	space, err := h.service.GetSpace(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Space not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load space")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"space": space})
}

func (h *Handler) CreateSpace(c *gin.Context) {
	var req CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid listing fields", errs)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unknown user")
		return
	}

	space, err := h.service.CreateSpace(c.Request.Context(), user, req)
	if err != nil {
		if err == ErrForbidden {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only hosters can submit spaces")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create space")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"space": space})
}

func (h *Handler) CreateArea(c *gin.Context) {
	spaceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid space ID")
		return
	}

	var req CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid area fields", errs)
		return
	}

	area, err := h.service.CreateArea(c.Request.Context(), c.GetInt64("user_id"), spaceID, req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Space not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this space")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create area")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"area": area})
}

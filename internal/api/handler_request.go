package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"yummiz/internal/service"
)

type RequestHandler struct {
	requestService *service.RequestService
}

func NewRequestHandler(requestService *service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// Submit handles POST /api/recipe-requests/submit
func (h *RequestHandler) Submit(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		RecipeName  string `json:"recipeName"`
		Description string `json:"description"`
		RequestedBy string `json:"requestedBy"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	// recipeName is the older client field name for title
	title := req.Title
	if title == "" {
		title = req.RecipeName
	}

	request, err := h.requestService.Submit(c.Request.Context(), title, req.Description, req.RequestedBy)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": err.Error(),
				"received": gin.H{
					"title":       title,
					"description": req.Description,
					"requestedBy": req.RequestedBy,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit recipe request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Recipe request submitted successfully",
		"request": request,
	})
}

// Decide handles POST /api/recipe-requests/:status where status is
// approved or rejected.
func (h *RequestHandler) Decide(c *gin.Context) {
	status := c.Param("status")

	var req struct {
		RequestID int    `json:"requestId"`
		Message   string `json:"message"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	request, err := h.requestService.Decide(c.Request.Context(), req.RequestID, status, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Recipe request not found"})
		case service.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": fmt.Sprintf("Failed to %s recipe request", status),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       fmt.Sprintf("Recipe request %s successfully", status),
		"recipeRequest": request,
	})
}

// List handles GET /api/recipe-requests
func (h *RequestHandler) List(c *gin.Context) {
	requests, err := h.requestService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch recipe requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "requests": requests})
}

// Count handles GET /api/recipe-requests/count
func (h *RequestHandler) Count(c *gin.Context) {
	counts, err := h.requestService.Counts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch recipe request counts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"total":    counts.Total,
		"approved": counts.Approved,
		"pending":  counts.Pending,
		"rejected": counts.Rejected,
	})
}

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yummiz/internal/service"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
}

func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// requiredRecipeFields is checked in order so the client gets one message
// per missing field.
var requiredRecipeFields = []string{"name", "category", "preptime", "ingredients", "description", "rating"}

// AddRecipe handles POST /api/food/addrecipe (multipart).
func (h *RecipeHandler) AddRecipe(c *gin.Context) {
	for _, field := range requiredRecipeFields {
		if c.PostForm(field) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": field + " is required"})
			return
		}
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image file is required"})
		return
	}

	input, err := parseRecipeInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read image file"})
		return
	}
	defer file.Close()

	recipe, err := h.recipeService.AddRecipe(c.Request.Context(), *input, file)
	if err != nil {
		// add failures all surface as a 400
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Recipe added successfully",
		"data":    recipe,
	})
}

// ListRecipes handles GET /api/food/listrecipe
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Food not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": recipes})
}

// GetRecipe handles GET /api/food/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid recipe ID format"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": recipe})
}

// UpdateRecipe handles PUT /api/food/edit/:id (multipart).
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid recipe ID format"})
		return
	}

	update, err := parseRecipeUpdate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var image io.Reader
	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read image file"})
			return
		}
		defer file.Close()
		image = file
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, *update, image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Recipe not found"})
		case service.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recipe updated successfully",
		"data":    recipe,
	})
}

// RemoveRecipe handles POST /api/food/remove
func (h *RecipeHandler) RemoveRecipe(c *gin.Context) {
	var req struct {
		ID int `json:"id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	if err := h.recipeService.RemoveRecipe(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Food item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while removing food"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Food removed successfully"})
}

// CountRecipes handles GET /api/food/count
func (h *RecipeHandler) CountRecipes(c *gin.Context) {
	count, err := h.recipeService.CountRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error getting food count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

func parseRecipeInput(c *gin.Context) (*service.RecipeInput, error) {
	preptime, err := strconv.Atoi(c.PostForm("preptime"))
	if err != nil {
		return nil, errors.New("preptime must be a number")
	}

	rating, err := strconv.ParseFloat(c.PostForm("rating"), 64)
	if err != nil {
		return nil, errors.New("rating must be a number")
	}

	return &service.RecipeInput{
		Name:        c.PostForm("name"),
		Preptime:    preptime,
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		Ingredients: c.PostForm("ingredients"),
		Rating:      rating,
	}, nil
}

func parseRecipeUpdate(c *gin.Context) (*service.RecipeUpdate, error) {
	var update service.RecipeUpdate

	if v, ok := c.GetPostForm("name"); ok {
		update.Name = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		update.Category = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		update.Description = &v
	}
	if v, ok := c.GetPostForm("ingredients"); ok {
		update.Ingredients = &v
	}
	if v, ok := c.GetPostForm("preptime"); ok {
		preptime, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("preptime must be a number")
		}
		update.Preptime = &preptime
	}
	if v, ok := c.GetPostForm("rating"); ok {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("rating must be a number")
		}
		update.Rating = &rating
	}

	return &update, nil
}

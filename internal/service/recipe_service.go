package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"yummiz/internal/imagehost"
	"yummiz/internal/model"
)

func init() {
	_ = validate.RegisterValidation("ratingstep", func(fl validator.FieldLevel) bool {
		return isHalfStep(fl.Field().Float())
	})
}

// RecipeStore is the persistence surface of recipe CRUD.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) error
	ListRecipes(ctx context.Context) ([]model.Recipe, error)
	GetRecipeByID(ctx context.Context, id int) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *model.Recipe) error
	DeleteRecipe(ctx context.Context, id int) (bool, error)
	CountRecipes(ctx context.Context) (int, error)
}

// RecipeInput carries the user-supplied recipe fields.
type RecipeInput struct {
	Name        string
	Preptime    int
	Category    string
	Description string
	Ingredients string
	Rating      float64
}

// RecipeUpdate carries the fields present in an edit form; nil means keep.
type RecipeUpdate struct {
	Name        *string
	Preptime    *int
	Category    *string
	Description *string
	Ingredients *string
	Rating      *float64
}

type RecipeService struct {
	repo     RecipeStore
	uploader imagehost.Uploader
	logger   *zap.Logger
}

func NewRecipeService(repo RecipeStore, uploader imagehost.Uploader, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		repo:     repo,
		uploader: uploader,
		logger:   logger,
	}
}

// AddRecipe validates the input, uploads the image, and stores the recipe.
func (s *RecipeService) AddRecipe(ctx context.Context, input RecipeInput, image io.Reader) (*model.Recipe, error) {
	recipe := &model.Recipe{
		Name:        input.Name,
		Preptime:    input.Preptime,
		Category:    input.Category,
		Description: input.Description,
		Ingredients: input.Ingredients,
		Rating:      input.Rating,
	}

	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	uploaded, err := s.uploader.Upload(ctx, image)
	if err != nil {
		return nil, err
	}

	recipe.Image = uploaded.URL
	recipe.CloudinaryID = uploaded.PublicID

	if err := s.repo.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	s.logger.Info("Recipe added",
		zap.Int("recipe_id", recipe.ID),
		zap.String("category", recipe.Category),
	)

	return recipe, nil
}

// ListRecipes returns all recipes.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	return s.repo.ListRecipes(ctx)
}

// GetRecipe returns one recipe by ID.
func (s *RecipeService) GetRecipe(ctx context.Context, id int) (*model.Recipe, error) {
	recipe, err := s.repo.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// UpdateRecipe applies an edit form onto a stored recipe. When a new image
// is supplied the previously hosted one is destroyed first; otherwise the
// existing image is kept. No concurrency control: last write wins.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id int, update RecipeUpdate, image io.Reader) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		recipe.Name = *update.Name
	}
	if update.Preptime != nil {
		recipe.Preptime = *update.Preptime
	}
	if update.Category != nil {
		recipe.Category = *update.Category
	}
	if update.Description != nil {
		recipe.Description = *update.Description
	}
	if update.Ingredients != nil {
		recipe.Ingredients = *update.Ingredients
	}
	if update.Rating != nil {
		recipe.Rating = *update.Rating
	}

	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	if image != nil {
		if recipe.CloudinaryID != "" {
			if err := s.uploader.Destroy(ctx, recipe.CloudinaryID); err != nil {
				return nil, fmt.Errorf("failed to process image upload: %w", err)
			}
		}

		uploaded, err := s.uploader.Upload(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("failed to process image upload: %w", err)
		}
		recipe.Image = uploaded.URL
		recipe.CloudinaryID = uploaded.PublicID
	}

	if err := s.repo.UpdateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	s.logger.Info("Recipe updated", zap.Int("recipe_id", recipe.ID))

	return recipe, nil
}

// RemoveRecipe destroys the hosted image, then deletes the recipe row.
func (s *RecipeService) RemoveRecipe(ctx context.Context, id int) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}

	if recipe.CloudinaryID != "" {
		if err := s.uploader.Destroy(ctx, recipe.CloudinaryID); err != nil {
			return err
		}
	}

	deleted, err := s.repo.DeleteRecipe(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	s.logger.Info("Recipe removed", zap.Int("recipe_id", id))

	return nil
}

// CountRecipes returns the total number of recipes.
func (s *RecipeService) CountRecipes(ctx context.Context) (int, error) {
	return s.repo.CountRecipes(ctx)
}

func validateRecipe(recipe *model.Recipe) error {
	if recipe.Name == "" || recipe.Category == "" || recipe.Description == "" || recipe.Ingredients == "" {
		return NewValidationError("name, category, description and ingredients are required")
	}
	if !model.ValidCategory(recipe.Category) {
		return NewValidationError("Invalid category")
	}
	if recipe.Preptime < 1 || recipe.Preptime > 60 {
		return NewValidationError("preptime must be between 1 and 60")
	}
	if err := validate.Var(recipe.Rating, "gte=0.5,lte=5,ratingstep"); err != nil {
		return NewValidationError("Rating must be a multiple of 0.5 between 0.5 and 5")
	}
	return nil
}

// isHalfStep reports whether r is a multiple of 0.5. Ratings arrive as
// decimal form values, so comparing against the rounded tenfold avoids
// float drift.
func isHalfStep(r float64) bool {
	tenfold := math.Round(r * 10)
	if math.Abs(r*10-tenfold) > 1e-9 {
		return false
	}
	return int64(tenfold)%5 == 0
}

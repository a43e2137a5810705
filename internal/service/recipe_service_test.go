package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yummiz/internal/imagehost"
	"yummiz/internal/model"
)

type mockRecipeStore struct {
	createRecipeFunc  func(ctx context.Context, recipe *model.Recipe) error
	listRecipesFunc   func(ctx context.Context) ([]model.Recipe, error)
	getRecipeByIDFunc func(ctx context.Context, id int) (*model.Recipe, error)
	updateRecipeFunc  func(ctx context.Context, recipe *model.Recipe) error
	deleteRecipeFunc  func(ctx context.Context, id int) (bool, error)
	countRecipesFunc  func(ctx context.Context) (int, error)
}

func (m *mockRecipeStore) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	if m.createRecipeFunc != nil {
		return m.createRecipeFunc(ctx, recipe)
	}
	return errors.New("not implemented")
}

func (m *mockRecipeStore) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	if m.listRecipesFunc != nil {
		return m.listRecipesFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRecipeStore) GetRecipeByID(ctx context.Context, id int) (*model.Recipe, error) {
	if m.getRecipeByIDFunc != nil {
		return m.getRecipeByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockRecipeStore) UpdateRecipe(ctx context.Context, recipe *model.Recipe) error {
	if m.updateRecipeFunc != nil {
		return m.updateRecipeFunc(ctx, recipe)
	}
	return errors.New("not implemented")
}

func (m *mockRecipeStore) DeleteRecipe(ctx context.Context, id int) (bool, error) {
	if m.deleteRecipeFunc != nil {
		return m.deleteRecipeFunc(ctx, id)
	}
	return false, errors.New("not implemented")
}

func (m *mockRecipeStore) CountRecipes(ctx context.Context) (int, error) {
	if m.countRecipesFunc != nil {
		return m.countRecipesFunc(ctx)
	}
	return 0, errors.New("not implemented")
}

type mockUploader struct {
	uploadFunc  func(ctx context.Context, file io.Reader) (*imagehost.UploadResult, error)
	destroyFunc func(ctx context.Context, publicID string) error
	destroyed   []string
	uploads     int
}

func (m *mockUploader) Upload(ctx context.Context, file io.Reader) (*imagehost.UploadResult, error) {
	m.uploads++
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, file)
	}
	return &imagehost.UploadResult{URL: "https://img.example/x.jpg", PublicID: "yummiz/foods/x"}, nil
}

func (m *mockUploader) Destroy(ctx context.Context, publicID string) error {
	m.destroyed = append(m.destroyed, publicID)
	if m.destroyFunc != nil {
		return m.destroyFunc(ctx, publicID)
	}
	return nil
}

func validInput() RecipeInput {
	return RecipeInput{
		Name:        "Paneer Roll",
		Preptime:    25,
		Category:    "Rolls & Wraps",
		Description: "Spiced paneer in a wrap",
		Ingredients: "paneer, flour, spices",
		Rating:      4.5,
	}
}

func TestRecipeService_AddRecipe(t *testing.T) {
	ctx := context.Background()
	image := strings.NewReader("fake image bytes")

	t.Run("Success", func(t *testing.T) {
		store := &mockRecipeStore{
			createRecipeFunc: func(ctx context.Context, recipe *model.Recipe) error {
				recipe.ID = 11
				return nil
			},
		}
		uploader := &mockUploader{}
		svc := NewRecipeService(store, uploader, zap.NewNop())

		recipe, err := svc.AddRecipe(ctx, validInput(), image)
		require.NoError(t, err)
		assert.Equal(t, 11, recipe.ID)
		assert.Equal(t, "https://img.example/x.jpg", recipe.Image)
		assert.Equal(t, "yummiz/foods/x", recipe.CloudinaryID)
		assert.Equal(t, 1, uploader.uploads)
	})

	t.Run("RatingNotHalfStep", func(t *testing.T) {
		svc := NewRecipeService(&mockRecipeStore{}, &mockUploader{}, zap.NewNop())

		input := validInput()
		input.Rating = 2.3
		_, err := svc.AddRecipe(ctx, input, image)
		assert.True(t, IsValidation(err))
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		svc := NewRecipeService(&mockRecipeStore{}, &mockUploader{}, zap.NewNop())

		for _, rating := range []float64{0, 0.4, 5.5, -1} {
			input := validInput()
			input.Rating = rating
			_, err := svc.AddRecipe(ctx, input, image)
			assert.True(t, IsValidation(err), "rating %v should be rejected", rating)
		}
	})

	t.Run("PreptimeOutOfRange", func(t *testing.T) {
		svc := NewRecipeService(&mockRecipeStore{}, &mockUploader{}, zap.NewNop())

		for _, preptime := range []int{0, 61, -5} {
			input := validInput()
			input.Preptime = preptime
			_, err := svc.AddRecipe(ctx, input, image)
			assert.True(t, IsValidation(err), "preptime %v should be rejected", preptime)
		}
	})

	t.Run("InvalidCategory", func(t *testing.T) {
		uploader := &mockUploader{}
		svc := NewRecipeService(&mockRecipeStore{}, uploader, zap.NewNop())

		input := validInput()
		input.Category = "Street Food"
		_, err := svc.AddRecipe(ctx, input, image)
		assert.True(t, IsValidation(err))
		// nothing should reach the image host on a validation failure
		assert.Equal(t, 0, uploader.uploads)
	})
}

func TestRecipeService_UpdateRecipe(t *testing.T) {
	ctx := context.Background()

	storedRecipe := func() *model.Recipe {
		return &model.Recipe{
			ID:           11,
			Name:         "Paneer Roll",
			Preptime:     25,
			Category:     "Rolls & Wraps",
			Image:        "https://img.example/old.jpg",
			CloudinaryID: "yummiz/foods/old",
			Description:  "Spiced paneer in a wrap",
			Ingredients:  "paneer, flour, spices",
			Rating:       4.5,
		}
	}

	t.Run("NewImageReplacesOld", func(t *testing.T) {
		store := &mockRecipeStore{
			getRecipeByIDFunc: func(ctx context.Context, id int) (*model.Recipe, error) {
				return storedRecipe(), nil
			},
			updateRecipeFunc: func(ctx context.Context, recipe *model.Recipe) error {
				return nil
			},
		}
		uploader := &mockUploader{}
		svc := NewRecipeService(store, uploader, zap.NewNop())

		recipe, err := svc.UpdateRecipe(ctx, 11, RecipeUpdate{}, strings.NewReader("new image"))
		require.NoError(t, err)
		assert.Equal(t, []string{"yummiz/foods/old"}, uploader.destroyed)
		assert.Equal(t, 1, uploader.uploads)
		assert.Equal(t, "https://img.example/x.jpg", recipe.Image)
	})

	t.Run("NoImageKeepsExisting", func(t *testing.T) {
		store := &mockRecipeStore{
			getRecipeByIDFunc: func(ctx context.Context, id int) (*model.Recipe, error) {
				return storedRecipe(), nil
			},
			updateRecipeFunc: func(ctx context.Context, recipe *model.Recipe) error {
				return nil
			},
		}
		uploader := &mockUploader{}
		svc := NewRecipeService(store, uploader, zap.NewNop())

		name := "Veg Roll"
		recipe, err := svc.UpdateRecipe(ctx, 11, RecipeUpdate{Name: &name}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Veg Roll", recipe.Name)
		assert.Equal(t, "https://img.example/old.jpg", recipe.Image)
		assert.Empty(t, uploader.destroyed)
		assert.Equal(t, 0, uploader.uploads)
	})

	t.Run("InvalidFieldRejected", func(t *testing.T) {
		store := &mockRecipeStore{
			getRecipeByIDFunc: func(ctx context.Context, id int) (*model.Recipe, error) {
				return storedRecipe(), nil
			},
		}
		svc := NewRecipeService(store, &mockUploader{}, zap.NewNop())

		rating := 2.3
		_, err := svc.UpdateRecipe(ctx, 11, RecipeUpdate{Rating: &rating}, nil)
		assert.True(t, IsValidation(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := NewRecipeService(&mockRecipeStore{}, &mockUploader{}, zap.NewNop())

		_, err := svc.UpdateRecipe(ctx, 99, RecipeUpdate{}, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRecipeService_RemoveRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("DestroysImageThenRow", func(t *testing.T) {
		store := &mockRecipeStore{
			getRecipeByIDFunc: func(ctx context.Context, id int) (*model.Recipe, error) {
				return &model.Recipe{ID: 11, CloudinaryID: "yummiz/foods/old"}, nil
			},
			deleteRecipeFunc: func(ctx context.Context, id int) (bool, error) {
				return true, nil
			},
		}
		uploader := &mockUploader{}
		svc := NewRecipeService(store, uploader, zap.NewNop())

		err := svc.RemoveRecipe(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, []string{"yummiz/foods/old"}, uploader.destroyed)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := NewRecipeService(&mockRecipeStore{}, &mockUploader{}, zap.NewNop())

		err := svc.RemoveRecipe(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestIsHalfStep(t *testing.T) {
	for _, r := range []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5} {
		assert.True(t, isHalfStep(r), "%v should be a half step", r)
	}
	for _, r := range []float64{0.1, 2.3, 4.75, 3.01} {
		assert.False(t, isHalfStep(r), "%v should not be a half step", r)
	}
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"yummiz/internal/model"
)

type RecipeRepository struct {
	db *pgxpool.Pool
}

func NewRecipeRepository(db *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{db: db}
}

const recipeColumns = `id, name, preptime, category, image, cloudinary_id,
       description, ingredients, rating, created_at, updated_at`

// CreateRecipe inserts a recipe and fills in its generated fields.
func (r *RecipeRepository) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	query := `
        INSERT INTO recipes
        (name, preptime, category, image, cloudinary_id, description, ingredients, rating,
         created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	return r.db.QueryRow(ctx, query,
		recipe.Name,
		recipe.Preptime,
		recipe.Category,
		recipe.Image,
		recipe.CloudinaryID,
		recipe.Description,
		recipe.Ingredients,
		recipe.Rating,
	).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)
}

// ListRecipes returns all recipes, newest first.
func (r *RecipeRepository) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	query := `
        SELECT ` + recipeColumns + `
        FROM recipes
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		var recipe model.Recipe
		err := rows.Scan(
			&recipe.ID,
			&recipe.Name,
			&recipe.Preptime,
			&recipe.Category,
			&recipe.Image,
			&recipe.CloudinaryID,
			&recipe.Description,
			&recipe.Ingredients,
			&recipe.Rating,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// GetRecipeByID returns one recipe; pgx.ErrNoRows when absent.
func (r *RecipeRepository) GetRecipeByID(ctx context.Context, id int) (*model.Recipe, error) {
	query := `
        SELECT ` + recipeColumns + `
        FROM recipes
        WHERE id = $1
    `
	var recipe model.Recipe
	err := r.db.QueryRow(ctx, query, id).Scan(
		&recipe.ID,
		&recipe.Name,
		&recipe.Preptime,
		&recipe.Category,
		&recipe.Image,
		&recipe.CloudinaryID,
		&recipe.Description,
		&recipe.Ingredients,
		&recipe.Rating,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe overwrites a recipe row. Last write wins.
func (r *RecipeRepository) UpdateRecipe(ctx context.Context, recipe *model.Recipe) error {
	query := `
        UPDATE recipes
        SET name = $1, preptime = $2, category = $3, image = $4, cloudinary_id = $5,
            description = $6, ingredients = $7, rating = $8, updated_at = NOW()
        WHERE id = $9
        RETURNING updated_at
    `
	return r.db.QueryRow(ctx, query,
		recipe.Name,
		recipe.Preptime,
		recipe.Category,
		recipe.Image,
		recipe.CloudinaryID,
		recipe.Description,
		recipe.Ingredients,
		recipe.Rating,
		recipe.ID,
	).Scan(&recipe.UpdatedAt)
}

// DeleteRecipe removes a recipe; reports whether a row was deleted.
func (r *RecipeRepository) DeleteRecipe(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// CountRecipes returns the total number of recipes.
func (r *RecipeRepository) CountRecipes(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count)
	return count, err
}

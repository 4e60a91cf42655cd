package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/merrickb/recipebox/internal/domain/recipe"
	"github.com/merrickb/recipebox/internal/observability"
)

const recipeColumns = `id, owner_id, title, time_minutes, price, link, description, created_at, updated_at`

type RecipesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRecipesRepo(pool *pgxpool.Pool, prom *observability.Prom) *RecipesRepo {
	return &RecipesRepo{pool: pool, prom: prom}
}

func (r *RecipesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *RecipesRepo) Create(ctx context.Context, ownerID string, req recipe.CreateRecipeRequest) (recipe.Recipe, error) {
	var rec recipe.Recipe

	err := r.observe("recipes.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO recipes(owner_id, title, time_minutes, price, link, description)
			 VALUES($1,$2,$3,$4,$5,$6)
			 RETURNING `+recipeColumns,
			ownerID, req.Title, *req.TimeMinutes, *req.Price, req.Link, req.Description,
		).Scan(scanTargets(&rec)...)
	})

	if err != nil {
		return recipe.Recipe{}, err
	}

	return rec, nil
}

// ListByOwner returns the owner's recipes, newest first. Rows belonging to
// anyone else never leave the query.
func (r *RecipesRepo) ListByOwner(ctx context.Context, ownerID string) ([]recipe.Recipe, error) {
	output := make([]recipe.Recipe, 0)

	err := r.observe("recipes.list_by_owner", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+recipeColumns+`
			 FROM recipes
			 WHERE owner_id = $1
			 ORDER BY id DESC`,
			ownerID,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var rec recipe.Recipe

			if err := rows.Scan(scanTargets(&rec)...); err != nil {
				return err
			}

			output = append(output, rec)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

// GetByID is owner-scoped: a recipe that exists but belongs to someone else
// is reported exactly like a missing one.
func (r *RecipesRepo) GetByID(ctx context.Context, ownerID string, id int64) (recipe.Recipe, error) {
	var rec recipe.Recipe

	err := r.observe("recipes.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT `+recipeColumns+` FROM recipes WHERE id = $1 AND owner_id = $2`,
			id, ownerID,
		).Scan(scanTargets(&rec)...)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recipe.Recipe{}, recipe.ErrNotFound
		}

		return recipe.Recipe{}, err
	}

	return rec, nil
}

// Update applies only the provided fields. The owner column is not in the
// SET list under any input, so ownership cannot move.
func (r *RecipesRepo) Update(ctx context.Context, ownerID string, id int64, req recipe.UpdateRecipeRequest) (recipe.Recipe, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id, ownerID}

	argsPosition := 3

	if req.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argsPosition))
		args = append(args, *req.Title)
		argsPosition++
	}

	if req.TimeMinutes != nil {
		sets = append(sets, fmt.Sprintf("time_minutes = $%d", argsPosition))
		args = append(args, *req.TimeMinutes)
		argsPosition++
	}

	if req.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", argsPosition))
		args = append(args, *req.Price)
		argsPosition++
	}

	if req.Link != nil {
		sets = append(sets, fmt.Sprintf("link = $%d", argsPosition))
		args = append(args, *req.Link)
		argsPosition++
	}

	if req.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argsPosition))
		args = append(args, *req.Description)
		argsPosition++
	}

	query := `UPDATE recipes SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 AND owner_id = $2 RETURNING ` + recipeColumns

	var rec recipe.Recipe

	err := r.observe("recipes.update", func() error {
		return r.pool.QueryRow(ctx, query, args...).Scan(scanTargets(&rec)...)
	})

	if err != nil {
		// if there are no rows matching the id and owner
		if errors.Is(err, pgx.ErrNoRows) {
			return recipe.Recipe{}, recipe.ErrNotFound
		}

		return recipe.Recipe{}, err
	}

	return rec, nil
}

// Replace is the PUT semantics: every mutable column is rewritten, omitted
// optional fields reset to their defaults.
func (r *RecipesRepo) Replace(ctx context.Context, ownerID string, id int64, req recipe.CreateRecipeRequest) (recipe.Recipe, error) {
	var rec recipe.Recipe

	err := r.observe("recipes.replace", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE recipes
				SET title = $3,
						time_minutes = $4,
						price = $5,
						link = $6,
						description = $7,
						updated_at = NOW()
			WHERE id = $1 AND owner_id = $2
			RETURNING `+recipeColumns,
			id, ownerID, req.Title, *req.TimeMinutes, *req.Price, req.Link, req.Description,
		).Scan(scanTargets(&rec)...)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recipe.Recipe{}, recipe.ErrNotFound
		}

		return recipe.Recipe{}, err
	}

	return rec, nil
}

func (r *RecipesRepo) Delete(ctx context.Context, ownerID string, id int64) error {
	var affected int64

	err := r.observe("recipes.delete", func() error {
		tag, err := r.pool.Exec(ctx, `
			DELETE from recipes WHERE id = $1 AND owner_id = $2
		`, id, ownerID)

		if err != nil {
			return err
		}

		affected = tag.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	// if no rows were deleted as a result return a not found error
	if affected == 0 {
		return recipe.ErrNotFound
	}

	return nil
}

func scanTargets(rec *recipe.Recipe) []interface{} {
	return []interface{}{
		&rec.ID,
		&rec.OwnerID,
		&rec.Title,
		&rec.TimeMinutes,
		&rec.Price,
		&rec.Link,
		&rec.Description,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	}
}

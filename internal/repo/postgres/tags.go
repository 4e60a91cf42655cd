package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/merrickb/recipebox/internal/domain/tag"
)

type TagsRepo struct {
	pool *pgxpool.Pool
}

func NewTagsRepo(pool *pgxpool.Pool) *TagsRepo {
	return &TagsRepo{pool: pool}
}

func (r *TagsRepo) Create(ctx context.Context, ownerID string, req tag.CreateTagRequest) (tag.Tag, error) {
	var t tag.Tag

	err := r.pool.QueryRow(ctx,
		`INSERT INTO tags(owner_id, name) VALUES($1,$2)
		 RETURNING id, owner_id, name`,
		ownerID, req.Name,
	).Scan(&t.ID, &t.OwnerID, &t.Name)

	if err != nil {
		return tag.Tag{}, err
	}

	return t, nil
}

func (r *TagsRepo) ListByOwner(ctx context.Context, ownerID string) ([]tag.Tag, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner_id, name
		 FROM tags
		 WHERE owner_id = $1
		 ORDER BY name DESC`,
		ownerID,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]tag.Tag, 0)

	for rows.Next() {
		var t tag.Tag

		err = rows.Scan(&t.ID, &t.OwnerID, &t.Name)

		if err != nil {
			return nil, err
		}

		output = append(output, t)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return output, nil
}

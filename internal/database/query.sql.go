// internal/database/query.sql.go
package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countRepositories = `-- name: CountRepositories :one
SELECT COUNT(*) FROM repositories
`

func (q *Queries) CountRepositories(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countRepositories)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getRepositoryByIDOrFullName = `-- name: GetRepositoryByIDOrFullName :one
SELECT id, name, full_name, stars, description, url, language, created_at, updated_at
FROM repositories
WHERE id = $1 OR full_name = $2
LIMIT 1
`

type GetRepositoryByIDOrFullNameParams struct {
	ID       int64
	FullName string
}

func (q *Queries) GetRepositoryByIDOrFullName(ctx context.Context, arg GetRepositoryByIDOrFullNameParams) (Repository, error) {
	row := q.db.QueryRow(ctx, getRepositoryByIDOrFullName, arg.ID, arg.FullName)
	var i Repository
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.FullName,
		&i.Stars,
		&i.Description,
		&i.Url,
		&i.Language,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listRepositoriesByStars = `-- name: ListRepositoriesByStars :many
SELECT id, name, full_name, stars, description, url, language, created_at, updated_at
FROM repositories
ORDER BY stars DESC, id ASC
LIMIT $1 OFFSET $2
`

type ListRepositoriesByStarsParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListRepositoriesByStars(ctx context.Context, arg ListRepositoriesByStarsParams) ([]Repository, error) {
	rows, err := q.db.Query(ctx, listRepositoriesByStars, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Repository
	for rows.Next() {
		var i Repository
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.FullName,
			&i.Stars,
			&i.Description,
			&i.Url,
			&i.Language,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertRepository = `-- name: UpsertRepository :one
INSERT INTO repositories (id, name, full_name, stars, description, url, language)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    name        = EXCLUDED.name,
    full_name   = EXCLUDED.full_name,
    stars       = EXCLUDED.stars,
    description = EXCLUDED.description,
    url         = EXCLUDED.url,
    language    = EXCLUDED.language,
    updated_at  = NOW()
RETURNING id, name, full_name, stars, description, url, language, created_at, updated_at
`

type UpsertRepositoryParams struct {
	ID          int64
	Name        string
	FullName    string
	Stars       int32
	Description pgtype.Text
	Url         string
	Language    pgtype.Text
}

func (q *Queries) UpsertRepository(ctx context.Context, arg UpsertRepositoryParams) (Repository, error) {
	row := q.db.QueryRow(ctx, upsertRepository,
		arg.ID,
		arg.Name,
		arg.FullName,
		arg.Stars,
		arg.Description,
		arg.Url,
		arg.Language,
	)
	var i Repository
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.FullName,
		&i.Stars,
		&i.Description,
		&i.Url,
		&i.Language,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

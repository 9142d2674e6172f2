// internal/database/models.go
package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Repository struct {
	ID          int64
	Name        string
	FullName    string
	Stars       int32
	Description pgtype.Text
	Url         string
	Language    pgtype.Text
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

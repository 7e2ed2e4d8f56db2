package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTokenNotFound indicates no token exists for the key or phone.
var ErrTokenNotFound = errors.New("token not found")

// Repository persists bearer tokens.
type Repository interface {
	Create(ctx context.Context, token Token) error
	FindByPhone(ctx context.Context, phone string) (Token, error)
	FindByKey(ctx context.Context, key string) (Token, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed token repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a token record.
func (r *PostgresRepository) Create(ctx context.Context, token Token) error {
	_, err := r.db.Exec(ctx, `INSERT INTO tokens (key, phone, created_at)
        VALUES ($1, $2, $3)`, token.Key, token.Phone, token.CreatedAt.UTC())
	return err
}

// FindByPhone fetches the token belonging to a user.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (Token, error) {
	row := r.db.QueryRow(ctx, `SELECT key, phone, created_at FROM tokens WHERE phone = $1`, phone)
	return scanToken(row)
}

// FindByKey resolves a bearer key to its token record.
func (r *PostgresRepository) FindByKey(ctx context.Context, key string) (Token, error) {
	row := r.db.QueryRow(ctx, `SELECT key, phone, created_at FROM tokens WHERE key = $1`, key)
	return scanToken(row)
}

func scanToken(row pgx.Row) (Token, error) {
	var (
		t         Token
		createdAt time.Time
	)
	if err := row.Scan(&t.Key, &t.Phone, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Token{}, ErrTokenNotFound
		}
		return Token{}, err
	}
	t.CreatedAt = createdAt.UTC()
	return t, nil
}

package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates no user matches the requested phone or referral code.
	ErrNotFound = errors.New("user not found")
	// ErrPhoneExists indicates the phone number is already registered.
	ErrPhoneExists = errors.New("phone already registered")
	// ErrRefTaken indicates the generated referral code collided with an
	// existing one; the caller regenerates and retries.
	ErrRefTaken = errors.New("referral code already taken")
	// ErrAlreadyInvited indicates the user's invited code is already set and
	// cannot change.
	ErrAlreadyInvited = errors.New("invited code already registered")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByPhone(ctx context.Context, phone string) (User, error)
	FindByRef(ctx context.Context, ref string) (User, error)
	ListInvitedBy(ctx context.Context, ref string) ([]User, error)
	// SetInvited assigns the invited code only while it is still empty,
	// failing with ErrAlreadyInvited otherwise. The compare-and-swap keeps
	// concurrent registrations from the same user single-shot.
	SetInvited(ctx context.Context, phone, ref string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolation = "23505"

// Create inserts a new user. Unique-constraint violations map to sentinel
// errors so the service can retry referral code generation.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (phone, ref, invited, created_at)
        VALUES ($1, $2, $3, $4)`, user.Phone, user.Ref, user.Invited, user.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if pgErr.ConstraintName == "users_ref_key" {
			return ErrRefTaken
		}
		return ErrPhoneExists
	}
	return err
}

// FindByPhone fetches a user by normalized phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT phone, ref, invited, created_at FROM users WHERE phone = $1`, phone)
	return scanUser(row)
}

// FindByRef fetches the user owning the given referral code.
func (r *PostgresRepository) FindByRef(ctx context.Context, ref string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT phone, ref, invited, created_at FROM users WHERE ref = $1`, ref)
	return scanUser(row)
}

// ListInvitedBy returns users whose invited code equals ref, oldest first.
func (r *PostgresRepository) ListInvitedBy(ctx context.Context, ref string) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT phone, ref, invited, created_at FROM users
        WHERE invited = $1 ORDER BY created_at, phone`, ref)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var (
			u         User
			createdAt time.Time
		)
		if err := rows.Scan(&u.Phone, &u.Ref, &u.Invited, &createdAt); err != nil {
			return nil, err
		}
		u.CreatedAt = createdAt.UTC()
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetInvited performs the conditional update; zero rows affected means the
// invited code was set concurrently or earlier.
func (r *PostgresRepository) SetInvited(ctx context.Context, phone, ref string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET invited = $1 WHERE phone = $2 AND invited = ''`, ref, phone)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAlreadyInvited
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		u         User
		createdAt time.Time
	)
	if err := row.Scan(&u.Phone, &u.Ref, &u.Invited, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.CreatedAt = createdAt.UTC()
	return u, nil
}

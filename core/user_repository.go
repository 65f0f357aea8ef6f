package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store discriminators. These are the only two failure classes the service
// layer translates; anything else propagates unchanged.
var (
	// ErrDuplicateKey signals a unique-constraint violation (email).
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrRecordNotFound signals that no row matched the given key.
	ErrRecordNotFound = errors.New("record not found")
)

// UserRecord is the persisted user row. PasswordHash holds the bcrypt
// digest; plaintext never reaches this layer.
type UserRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserPatch carries the fields of a partial update. Nil pointers mean the
// field is left untouched; UpdatedAt is always written.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *UserRecord) error
	List(ctx context.Context) ([]UserRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*UserRecord, error)
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PgUserRepository implements UserRepository using pgxpool.
type PgUserRepository struct {
	db *pgxpool.Pool
}

func NewPgUserRepository(db *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{db: db}
}

var _ UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) Create(ctx context.Context, user *UserRecord) error {
	const q = `INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.db.Exec(ctx, q, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	return translatePgError(err)
}

func (r *PgUserRepository) List(ctx context.Context) ([]UserRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, password_hash, created_at, updated_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]UserRecord, 0)
	for rows.Next() {
		var u UserRecord
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*UserRecord, error) {
	const q = `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id=$1`
	return r.scanOne(r.db.QueryRow(ctx, q, id))
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	const q = `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email=$1`
	return r.scanOne(r.db.QueryRow(ctx, q, email))
}

func (r *PgUserRepository) scanOne(row pgx.Row) (*UserRecord, error) {
	var u UserRecord
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translatePgError(err)
	}
	return &u, nil
}

// Update writes only the supplied fields plus updated_at.
func (r *PgUserRepository) Update(ctx context.Context, id uuid.UUID, patch UserPatch) error {
	sets := []string{"updated_at=$1"}
	args := []any{patch.UpdatedAt}

	appendSet := func(column string, value string) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.Email != nil {
		appendSet("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		appendSet("password_hash", *patch.PasswordHash)
	}

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE users SET %s WHERE id=$%d`, strings.Join(sets, ", "), len(args))

	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *PgUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// translatePgError maps the two recognized postgres outcomes onto the store
// discriminators and leaves everything else untouched.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRecordNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrDuplicateKey
	}
	return err
}

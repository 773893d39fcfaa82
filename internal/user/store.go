package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Sentinel errors whose text is part of the API contract: the auth
// handlers surface them verbatim in 400/404 responses.
var (
	ErrMissingFields    = errors.New("Username, email, and password are required")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters long")
	ErrInvalidEmail     = errors.New("Invalid email format")
	ErrDuplicate        = errors.New("Username or email already exists")
	ErrNotFound         = errors.New("User not found")
)

// Store persists user records in SQLite. Uniqueness of username and
// email is enforced by the schema; Store maps constraint violations to
// ErrDuplicate.
type Store struct {
	db   *sql.DB
	cost int
	now  func() time.Time
}

// NewStore wraps an open database handle. cost is the bcrypt cost used
// when hashing passwords on create/update.
func NewStore(db *sql.DB, cost int) *Store {
	return &Store{db: db, cost: cost, now: time.Now}
}

// Migrate creates the users table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','admin')),
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`)
	if err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

// Create validates the fields, hashes the password, and inserts a new
// user. The returned record carries the store-assigned id.
func (s *Store) Create(ctx context.Context, username, email, password string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	now := s.now().Unix()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = ? OR email = ?`, username, email).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if exists == 1 {
		return nil, ErrDuplicate
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
	`, username, email, hash, string(role), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &User{
		ID:        id,
		Username:  username,
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Unix(now, 0),
		UpdatedAt: time.Unix(now, 0),
	}, nil
}

// FindByID returns the user without its password hash.
func (s *Store) FindByID(ctx context.Context, id int64) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, role, is_active, created_at, updated_at
		FROM users WHERE id = ?
	`, id)
	return scanUser(row, false)
}

// FindByUsername returns the user including its password hash, for
// credential verification at login.
func (s *Store) FindByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, role, is_active, created_at, updated_at
		FROM users WHERE username = ?
	`, username)
	return scanUser(row, true)
}

// FindAll returns all users, newest first, without password hashes.
func (s *Store) FindAll(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, email, role, is_active, created_at, updated_at
		FROM users ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var (
			u        User
			active   int64
			created  int64
			updated  int64
			roleName string
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &roleName, &active, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = Role(roleName)
		u.IsActive = active != 0
		u.CreatedAt = time.Unix(created, 0)
		u.UpdatedAt = time.Unix(updated, 0)
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateParams holds optional profile fields; nil means "leave as is".
type UpdateParams struct {
	Username *string
	Email    *string
	Role     *Role
}

// Update applies the non-nil fields and returns the fresh record.
func (s *Store) Update(ctx context.Context, id int64, p UpdateParams) (*User, error) {
	var (
		sets []string
		args []any
	)
	if p.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, strings.TrimSpace(*p.Username))
	}
	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		if !validEmail(email) {
			return nil, ErrInvalidEmail
		}
		sets = append(sets, "email = ?")
		args = append(args, email)
	}
	if p.Role != nil {
		if !p.Role.Valid() {
			return nil, fmt.Errorf("invalid role %q", *p.Role)
		}
		sets = append(sets, "role = ?")
		args = append(args, string(*p.Role))
	}
	if len(sets) == 0 {
		return s.FindByID(ctx, id)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, s.now().Unix(), id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// UpdatePassword re-validates and re-hashes the password for id.
func (s *Store) UpdatePassword(ctx context.Context, id int64, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}
	hash, err := HashPassword(newPassword, s.cost)
	if err != nil {
		return err
	}
	return s.exec(ctx, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, s.now().Unix(), id)
}

// Deactivate marks the user inactive; an inactive user cannot log in.
func (s *Store) Deactivate(ctx context.Context, id int64) error {
	return s.exec(ctx, `UPDATE users SET is_active = 0, updated_at = ? WHERE id = ?`, s.now().Unix(), id)
}

// Activate re-enables a deactivated user.
func (s *Store) Activate(ctx context.Context, id int64) error {
	return s.exec(ctx, `UPDATE users SET is_active = 1, updated_at = ? WHERE id = ?`, s.now().Unix(), id)
}

// Delete permanently removes the user record.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.exec(ctx, `DELETE FROM users WHERE id = ?`, id)
}

// exec runs a statement expected to touch exactly one row and maps
// "zero rows" to ErrNotFound.
func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, withHash bool) (*User, error) {
	var (
		u        User
		roleName string
		active   int64
		created  int64
		updated  int64
	)
	dest := []any{&u.ID, &u.Username, &u.Email}
	if withHash {
		dest = append(dest, &u.PasswordHash)
	}
	dest = append(dest, &roleName, &active, &created, &updated)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Role = Role(roleName)
	u.IsActive = active != 0
	u.CreatedAt = time.Unix(created, 0)
	u.UpdatedAt = time.Unix(updated, 0)
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func normalizeEmail(e string) string {
	return strings.TrimSpace(strings.ToLower(e))
}

// validEmail is a minimal sanity check without full RFC validation;
// stricter shape rules live in the request schemas.
func validEmail(e string) bool {
	if e == "" || strings.ContainsAny(e, " \t") {
		return false
	}
	parts := strings.Split(e, "@")
	if len(parts) != 2 {
		return false
	}
	return parts[0] != "" && parts[1] != "" && strings.Contains(parts[1], ".")
}

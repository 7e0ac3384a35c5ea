package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"mediahub/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, username, password_hashed, full_name, avatar_url, avatar_key, bio, is_active, created_at, updated_at`

// Create inserts a new user. Email is stored lowercased; a duplicate
// email surfaces as model.ErrEmailExists via the unique constraint.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (email, username, password_hashed, full_name, avatar_url, avatar_key, bio, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, NOW(), NOW())
		RETURNING id, is_active, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		strings.ToLower(u.Email),
		u.Username,
		u.PasswordHashed,
		u.FullName,
		u.AvatarURL,
		u.AvatarKey,
		u.Bio,
	)

	err := row.Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.Email = strings.ToLower(u.Email)

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by email (case-insensitive)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, strings.ToLower(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &u, nil
}

// ExistsByEmail checks if an email is already registered
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, strings.ToLower(email))
	if err != nil {
		return false, fmt.Errorf("check email existence: %w", err)
	}

	return exists, nil
}

// UpdateProfile patches full_name and bio; nil fields are left untouched.
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, fullName, bio *string) (*model.User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE($1, full_name),
		    bio = COALESCE($2, bio),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, fullName, bio, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &u, nil
}

// UpdateAvatar replaces the avatar location for a user.
func (r *userRepository) UpdateAvatar(ctx context.Context, id int64, avatarURL, avatarKey string) (*model.User, error) {
	query := `
		UPDATE users
		SET avatar_url = $1, avatar_key = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, avatarURL, avatarKey, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("update avatar: %w", err)
	}

	return &u, nil
}

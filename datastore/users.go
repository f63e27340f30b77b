package datastore

import (
	"context"
	"fmt"

	"github.com/coreybb/tasker/models"
)

type UserRepository struct {
	conn *Conn
}

func NewUserRepository(conn *Conn) *UserRepository {
	return &UserRepository{conn: conn}
}

// CreateUser inserts a user. user.Password must already be hashed.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, created_at, name, email, password)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.conn.exec(ctx, query, user.ID, user.CreatedAt, user.Name, user.Email, user.Password)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", classify(err, writeUpsert))
	}
	return nil
}

// Read queries never select the password column.
const userColumns = `id, created_at, name, email`

func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	var user models.User
	err := r.conn.queryRow(ctx, query, userID).Scan(&user.ID, &user.CreatedAt, &user.Name, &user.Email)
	if err != nil {
		return nil, notFound(err, "user", userID)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	var user models.User
	err := r.conn.queryRow(ctx, query, email).Scan(&user.ID, &user.CreatedAt, &user.Name, &user.Email)
	if err != nil {
		return nil, notFound(err, "user with email", email)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.conn.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.CreatedAt, &user.Name, &user.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		user.CreatedAt = user.CreatedAt.UTC()
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user and reports how many rows went away. Users that
// still own folders or tasks are refused with ErrConflict.
func (r *UserRepository) DeleteUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.conn.exec(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user %s: %w", userID, classify(err, writeDelete))
	}
	return rowsAffected(res)
}

// PatchUser updates the non-nil columns of patch. patch.Password must already be hashed.
func (r *UserRepository) PatchUser(ctx context.Context, userID string, patch models.UserPatch) (int64, error) {
	var cols []string
	var args []any
	if patch.Name != nil {
		cols = append(cols, "name")
		args = append(args, *patch.Name)
	}
	if patch.Email != nil {
		cols = append(cols, "email")
		args = append(args, *patch.Email)
	}
	if patch.Password != nil {
		cols = append(cols, "password")
		args = append(args, *patch.Password)
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("empty patch for user %s", userID)
	}
	args = append(args, userID)

	query := `UPDATE users SET ` + setClause(cols) + ` WHERE id = ?`
	res, err := r.conn.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update user %s: %w", userID, classify(err, writeUpsert))
	}
	return rowsAffected(res)
}

package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
	EmployeeID   string // empty when no employee row references this user
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (User, error) {
	var out User
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.username, u.password_hash, u.role, u.is_active, COALESCE(e.id::text, '')
    FROM users u
    LEFT JOIN employees e ON e.user_id = u.id
    WHERE u.username = $1
  `, username).Scan(&out.ID, &out.Username, &out.PasswordHash, &out.Role, &out.IsActive, &out.EmployeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return out, err
}

func (s *Store) ActorByUserID(ctx context.Context, userID string) (Actor, error) {
	var actor Actor
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.role, COALESCE(e.id::text, '')
    FROM users u
    LEFT JOIN employees e ON e.user_id = u.id
    WHERE u.id = $1 AND u.is_active
  `, userID).Scan(&actor.UserID, &actor.Role, &actor.EmployeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Actor{}, ErrUserNotFound
	}
	return actor, err
}

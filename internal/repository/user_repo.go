package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"calsync/internal/db"
)

type UserRepository interface {
	Create(user *db.User) error
	GetByEmail(email string) (*db.User, error)
	GetByID(id string) (*db.User, error)
	GetByUserName(userName string) (*db.User, error)
	SetUserName(id, userName string) error
	UpdateProfile(id, name, image string) error
	UpdateGrant(id, grantEmail string, grantToken []byte) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *db.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at`
	return r.db.QueryRow(query, user.ID, user.Email, user.PasswordHash, user.Name).
		Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	return r.getOne(`WHERE email = $1`, email)
}

func (r *userRepository) GetByID(id string) (*db.User, error) {
	return r.getOne(`WHERE id = $1`, id)
}

func (r *userRepository) GetByUserName(userName string) (*db.User, error) {
	return r.getOne(`WHERE user_name = $1`, userName)
}

func (r *userRepository) getOne(where string, arg interface{}) (*db.User, error) {
	var u db.User
	query := `
		SELECT id, email, password_hash, name, user_name, image, phone, grant_email, grant_token, created_at, updated_at
		FROM users ` + where
	err := r.db.QueryRow(query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.UserName, &u.Image,
		&u.Phone, &u.GrantEmail, &u.GrantToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) SetUserName(id, userName string) error {
	_, err := r.db.Exec(
		`UPDATE users SET user_name = $1, updated_at = NOW() WHERE id = $2`,
		userName, id,
	)
	if err != nil {
		return fmt.Errorf("error setting username: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateProfile(id, name, image string) error {
	_, err := r.db.Exec(
		`UPDATE users SET name = $1, image = $2, updated_at = NOW() WHERE id = $3`,
		name, image, id,
	)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateGrant(id, grantEmail string, grantToken []byte) error {
	_, err := r.db.Exec(
		`UPDATE users SET grant_email = $1, grant_token = $2, updated_at = NOW() WHERE id = $3`,
		grantEmail, grantToken, id,
	)
	if err != nil {
		return fmt.Errorf("error storing calendar grant: %w", err)
	}
	return nil
}

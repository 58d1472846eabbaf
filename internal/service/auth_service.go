package service

import (
	"errors"
	"fmt"
	"os"
	"time"

	"calsync/internal/db"
	"calsync/internal/repository"
	"calsync/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultFromTime = "08:00"
	defaultTillTime = "18:00"
)

type AuthService interface {
	Signup(email, password, name string) (string, error)
	Login(email, password string) (string, error)
}

type authService struct {
	users        repository.UserRepository
	availability repository.AvailabilityRepository
}

func NewAuthService(users repository.UserRepository, availability repository.AvailabilityRepository) AuthService {
	return &authService{users: users, availability: availability}
}

// Signup registers a user and seeds the default weekly availability
// (08:00-18:00, weekdays active). Returns a session token.
func (s *authService) Signup(email, password, name string) (string, error) {
	if email == "" || password == "" || name == "" {
		return "", errors.New("email, password and name cannot be empty")
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &db.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	if err := s.users.Create(user); err != nil {
		return "", fmt.Errorf("error creating user: %w", err)
	}

	var days []db.Availability
	for _, day := range utils.WeekDays {
		days = append(days, db.Availability{
			Day:      day,
			FromTime: defaultFromTime,
			TillTime: defaultTillTime,
			IsActive: !utils.IsWeekend(day),
		})
	}
	if err := s.availability.SeedDefaults(user.ID, days); err != nil {
		return "", fmt.Errorf("error seeding availability: %w", err)
	}

	return signToken(user.ID)
}

func (s *authService) Login(email, password string) (string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	return signToken(user.ID)
}

func signToken(userID string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

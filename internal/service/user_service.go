package service

import (
	"errors"
	"regexp"

	"calsync/internal/db"
	"calsync/internal/repository"
)

var userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9-]{3,30}$`)

type UserService struct {
	Repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) GetProfile(userID string) (*db.User, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

// ClaimUserName sets the public booking-page handle. Usernames are
// letters/digits/hyphens and must be globally unique.
func (s *UserService) ClaimUserName(userID, userName string) error {
	if !userNamePattern.MatchString(userName) {
		return errors.New("username must be 3-30 characters, letters, digits and hyphens only")
	}

	taken, err := s.Repo.GetByUserName(userName)
	if err != nil {
		return err
	}
	if taken != nil && taken.ID != userID {
		return errors.New("username is already taken")
	}

	return s.Repo.SetUserName(userID, userName)
}

func (s *UserService) UpdateProfile(userID, name, image string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	return s.Repo.UpdateProfile(userID, name, image)
}

// StoreGrant persists the calendar provider token and granted account email
// after a successful OAuth exchange.
func (s *UserService) StoreGrant(userID, grantEmail string, grantToken []byte) error {
	return s.Repo.UpdateGrant(userID, grantEmail, grantToken)
}

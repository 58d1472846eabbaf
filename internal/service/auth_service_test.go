package service

import (
	"testing"

	"calsync/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthUserRepo struct {
	fakeUserRepo
	byEmail map[string]*db.User
	created []*db.User
}

func (f *fakeAuthUserRepo) GetByEmail(email string) (*db.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeAuthUserRepo) Create(user *db.User) error {
	f.created = append(f.created, user)
	if f.byEmail == nil {
		f.byEmail = map[string]*db.User{}
	}
	f.byEmail[user.Email] = user
	return nil
}

type fakeSeedRepo struct {
	fakeAvailabilityRepo
	seeded map[string][]db.Availability
}

func (f *fakeSeedRepo) SeedDefaults(userID string, days []db.Availability) error {
	if f.seeded == nil {
		f.seeded = map[string][]db.Availability{}
	}
	f.seeded[userID] = days
	return nil
}

func TestSignup(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := &fakeAuthUserRepo{}
	avail := &fakeSeedRepo{}
	svc := NewAuthService(users, avail)

	token, err := svc.Signup("new@example.com", "hunter22", "New User")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	require.Len(t, users.created, 1)
	user := users.created[0]
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))

	days := avail.seeded[user.ID]
	require.Len(t, days, 7)
	active := 0
	for _, d := range days {
		assert.Equal(t, "08:00", d.FromTime)
		assert.Equal(t, "18:00", d.TillTime)
		if d.IsActive {
			active++
		}
	}
	assert.Equal(t, 5, active, "weekdays active, weekend inactive")

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := &fakeAuthUserRepo{byEmail: map[string]*db.User{
		"taken@example.com": {ID: "u-1", Email: "taken@example.com"},
	}}
	svc := NewAuthService(users, &fakeSeedRepo{})

	_, err := svc.Signup("taken@example.com", "hunter22", "Dup User")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeAuthUserRepo{byEmail: map[string]*db.User{
		"user@example.com": {ID: "u-1", Email: "user@example.com", PasswordHash: string(hash)},
	}}
	svc := NewAuthService(users, &fakeSeedRepo{})

	token, err := svc.Login("user@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login("user@example.com", "wrong-password")
	assert.Error(t, err)

	_, err = svc.Login("missing@example.com", "hunter22")
	assert.Error(t, err)
}

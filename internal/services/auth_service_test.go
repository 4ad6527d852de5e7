package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/phasecast/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type stubAuthUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newStubAuthUserRepo() *stubAuthUserRepo {
	return &stubAuthUserRepo{users: map[uint]models.User{}, nextID: 1}
}

func (repo *stubAuthUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	_, err := repo.FindByNormalizedEmail(email)
	return err == nil, nil
}

func (repo *stubAuthUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, errors.New("not found")
}

func (repo *stubAuthUserRepo) FindByID(userID uint) (models.User, error) {
	user, ok := repo.users[userID]
	if !ok {
		return models.User{}, errors.New("not found")
	}
	return user, nil
}

func (repo *stubAuthUserRepo) Create(user *models.User) error {
	user.ID = repo.nextID
	repo.nextID++
	repo.users[user.ID] = *user
	return nil
}

func (repo *stubAuthUserRepo) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	user := repo.users[userID]
	user.PasswordHash = passwordHash
	user.MustChangePassword = mustChangePassword
	repo.users[userID] = user
	return nil
}

func newTestAuthService(repo *stubAuthUserRepo) *AuthService {
	service := NewAuthService(repo)
	service.cost = bcrypt.MinCost
	return service
}

func TestAuthServiceRegisterAndAuthenticate(t *testing.T) {
	repo := newStubAuthUserRepo()
	service := newTestAuthService(repo)

	user, err := service.Register(" Owner@Example.com ", "StrongPass1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.NotEqual(t, "StrongPass1", user.PasswordHash)
	assert.Equal(t, models.DefaultCycleLength, user.CycleLength)

	authenticated, err := service.Authenticate("OWNER@example.com", "StrongPass1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authenticated.ID)

	_, err = service.Authenticate("owner@example.com", "WrongPass1")
	assert.ErrorIs(t, err, ErrAuthCredentialsInvalid)
	_, err = service.Authenticate("ghost@example.com", "StrongPass1")
	assert.ErrorIs(t, err, ErrAuthCredentialsInvalid)
}

func TestAuthServiceRegisterRejectsBadInput(t *testing.T) {
	service := newTestAuthService(newStubAuthUserRepo())

	_, err := service.Register("not-an-email", "StrongPass1", time.Now())
	assert.ErrorIs(t, err, ErrAuthCredentialsInvalid)

	_, err = service.Register("user@example.com", "weak", time.Now())
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = service.Register("user@example.com", "StrongPass1", time.Now())
	require.NoError(t, err)
	_, err = service.Register("USER@example.com", "StrongPass1", time.Now())
	assert.ErrorIs(t, err, ErrAuthEmailTaken)
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo := newStubAuthUserRepo()
	service := newTestAuthService(repo)

	user, err := service.Register("user@example.com", "StrongPass1", time.Now())
	require.NoError(t, err)

	assert.ErrorIs(t, service.ChangePassword(user, "WrongPass1", "NewStrong2"), ErrAuthCredentialsInvalid)
	assert.ErrorIs(t, service.ChangePassword(user, "StrongPass1", "short"), ErrWeakPassword)
	require.NoError(t, service.ChangePassword(user, "StrongPass1", "NewStrong2"))

	_, err = service.Authenticate("user@example.com", "NewStrong2")
	assert.NoError(t, err)
}

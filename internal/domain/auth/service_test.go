package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tillpoint/internal/core/apperror"
	appctx "tillpoint/internal/core/context"
	"tillpoint/internal/core/id"
)

type mockUserRepo struct {
	byEmail map[string]*User
	created *User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: make(map[string]*User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return apperror.NewDuplicate("user", "email", u.Email)
	}
	m.byEmail[u.Email] = u
	m.created = u
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	for _, u := range m.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID)
}

func newAuthService(repo Repository) *Service {
	return NewService(repo, newTestJWTService(time.Hour))
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	session, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "  Asha ",
		Email:    "Asha@Example.COM",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	assert.Equal(t, "asha@example.com", repo.created.Email)
	assert.Equal(t, "Asha", repo.created.Name)
	assert.Equal(t, appctx.RoleStaff, repo.created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("secret1")))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "abc",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetHTTPStatus(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	req := RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestLoginSuccess(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "secret1", Role: appctx.RoleAdmin,
	})
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), LoginRequest{
		Email: "ASHA@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	uc, err := svc.tokens.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, appctx.RoleAdmin, uc.Role)
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, badPassword := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "wrong"})
	_, badEmail := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret1"})

	require.Error(t, badPassword)
	require.Error(t, badEmail)
	assert.Equal(t, badPassword.Error(), badEmail.Error())
	assert.Equal(t, 401, apperror.GetHTTPStatus(badPassword))
	assert.Equal(t, 401, apperror.GetHTTPStatus(badEmail))
}

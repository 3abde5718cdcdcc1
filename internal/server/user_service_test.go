package server

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/config"
	"github.com/jonathan/application-tracker/internal/sqlite"
	"github.com/jonathan/application-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestUserService(t *testing.T, passwords *config.PasswordConfig) *UserService {
	t.Helper()
	st, err := sqlite.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewUserService(st, passwords)
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc := setupTestUserService(t, testPasswords())
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.RegisterRequest{
		Email:           "jane@example.com",
		Password:        "correct-horse",
		FirstName:       "Jane",
		ProfileImageURL: "https://example.com/jane.png",
	})
	require.NoError(t, err)
	require.NotNil(t, user.ProfileImageURL)
	assert.Equal(t, "https://example.com/jane.png", *user.ProfileImageURL)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	got, err := svc.Login(ctx, &types.LoginRequest{Email: "jane@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "jane@example.com", Password: "nope"})
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc := setupTestUserService(t, testPasswords())
	ctx := context.Background()

	req := &types.RegisterRequest{Email: "jane@example.com", Password: "correct-horse", FirstName: "Jane"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	var exists *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "jane@example.com", exists.Email)
}

func TestUserService_Register_PasswordTooLong(t *testing.T) {
	svc := setupTestUserService(t, testPasswords())

	_, err := svc.Register(context.Background(), &types.RegisterRequest{
		Email:     "jane@example.com",
		Password:  strings.Repeat("x", 73),
		FirstName: "Jane",
	})
	var validation *ErrValidation
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "password", validation.Field)
}

func TestUserService_UpdatePassword_UnknownUser(t *testing.T) {
	svc := setupTestUserService(t, testPasswords())

	err := svc.UpdatePassword(context.Background(), uuid.New(), "a", "correct-horse")
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestUserService_Pepper(t *testing.T) {
	peppered := &config.PasswordConfig{BcryptCost: 10, Pepper: "server-side-secret"}
	svc := setupTestUserService(t, peppered)
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.RegisterRequest{Email: "jane@example.com", Password: "correct-horse", FirstName: "Jane"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "jane@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	// The same stored hash does not verify without the pepper.
	svc.passwordConfig = testPasswords()
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "jane@example.com", Password: "correct-horse"})
	assert.Error(t, err)
}

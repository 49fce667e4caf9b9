package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
)

func newAuthService(users map[string]*models.User, byEmail map[string]*models.User) *AuthService {
	repo := &mockUserRepo{byID: users, byEmail: byEmail}
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "school-api",
	})
}

func TestLoginSuccessIssuesValidToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-1", Email: "admin@school.test", PasswordHash: string(hash), Role: models.RoleAdmin}
	svc := newAuthService(map[string]*models.User{"user-1": user}, map[string]*models.User{"admin@school.test": user})

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@school.test", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "user-1", res.User.ID)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-1", Email: "admin@school.test", PasswordHash: string(hash), Role: models.RoleAdmin}
	svc := newAuthService(nil, map[string]*models.User{"admin@school.test": user})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@school.test", Password: "wrong"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(nil, map[string]*models.User{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@school.test", Password: "whatever"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(nil, nil)

	_, err := svc.ValidateToken("not-a-jwt")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-1", Email: "admin@school.test", PasswordHash: string(hash), Role: models.RoleAdmin}
	issuer := newAuthService(nil, map[string]*models.User{"admin@school.test": user})

	res, err := issuer.Login(context.Background(), models.LoginRequest{Email: "admin@school.test", Password: "password"})
	require.NoError(t, err)

	verifier := NewAuthService(&mockUserRepo{}, validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "different-secret",
		TokenExpiry: time.Hour,
	})
	_, err = verifier.ValidateToken(res.Token)
	require.Error(t, err)
}

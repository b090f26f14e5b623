package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/security"
	"drivehub-backend/internal/service"
)

const testJWTSecret = "unit-test-secret-0123456789abcdef"

func newAuthService() (service.AuthService, *MockUserRepo, security.TokenManager) {
	userRepo := new(MockUserRepo)
	tokens := security.NewTokenManager(testJWTSecret, 60, 1440)
	return service.NewAuthService(userRepo, tokens), userRepo, tokens
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, userRepo, tokens := newAuthService()

		userRepo.On("GetByEmail", ctx, "renter@test.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).ID = 5
			}).
			Return(nil)

		user, access, refresh, err := svc.Signup(ctx, "Renter", "Renter@Test.com", "0917", "longenough")
		assert.NoError(t, err)
		assert.Equal(t, "renter@test.com", user.Email)
		assert.Equal(t, domain.UserRoleRenter, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")))

		claims, err := tokens.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)

		claims, err = tokens.ValidateToken(refresh)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, claims.Type)
	})

	t.Run("Short Password", func(t *testing.T) {
		svc, _, _ := newAuthService()

		_, _, _, err := svc.Signup(ctx, "Renter", "renter@test.com", "", "short")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc, userRepo, _ := newAuthService()

		userRepo.On("GetByEmail", ctx, "taken@test.com").Return(&domain.User{ID: 1}, nil)

		_, _, _, err := svc.Signup(ctx, "Renter", "taken@test.com", "", "longenough")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	stored := &domain.User{
		ID:           5,
		Email:        "renter@test.com",
		PasswordHash: string(hash),
		Role:         domain.UserRoleRenter,
	}

	t.Run("Success", func(t *testing.T) {
		svc, userRepo, _ := newAuthService()

		userRepo.On("GetByEmail", ctx, "renter@test.com").Return(stored, nil)

		user, access, _, err := svc.Login(ctx, "renter@test.com", "correct-horse")
		assert.NoError(t, err)
		assert.Equal(t, int32(5), user.ID)
		assert.NotEmpty(t, access)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, userRepo, _ := newAuthService()

		userRepo.On("GetByEmail", ctx, "renter@test.com").Return(stored, nil)

		_, _, _, err := svc.Login(ctx, "renter@test.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		svc, userRepo, _ := newAuthService()

		userRepo.On("GetByEmail", ctx, "nobody@test.com").Return(nil, domain.ErrNotFound)

		_, _, _, err := svc.Login(ctx, "nobody@test.com", "whatever")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects Access Token", func(t *testing.T) {
		svc, _, tokens := newAuthService()

		access, err := tokens.GenerateAccessToken(5, "renter@test.com", domain.UserRoleRenter)
		assert.NoError(t, err)

		_, _, err = svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})

	t.Run("Issues New Pair", func(t *testing.T) {
		svc, userRepo, tokens := newAuthService()

		refresh, err := tokens.GenerateRefreshToken(5, "renter@test.com")
		assert.NoError(t, err)

		userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5, Email: "renter@test.com", Role: domain.UserRoleRenter}, nil)

		access, newRefresh, err := svc.Refresh(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})
}

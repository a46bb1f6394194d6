package auth

import (
	"context"
	"testing"
	"time"

	"github.com/gottomy2/departures/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := HashPassword(password)
	assert.NoError(t, err)
	return &domain.User{ID: 1, Username: "admin", PasswordHash: hash, Role: "admin"}
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewAuthService(mockRepo, "test-secret", time.Hour)
	ctx := context.Background()

	mockRepo.On("GetByUsername", ctx, "admin").Return(testUser(t, "hunter2"), nil).Once()

	token, err := service.Login(ctx, "admin", "hunter2")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewAuthService(mockRepo, "test-secret", time.Hour)
	ctx := context.Background()

	mockRepo.On("GetByUsername", ctx, "admin").Return(testUser(t, "hunter2"), nil).Once()

	token, err := service.Login(ctx, "admin", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewAuthService(mockRepo, "test-secret", time.Hour)
	ctx := context.Background()

	mockRepo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound).Once()

	_, err := service.Login(ctx, "ghost", "hunter2")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Verify_ExpiredToken(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewAuthService(mockRepo, "test-secret", -time.Hour)
	ctx := context.Background()

	mockRepo.On("GetByUsername", ctx, "admin").Return(testUser(t, "hunter2"), nil).Once()

	token, err := service.Login(ctx, "admin", "hunter2")
	assert.NoError(t, err)

	_, err = service.Verify(token)
	assert.Error(t, err)
}

func TestAuthService_Verify_WrongSecret(t *testing.T) {
	mockRepo := &MockUserRepository{}
	issuer := NewAuthService(mockRepo, "secret-a", time.Hour)
	verifier := NewAuthService(mockRepo, "secret-b", time.Hour)
	ctx := context.Background()

	mockRepo.On("GetByUsername", ctx, "admin").Return(testUser(t, "hunter2"), nil).Once()

	token, err := issuer.Login(ctx, "admin", "hunter2")
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestAuthService_Verify_Garbage(t *testing.T) {
	service := NewAuthService(&MockUserRepository{}, "test-secret", time.Hour)

	_, err := service.Verify("not-a-token")
	assert.Error(t, err)
}

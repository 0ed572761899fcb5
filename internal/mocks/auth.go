package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) GenerateToken(eid int64, ttl time.Duration) (string, error) {
	args := m.Called(eid, ttl)
	return args.String(0), args.Error(1)
}

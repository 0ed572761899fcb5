package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wb-service/portal/backend/internal/service"
	"github.com/wb-service/portal/backend/internal/types"
)

// MockBirthdayService is a mock implementation of the BirthdayService interface
type MockBirthdayService struct {
	mock.Mock
}

func (m *MockBirthdayService) Upcoming(ctx context.Context, unit service.TimeUnit) ([]types.Birthday, error) {
	args := m.Called(ctx, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Birthday), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wb-service/portal/backend/internal/service"
)

// MockStaticService is a mock implementation of the StaticService interface
type MockStaticService struct {
	mock.Mock
}

func (m *MockStaticService) Upload(ctx context.Context, in service.Upload) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStaticService) Get(ctx context.Context, id int64) (*service.StoredFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StoredFile), args.Error(1)
}

func (m *MockStaticService) CanDelete(ctx context.Context, id, clientID int64) (bool, error) {
	args := m.Called(ctx, id, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStaticService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

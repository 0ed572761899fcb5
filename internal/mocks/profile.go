package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wb-service/portal/backend/internal/types"
)

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, eid int64) (*types.ProfileResponse, error) {
	args := m.Called(ctx, eid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProfileResponse), args.Error(1)
}

func (m *MockProfileService) GetProfileFor(ctx context.Context, viewerEID, eid int64) (*types.ProfileResponse, error) {
	args := m.Called(ctx, viewerEID, eid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProfileResponse), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, actorEID, eid int64, req *types.UpdateProfileRequest) error {
	args := m.Called(ctx, actorEID, eid, req)
	return args.Error(0)
}

func (m *MockProfileService) GetEditLog(ctx context.Context, viewerEID, eid int64) ([]types.ChangeLogEntry, error) {
	args := m.Called(ctx, viewerEID, eid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ChangeLogEntry), args.Error(1)
}

func (m *MockProfileService) PhoneAccess(ctx context.Context, viewerEID int64) ([]int64, error) {
	args := m.Called(ctx, viewerEID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockProfileService) ShareLink(eid int64) string {
	args := m.Called(eid)
	return args.String(0)
}

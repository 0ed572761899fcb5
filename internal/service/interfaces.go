package service

import (
	"context"
	"time"

	"github.com/wb-service/portal/backend/internal/types"
)

// IProfileService defines the interface for profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, eid int64) (*types.ProfileResponse, error)
	GetProfileFor(ctx context.Context, viewerEID, eid int64) (*types.ProfileResponse, error)
	UpdateProfile(ctx context.Context, actorEID, eid int64, req *types.UpdateProfileRequest) error
	GetEditLog(ctx context.Context, viewerEID, eid int64) ([]types.ChangeLogEntry, error)
	ShareLink(eid int64) string
	PhoneAccess(ctx context.Context, viewerEID int64) ([]int64, error)
}

// IBirthdayService defines the interface for birthday reminders
type IBirthdayService interface {
	Upcoming(ctx context.Context, unit TimeUnit) ([]types.Birthday, error)
}

// IStaticService defines the interface for static file operations
type IStaticService interface {
	Upload(ctx context.Context, in Upload) (int64, error)
	Get(ctx context.Context, id int64) (*StoredFile, error)
	CanDelete(ctx context.Context, id, clientID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// IAuthService defines the interface for bearer token operations
type IAuthService interface {
	ValidateToken(ctx context.Context, token string) (int64, error)
	GenerateToken(eid int64, ttl time.Duration) (string, error)
}

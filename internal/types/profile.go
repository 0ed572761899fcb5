package types

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/wb-service/portal/backend/internal/models"
)

// ProfileResponse is an employee record merged with its profile overlay
type ProfileResponse struct {
	EID           int64              `json:"eid"`
	FullName      string             `json:"full_name"`
	Position      string             `json:"position"`
	Department    *string            `json:"department"`
	BirthDate     Date               `json:"birth_date"`
	HireDate      Date               `json:"hire_date"`
	WorkPhone     string             `json:"work_phone"`
	WorkEmail     string             `json:"work_email"`
	WorkBand      string             `json:"work_band"`
	ManagerEID    *int64             `json:"manager_eid"`
	Manager       *string            `json:"manager"`
	HRBPEID       *int64             `json:"hrbp_eid"`
	HRBP          *string            `json:"hr"`
	AvatarID      *int64             `json:"avatar_id"`
	PersonalPhone *string            `json:"personal_phone"`
	Telegram      *string            `json:"telegram"`
	AboutMe       *string            `json:"about_me"`
	Projects      []ProjectResponse  `json:"projects"`
	Vacations     []VacationResponse `json:"vacations"`
}

// ProjectResponse is a stored project line
type ProjectResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	StartD   *Date   `json:"start_d"`
	EndD     *Date   `json:"end_d"`
	Position *string `json:"position"`
	Link     *string `json:"link"`
}

// NewProjectResponse converts a stored project
func NewProjectResponse(p models.Project) ProjectResponse {
	return ProjectResponse{
		ID:       p.ID,
		Name:     p.Name,
		StartD:   DatePtrOf(p.StartD),
		EndD:     DatePtrOf(p.EndD),
		Position: p.Position,
		Link:     p.Link,
	}
}

// VacationResponse is a stored vacation with the substitute's name resolved
type VacationResponse struct {
	ID            int64   `json:"id"`
	IsPlanned     bool    `json:"is_planned"`
	StartDate     Date    `json:"start_date"`
	EndDate       Date    `json:"end_date"`
	SubstituteEID *int64  `json:"substitute_eid"`
	Substitute    *string `json:"substitute"`
	Comment       *string `json:"comment"`
	IsOfficial    bool    `json:"is_official"`
}

// ProjectInput is one line of an incoming project list
type ProjectInput struct {
	Name     string  `json:"name" binding:"required,notblank,max=255"`
	StartD   *Date   `json:"start_d"`
	EndD     *Date   `json:"end_d"`
	Position *string `json:"position" binding:"omitempty,max=255"`
	Link     *string `json:"link" binding:"omitempty,max=512"`
}

// UpdateProfileRequest is a partial profile update. Keys left out of the
// document are kept, keys sent as null are cleared.
type UpdateProfileRequest struct {
	PersonalPhone Optional[string]         `json:"personal_phone"`
	Telegram      Optional[string]         `json:"telegram"`
	AboutMe       Optional[string]         `json:"about_me"`
	AvatarID      Optional[int64]          `json:"avatar_id"`
	Projects      Optional[[]ProjectInput] `json:"projects"`
}

// ChangeLogEntry is a change log row as served to clients. Values that
// were stored as JSON documents come back structured.
type ChangeLogEntry struct {
	ID           int64            `json:"id"`
	ChangedByEID int64            `json:"changed_by_eid"`
	ChangedAt    time.Time        `json:"changed_at"`
	TableName    string           `json:"table_name"`
	RecordID     *int64           `json:"record_id"`
	FieldName    string           `json:"field_name"`
	OldValue     any              `json:"old_value"`
	NewValue     any              `json:"new_value"`
	Operation    models.Operation `json:"operation"`
}

// DecodeLogValue turns a stored change log value back into a response
// value. Only JSON objects and arrays are decoded.
func DecodeLogValue(v *string) any {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if json.Valid([]byte(trimmed)) {
			return json.RawMessage(trimmed)
		}
	}
	return *v
}

// PhoneAccessResponse lists employees whose personal phone the caller may see
type PhoneAccessResponse struct {
	EIDs []int64 `json:"eids"`
}

// ShareLinkResponse carries a public profile link
type ShareLinkResponse struct {
	Link string `json:"link"`
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wb-service/portal/backend/internal/models"
	"github.com/wb-service/portal/backend/internal/types"
	"gorm.io/gorm"
)

// ProfileService handles employee profile operations
type ProfileService struct {
	db      *gorm.DB
	access  *AccessService
	changes *ChangeLogRecorder
	webURL  string
	log     zerolog.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, access *AccessService, changes *ChangeLogRecorder, webURL string, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		db:      db,
		access:  access,
		changes: changes,
		webURL:  strings.TrimRight(webURL, "/"),
		log:     logger.With().Str("service", "profile").Logger(),
	}
}

// GetProfile returns the full profile of eid, personal phone included
func (s *ProfileService) GetProfile(ctx context.Context, eid int64) (*types.ProfileResponse, error) {
	db := s.db.WithContext(ctx)

	employee, err := findEmployee(db, eid)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, NotFound("employee")
	}
	profile, err := findProfile(db, eid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, NotFound("profile")
	}

	resp := &types.ProfileResponse{
		EID:           employee.EID,
		FullName:      employee.FullName,
		Position:      employee.Position,
		BirthDate:     types.DateOf(employee.BirthDate),
		HireDate:      types.DateOf(employee.HireDate),
		WorkPhone:     employee.WorkPhone,
		WorkEmail:     employee.WorkEmail,
		WorkBand:      employee.WorkBand,
		ManagerEID:    employee.ManagerEID,
		HRBPEID:       employee.HRBPEID,
		AvatarID:      profile.AvatarID,
		PersonalPhone: profile.PersonalPhone,
		Telegram:      profile.Telegram,
		AboutMe:       profile.AboutMe,
		Projects:      []types.ProjectResponse{},
		Vacations:     []types.VacationResponse{},
	}

	if employee.DepartmentID != nil {
		var departments []models.Department
		if err := db.Where("id = ?", *employee.DepartmentID).Limit(1).Find(&departments).Error; err != nil {
			return nil, fmt.Errorf("load department: %w", err)
		}
		if len(departments) > 0 {
			resp.Department = &departments[0].Name
		}
	}

	var projects []models.Project
	if err := db.Where("profile_id = ?", profile.ID).Order("id").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, types.NewProjectResponse(p))
	}

	var vacations []models.Vacation
	if err := db.Where("profile_id = ?", profile.ID).Order("start_date, id").Find(&vacations).Error; err != nil {
		return nil, fmt.Errorf("load vacations: %w", err)
	}

	related := []*int64{employee.ManagerEID, employee.HRBPEID}
	for _, v := range vacations {
		related = append(related, v.SubstituteEID)
	}
	names, err := employeeNames(db, related...)
	if err != nil {
		return nil, err
	}
	resp.Manager = nameOf(names, employee.ManagerEID)
	resp.HRBP = nameOf(names, employee.HRBPEID)

	for _, v := range vacations {
		resp.Vacations = append(resp.Vacations, types.VacationResponse{
			ID:            v.ID,
			IsPlanned:     v.IsPlanned,
			StartDate:     types.DateOf(v.StartDate),
			EndDate:       types.DateOf(v.EndDate),
			SubstituteEID: v.SubstituteEID,
			Substitute:    nameOf(names, v.SubstituteEID),
			Comment:       v.Comment,
			IsOfficial:    v.IsOfficial,
		})
	}

	return resp, nil
}

// GetProfileFor returns the profile of eid as seen by viewerEID. The
// personal phone is blanked unless the access policy allows it.
func (s *ProfileService) GetProfileFor(ctx context.Context, viewerEID, eid int64) (*types.ProfileResponse, error) {
	resp, err := s.GetProfile(ctx, eid)
	if err != nil {
		return nil, err
	}
	allowed, err := s.access.CanViewPersonalPhone(ctx, viewerEID, eid)
	if err != nil {
		return nil, err
	}
	if !allowed {
		resp.PersonalPhone = nil
	}
	return resp, nil
}

// fieldChange is a scalar profile column whose incoming value differs from the stored one
type fieldChange struct {
	field    string
	oldValue any
	newValue any
}

// optionalChange compares a present incoming value with the stored one
func optionalChange[T comparable](field string, stored *T, in types.Optional[T]) (fieldChange, bool) {
	if !in.Set {
		return fieldChange{}, false
	}
	next := in.Ptr()
	if stored == nil && next == nil {
		return fieldChange{}, false
	}
	if stored != nil && next != nil && *stored == *next {
		return fieldChange{}, false
	}
	return fieldChange{field: field, oldValue: valueOf(stored), newValue: valueOf(next)}, true
}

func valueOf[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// UpdateProfile applies a partial update to the profile of eid on behalf
// of actorEID. Scalar changes are logged first in a fixed field order,
// then the project set is replaced if the request carries one. All of it
// commits in a single transaction.
func (s *ProfileService) UpdateProfile(ctx context.Context, actorEID, eid int64, req *types.UpdateProfileRequest) error {
	if err := req.Validate(); err != nil {
		return WrongParameters(types.InvalidField(err))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := findProfile(tx, eid)
		if err != nil {
			return err
		}
		if profile == nil {
			return NotFound("profile")
		}

		var changes []fieldChange
		if c, ok := optionalChange("personal_phone", profile.PersonalPhone, req.PersonalPhone); ok {
			changes = append(changes, c)
		}
		if c, ok := optionalChange("telegram", profile.Telegram, req.Telegram); ok {
			changes = append(changes, c)
		}
		if c, ok := optionalChange("about_me", profile.AboutMe, req.AboutMe); ok {
			changes = append(changes, c)
		}
		if c, ok := optionalChange("avatar_id", profile.AvatarID, req.AvatarID); ok {
			changes = append(changes, c)
		}

		updates := make(map[string]interface{}, len(changes))
		for _, c := range changes {
			if err := s.changes.Record(ctx, tx, ChangeEntry{
				ProfileID: profile.ID,
				ActorEID:  actorEID,
				Table:     models.ChangeTableProfile,
				RecordID:  &profile.ID,
				Field:     c.field,
				OldValue:  c.oldValue,
				NewValue:  c.newValue,
				Operation: models.OperationUpdate,
			}); err != nil {
				return err
			}
			updates[c.field] = c.newValue
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Profile{}).Where("id = ?", profile.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("update profile: %w", err)
			}
		}

		if req.Projects.HasValue() {
			if err := s.replaceProjects(ctx, tx, actorEID, profile.ID, req.Projects.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug().Int64("eid", eid).Int64("actor", actorEID).Msg("profile updated")
	return nil
}

// replaceProjects logs and deletes every stored project, then inserts and
// logs the incoming ones. Individual projects are never diffed.
func (s *ProfileService) replaceProjects(ctx context.Context, tx *gorm.DB, actorEID, profileID int64, incoming []types.ProjectInput) error {
	var stored []models.Project
	if err := tx.Where("profile_id = ?", profileID).Order("id").Find(&stored).Error; err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	for _, p := range stored {
		recordID := p.ID
		if err := s.changes.Record(ctx, tx, ChangeEntry{
			ProfileID: profileID,
			ActorEID:  actorEID,
			Table:     models.ChangeTableProject,
			RecordID:  &recordID,
			Field:     "all",
			OldValue:  p,
			Operation: models.OperationDelete,
		}); err != nil {
			return err
		}
	}
	if err := tx.Where("profile_id = ?", profileID).Delete(&models.Project{}).Error; err != nil {
		return fmt.Errorf("delete projects: %w", err)
	}

	if len(incoming) == 0 {
		return nil
	}
	fresh := make([]models.Project, 0, len(incoming))
	for _, in := range incoming {
		p := models.Project{
			ProfileID: profileID,
			Name:      in.Name,
			Position:  in.Position,
			Link:      in.Link,
		}
		if in.StartD != nil {
			d := in.StartD.Column()
			p.StartD = &d
		}
		if in.EndD != nil {
			d := in.EndD.Column()
			p.EndD = &d
		}
		fresh = append(fresh, p)
	}
	if err := tx.Create(&fresh).Error; err != nil {
		return fmt.Errorf("insert projects: %w", err)
	}
	for _, p := range fresh {
		recordID := p.ID
		if err := s.changes.Record(ctx, tx, ChangeEntry{
			ProfileID: profileID,
			ActorEID:  actorEID,
			Table:     models.ChangeTableProject,
			RecordID:  &recordID,
			Field:     "all",
			NewValue:  p,
			Operation: models.OperationCreate,
		}); err != nil {
			return err
		}
	}
	return nil
}

// PhoneAccess lists the employees whose personal phone viewerEID may see
func (s *ProfileService) PhoneAccess(ctx context.Context, viewerEID int64) ([]int64, error) {
	return s.access.VisibleEmployeeIDs(ctx, viewerEID)
}

// GetEditLog returns the change log of eid's profile ordered by time. A
// missing profile is reported before access is checked. A viewer other
// than the owner needs the same access as for the personal phone.
func (s *ProfileService) GetEditLog(ctx context.Context, viewerEID, eid int64) ([]types.ChangeLogEntry, error) {
	db := s.db.WithContext(ctx)

	profile, err := findProfile(db, eid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, NotFound("profile")
	}

	if viewerEID != eid {
		allowed, err := s.access.CanViewPersonalPhone(ctx, viewerEID, eid)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, NotAllowed("log")
		}
	}

	var rows []models.ProfileChangeLog
	if err := db.Where("profile_id = ?", profile.ID).Order("changed_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load change log: %w", err)
	}

	entries := make([]types.ChangeLogEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, types.ChangeLogEntry{
			ID:           r.ID,
			ChangedByEID: r.ChangedByEID,
			ChangedAt:    r.ChangedAt,
			TableName:    r.Table,
			RecordID:     r.RecordID,
			FieldName:    r.FieldName,
			OldValue:     types.DecodeLogValue(r.OldValue),
			NewValue:     types.DecodeLogValue(r.NewValue),
			Operation:    r.Operation,
		})
	}
	return entries, nil
}

// ShareLink builds the public link to eid's profile page
func (s *ProfileService) ShareLink(eid int64) string {
	return fmt.Sprintf("%s/profile/%d", s.webURL, eid)
}

func findProfile(db *gorm.DB, eid int64) (*models.Profile, error) {
	var profile models.Profile
	err := db.Where("employee_id = ?", eid).Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %d: %w", eid, err)
	}
	return &profile, nil
}

func employeeNames(db *gorm.DB, ids ...*int64) (map[int64]string, error) {
	var wanted []int64
	for _, id := range ids {
		if id != nil {
			wanted = append(wanted, *id)
		}
	}
	names := make(map[int64]string, len(wanted))
	if len(wanted) == 0 {
		return names, nil
	}
	var employees []models.Employee
	if err := db.Select("eid", "full_name").Where("eid IN ?", wanted).Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("load employee names: %w", err)
	}
	for _, e := range employees {
		names[e.EID] = e.FullName
	}
	return names, nil
}

func nameOf(names map[int64]string, eid *int64) *string {
	if eid == nil {
		return nil
	}
	if name, ok := names[*eid]; ok {
		return &name
	}
	return nil
}

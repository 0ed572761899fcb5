package service

import (
	"context"
	"fmt"

	"github.com/wb-service/portal/backend/internal/models"
	"gorm.io/gorm"
)

// PhoneAccessFacts are the relationship facts the sensitive-field policy
// looks at. Nil pointers mean the fact is unknown or the row is missing.
type PhoneAccessFacts struct {
	ViewerEID          int64
	ViewerDepartmentID *int64
	TargetFound        bool
	TargetDepartmentID *int64
	TargetManagerEID   *int64
	TargetHRBPEID      *int64
}

// NewPhoneAccessFacts collects facts from the viewer and target rows, either of which may be nil
func NewPhoneAccessFacts(viewerEID int64, viewer, target *models.Employee) PhoneAccessFacts {
	facts := PhoneAccessFacts{ViewerEID: viewerEID}
	if viewer != nil {
		facts.ViewerDepartmentID = viewer.DepartmentID
	}
	if target != nil {
		facts.TargetFound = true
		facts.TargetDepartmentID = target.DepartmentID
		facts.TargetManagerEID = target.ManagerEID
		facts.TargetHRBPEID = target.HRBPEID
	}
	return facts
}

// CanViewSensitiveField reports whether the viewer shares the target's
// department, is the target's manager, or is the target's HR business
// partner. Self access is not special-cased.
func CanViewSensitiveField(f PhoneAccessFacts) bool {
	if !f.TargetFound {
		return false
	}
	sameDepartment := f.ViewerDepartmentID != nil && f.TargetDepartmentID != nil &&
		*f.ViewerDepartmentID == *f.TargetDepartmentID
	isManager := f.TargetManagerEID != nil && *f.TargetManagerEID == f.ViewerEID
	isHRBP := f.TargetHRBPEID != nil && *f.TargetHRBPEID == f.ViewerEID
	return sameDepartment || isManager || isHRBP
}

// AccessService loads relationship facts and applies the policy
type AccessService struct {
	db *gorm.DB
}

// NewAccessService creates a new AccessService instance
func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// Facts loads the viewer and target rows. Missing rows are not an error.
func (s *AccessService) Facts(ctx context.Context, viewerEID, targetEID int64) (PhoneAccessFacts, error) {
	viewer, err := findEmployee(s.db.WithContext(ctx), viewerEID)
	if err != nil {
		return PhoneAccessFacts{}, err
	}
	target, err := findEmployee(s.db.WithContext(ctx), targetEID)
	if err != nil {
		return PhoneAccessFacts{}, err
	}
	return NewPhoneAccessFacts(viewerEID, viewer, target), nil
}

// CanViewPersonalPhone answers the policy for a viewer and a target employee
func (s *AccessService) CanViewPersonalPhone(ctx context.Context, viewerEID, targetEID int64) (bool, error) {
	facts, err := s.Facts(ctx, viewerEID, targetEID)
	if err != nil {
		return false, err
	}
	return CanViewSensitiveField(facts), nil
}

// VisibleEmployeeIDs lists every employee whose personal phone the viewer may see, ordered by eid
func (s *AccessService) VisibleEmployeeIDs(ctx context.Context, viewerEID int64) ([]int64, error) {
	db := s.db.WithContext(ctx)
	viewer, err := findEmployee(db, viewerEID)
	if err != nil {
		return nil, err
	}

	query := db.Model(&models.Employee{}).Where("manager_eid = ? OR hrbp_eid = ?", viewerEID, viewerEID)
	if viewer != nil && viewer.DepartmentID != nil {
		query = db.Model(&models.Employee{}).
			Where("department_id = ? OR manager_eid = ? OR hrbp_eid = ?", *viewer.DepartmentID, viewerEID, viewerEID)
	}

	var ids []int64
	if err := query.Order("eid").Pluck("eid", &ids).Error; err != nil {
		return nil, fmt.Errorf("list visible employees: %w", err)
	}
	return ids, nil
}

// findEmployee returns nil without error when no row matches
func findEmployee(db *gorm.DB, eid int64) (*models.Employee, error) {
	var employees []models.Employee
	if err := db.Where("eid = ?", eid).Limit(1).Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("load employee %d: %w", eid, err)
	}
	if len(employees) == 0 {
		return nil, nil
	}
	return &employees[0], nil
}

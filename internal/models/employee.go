package models

import (
	"gorm.io/datatypes"
)

// Department is a node of the organisation tree
type Department struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	ParentID *int64 `gorm:"index" json:"parent_id"`
}

// TableName specifies the table name for Department
func (Department) TableName() string {
	return "departments"
}

// Employee is the HR-owned record of a person. This service never writes it.
type Employee struct {
	EID          int64          `gorm:"column:eid;primaryKey;autoIncrement" json:"eid"`
	FullName     string         `gorm:"size:255;not null" json:"full_name"`
	Position     string         `gorm:"size:255;not null" json:"position"`
	DepartmentID *int64         `gorm:"index" json:"department_id"`
	BirthDate    datatypes.Date `gorm:"not null" json:"birth_date"`
	HireDate     datatypes.Date `gorm:"not null" json:"hire_date"`
	WorkPhone    string         `gorm:"size:64" json:"work_phone"`
	WorkEmail    string         `gorm:"size:255;not null;uniqueIndex" json:"work_email"`
	WorkBand     string         `gorm:"size:64" json:"work_band"`
	ManagerEID   *int64         `gorm:"column:manager_eid;index" json:"manager_eid"`
	HRBPEID      *int64         `gorm:"column:hrbp_eid;index" json:"hrbp_eid"`
}

// TableName specifies the table name for Employee
func (Employee) TableName() string {
	return "employees"
}

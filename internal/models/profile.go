package models

import (
	"gorm.io/datatypes"
)

// MaxAboutMeLength is the column limit for Profile.AboutMe, in characters
const MaxAboutMeLength = 1000

// Profile is the user-editable overlay on top of an Employee
type Profile struct {
	ID            int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID    int64   `gorm:"not null;uniqueIndex" json:"employee_id"`
	AvatarID      *int64  `json:"avatar_id"`
	PersonalPhone *string `gorm:"size:64" json:"personal_phone"`
	Telegram      *string `gorm:"size:255" json:"telegram"`
	AboutMe       *string `gorm:"size:1000" json:"about_me"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// Project is a line of a profile's project history. The whole set is
// replaced on every update that carries a project list.
type Project struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID int64           `gorm:"not null;index" json:"profile_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	StartD    *datatypes.Date `gorm:"column:start_d" json:"start_d"`
	EndD      *datatypes.Date `gorm:"column:end_d" json:"end_d"`
	Position  *string         `gorm:"size:255" json:"position"`
	Link      *string         `gorm:"size:512" json:"link"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "profile_projects"
}

// Vacation is read-only from this service's point of view
type Vacation struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID     int64          `gorm:"not null;index" json:"profile_id"`
	IsPlanned     bool           `gorm:"not null;default:true" json:"is_planned"`
	StartDate     datatypes.Date `gorm:"not null" json:"start_date"`
	EndDate       datatypes.Date `gorm:"not null" json:"end_date"`
	SubstituteEID *int64         `gorm:"column:substitute_eid" json:"substitute_eid"`
	Comment       *string        `gorm:"size:1000" json:"comment"`
	IsOfficial    bool           `gorm:"not null;default:true" json:"is_official"`
}

// TableName specifies the table name for Vacation
func (Vacation) TableName() string {
	return "profile_vacations"
}

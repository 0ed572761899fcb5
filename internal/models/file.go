package models

import (
	"time"
)

// File is the metadata row of an uploaded static file. Path is the key
// inside the configured file store.
type File struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      *string `gorm:"size:255" json:"name"`
	Path      string  `gorm:"size:512;not null" json:"path"`
	CreatedBy int64   `gorm:"not null;index" json:"created_by"`
}

// TableName specifies the table name for File
func (File) TableName() string {
	return "files"
}

// AuthToken maps an opaque bearer token to an employee
type AuthToken struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeEID int64      `gorm:"column:employee_eid;not null;uniqueIndex" json:"employee_eid"`
	Token       string     `gorm:"size:512;not null;uniqueIndex" json:"-"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName specifies the table name for AuthToken
func (AuthToken) TableName() string {
	return "auth_tokens"
}

// All returns every model in dependency order, for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Department{},
		&Employee{},
		&Profile{},
		&Project{},
		&Vacation{},
		&ProfileChangeLog{},
		&File{},
		&AuthToken{},
	}
}

package models

import (
	"time"
)

// Operation is the kind of mutation a change log entry describes
type Operation string

const (
	OperationCreate Operation = "CREATE"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// Logical table names written to ProfileChangeLog.Table
const (
	ChangeTableProfile = "profile"
	ChangeTableProject = "profile_project"
)

// ProfileChangeLog is an append-only audit record of a profile mutation
type ProfileChangeLog struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID    int64     `gorm:"not null;index" json:"profile_id"`
	ChangedByEID int64     `gorm:"column:changed_by_eid;not null" json:"changed_by_eid"`
	ChangedAt    time.Time `gorm:"not null;index" json:"changed_at"`
	Table        string    `gorm:"column:table_name;size:50;not null" json:"table_name"`
	RecordID     *int64    `json:"record_id"`
	FieldName    string    `gorm:"size:50;not null" json:"field_name"`
	OldValue     *string   `gorm:"type:text" json:"old_value"`
	NewValue     *string   `gorm:"type:text" json:"new_value"`
	Operation    Operation `gorm:"size:16;not null" json:"operation"`
}

// TableName specifies the table name for ProfileChangeLog
func (ProfileChangeLog) TableName() string {
	return "profile_change_logs"
}

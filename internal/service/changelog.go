package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/wb-service/portal/backend/internal/models"
	"github.com/wb-service/portal/backend/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChangeEntry describes one audited mutation
type ChangeEntry struct {
	ProfileID int64
	ActorEID  int64
	Table     string
	RecordID  *int64
	Field     string
	OldValue  any
	NewValue  any
	Operation models.Operation
}

// ChangeLogRecorder appends change log rows. It has no update or delete path.
type ChangeLogRecorder struct {
	now func() time.Time
}

// NewChangeLogRecorder creates a recorder stamping entries with now
func NewChangeLogRecorder(now func() time.Time) *ChangeLogRecorder {
	if now == nil {
		now = time.Now
	}
	return &ChangeLogRecorder{now: now}
}

// Record serializes the values and inserts one row using tx, so the entry
// commits or rolls back with the mutation it describes.
func (r *ChangeLogRecorder) Record(ctx context.Context, tx *gorm.DB, e ChangeEntry) error {
	oldValue, err := SerializeValue(e.OldValue)
	if err != nil {
		return fmt.Errorf("serialize old %s.%s: %w", e.Table, e.Field, err)
	}
	newValue, err := SerializeValue(e.NewValue)
	if err != nil {
		return fmt.Errorf("serialize new %s.%s: %w", e.Table, e.Field, err)
	}

	row := models.ProfileChangeLog{
		ProfileID:    e.ProfileID,
		ChangedByEID: e.ActorEID,
		ChangedAt:    r.now().UTC(),
		Table:        e.Table,
		RecordID:     e.RecordID,
		FieldName:    e.Field,
		OldValue:     oldValue,
		NewValue:     newValue,
		Operation:    e.Operation,
	}
	if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert change log: %w", err)
	}
	return nil
}

// projectSnapshot is the JSON form of a project in the change log
type projectSnapshot struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	StartD   *string `json:"start_d"`
	EndD     *string `json:"end_d"`
	Position *string `json:"position"`
	Link     *string `json:"link"`
}

func snapshotOf(p models.Project) projectSnapshot {
	return projectSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		StartD:   formatDatePtr(p.StartD),
		EndD:     formatDatePtr(p.EndD),
		Position: p.Position,
		Link:     p.Link,
	}
}

func formatDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := types.DateOf(*d).String()
	return &s
}

// SerializeValue renders a logged value as text. Nil stays nil, strings
// are kept verbatim, numbers and booleans are stringified, dates use
// YYYY-MM-DD and projects become JSON snapshots.
func SerializeValue(v any) (*string, error) {
	var s string
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		s = val
	case *string:
		if val == nil {
			return nil, nil
		}
		s = *val
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	case *int64:
		if val == nil {
			return nil, nil
		}
		s = strconv.FormatInt(*val, 10)
	case bool:
		s = strconv.FormatBool(val)
	case time.Time:
		s = val.UTC().Format(time.RFC3339)
	case datatypes.Date:
		s = types.DateOf(val).String()
	case types.Date:
		s = val.String()
	case models.Project:
		data, err := json.Marshal(snapshotOf(val))
		if err != nil {
			return nil, err
		}
		s = string(data)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		s = string(data)
	}
	return &s, nil
}

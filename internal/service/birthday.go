package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wb-service/portal/backend/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TimeUnit is the lookahead window of the upcoming birthdays list
type TimeUnit string

const (
	UnitDay   TimeUnit = "day"
	UnitWeek  TimeUnit = "week"
	UnitMonth TimeUnit = "month"
)

// ParseTimeUnit accepts day, week or month. An empty string means month.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch TimeUnit(s) {
	case "":
		return UnitMonth, nil
	case UnitDay, UnitWeek, UnitMonth:
		return TimeUnit(s), nil
	}
	return "", WrongParameters("time_unit")
}

// Lookahead is the window length in days. Month is a flat 30 days.
func (u TimeUnit) Lookahead() int {
	switch u {
	case UnitWeek:
		return 7
	case UnitMonth:
		return 30
	}
	return 0
}

// UpcomingBirthdays keeps the entries whose next anniversary falls within
// [today, today+lookahead]. An anniversary already passed this year rolls
// over to next year. Feb 29 falls on Feb 28 in non-leap years. Input order
// is preserved.
func UpcomingBirthdays(entries []types.Birthday, today time.Time, unit TimeUnit) []types.Birthday {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, unit.Lookahead())

	result := make([]types.Birthday, 0)
	for _, e := range entries {
		next := anniversary(e.BirthDate.Time, start.Year())
		if next.Before(start) {
			next = anniversary(e.BirthDate.Time, start.Year()+1)
		}
		if !next.After(end) {
			result = append(result, e)
		}
	}
	return result
}

func anniversary(birth time.Time, year int) time.Time {
	month, day := birth.Month(), birth.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// BirthdayService lists upcoming birthdays across the company
type BirthdayService struct {
	db       *gorm.DB
	now      func() time.Time
	location *time.Location
}

// Ensure BirthdayService implements IBirthdayService
var _ IBirthdayService = (*BirthdayService)(nil)

// NewBirthdayService creates a new BirthdayService. today is taken from
// now in location.
func NewBirthdayService(db *gorm.DB, now func() time.Time, location *time.Location) *BirthdayService {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &BirthdayService{db: db, now: now, location: location}
}

type birthdayRow struct {
	EID        int64          `gorm:"column:eid"`
	FullName   string         `gorm:"column:full_name"`
	Department string         `gorm:"column:department"`
	BirthDate  datatypes.Date `gorm:"column:birth_date"`
}

// Upcoming returns the employees whose birthday falls within unit from
// today, sorted by birth month, day and eid.
func (s *BirthdayService) Upcoming(ctx context.Context, unit TimeUnit) ([]types.Birthday, error) {
	var rows []birthdayRow
	err := s.db.WithContext(ctx).
		Table("employees").
		Select("employees.eid, employees.full_name, COALESCE(departments.name, '') AS department, employees.birth_date").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Order("employees.eid").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load birthdays: %w", err)
	}

	entries := make([]types.Birthday, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, types.Birthday{
			EID:        r.EID,
			FullName:   r.FullName,
			Department: r.Department,
			BirthDate:  types.DateOf(r.BirthDate),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].BirthDate, entries[j].BirthDate
		if a.Month() != b.Month() {
			return a.Month() < b.Month()
		}
		if a.Day() != b.Day() {
			return a.Day() < b.Day()
		}
		return entries[i].EID < entries[j].EID
	})

	return UpcomingBirthdays(entries, s.now().In(s.location), unit), nil
}

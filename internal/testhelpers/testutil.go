package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/wb-service/portal/backend/internal/models"
	"github.com/wb-service/portal/backend/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupSQLite opens a private in-memory database with the full schema.
// A single connection keeps every query on the same memory database.
func SetupSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return db
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// Org is a small organisation used across service and handler tests.
//
//	Engineering: Alice (head), Bob (reports to Alice)
//	Finance:     Carol (reports to Alice), Dave (HRBP of Alice and Bob)
//	no dept:     Eve (no profile)
type Org struct {
	Engineering models.Department
	Finance     models.Department

	Alice, Bob, Carol, Dave, Eve models.Employee

	AliceProfile, BobProfile, CarolProfile, DaveProfile models.Profile
}

func date(year int, month time.Month, day int) types.Date {
	return types.NewDate(year, month, day)
}

// SeedOrg inserts the Org fixture
func SeedOrg(t *testing.T, db *gorm.DB) *Org {
	t.Helper()
	o := &Org{
		Engineering: models.Department{ID: 1, Name: "Engineering"},
		Finance:     models.Department{ID: 2, Name: "Finance"},
	}
	mustCreate(t, db, &o.Engineering)
	mustCreate(t, db, &o.Finance)

	o.Dave = employee(4, "Dave Hrbp", &o.Finance.ID, nil, nil, date(1988, time.February, 29))
	o.Alice = employee(1, "Alice Lead", &o.Engineering.ID, nil, Ptr[int64](4), date(1990, time.June, 30))
	o.Bob = employee(2, "Bob Dev", &o.Engineering.ID, Ptr[int64](1), Ptr[int64](4), date(1990, time.June, 20))
	o.Carol = employee(3, "Carol Analyst", &o.Finance.ID, Ptr[int64](1), nil, date(1990, time.December, 31))
	o.Eve = employee(5, "Eve Contractor", nil, nil, nil, date(1992, time.January, 2))
	for _, e := range []*models.Employee{&o.Dave, &o.Alice, &o.Bob, &o.Carol, &o.Eve} {
		mustCreate(t, db, e)
	}

	o.AliceProfile = models.Profile{EmployeeID: 1, PersonalPhone: Ptr("+79990000001"), Telegram: Ptr("@alice")}
	o.BobProfile = models.Profile{EmployeeID: 2, PersonalPhone: Ptr("+79990000002")}
	o.CarolProfile = models.Profile{EmployeeID: 3, PersonalPhone: Ptr("+79990000003")}
	o.DaveProfile = models.Profile{EmployeeID: 4}
	for _, p := range []*models.Profile{&o.AliceProfile, &o.BobProfile, &o.CarolProfile, &o.DaveProfile} {
		mustCreate(t, db, p)
	}

	return o
}

func employee(eid int64, name string, dept, manager, hrbp *int64, birth types.Date) models.Employee {
	return models.Employee{
		EID:          eid,
		FullName:     name,
		Position:     "Specialist",
		DepartmentID: dept,
		BirthDate:    birth.Column(),
		HireDate:     types.NewDate(2020, time.March, 1).Column(),
		WorkEmail:    fmt.Sprintf("employee%d@example.com", eid),
		ManagerEID:   manager,
		HRBPEID:      hrbp,
	}
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("failed to create fixture %T: %v", v, err)
	}
}

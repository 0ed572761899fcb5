package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wb-service/portal/backend/config"
	"github.com/wb-service/portal/backend/internal/database"
	"github.com/wb-service/portal/backend/internal/models"
	"github.com/wb-service/portal/backend/internal/service"
)

func main() {
	tokenTTL := flag.Duration("token-ttl", 30*24*time.Hour, "Lifetime of the issued dev tokens")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.IsProduction() {
		log.Fatal().Msg("refusing to seed a production database")
	}

	db, err := database.Open(cfg.Database, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	now := time.Now()
	tokens, err := seed(db, now, *tokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	auth := service.NewAuthService(db, cfg.Auth.JWTSecret, time.Now)
	for _, t := range tokens {
		fmt.Printf("eid=%d %-24s token=%s\n", t.EmployeeEID, t.name, t.Token)
		if cfg.Auth.JWTSecret != "" {
			signed, err := auth.GenerateToken(t.EmployeeEID, *tokenTTL)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to sign token")
			}
			fmt.Printf("eid=%d %-24s jwt=%s\n", t.EmployeeEID, t.name, signed)
		}
	}
	log.Info().Int("employees", len(tokens)).Msg("seed completed")
}

type seededToken struct {
	models.AuthToken
	name string
}

type employeeSeed struct {
	employee   models.Employee
	department string
	manager    string
	hrbp       string
	profile    models.Profile
	projects   []models.Project
}

func date(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func strPtr(s string) *string { return &s }

// seed creates a small org chart. Rows are matched by natural key so the
// command can be rerun.
func seed(db *gorm.DB, now time.Time, tokenTTL time.Duration) ([]seededToken, error) {
	var tokens []seededToken

	err := db.Transaction(func(tx *gorm.DB) error {
		departments := map[string]*models.Department{}
		for _, d := range []struct{ name, parent string }{
			{"Head office", ""},
			{"Engineering", "Head office"},
			{"People", "Head office"},
		} {
			dept := models.Department{Name: d.name}
			if d.parent != "" {
				dept.ParentID = &departments[d.parent].ID
			}
			if err := tx.Where(models.Department{Name: d.name}).FirstOrCreate(&dept).Error; err != nil {
				return fmt.Errorf("failed to seed department %s: %w", d.name, err)
			}
			departments[d.name] = &dept
		}

		seeds := []employeeSeed{
			{
				employee:   models.Employee{FullName: "Anna Petrova", Position: "CTO", BirthDate: date(1984, time.March, 14), HireDate: date(2015, time.May, 1), WorkEmail: "anna.petrova@example.com", WorkPhone: "+7 495 000-00-01", WorkBand: "E1"},
				department: "Head office",
				profile:    models.Profile{PersonalPhone: strPtr("+79990000101"), Telegram: strPtr("@apetrova")},
			},
			{
				employee:   models.Employee{FullName: "Olga Smirnova", Position: "HR business partner", BirthDate: date(1992, time.February, 29), HireDate: date(2018, time.September, 3), WorkEmail: "olga.smirnova@example.com", WorkPhone: "+7 495 000-00-02", WorkBand: "M2"},
				department: "People",
				manager:    "anna.petrova@example.com",
				profile:    models.Profile{AboutMe: strPtr("Ask me about onboarding")},
			},
			{
				employee:   models.Employee{FullName: "Ivan Sokolov", Position: "Backend engineer", BirthDate: date(1995, now.Month(), now.Day()), HireDate: date(2021, time.January, 11), WorkEmail: "ivan.sokolov@example.com", WorkPhone: "+7 495 000-00-03", WorkBand: "S3"},
				department: "Engineering",
				manager:    "anna.petrova@example.com",
				hrbp:       "olga.smirnova@example.com",
				profile:    models.Profile{PersonalPhone: strPtr("+79990000103"), Telegram: strPtr("@isokolov")},
				projects: []models.Project{
					{Name: "Employee portal", StartD: ptrDate(date(2023, time.April, 1)), Position: strPtr("Backend lead"), Link: strPtr("https://git.example.com/portal")},
				},
			},
			{
				employee:   models.Employee{FullName: "Maria Volkova", Position: "Frontend engineer", BirthDate: date(1997, time.December, 30), HireDate: date(2022, time.June, 20), WorkEmail: "maria.volkova@example.com", WorkPhone: "+7 495 000-00-04", WorkBand: "S2"},
				department: "Engineering",
				manager:    "anna.petrova@example.com",
				hrbp:       "olga.smirnova@example.com",
			},
		}

		byEmail := map[string]*models.Employee{}
		for i := range seeds {
			s := &seeds[i]
			emp := s.employee
			emp.DepartmentID = &departments[s.department].ID
			if m, ok := byEmail[s.manager]; ok {
				emp.ManagerEID = &m.EID
			}
			if h, ok := byEmail[s.hrbp]; ok {
				emp.HRBPEID = &h.EID
			}
			if err := tx.Where(models.Employee{WorkEmail: emp.WorkEmail}).FirstOrCreate(&emp).Error; err != nil {
				return fmt.Errorf("failed to seed employee %s: %w", emp.WorkEmail, err)
			}
			byEmail[emp.WorkEmail] = &emp

			profile := s.profile
			profile.EmployeeID = emp.EID
			if err := tx.Where(models.Profile{EmployeeID: emp.EID}).FirstOrCreate(&profile).Error; err != nil {
				return fmt.Errorf("failed to seed profile for %d: %w", emp.EID, err)
			}

			var projectCount int64
			if err := tx.Model(&models.Project{}).Where("profile_id = ?", profile.ID).Count(&projectCount).Error; err != nil {
				return err
			}
			if projectCount == 0 && len(s.projects) > 0 {
				for j := range s.projects {
					s.projects[j].ProfileID = profile.ID
				}
				if err := tx.Create(&s.projects).Error; err != nil {
					return fmt.Errorf("failed to seed projects for %d: %w", emp.EID, err)
				}
			}

			token := models.AuthToken{EmployeeEID: emp.EID}
			expires := now.Add(tokenTTL)
			if err := tx.Where(models.AuthToken{EmployeeEID: emp.EID}).
				Attrs(models.AuthToken{Token: uuid.NewString(), CreatedAt: now}).
				Assign(models.AuthToken{ExpiresAt: &expires}).
				FirstOrCreate(&token).Error; err != nil {
				return fmt.Errorf("failed to seed token for %d: %w", emp.EID, err)
			}
			tokens = append(tokens, seededToken{AuthToken: token, name: emp.FullName})
		}

		ivan, olga := byEmail["ivan.sokolov@example.com"], byEmail["olga.smirnova@example.com"]
		var ivanProfile models.Profile
		if err := tx.Where("employee_id = ?", ivan.EID).First(&ivanProfile).Error; err != nil {
			return err
		}
		vacation := models.Vacation{
			ProfileID:     ivanProfile.ID,
			IsPlanned:     true,
			StartDate:     date(now.Year(), time.August, 1),
			EndDate:       date(now.Year(), time.August, 14),
			SubstituteEID: &olga.EID,
			IsOfficial:    true,
		}
		return tx.Where(models.Vacation{ProfileID: ivanProfile.ID, StartDate: vacation.StartDate}).FirstOrCreate(&vacation).Error
	})

	return tokens, err
}

func ptrDate(d datatypes.Date) *datatypes.Date { return &d }

// Package testutil builds throwaway databases for package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/agenda-scheduler/internal/db"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory sqlite database with the full schema. A
// single connection serializes transactions the way the provider row lock
// does on postgres.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_loc=UTC", name, dbSeq.Add(1))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

type ProviderSeed struct {
	AccountType       string
	WorkingHoursStart int
	WorkingHoursEnd   int
	WorkingDays       string
	Timezone          string
	MinAdvanceMinutes int
	PixEnabled        bool
}

// SeedProvider creates an owner and a provider. Zero fields fall back to an
// individual account open 08-18 Monday to Friday in UTC.
func SeedProvider(t testing.TB, gdb *gorm.DB, s ProviderSeed) *models.Provider {
	t.Helper()

	if s.AccountType == "" {
		s.AccountType = models.AccountIndividual
	}
	if s.WorkingHoursEnd == 0 {
		s.WorkingHoursStart, s.WorkingHoursEnd = 8, 18
	}
	if s.WorkingDays == "" {
		s.WorkingDays = "1,2,3,4,5"
	}
	if s.Timezone == "" {
		s.Timezone = "UTC"
	}

	user := models.User{
		Name:         "Owner",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		AccountType:  s.AccountType,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	p := models.Provider{
		UserID:            user.ID,
		Name:              "Studio",
		LinkID:            uuid.NewString(),
		WorkingHoursStart: s.WorkingHoursStart,
		WorkingHoursEnd:   s.WorkingHoursEnd,
		WorkingDays:       s.WorkingDays,
		Timezone:          s.Timezone,
		MinAdvanceMinutes: s.MinAdvanceMinutes,
		PixEnabled:        s.PixEnabled,
	}
	if err := gdb.Create(&p).Error; err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	return &p
}

func SeedService(t testing.TB, gdb *gorm.DB, providerID uint, duration, price int) *models.Service {
	t.Helper()

	s := models.Service{ProviderID: providerID, Name: "Corte", Duration: duration, Price: price, Active: true}
	if err := gdb.Create(&s).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return &s
}

func SeedEmployee(t testing.TB, gdb *gorm.DB, companyUserID uint, lunchStart, lunchEnd string) *models.Employee {
	t.Helper()

	e := models.Employee{
		CompanyUserID:   companyUserID,
		Name:            "Staff",
		LunchBreakStart: lunchStart,
		LunchBreakEnd:   lunchEnd,
		Active:          true,
	}
	if err := gdb.Create(&e).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return &e
}

// SeedAppointment stores a booking as-is, bypassing availability.
func SeedAppointment(t testing.TB, gdb *gorm.DB, ap models.Appointment) *models.Appointment {
	t.Helper()

	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()
	if ap.Status == "" {
		ap.Status = "confirmed"
	}
	if ap.PublicToken == "" {
		ap.PublicToken = uuid.NewString()
	}
	if err := gdb.Omit("Provider", "Client", "Service", "Employee").Create(&ap).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return &ap
}

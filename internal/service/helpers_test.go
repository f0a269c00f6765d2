package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nurpe/gigledger/internal/config"
	"github.com/nurpe/gigledger/internal/model"
	"github.com/nurpe/gigledger/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(&model.Profile{}, &model.Contract{}, &model.Job{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Ledger:      config.LedgerConfig{DepositCapPercent: 25},
	}
}

func seedProfile(t *testing.T, db *gorm.DB, profileType model.ProfileType, profession string, balance int64) model.Profile {
	t.Helper()
	profile := model.Profile{
		ID:         uuid.New(),
		FirstName:  "Test",
		LastName:   string(profileType),
		Profession: profession,
		Balance:    decimal.NewFromInt(balance),
		Type:       profileType,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func seedContract(t *testing.T, db *gorm.DB, client, contractor model.Profile, status model.ContractStatus) model.Contract {
	t.Helper()
	contract := model.Contract{
		ID:           uuid.New(),
		Terms:        "standard terms",
		Status:       status,
		ClientID:     client.ID,
		ContractorID: contractor.ID,
	}
	if err := db.Create(&contract).Error; err != nil {
		t.Fatalf("seed contract: %v", err)
	}
	return contract
}

func seedJob(t *testing.T, db *gorm.DB, contract model.Contract, price int64, paidAt *time.Time) model.Job {
	t.Helper()
	job := model.Job{
		ID:          uuid.New(),
		Description: "work",
		Price:       decimal.NewFromInt(price),
		ContractID:  contract.ID,
	}
	if paidAt != nil {
		paid := true
		job.Paid = &paid
		job.PaymentDate = paidAt
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func reloadProfile(t *testing.T, db *gorm.DB, id uuid.UUID) model.Profile {
	t.Helper()
	var profile model.Profile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	return profile
}

func reloadJob(t *testing.T, db *gorm.DB, id uuid.UUID) model.Job {
	t.Helper()
	var job model.Job
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	return job
}

func newLedger(db *gorm.DB) *repository.LedgerRepository {
	return repository.NewLedgerRepository(db)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/gigledger/internal/model"
)

func TestDepositWithinCap(t *testing.T) {
	db := newTestDB(t)
	balances := NewBalanceService(newLedger(db), testConfig())
	ctx := context.Background()

	client := seedProfile(t, db, model.ProfileTypeClient, "manager", 500)
	target := seedProfile(t, db, model.ProfileTypeClient, "manager", 10)
	contractor := seedProfile(t, db, model.ProfileTypeContractor, "plumber", 0)
	contract := seedContract(t, db, client, contractor, model.ContractStatusInProgress)
	seedJob(t, db, contract, 100, nil) // outstanding = 100, 25% cap = 25

	if err := balances.Deposit(ctx, client.ID, target.ID, decimal.NewFromInt(25)); err != nil {
		t.Fatalf("deposit at the boundary: %v", err)
	}

	if got := reloadProfile(t, db, client.ID); !got.Balance.Equal(decimal.NewFromInt(475)) {
		t.Errorf("caller balance = %s, want 475", got.Balance)
	}
	if got := reloadProfile(t, db, target.ID); !got.Balance.Equal(decimal.NewFromInt(35)) {
		t.Errorf("target balance = %s, want 35", got.Balance)
	}
}

func TestDepositExceedsCap(t *testing.T) {
	db := newTestDB(t)
	balances := NewBalanceService(newLedger(db), testConfig())
	ctx := context.Background()

	client := seedProfile(t, db, model.ProfileTypeClient, "manager", 500)
	target := seedProfile(t, db, model.ProfileTypeClient, "manager", 10)
	contractor := seedProfile(t, db, model.ProfileTypeContractor, "plumber", 0)
	contract := seedContract(t, db, client, contractor, model.ContractStatusInProgress)
	seedJob(t, db, contract, 100, nil)

	// 30 over an outstanding of 100 is a 30% ratio.
	if err := balances.Deposit(ctx, client.ID, target.ID, decimal.NewFromInt(30)); !errors.Is(err, ErrDepositThreshold) {
		t.Fatalf("err = %v, want threshold rejection", err)
	}

	if got := reloadProfile(t, db, client.ID); !got.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("caller balance = %s, want untouched 500", got.Balance)
	}
	if got := reloadProfile(t, db, target.ID); !got.Balance.Equal(decimal.NewFromInt(10)) {
		t.Errorf("target balance = %s, want untouched 10", got.Balance)
	}
}

func TestDepositZeroOutstanding(t *testing.T) {
	db := newTestDB(t)
	balances := NewBalanceService(newLedger(db), testConfig())
	ctx := context.Background()

	client := seedProfile(t, db, model.ProfileTypeClient, "manager", 500)
	target := seedProfile(t, db, model.ProfileTypeClient, "manager", 10)

	// No jobs at all: the ratio is undefined and no deposit is allowed.
	if err := balances.Deposit(ctx, client.ID, target.ID, decimal.NewFromInt(1)); !errors.Is(err, ErrDepositThreshold) {
		t.Fatalf("err = %v, want threshold rejection", err)
	}
}

func TestDepositOutstandingIncludesPaidJobs(t *testing.T) {
	db := newTestDB(t)
	balances := NewBalanceService(newLedger(db), testConfig())
	ctx := context.Background()

	client := seedProfile(t, db, model.ProfileTypeClient, "manager", 500)
	target := seedProfile(t, db, model.ProfileTypeClient, "manager", 0)
	contractor := seedProfile(t, db, model.ProfileTypeContractor, "plumber", 0)
	contract := seedContract(t, db, client, contractor, model.ContractStatusInProgress)

	paidAt := time.Now().UTC()
	seedJob(t, db, contract, 100, &paidAt) // already paid, still reserved

	if err := balances.Deposit(ctx, client.ID, target.ID, decimal.NewFromInt(25)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
}

func TestDepositInvalidInput(t *testing.T) {
	db := newTestDB(t)
	balances := NewBalanceService(newLedger(db), testConfig())
	ctx := context.Background()

	client := seedProfile(t, db, model.ProfileTypeClient, "manager", 500)
	target := seedProfile(t, db, model.ProfileTypeClient, "manager", 0)

	if err := balances.Deposit(ctx, client.ID, target.ID, decimal.Zero); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero amount: err = %v, want invalid input", err)
	}
	if err := balances.Deposit(ctx, client.ID, target.ID, decimal.NewFromInt(-5)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative amount: err = %v, want invalid input", err)
	}
	if err := balances.Deposit(ctx, client.ID, uuid.Nil, decimal.NewFromInt(5)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil target: err = %v, want invalid input", err)
	}
}

func TestDepositMissingProfiles(t *testing.T) {
	db := newTestDB(t)
	balances := NewBalanceService(newLedger(db), testConfig())
	ctx := context.Background()

	client := seedProfile(t, db, model.ProfileTypeClient, "manager", 500)
	contractor := seedProfile(t, db, model.ProfileTypeContractor, "plumber", 0)
	contract := seedContract(t, db, client, contractor, model.ContractStatusInProgress)
	seedJob(t, db, contract, 100, nil)

	if err := balances.Deposit(ctx, client.ID, uuid.New(), decimal.NewFromInt(10)); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing target: err = %v, want not found", err)
	}
	if err := balances.Deposit(ctx, uuid.New(), client.ID, decimal.NewFromInt(10)); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing caller: err = %v, want not found", err)
	}
}

package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateEmployeeAndLogin(t *testing.T) {
	db := setupTestDB(t, "employee_login")
	svc := newTestEmployeeService(db)

	created, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Username:    "ingrid",
		DisplayName: "Ingrid",
		Email:       "ingrid@brewhouse.test",
		Password:    "hunter22",
		Role:        "brewer",
		HourlyWage:  decimal.RequireFromString("18.50"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != "brewer" {
		t.Errorf("expected role brewer, got %q", created.Role)
	}

	pair, err := svc.Login(context.Background(), LoginRequest{Username: "ingrid", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Username: "ingrid", Password: "wrong"}); err == nil {
		t.Fatal("expected wrong password to be rejected")
	}
}

func TestCreateEmployeeRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t, "employee_role")
	svc := newTestEmployeeService(db)

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Username:    "ingrid",
		DisplayName: "Ingrid",
		Email:       "ingrid@brewhouse.test",
		Password:    "hunter22",
		Role:        "janitor",
	})
	if err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	db := setupTestDB(t, "employee_refresh")
	svc := newTestEmployeeService(db)

	if _, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Username:    "ingrid",
		DisplayName: "Ingrid",
		Email:       "ingrid@brewhouse.test",
		Password:    "hunter22",
		Role:        "brewer",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	pair, err := svc.Login(context.Background(), LoginRequest{Username: "ingrid", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("expected refresh token to rotate")
	}

	// The old token is single-use
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); err == nil {
		t.Fatal("expected spent refresh token to be rejected")
	}
}

func TestIssuePaystubComputesGrossPay(t *testing.T) {
	db := setupTestDB(t, "employee_paystub")
	svc := newTestEmployeeService(db)

	created, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Username:    "ingrid",
		DisplayName: "Ingrid",
		Email:       "ingrid@brewhouse.test",
		Password:    "hunter22",
		Role:        "brewer",
		HourlyWage:  decimal.RequireFromString("20.00"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stub, err := svc.IssuePaystub(context.Background(), created.ID.String(), IssuePaystubRequest{
		EmployeeID:  created.ID.String(),
		PeriodStart: "2026-02-01",
		PeriodEnd:   "2026-02-14",
		Hours:       decimal.RequireFromString("37.5"),
	})
	if err != nil {
		t.Fatalf("issue paystub failed: %v", err)
	}

	if !stub.GrossPay.Equal(decimal.RequireFromString("750.00")) {
		t.Errorf("expected gross pay 750.00, got %s", stub.GrossPay)
	}

	mine, err := svc.ListPaystubsForEmployee(context.Background(), created.ID.String())
	if err != nil {
		t.Fatalf("list paystubs failed: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("expected one paystub, got %d", len(mine))
	}
}

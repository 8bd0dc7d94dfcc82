package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"brewhouse/internal/model"
	"brewhouse/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for request validation
type CreateEmployeeRequest struct {
	Username    string          `json:"username" binding:"required"`
	DisplayName string          `json:"display_name" binding:"required"`
	Discord     string          `json:"discord"`
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=6"`
	Role        string          `json:"role" binding:"required"`
	HourlyWage  decimal.Decimal `json:"hourly_wage"`
}

type UpdateEmployeeRequest struct {
	Username    string           `json:"username"`
	DisplayName string           `json:"display_name"`
	Discord     string           `json:"discord"`
	Email       string           `json:"email" binding:"omitempty,email"`
	Role        string           `json:"role"`
	HourlyWage  *decimal.Decimal `json:"hourly_wage"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// EmployeeResponse returns an Employee without exposing the password hash
type EmployeeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	Discord     string          `json:"discord"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	HourlyWage  decimal.Decimal `json:"hourly_wage"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type IssuePaystubRequest struct {
	EmployeeID  string          `json:"employee_id" binding:"required"`
	PeriodStart string          `json:"period_start" binding:"required"`
	PeriodEnd   string          `json:"period_end" binding:"required"`
	Hours       decimal.Decimal `json:"hours" binding:"required"`
	Notes       string          `json:"notes"`
}

// EmployeeService defines the business logic for staff accounts and sessions
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetByID(ctx context.Context, id string) (*EmployeeResponse, error)
	List(ctx context.Context, page, limit int) ([]EmployeeResponse, int64, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (*EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	IssuePaystub(ctx context.Context, actorID string, req IssuePaystubRequest) (*model.Paystub, error)
	ListPaystubs(ctx context.Context, page, limit int) ([]model.Paystub, int64, error)
	ListPaystubsForEmployee(ctx context.Context, employeeID string) ([]model.Paystub, error)
}

type employeeService struct {
	repo      repository.EmployeeRepository
	paystubs  repository.PaystubRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

// NewEmployeeService returns a new instance of EmployeeService
func NewEmployeeService(
	repo repository.EmployeeRepository,
	paystubs repository.PaystubRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) EmployeeService {
	return &employeeService{repo: repo, paystubs: paystubs, auditRepo: auditRepo, txManager: txManager}
}

func mapEmployee(e *model.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:          e.ID,
		Username:    e.Username,
		DisplayName: e.DisplayName,
		Discord:     e.Discord,
		Email:       e.Email,
		Role:        e.Role,
		HourlyWage:  e.HourlyWage,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *employeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, errors.New("invalid role: must be brewer, manager, ceo, or cfo")
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errors.New("username already exists")
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	employee := &model.Employee{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Discord:     req.Discord,
		Email:       req.Email,
		Password:    string(hashedPassword),
		Role:        req.Role,
		HourlyWage:  req.HourlyWage,
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, err
	}

	return mapEmployee(employee), nil
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}
	return []byte(secret)
}

func (s *employeeService) issueTokens(ctx context.Context, employee *model.Employee) (*TokenPair, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  employee.ID.String(),
		"role": employee.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})

	accessToken, err := token.SignedString(jwtSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	refresh := &model.RefreshToken{
		EmployeeID: employee.ID,
		Token:      uuid.NewString(),
		ExpiresAt:  time.Now().Add(7 * 24 * time.Hour),
	}
	if err := s.repo.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refresh.Token}, nil
}

func (s *employeeService) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	employee, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid username or password")
	}

	return s.issueTokens(ctx, employee)
}

func (s *employeeService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.repo.DeleteRefreshToken(ctx, refreshToken)
		return nil, errors.New("refresh token expired")
	}

	employee, err := s.repo.GetByID(ctx, stored.EmployeeID)
	if err != nil {
		return nil, errors.New("employee not found")
	}

	// Rotate: the old token is single-use
	if err := s.repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokens(ctx, employee)
}

func (s *employeeService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid employee id: %w", err)
	}
	employee, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, errors.New("employee not found")
	}
	return mapEmployee(employee), nil
}

func (s *employeeService) List(ctx context.Context, page, limit int) ([]EmployeeResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	employees, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, *mapEmployee(&e))
	}

	return responses, total, nil
}

func (s *employeeService) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid employee id: %w", err)
	}
	employee, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, errors.New("employee not found")
	}

	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return nil, errors.New("invalid role: must be brewer, manager, ceo, or cfo")
		}
		employee.Role = req.Role
	}

	if req.Username != "" && req.Username != employee.Username {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, errors.New("username already exists")
		}
		employee.Username = req.Username
	}

	if req.Email != "" && req.Email != employee.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, errors.New("email already exists")
		}
		employee.Email = req.Email
	}

	if req.DisplayName != "" {
		employee.DisplayName = req.DisplayName
	}
	if req.Discord != "" {
		employee.Discord = req.Discord
	}
	if req.HourlyWage != nil {
		employee.HourlyWage = *req.HourlyWage
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, err
	}

	return mapEmployee(employee), nil
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid employee id: %w", err)
	}
	if _, err := s.repo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("employee not found")
		}
		return fmt.Errorf("database error: %w", err)
	}
	return s.repo.Delete(ctx, employeeID)
}

func (s *employeeService) IssuePaystub(ctx context.Context, actorID string, req IssuePaystubRequest) (*model.Paystub, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee id: %w", err)
	}

	employee, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, errors.New("employee not found")
	}

	if req.Hours.IsNegative() || req.Hours.IsZero() {
		return nil, errors.New("hours must be positive")
	}

	var issuer *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		issuer = &parsed
	}

	stub := &model.Paystub{
		EmployeeID:  employee.ID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Hours:       req.Hours,
		GrossPay:    req.Hours.Mul(employee.HourlyWage),
		Notes:       req.Notes,
		IssuedBy:    issuer,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.paystubs.Create(txCtx, stub); err != nil {
			return fmt.Errorf("failed to create paystub: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"employee":     employee.Username,
			"period_start": req.PeriodStart,
			"period_end":   req.PeriodEnd,
			"hours":        req.Hours,
			"gross_pay":    stub.GrossPay,
		})
		audit := &model.AuditLog{
			EmployeeID: issuer,
			Action:     model.ActionIssuePaystub,
			EntityID:   stub.ID.String(),
			EntityName: employee.DisplayName,
			Details:    string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return stub, nil
}

func (s *employeeService) ListPaystubs(ctx context.Context, page, limit int) ([]model.Paystub, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.paystubs.List(ctx, page, limit)
}

func (s *employeeService) ListPaystubsForEmployee(ctx context.Context, employeeID string) ([]model.Paystub, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee id: %w", err)
	}
	return s.paystubs.ListByEmployee(ctx, id)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
	}
}

// LoginWithEmployeeCode implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithEmployeeCode(ctx context.Context, req auth.LoginEmployeeCodeRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	employeeData, err := a.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidEmployeeCode
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	displayName := employeeData.DisplayName
	if displayName == "" {
		displayName = employeeData.ID
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(employeeData.ID, displayName)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("employee logged in", "employee_id", employeeData.ID)

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
		EmployeeID:           employeeData.ID,
		DisplayName:          displayName,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context) error {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if token, err := a.Service.JWTAuth().Decode(session.Token); err == nil && !token.Expiration().IsZero() {
		expiresAt = token.Expiration()
	}

	if err := a.Service.RevokeToken(ctx, session.Token, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	slog.Info("employee logged out", "employee_id", session.EmployeeID)
	return nil
}

// EventToken implements auth.AuthService.
func (a *AuthServiceImpl) EventToken(ctx context.Context) (auth.EventTokenResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return auth.EventTokenResponse{}, err
	}

	token, expiresIn, err := a.Service.GenerateSSEToken(session.EmployeeID)
	if err != nil {
		return auth.EventTokenResponse{}, fmt.Errorf("failed to create event token: %w", err)
	}

	return auth.EventTokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

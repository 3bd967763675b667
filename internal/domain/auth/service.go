package auth

import (
	"context"
)

type AuthService interface {
	// LoginWithEmployeeCode looks the code up and issues an access token for it.
	LoginWithEmployeeCode(ctx context.Context, req LoginEmployeeCodeRequest) (TokenResponse, error)
	// Logout revokes the token of the session in ctx.
	Logout(ctx context.Context) error
	// EventToken issues a short-lived token for the live update stream.
	EventToken(ctx context.Context) (EventTokenResponse, error)
}

package auth

import "context"

// AuthService defines authentication business logic.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (LoginResponse, error)
}

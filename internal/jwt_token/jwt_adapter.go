package jwttoken

import (
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/platform/middleware/auth"
)

// ToMiddlewareClaims converts token claims into the principal the auth
// middleware stores in the request context.
func ToMiddlewareClaims(claims *Claims) (*auth.Claims, error) {
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}
	role, err := id.ParseRole(claims.Role)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token role")
	}
	return &auth.Claims{UserID: userID, Role: role}, nil
}

// JWTServiceAdapter satisfies auth.TokenValidator.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := a.service.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims)
}

package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/validator"
)

var (
	// ErrInvalidToken is returned for bearer tokens that are not access tokens
	ErrInvalidToken = errors.New("invalid token")
	// ErrClassScopeMissing is returned when a verified token carries no class code
	ErrClassScopeMissing = errors.New("class code not found in token claims")
	// ErrInvalidClassCode is returned when the token's class code is not a valid class code
	ErrInvalidClassCode = errors.New("invalid class code in token claims")
)

// Token types
const (
	TokenTypeAccess = "access"
	TokenTypeStream = "stream"
)

// DefaultStreamExpiration applies when no stream expiration is configured
const DefaultStreamExpiration = 5 * time.Minute

type Service interface {
	GenerateAccessToken(classCode string, expiration time.Duration) (token string, expiresAt int64, err error)
	GenerateStreamToken(classCode string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (classCode string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey            string
	streamExpirationTime string
	tokenAuth            *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, streamExpirationTime string) Service {
	return &JWTService{
		secretKey:            secretKey,
		streamExpirationTime: streamExpirationTime,
		tokenAuth:            jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

// GenerateAccessToken issues a bearer token scoped to one class. Access tokens are normally
// issued by the identity service sharing JWT_SECRET_KEY; this is used by tooling and tests.
func (j *JWTService) GenerateAccessToken(classCode string, expiration time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(expiration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":        classCode,
		"class_code": classCode,
		"type":       TokenTypeAccess,
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateStreamToken generates a short-lived token for SSE and WebSocket connections
func (j *JWTService) GenerateStreamToken(classCode string) (token string, expiresIn int, err error) {
	expiration := DefaultStreamExpiration
	if j.streamExpirationTime != "" {
		expiration, err = time.ParseDuration(j.streamExpirationTime)
		if err != nil {
			return "", 0, err
		}
	}
	expiresIn = int(expiration.Seconds())

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"class_code": classCode,
		"type":       TokenTypeStream,
		"exp":        time.Now().Add(expiration).Unix(),
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateStreamToken validates a stream token and returns its class code
func (j *JWTService) ValidateStreamToken(tokenString string) (classCode string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", dashboard.ErrInvalidStreamToken, err)
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeStream {
		return "", fmt.Errorf("%w: wrong token type", dashboard.ErrInvalidStreamToken)
	}

	classVal, ok := token.Get("class_code")
	if !ok {
		return "", fmt.Errorf("%w: missing class code", dashboard.ErrInvalidStreamToken)
	}

	classCode, ok = classVal.(string)
	if !ok || classCode == "" {
		return "", fmt.Errorf("%w: missing class code", dashboard.ErrInvalidStreamToken)
	}
	if !validator.IsValidClassCode(classCode) {
		return "", fmt.Errorf("%w: invalid class code", dashboard.ErrInvalidStreamToken)
	}

	return classCode, nil
}

// ClassCodeFromContext extracts the class code from verified JWT claims,
// falling back to the subject claim.
func ClassCodeFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	classCode, ok := claims["class_code"].(string)
	if !ok || classCode == "" {
		classCode, _ = claims["sub"].(string)
	}
	if classCode == "" {
		return "", ErrClassScopeMissing
	}
	// The class code reaches store filters and cache keys
	if !validator.IsValidClassCode(classCode) {
		return "", ErrInvalidClassCode
	}
	return classCode, nil
}

package security

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resource-service/models"
	"resource-service/service"
)

// UserClaims is the signed token payload: identity plus role, expiring
// after the configured TTL.
type UserClaims struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Role  models.Role        `json:"userRole"`
	jwt.StandardClaims
}

// TokenManager signs and verifies access tokens with an injected secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) NewAccessToken(user *models.User) (string, error) {
	claims := UserClaims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(m.ttl).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) ParseAccessToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

type contextKey string

const callerContextKey contextKey = "caller"

// Middleware verifies the bearer token and stores the caller identity in
// the request context. Verification is a pure check; no store lookup.
func (m *TokenManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeMessage(w, http.StatusUnauthorized, "No token provided")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeMessage(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.ParseAccessToken(parts[1])
		if err != nil {
			writeMessage(w, http.StatusForbidden, "Invalid token")
			return
		}

		caller := service.Caller{ID: claims.ID, Email: claims.Email, Role: claims.Role}
		ctx := context.WithValue(r.Context(), callerContextKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFromContext returns the identity stored by Middleware.
func CallerFromContext(ctx context.Context) (service.Caller, bool) {
	caller, ok := ctx.Value(callerContextKey).(service.Caller)
	return caller, ok
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

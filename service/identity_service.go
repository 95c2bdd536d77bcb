package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"resource-service/models"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IdentityService owns user records: signup, login checks and self access.
type IdentityService struct {
	users  UserStore
	logger *zap.Logger
}

func NewIdentityService(users UserStore, logger *zap.Logger) *IdentityService {
	return &IdentityService{users: users, logger: logger}
}

type RegisterInput struct {
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Password    string           `json:"password"`
	Role        models.Role      `json:"role"`
	Skills      []string         `json:"skills"`
	Seniority   models.Seniority `json:"seniority"`
	MaxCapacity float64          `json:"maxCapacity"`
	Department  string           `json:"department"`
}

// Register creates a user with a bcrypt-hashed password. The plaintext is
// never stored.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, invalid("name, email, password and role are required")
	}
	if !in.Role.Valid() {
		return nil, invalid("role must be Engineer or Manager")
	}
	if !emailRe.MatchString(in.Email) {
		return nil, invalid("invalid email format")
	}
	if in.Seniority != "" && !in.Seniority.Valid() {
		return nil, invalid("seniority must be Junior, Mid or Senior")
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:        in.Name,
		Email:       in.Email,
		Password:    string(hashed),
		Role:        in.Role,
		Skills:      in.Skills,
		Seniority:   in.Seniority,
		MaxCapacity: in.MaxCapacity,
		Department:  in.Department,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	s.logger.Info("user registered", zap.String("userId", id.Hex()), zap.String("role", string(in.Role)))
	return user, nil
}

// Authenticate checks the email/password pair and returns the matching user.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *IdentityService) GetSelf(ctx context.Context, caller Caller) (*models.User, error) {
	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateSelf applies a partial update to the caller's own record.
func (s *IdentityService) UpdateSelf(ctx context.Context, caller Caller, patch models.UserPatch) (*models.User, error) {
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, invalid("role must be Engineer or Manager")
	}
	if patch.Seniority != nil && *patch.Seniority != "" && !patch.Seniority.Valid() {
		return nil, invalid("seniority must be Junior, Mid or Senior")
	}
	if patch.Email != nil {
		if !emailRe.MatchString(*patch.Email) {
			return nil, invalid("invalid email format")
		}
		existing, err := s.users.FindByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, fmt.Errorf("find user by email: %w", err)
		}
		if existing != nil && existing.ID != caller.ID {
			return nil, ErrDuplicateEmail
		}
	}

	user, err := s.users.UpdateByID(ctx, caller.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ListEngineers returns every engineer account. Managers only.
func (s *IdentityService) ListEngineers(ctx context.Context, caller Caller) ([]models.User, error) {
	if caller.Role != models.RoleManager {
		return nil, forbidden("Only managers can list engineers")
	}
	engineers, err := s.users.ListByRole(ctx, models.RoleEngineer)
	if err != nil {
		return nil, fmt.Errorf("list engineers: %w", err)
	}
	return engineers, nil
}

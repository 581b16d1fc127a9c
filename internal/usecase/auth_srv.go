package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to the user behind it.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	Me(ctx context.Context, userID uuid.UUID) (*response.AuthResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.AuthResponse, error)
	// ChangePassword leaves existing sessions valid.
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, NewValidationError("Validation failed", errs)
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	}

	hash, err := utils.HashPassword(req.Password, s.config.Session.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &entity.User{
		Record:       entity.NewRecord(now),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		BookingIDs:   []uuid.UUID{},
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("email already registered: %w", ErrConflict)
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create user: %w", err)
	}

	// A registration succeeds even when the follow-up session cannot be
	// stored; the client can log in afterwards.
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError("Validation failed", errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnauthorized
		}
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil || !session.Active(s.now()) {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", session.UserID, err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	return user, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.AuthResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.AuthToResponse(user, nil)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError("Validation failed", errs)
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Touch(s.now())
	if err := s.update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.AuthToResponse(user, nil)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return NewValidationError("Validation failed", errs)
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		s.log.Warn("Password change rejected", zap.String("user_id", userID.String()))
		return fieldError("current_password", "Is incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword, s.config.Session.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hash
	user.Touch(s.now())
	if err := s.update(ctx, user); err != nil {
		return err
	}

	s.log.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

func (s *authService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return user, nil
}

func (s *authService) update(ctx context.Context, user *entity.User) error {
	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
		}
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	now := s.now()
	session := &entity.Session{
		CreatedRecord: entity.NewCreatedRecord(now),
		UserID:        userID,
		Token:         utils.GenerateSessionToken(),
		ExpiresAt:     now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

package service

import (
	"context"
	stderrors "errors"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"zkpark/internal/entities"
	apperrors "zkpark/internal/errors"
	"zkpark/internal/repository"
)

const (
	msgAutoSignInFailed = "Your account was created but we couldn't sign you in automatically. Please try logging in."
	msgSignedUp         = "Account created successfully."
	msgEmailTaken       = "Email is already registered. Try logging in."
)

type UserAuthService struct {
	users    repository.UserRepository
	provider AuthProvider
	validate *validator.Validate
}

func NewUserAuthService(users repository.UserRepository, provider AuthProvider) *UserAuthService {
	return &UserAuthService{users: users, provider: provider, validate: validator.New()}
}

// SignUp registers with the provider, stores the user row and signs in.
// A sign-in failure after the row insert still counts as a created account.
func (s *UserAuthService) SignUp(ctx context.Context, req entities.SignUpRequest) (*entities.SignUpResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ErrBadRequest("All fields are required.")
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrBadRequest("Passwords do not match.")
	}
	age, err := strconv.Atoi(strings.TrimSpace(req.Age))
	if err != nil || age <= 0 {
		return nil, apperrors.ErrBadRequest("Please enter a valid age.")
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrConflict(msgEmailTaken)
	}

	if err := s.provider.SignUp(ctx, req.Email, req.Password); err != nil {
		log.Printf("Sign-up rejected by auth provider for %s: %v", req.Email, err)
		return nil, providerError(err)
	}
	if err := s.users.CreateUser(ctx, req.Email, req.Password, age); err != nil {
		log.Printf("Error saving user details for %s: %v", req.Email, err)
		if stderrors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.ErrConflict(msgEmailTaken)
		}
		return nil, err
	}

	session, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		log.Printf("Auto sign-in failed for %s: %v", req.Email, err)
		return &entities.SignUpResponse{Message: msgAutoSignInFailed}, nil
	}
	return &entities.SignUpResponse{Message: msgSignedUp, Session: session}, nil
}

// SignIn checks the user row first, then opens a provider session.
func (s *UserAuthService) SignIn(ctx context.Context, req entities.SignInRequest) (*entities.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ErrBadRequest("Please fill in all fields")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound("Email not found. Please sign up.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.ErrUnauthorized("Incorrect password.")
	}

	session, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		log.Printf("Sign-in rejected by auth provider for %s: %v", req.Email, err)
		var authErr *AuthError
		if stderrors.As(err, &authErr) {
			return nil, apperrors.ErrUnauthorized(authErr.Message)
		}
		return nil, err
	}
	return session, nil
}

func (s *UserAuthService) SignOut(ctx context.Context, accessToken string) error {
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		log.Printf("Error signing out: %v", err)
		return providerError(err)
	}
	return nil
}

func providerError(err error) error {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return apperrors.ErrBadRequest(authErr.Message)
	}
	return err
}

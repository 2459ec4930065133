package api

import (
	"context"
	"net/http"

	"zkpark/internal/auth"
	"zkpark/internal/entities"
)

type AuthService interface {
	SignUp(ctx context.Context, req entities.SignUpRequest) (*entities.SignUpResponse, error)
	SignIn(ctx context.Context, req entities.SignInRequest) (*entities.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req entities.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req entities.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		AccessToken:  session.AccessToken,
		TokenType:    session.TokenType,
		ExpiresIn:    session.ExpiresIn,
		RefreshToken: session.RefreshToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SignOut(r.Context(), auth.TokenFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

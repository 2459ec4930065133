package api

import (
	"context"
	"io"
	"net/http"

	"zkpark/internal/auth"
	"zkpark/internal/entities"
)

const maxIDImageBytes = 10 << 20

type ProfileService interface {
	GetProfile(ctx context.Context, email string) (*entities.Profile, error)
	Rewards(ctx context.Context, email string) (string, error)
}

type IdentityService interface {
	VerifyID(ctx context.Context, email string, image []byte) (*entities.VerificationResult, error)
}

type ProfileHandler struct {
	profiles ProfileService
	identity IdentityService
}

func NewProfileHandler(profiles ProfileService, identity IdentityService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, identity: identity}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.GetProfile(r.Context(), auth.EmailFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Rewards(w http.ResponseWriter, r *http.Request) {
	balance, err := h.profiles.Rewards(r.Context(), auth.EmailFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RewardsResponse{Rewards: balance})
}

// VerifyID expects a multipart form with the ID photo in the "image" field.
func (h *ProfileHandler) VerifyID(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxIDImageBytes)
	if err := r.ParseMultipartForm(maxIDImageBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Please select an ID image."})
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Please select an ID image."})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.identity.VerifyID(r.Context(), auth.EmailFromContext(r.Context()), image)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

package api

import (
	"context"
	"net/http"

	"zkpark/internal/auth"
	"zkpark/internal/entities"
)

type WalletService interface {
	GetWallet(ctx context.Context, email string) (*entities.WalletResponse, error)
	LinkWallet(ctx context.Context, email, address string) (*entities.WalletResponse, error)
	UnlinkWallet(ctx context.Context, email string) error
	ConnectInfo() entities.WalletConnectInfo
}

type WalletHandler struct {
	service WalletService
}

func NewWalletHandler(svc WalletService) *WalletHandler {
	return &WalletHandler{service: svc}
}

func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.service.GetWallet(r.Context(), auth.EmailFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (h *WalletHandler) LinkWallet(w http.ResponseWriter, r *http.Request) {
	var req entities.WalletUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	wallet, err := h.service.LinkWallet(r.Context(), auth.EmailFromContext(r.Context()), req.Address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (h *WalletHandler) UnlinkWallet(w http.ResponseWriter, r *http.Request) {
	if err := h.service.UnlinkWallet(r.Context(), auth.EmailFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.WalletResponse{})
}

func (h *WalletHandler) ConnectInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ConnectInfo())
}

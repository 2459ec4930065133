package service

import (
	"context"
	"log"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"zkpark/internal/entities"
	apperrors "zkpark/internal/errors"
	"zkpark/internal/repository"
)

const (
	metaMaskDeepLink   = "metamask://"
	metaMaskInstallURL = "https://metamask.io/download/"
)

type WalletService struct {
	users repository.UserRepository
}

func NewWalletService(users repository.UserRepository) *WalletService {
	return &WalletService{users: users}
}

// ValidWalletAddress requires the 0x prefix and a 20-byte hex body.
func ValidWalletAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}

func (s *WalletService) GetWallet(ctx context.Context, email string) (*entities.WalletResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound("User not found")
	}
	resp := &entities.WalletResponse{}
	if user.WalletAddr.Valid && user.WalletAddr.String != "" {
		addr := user.WalletAddr.String
		resp.WalletAddress = &addr
		resp.Connected = true
	}
	return resp, nil
}

// LinkWallet stores the address exactly as entered.
func (s *WalletService) LinkWallet(ctx context.Context, email, address string) (*entities.WalletResponse, error) {
	address = strings.TrimSpace(address)
	if !ValidWalletAddress(address) {
		return nil, apperrors.ErrBadRequest("Please enter a valid Ethereum address starting with 0x")
	}
	if err := s.users.UpdateWalletAddr(ctx, email, &address); err != nil {
		log.Printf("Error connecting wallet for %s: %v", email, err)
		return nil, err
	}
	log.Printf("Wallet %s linked to %s", address, email)
	return &entities.WalletResponse{WalletAddress: &address, Connected: true}, nil
}

func (s *WalletService) UnlinkWallet(ctx context.Context, email string) error {
	if err := s.users.UpdateWalletAddr(ctx, email, nil); err != nil {
		log.Printf("Error disconnecting wallet for %s: %v", email, err)
		return err
	}
	return nil
}

func (s *WalletService) ConnectInfo() entities.WalletConnectInfo {
	return entities.WalletConnectInfo{
		DeepLink:   metaMaskDeepLink,
		InstallURL: metaMaskInstallURL,
		Steps: []string{
			"Open MetaMask and unlock your wallet.",
			"Copy your account address.",
			"Paste it here and tap Connect.",
		},
	}
}

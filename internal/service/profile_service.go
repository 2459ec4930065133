package service

import (
	"context"
	"log"

	"zkpark/internal/db"
	"zkpark/internal/entities"
	apperrors "zkpark/internal/errors"
	"zkpark/internal/repository"
	"zkpark/internal/utils"
)

type ProfileService struct {
	users   repository.UserRepository
	rewards RewardsAPI
}

func NewProfileService(users repository.UserRepository, rewards RewardsAPI) *ProfileService {
	return &ProfileService{users: users, rewards: rewards}
}

func (s *ProfileService) GetProfile(ctx context.Context, email string) (*entities.Profile, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	profile := &entities.Profile{
		Email:       email,
		DisplayName: utils.DisplayNameFromEmail(email),
		Rewards:     "0",
	}
	if wallet := walletOf(user); wallet != "" {
		profile.WalletAddress = &wallet
		profile.Rewards = s.balance(ctx, wallet)
	}
	return profile, nil
}

// Rewards returns the token balance of the caller's linked wallet.
func (s *ProfileService) Rewards(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	wallet := walletOf(user)
	if wallet == "" {
		return "", apperrors.ErrBadRequest("Please connect a wallet to view your rewards.")
	}
	return s.balance(ctx, wallet), nil
}

// Any failure reads as a zero balance.
func (s *ProfileService) balance(ctx context.Context, wallet string) string {
	balance, err := s.rewards.TokenBalance(ctx, wallet)
	if err != nil {
		log.Printf("Error fetching rewards for %s: %v", wallet, err)
		return "0"
	}
	return balance
}

func walletOf(user *db.User) string {
	if user == nil || !user.WalletAddr.Valid {
		return ""
	}
	return user.WalletAddr.String
}

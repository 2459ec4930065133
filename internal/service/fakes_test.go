package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"zkpark/internal/db"
	"zkpark/internal/entities"
)

type fakeUsers struct {
	mu        sync.Mutex
	users     map[string]*db.User
	err       error
	createErr error
}

func newFakeUsers(users ...db.User) *fakeUsers {
	f := &fakeUsers{users: make(map[string]*db.User)}
	for i := range users {
		u := users[i]
		f.users[u.Email] = &u
	}
	return f
}

func userWithWallet(email, wallet string) db.User {
	u := db.User{Email: email, Age: 30}
	if wallet != "" {
		u.WalletAddr = sql.NullString{String: wallet, Valid: true}
	}
	return u
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) CreateUser(_ context.Context, email, password string, age int) error {
	if f.createErr != nil {
		return f.createErr
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = &db.User{Email: email, PasswordHash: string(hash), Age: age}
	return nil
}

func (f *fakeUsers) UpdateWalletAddr(_ context.Context, email string, walletAddr *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return fmt.Errorf("user %s not found: %w", email, sql.ErrNoRows)
	}
	if walletAddr == nil {
		u.WalletAddr = sql.NullString{}
	} else {
		u.WalletAddr = sql.NullString{String: *walletAddr, Valid: true}
	}
	return nil
}

type fakeParking struct {
	spots []db.ParkingSpot
	err   error
}

func (f *fakeParking) ListSpots(context.Context) ([]db.ParkingSpot, error) {
	return f.spots, f.err
}

func (f *fakeParking) FindByCoordinates(_ context.Context, lat, long string) ([]db.ParkingSpot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []db.ParkingSpot
	for _, s := range f.spots {
		if s.Lat == lat && s.Long == long {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSessions struct {
	created []db.ParkingSession
	byID    map[string]db.ParkingSession
	err     error
}

func (f *fakeSessions) CreateSession(_ context.Context, s *db.ParkingSession) error {
	if f.err != nil {
		return f.err
	}
	s.ID = len(f.created) + 1
	f.created = append(f.created, *s)
	return nil
}

func (f *fakeSessions) GetBySessionID(_ context.Context, id string) (*db.ParkingSession, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("parking session '%s' not found: %w", id, sql.ErrNoRows)
	}
	return &s, nil
}

type fakeBooking struct {
	calls []entities.BookingRequest
	resp  *entities.BookingResponse
	err   error
}

func (f *fakeBooking) CreateReservation(_ context.Context, req entities.BookingRequest) (*entities.BookingResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeNotifier struct {
	sent []entities.ReservationEmailData
}

func (f *fakeNotifier) SendReservationEmail(data entities.ReservationEmailData) {
	f.sent = append(f.sent, data)
}

type fakeRewards struct {
	balance string
	err     error
}

func (f *fakeRewards) TokenBalance(context.Context, string) (string, error) {
	return f.balance, f.err
}

type fakeDetector struct {
	text string
	err  error
}

func (f *fakeDetector) DetectText(context.Context, []byte) (string, error) {
	return f.text, f.err
}

type fakeIssuer struct {
	got *entities.CredentialRequest
	err error
}

func (f *fakeIssuer) Issue(_ context.Context, req entities.CredentialRequest) (map[string]interface{}, error) {
	f.got = &req
	if f.err != nil {
		return nil, f.err
	}
	return map[string]interface{}{"id": "vc-1"}, nil
}

type fakeAuthProvider struct {
	signUpErr  error
	signInErr  error
	signOutErr error
	signUps    []string
}

func (f *fakeAuthProvider) SignUp(_ context.Context, email, _ string) error {
	f.signUps = append(f.signUps, email)
	return f.signUpErr
}

func (f *fakeAuthProvider) SignIn(_ context.Context, email, _ string) (*entities.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &entities.Session{AccessToken: "token-" + email, TokenType: "bearer", ExpiresIn: 3600}, nil
}

func (f *fakeAuthProvider) SignOut(context.Context, string) error {
	return f.signOutErr
}

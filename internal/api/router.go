package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"zkpark/internal/auth"
)

type Handlers struct {
	Auth        *AuthHandler
	Explore     *ExploreHandler
	Reservation *ReservationHandler
	Trips       *TripsHandler
	Saved       *SavedHandler
	Profile     *ProfileHandler
	Wallet      *WalletHandler
}

func NewRouter(h Handlers, mw *auth.Middleware) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, MessageResponse{Message: "ok"})
	}).Methods("GET")

	// Public endpoints
	r.HandleFunc("/api/auth/signup", h.Auth.SignUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", h.Auth.SignIn).Methods("POST")
	r.HandleFunc("/api/vehicles", h.Reservation.GetVehicles).Methods("GET")
	r.HandleFunc("/api/reservations/quote", h.Reservation.Quote).Methods("POST")

	// Signed-in endpoints
	api := r.PathPrefix("/api").Subrouter()
	api.Use(mw.Authenticate)
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")
	api.HandleFunc("/parking", h.Explore.ListParking).Methods("GET")

	api.HandleFunc("/reservations/context", h.Reservation.Context).Methods("POST")
	api.HandleFunc("/reservations", h.Reservation.Confirm).Methods("POST")

	api.HandleFunc("/trips", h.Trips.ListTrips).Methods("GET")
	api.HandleFunc("/trips/{id}", h.Trips.DeleteTrip).Methods("DELETE")

	api.HandleFunc("/saved", h.Saved.List).Methods("GET")
	api.HandleFunc("/saved", h.Saved.Add).Methods("POST")
	api.HandleFunc("/saved/toggle", h.Saved.Toggle).Methods("POST")
	api.HandleFunc("/saved/{id}", h.Saved.Remove).Methods("DELETE")

	api.HandleFunc("/profile", h.Profile.GetProfile).Methods("GET")
	api.HandleFunc("/profile/rewards", h.Profile.Rewards).Methods("GET")
	api.HandleFunc("/profile/verify-id", h.Profile.VerifyID).Methods("POST")

	api.HandleFunc("/wallet", h.Wallet.GetWallet).Methods("GET")
	api.HandleFunc("/wallet", h.Wallet.LinkWallet).Methods("PUT")
	api.HandleFunc("/wallet", h.Wallet.UnlinkWallet).Methods("DELETE")
	api.HandleFunc("/wallet/connect", h.Wallet.ConnectInfo).Methods("GET")

	return r
}

package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"zkpark/internal/api"
	"zkpark/internal/auth"
	"zkpark/internal/config"
	"zkpark/internal/repository"
	"zkpark/internal/service"
	"zkpark/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	var store storage.Store
	if cfg.RedisURL != "" {
		redisStore, err := storage.NewRedisStoreFromURL(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		log.Println("Warning: REDIS_URL not set, reservations and saved items are kept in memory")
		store = storage.NewMemoryStore()
	}
	blobs := storage.NewBlobs(store)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	userRepo := repository.NewUserRepository(db)
	parkingRepo := repository.NewParkingRepository(db)
	sessionRepo := repository.NewReservationRepository(db)
	jobRepo := repository.NewJobRepository(db)

	chain := service.NewChainClient(cfg.ZkParkAPIURL, httpClient)
	supabase := service.NewSupabaseAuth(cfg.SupabaseURL, cfg.SupabaseAnonKey, httpClient)
	humanity := service.NewHumanityService(cfg.HumanityAPIURL, cfg.HumanityAPIKey, httpClient)
	vision, err := service.NewVisionService(ctx, cfg.VisionAPIKey, cfg.VisionEndpoint)
	if err != nil {
		log.Fatalf("Failed to create Vision client: %v", err)
	}
	sender := service.NewSenderService(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName)

	savedSvc := service.NewSavedService(blobs)
	reservationSvc := service.NewReservationService(userRepo, parkingRepo, sessionRepo, chain, blobs, sender)
	tripsSvc := service.NewTripsService(blobs, sessionRepo, savedSvc, cfg.SampleTrips)

	profileHandler := api.NewProfileHandler(
		service.NewProfileService(userRepo, chain),
		service.NewIdentityService(userRepo, vision, humanity),
	)

	router := api.NewRouter(api.Handlers{
		Auth:        api.NewAuthHandler(service.NewUserAuthService(userRepo, supabase)),
		Explore:     api.NewExploreHandler(service.NewExploreService(parkingRepo)),
		Reservation: api.NewReservationHandler(reservationSvc),
		Trips:       api.NewTripsHandler(tripsSvc),
		Saved:       api.NewSavedHandler(savedSvc),
		Profile:     profileHandler,
		Wallet:      api.NewWalletHandler(service.NewWalletService(userRepo)),
	}, auth.NewMiddleware(cfg.SupabaseJWTSecret))

	completion := service.NewCompletionJob(jobRepo)
	c := cron.New()
	_, err = c.AddFunc(cfg.JobSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := completion.Run(ctx); err != nil {
			log.Printf("Session completion failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Invalid JOB_SCHEDULE %q: %v", cfg.JobSchedule, err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(router)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(os.Stdout, corsHandler)))
}

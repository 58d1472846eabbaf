package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"calsync/internal/api"
	"calsync/internal/auth"
	"calsync/internal/repository"
	"calsync/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	calendarSvc := service.NewGoogleCalendarService(
		os.Getenv("GOOGLE_CLIENT_ID"),
		os.Getenv("GOOGLE_CLIENT_SECRET"),
		os.Getenv("GOOGLE_REDIRECT_URL"),
	)

	// Availability windows are wall-clock times; SCHEDULE_TIMEZONE pins which
	// wall they hang on. Defaults to the server's local zone.
	loc := time.Local
	if tz := os.Getenv("SCHEDULE_TIMEZONE"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			log.Fatalf("Invalid SCHEDULE_TIMEZONE %q: %v", tz, err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	eventTypeRepo := repository.NewEventTypeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	jobRepo := repository.NewJobRepository(db)

	senderSvc := service.NewSenderService()
	authSvc := service.NewAuthService(userRepo, availabilityRepo)
	userSvc := service.NewUserService(userRepo)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo)
	eventTypeSvc := service.NewEventTypeService(eventTypeRepo, userRepo, availabilityRepo)
	bookingSvc := service.NewBookingService(bookingRepo, eventTypeRepo, availabilityRepo, userRepo, calendarSvc, senderSvc, loc)
	jobSvc := service.NewJobService(jobRepo, senderSvc)

	authHandler := api.NewAuthHandler(authSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc, eventTypeSvc)
	dashboardHandler := api.NewDashboardHandler(userSvc, availabilitySvc, eventTypeSvc, bookingSvc)
	oauthHandler := api.NewOAuthHandler(calendarSvc, userSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Dashboard endpoints (protected). Registered before the public
	// booking-page wildcards so /api/dashboard is never read as a username.
	dashboard := r.PathPrefix("/api/dashboard").Subrouter()
	dashboard.Use(auth.Middleware)
	dashboard.HandleFunc("/profile", dashboardHandler.GetProfile).Methods("GET")
	dashboard.HandleFunc("/profile", dashboardHandler.UpdateProfile).Methods("PUT")
	dashboard.HandleFunc("/username", dashboardHandler.ClaimUserName).Methods("PUT")
	dashboard.HandleFunc("/availability", dashboardHandler.GetAvailability).Methods("GET")
	dashboard.HandleFunc("/availability", dashboardHandler.UpdateAvailability).Methods("PUT")
	dashboard.HandleFunc("/event-types", dashboardHandler.CreateEventType).Methods("POST")
	dashboard.HandleFunc("/event-types", dashboardHandler.ListEventTypes).Methods("GET")
	dashboard.HandleFunc("/event-types/{id}", dashboardHandler.UpdateEventType).Methods("PUT")
	dashboard.HandleFunc("/event-types/{id}/active", dashboardHandler.ToggleEventType).Methods("PATCH")
	dashboard.HandleFunc("/event-types/{id}", dashboardHandler.DeleteEventType).Methods("DELETE")
	dashboard.HandleFunc("/bookings", dashboardHandler.ListBookings).Methods("GET")
	dashboard.HandleFunc("/bookings/{code}", dashboardHandler.CancelBooking).Methods("DELETE")
	dashboard.HandleFunc("/oauth/authorize", oauthHandler.Authorize).Methods("GET")
	dashboard.HandleFunc("/oauth/exchange", oauthHandler.Exchange).Methods("GET")

	// Public booking page
	r.HandleFunc("/api/{username}/{eventUrl}", bookingHandler.GetPublicEventType).Methods("GET")
	r.HandleFunc("/api/{username}/{eventUrl}/slots", bookingHandler.ListSlots).Methods("GET")
	r.HandleFunc("/api/{username}/{eventUrl}/bookings", bookingHandler.CreateBooking).Methods("POST")

	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		if err := jobSvc.CompletePastBookings(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule completion job: %v", err)
	}
	if _, err := c.AddFunc("*/15 * * * *", func() {
		if err := jobSvc.SendUpcomingReminders(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("FRONTEND_ORIGIN")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}

package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"cospace/internal/config"
	"cospace/internal/database"
	"cospace/internal/events"
	"cospace/internal/middleware"
	"cospace/internal/modules/approval"
	"cospace/internal/modules/auth"
	"cospace/internal/modules/booking"
	"cospace/internal/modules/catalog"
	"cospace/internal/modules/feed"
	"cospace/internal/modules/lifecycle"
	"cospace/internal/modules/reactor"
	jwtsvc "cospace/internal/pkg/jwt"
	"cospace/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	bus := events.NewBus()
	defer bus.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(spaceRepo, areaRepo)
	catalogHandler := catalog.NewHandler(catalogService, userRepo)

	bookingService := booking.NewService(reservationRepo, spaceRepo, areaRepo, availabilityRepo, bus)
	bookingHandler := booking.NewHandler(bookingService)

	hub := feed.NewHub()
	defer hub.Close()
	wsHandler := feed.NewWSHandler(hub, j)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go reactor.New(availabilityRepo).Run(ctx, bus.Subscribe())
	go hub.Run(ctx, bus.Subscribe())

	lifecycle.New(reservationRepo, cfg.LifecycleInterval, cfg.ConfirmationWindow).Start(ctx)
	approval.NewService(spaceRepo).Start(ctx, cfg.ApprovalInterval)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			catalogHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
		}
	}

	r.GET("/ws/availability", wsHandler.HandleWebSocket)

	log.Printf("listening addr=%s env=%s", cfg.HTTPAddr, cfg.AppEnv)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}

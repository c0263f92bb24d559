package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/court-reservation-backend/internal/api"
	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/event"
	"github.com/nekogravitycat/court-reservation-backend/internal/file"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/lock"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/storage"
	"github.com/nekogravitycat/court-reservation-backend/internal/report"
	"github.com/nekogravitycat/court-reservation-backend/internal/reservation"
	"github.com/nekogravitycat/court-reservation-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	// DBPool selects the PostgreSQL repositories. Nil means in-memory.
	DBPool     *pgxpool.Pool
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	// Optional infrastructure; nil falls back to the in-process implementation.
	Locker    lock.Locker
	Publisher event.Publisher
	Storage   storage.Storage

	BookingWindowDays int
	Location          *time.Location
	// Now overrides the reservation clock; nil uses time.Now.
	Now func() time.Time
	Log *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router             *gin.Engine
	JWTManager         *auth.JWTManager
	UserService        user.Service
	ReservationService reservation.Service
}

type repositories struct {
	users        user.Repository
	courts       court.Repository
	reservations reservation.Repository
	reports      report.Repository
	files        file.Repository
}

func memoryRepositories() repositories {
	return repositories{
		users:        user.NewMemoryRepository(),
		courts:       court.NewMemoryRepository(court.DefaultCourts()...),
		reservations: reservation.NewMemoryRepository(),
		reports:      report.NewMemoryRepository(),
		files:        file.NewMemoryRepository(),
	}
}

func pgxRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		users:        user.NewPgxRepository(pool),
		courts:       court.NewPgxRepository(pool),
		reservations: reservation.NewPgxRepository(pool),
		reports:      report.NewPgxRepository(pool),
		files:        file.NewPgxRepository(pool),
	}
}

// seedCourts loads the default catalog into an empty court table.
func seedCourts(ctx context.Context, repo court.Repository) error {
	_, total, err := repo.List(ctx, court.Filter{Page: 1, PageSize: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}
	for _, c := range court.DefaultCourts() {
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// NewContainer initializes all modules and returns the container.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	locker := cfg.Locker
	if locker == nil {
		locker = lock.NewLocalLock()
	}
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = event.NewLogPublisher(log)
	}
	if cfg.Storage == nil {
		return nil, fmt.Errorf("storage is required")
	}

	repos := memoryRepositories()
	if cfg.DBPool != nil {
		repos = pgxRepositories(cfg.DBPool)
		if err := seedCourts(ctx, repos.courts); err != nil {
			return nil, fmt.Errorf("failed to seed courts: %w", err)
		}
	}

	// User Module
	userService := user.NewService(repos.users, passwordHasher, log.Named("user"))

	// Court Module
	courtService := court.NewService(repos.courts)

	// File Module (report photos)
	fileService := file.NewService(repos.files, cfg.Storage, log.Named("file"))

	// Reservation Module
	reservationService := reservation.NewService(repos.reservations, courtService, locker, publisher, log.Named("reservation"), reservation.Options{
		BookingWindowDays: cfg.BookingWindowDays,
		Location:          cfg.Location,
		Now:               cfg.Now,
		Lock:              lock.DefaultOptions,
	})

	// Report Module
	reportService := report.NewService(repos.reports, courtService, fileService, log.Named("report"))

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Log:                log,
		UserService:        userService,
		CourtService:       courtService,
		ReservationService: reservationService,
		ReportService:      reportService,
		FileService:        fileService,
		JWTManager:         jwtManager,
	})

	return &Container{
		Router:             router,
		JWTManager:         jwtManager,
		UserService:        userService,
		ReservationService: reservationService,
	}, nil
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	courtHttp "github.com/nekogravitycat/court-reservation-backend/internal/court/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/file"
	fileHttp "github.com/nekogravitycat/court-reservation-backend/internal/file/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/logger"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/metrics"
	"github.com/nekogravitycat/court-reservation-backend/internal/report"
	reportHttp "github.com/nekogravitycat/court-reservation-backend/internal/report/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/court-reservation-backend/internal/reservation/http"
	"github.com/nekogravitycat/court-reservation-backend/internal/user"
	userHttp "github.com/nekogravitycat/court-reservation-backend/internal/user/http"
)

// Config carries everything the router needs to mount the modules.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Log          *zap.Logger

	UserService        user.Service
	CourtService       court.Service
	ReservationService reservation.Service
	ReportService      report.Service
	FileService        file.Service
	JWTManager         *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	// - Logger: One structured line per request.
	// - Metrics: Request count and latency by route template.
	r.Use(gin.Recovery(), logger.GinMiddleware(cfg.Log), metrics.Middleware())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins(cfg.IsProduction, cfg.ProdOrigins)
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// authMiddleware: Validates the JWT and that the account is still approved.
	authMiddleware := auth.AuthRequired(cfg.JWTManager, RequireApprovedAccount(cfg.UserService))
	// adminMiddleware: Further checks that the token carries the admin role.
	adminMiddleware := auth.RequireAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)
	reportHandler := reportHttp.NewHandler(cfg.ReportService)
	fileHandler := fileHttp.NewHandler(cfg.FileService, cfg.Log)
	statsHandler := NewStatsHandler(cfg.UserService, cfg.CourtService, cfg.ReservationService, cfg.ReportService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware, adminMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware, adminMiddleware)
		reportHttp.RegisterRoutes(v1, reportHandler, authMiddleware, adminMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware)

		admin := v1.Group("/admin", authMiddleware, adminMiddleware)
		admin.GET("/stats", statsHandler.Get)
	}

	return r
}

func allowedOrigins(isProduction bool, prodOrigins string) []string {
	if !isProduction {
		return []string{
			"http://localhost:8081", // Swagger
			"http://localhost:3000", // Frontend dev server
		}
	}

	var origins []string
	for _, o := range strings.Split(prodOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

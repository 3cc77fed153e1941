package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amoylab/leavehub/internal/apiserver/database"
	"github.com/amoylab/leavehub/internal/apiserver/handler"
	"github.com/amoylab/leavehub/internal/apiserver/middleware"
	"github.com/amoylab/leavehub/internal/auth/jwt"
	"github.com/amoylab/leavehub/internal/common/config"
	"github.com/amoylab/leavehub/internal/common/cnst"
	"github.com/amoylab/leavehub/internal/i18n"
	"github.com/amoylab/leavehub/pkg/logger"
	"github.com/amoylab/leavehub/pkg/metrics"
	"github.com/amoylab/leavehub/pkg/trace"
	"github.com/amoylab/leavehub/pkg/version"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "LeaveHub API Server",
		Long:  `LeaveHub API Server provides user account and leave request management endpoints`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", cnst.ApiServerYaml, "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	// Load configuration
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	// Initialize logger
	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = lg.Sync()
	}()

	lg.Info("Starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	ctx := context.Background()

	// Initialize OpenTelemetry tracing
	if cfg.Tracing.Enabled {
		shutdown, err := trace.InitTracing(ctx, &cfg.Tracing, lg)
		if err != nil {
			lg.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				lg.Warn("Failed to shutdown tracer", zap.Error(err))
			}
		}()
	}

	// Initialize i18n translator
	if err := i18n.InitTranslator(cfg.I18n.Path); err != nil {
		lg.Warn("Failed to load translations, falling back to message ids", zap.Error(err))
	}

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		lg.Fatal("Failed to initialize database",
			zap.String("type", cfg.Database.Type),
			zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			lg.Warn("Failed to close database", zap.Error(err))
		}
	}()

	// Seed the administrator account and its leave balance
	if err := database.InitSuperAdmin(ctx, db, &cfg.SuperAdmin, &cfg.Leave); err != nil {
		lg.Fatal("Failed to initialize super admin", zap.Error(err))
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{SecretKey: cfg.JWT.SecretKey, Duration: cfg.JWT.Duration})
	if err != nil {
		lg.Fatal("Failed to initialize JWT service", zap.Error(err))
	}

	h := handler.NewHandler(db, jwtService, cfg, lg)

	// Initialize router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogMiddleware(lg))
	router.Use(i18n.LangMiddleware())
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
		h.WithMetrics(m)
		router.Use(m.Middleware())
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})

	registerRoutes(router, h, jwtService)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		lg.Info("Server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Server forced to shutdown", zap.Error(err))
	}
}

// registerRoutes wires the HTTP surface
func registerRoutes(router *gin.Engine, h *handler.Handler, jwtService *jwt.Service) {
	api := router.Group("/api")

	// Public routes
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	// Authenticated routes
	authed := api.Group("", middleware.JWTAuthMiddleware(jwtService))
	authed.GET("/profile", h.GetProfile)
	authed.PUT("/updateProfile", h.UpdateProfile)
	authed.POST("/changePassword", h.ChangePassword)
	authed.POST("/leaveRequest", h.ApplyLeave)
	authed.GET("/leaveStatus", h.LeaveStatus)
	authed.GET("/leaveBalance", h.LeaveBalance)

	// Administrative routes
	admin := authed.Group("", middleware.AdminOnlyMiddleware())
	admin.GET("/usersList", h.ListUsers)
	admin.PUT("/update/:id", h.UpdateUser)
	admin.DELETE("/delete/:id", h.DeleteUser)
	admin.PUT("/updateLeaveStatus/:id", h.UpdateLeaveStatus)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

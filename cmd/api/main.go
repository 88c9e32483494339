package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hcms-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/ratelimit"
	"github.com/cmlabs-hris/hcms-backend-go/internal/repository/postgresql"
	attendanceGroupService "github.com/cmlabs-hris/hcms-backend-go/internal/service/attendancegroup"
	serviceAuth "github.com/cmlabs-hris/hcms-backend-go/internal/service/auth"
	departmentService "github.com/cmlabs-hris/hcms-backend-go/internal/service/department"
	shiftService "github.com/cmlabs-hris/hcms-backend-go/internal/service/shift"
	userService "github.com/cmlabs-hris/hcms-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:          cfg.Database.MaxConns,
		MinConns:          cfg.Database.MinConns,
		MaxConnLifetime:   time.Hour,
		HealthCheckPeriod: time.Minute,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	shiftRepo := postgresql.NewShiftRepository(db)
	groupRepo := postgresql.NewAttendanceGroupRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	loginAuditRepo := postgresql.NewLoginAuditRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RememberMeExpiration)
	loginLimiter := ratelimit.NewLimiter(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)

	authService := serviceAuth.NewAuthService(userRepo, loginAuditRepo, JWTService, loginLimiter)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	groupSvc := attendanceGroupService.NewAttendanceGroupService(groupRepo, shiftRepo)
	userSvc := userService.NewUserService(userRepo, txRunner)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)

	router := appHTTP.NewRouter(cfg.App, JWTService, appHTTP.Handlers{
		Auth:            appHTTP.NewAuthHandler(authService, cfg.App.TrustProxyHeaders),
		Shift:           appHTTP.NewShiftHandler(shiftSvc),
		AttendanceGroup: appHTTP.NewAttendanceGroupHandler(groupSvc),
		User:            appHTTP.NewUserHandler(userSvc),
		Department:      appHTTP.NewDepartmentHandler(departmentSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(loginLimiter, JWTService, loginAuditRepo, cfg.Audit.Retention).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shutdown server", "error", err)
		}
	}()

	slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "version", cfg.App.Version)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

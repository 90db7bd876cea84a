package router

import (
	"github.com/ymatsuda/coffee-journal/internal/application"
	"github.com/ymatsuda/coffee-journal/internal/container"
	"github.com/ymatsuda/coffee-journal/internal/infrastructure/postgres"
	handlers "github.com/ymatsuda/coffee-journal/internal/interface/http"
	"github.com/ymatsuda/coffee-journal/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()

	users := postgres.NewUserRepository(pool)
	profiles := postgres.NewProfileRepository(pool)
	entries := postgres.NewEntryRepository(pool)

	userSvc := &application.UserService{
		Users:            users,
		Profiles:         profiles,
		JWT:              container.GetJWT(),
		Redis:            container.GetRedis(),
		Logger:           logger,
		Pub:              container.GetRabbitPub(),
		ResetPasswordURL: cfg.ResetPasswordURL,
		VerifyEmailURL:   cfg.VerifyEmailURL,
		MailEnabled:      cfg.MailSendEnabled,
	}
	entrySvc := &application.EntryService{
		Entries:        entries,
		GCS:            container.GetGCS(),
		GCSBucket:      cfg.GCSBucket,
		Logger:         logger,
		ES:             container.GetES(),
		ESEntriesIndex: cfg.ESEntriesIndex,
	}
	profileSvc := &application.ProfileService{
		Profiles:  profiles,
		GCS:       container.GetGCS(),
		GCSBucket: cfg.GCSBucket,
		Logger:    logger,
	}
	dashboardSvc := &application.DashboardService{Entries: entries}

	authHandler := handlers.NewAuthHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	entryHandler := handlers.NewEntryHandler(entrySvc, logger)
	profileHandler := handlers.NewProfileHandler(profileSvc, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewEntryModule(entryHandler, container.GetJWT()))
	r.Add(modules.NewProfileModule(profileHandler, container.GetJWT()))
	r.Add(modules.NewDashboardModule(dashboardHandler, container.GetJWT()))
}

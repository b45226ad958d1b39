package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meridianit/inbox-project/pkgs/cache"
	"meridianit/inbox-project/pkgs/conf"
	"meridianit/inbox-project/pkgs/db"
	"meridianit/inbox-project/pkgs/events"
	"meridianit/inbox-project/pkgs/file"
	"meridianit/inbox-project/pkgs/locker"
	"meridianit/inbox-project/pkgs/whatsapp"
	"meridianit/inbox-project/web"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/juju/errors"
	"github.com/rs/zerolog/log"
	urfave "github.com/urfave/cli/v2"
)

// Run dispatches to the service commands. `serve` is the default so a bare
// invocation starts the server.
func Run() {
	app := &urfave.App{
		Name:           "inbox-project",
		Usage:          "WhatsApp inbox and chatbot service for Meridian IT Partners",
		DefaultCommand: "serve",
		Commands: []*urfave.Command{
			{
				Name:  "serve",
				Usage: "Run migrations and start the HTTP server",
				Action: func(c *urfave.Context) error {
					return serve(c.Context)
				},
			},
			{
				Name:  "migrate",
				Usage: "Apply pending database migrations and exit",
				Action: func(c *urfave.Context) error {
					return db.GooseMigrateUp(conf.GetConfig().PostgresConfig)
				},
			},
			{
				Name:  "seed-org",
				Usage: "Register an organization for a WhatsApp phone number",
				Flags: []urfave.Flag{
					&urfave.StringFlag{Name: "name", Required: true, Usage: "Organization display name"},
					&urfave.StringFlag{Name: "phone-number-id", Required: true, Usage: "Cloud API phone number ID"},
					&urfave.BoolFlag{Name: "chatbot", Value: true, Usage: "Enable the auto-responder"},
				},
				Action: func(c *urfave.Context) error {
					return seedOrg(c.Context, c.String("name"), c.String("phone-number-id"), c.Bool("chatbot"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func seedOrg(ctx context.Context, name, phoneNumberID string, chatbot bool) error {
	queries, err := db.NewQueries(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	org, err := queries.CreateOrganization(ctx, name, phoneNumberID,
		db.OrgSettings{
			BusinessHours: db.BusinessHours{
				Enabled:  true,
				Timezone: "America/New_York",
				Schedule: map[string]db.DayWindow{
					"monday":    {Start: "08:00", End: "18:00"},
					"tuesday":   {Start: "08:00", End: "18:00"},
					"wednesday": {Start: "08:00", End: "18:00"},
					"thursday":  {Start: "08:00", End: "18:00"},
					"friday":    {Start: "08:00", End: "18:00"},
				},
			},
		},
		db.OrgFeatures{AIChatbot: chatbot})
	if err != nil {
		return errors.Trace(err)
	}

	log.Info().Str("organization_id", org.ID).Str("phone_number_id", phoneNumberID).Msg("organization created")
	return nil
}

func serve(ctx context.Context) error {
	cfg := conf.GetConfig()

	if err := db.GooseMigrateUp(cfg.PostgresConfig); err != nil {
		return errors.Annotate(err, "failed to run database migrations")
	}

	queries, err := db.NewQueries(ctx)
	if err != nil {
		return errors.Annotate(err, "failed to initialize database queries")
	}

	processor := whatsapp.NewProcessor(queries, whatsapp.NewGraphClient(cfg.WhatsappConfig), buildProcessorOptions(ctx, cfg))

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))

	api := humachi.New(router, huma.DefaultConfig("Meridian Inbox API", "1.0.0"))

	if err := web.RegisterChatbotHandlers(api); err != nil {
		return errors.Annotate(err, "failed to register chatbot handlers")
	}
	if err := web.RegisterWhatsappHandlers(api, processor); err != nil {
		return errors.Annotate(err, "failed to register whatsapp handlers")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.BaseConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.BaseConfig.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Annotate(err, "server forced to shutdown")
	}

	log.Info().Msg("server stopped")
	return nil
}

// buildProcessorOptions wires the optional collaborators. Each one degrades
// gracefully when its backing service is not configured, so a bare
// Postgres-only deployment still works.
func buildProcessorOptions(ctx context.Context, cfg *conf.Config) whatsapp.ProcessorOptions {
	var opts whatsapp.ProcessorOptions

	if cfg.RedisConfig.URL != "" {
		if lk, err := locker.NewRedisLocker(ctx, "inbox:lock:"); err != nil {
			log.Warn().Err(err).Msg("redis locker unavailable, running unlocked")
		} else {
			opts.Locker = lk
		}
		if orgCache, err := cache.NewRedisFromConnectionString[db.Organization](cfg.RedisConfig.URL); err != nil {
			log.Warn().Err(err).Msg("redis cache unavailable, running uncached")
		} else {
			opts.OrgCache = orgCache
		}
	}

	if cfg.AmqpConfig.URL != "" {
		if pub, err := events.NewRabbitPublisher(cfg.AmqpConfig.URL, cfg.AmqpConfig.Exchange); err != nil {
			log.Warn().Err(err).Msg("event publisher unavailable, analytics stay local")
		} else {
			opts.Publisher = pub
		}
	}

	if cfg.MediaConfig.DownloadEnabled {
		store, err := file.NewFileStore("local", cfg.MediaConfig.StoreRoot)
		if err != nil {
			log.Warn().Err(err).Msg("file store unavailable, media downloads disabled")
		} else {
			opts.Media = whatsapp.NewMediaFetcher(cfg.WhatsappConfig, store)
		}
	}

	return opts
}

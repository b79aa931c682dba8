package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"nostrcal/internal/config"
	"nostrcal/internal/infra/database"
	"nostrcal/internal/infra/gateway"
	"nostrcal/internal/infra/repository"
	"nostrcal/internal/present/rest"
	"nostrcal/internal/service"
	"nostrcal/internal/trace"
	"nostrcal/internal/usecase"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "nostrcal",
		Short: "calendar event browser for relay-published records",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the calendar API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if conf.Server.EnableTrace {
				shutdown, err := trace.Setup(ctx, conf.Server.TraceEndpoint)
				if err != nil {
					return err
				}
				defer shutdown(context.Background())
			}

			var cache usecase.RecordCache
			if conf.Server.PostgresDsn != "" {
				db, err := database.NewPostgres(conf.Server.PostgresDsn)
				if err != nil {
					return err
				}
				if err := database.MigratePostgres(db); err != nil {
					return err
				}
				cache = repository.NewRecordRepository(db)
			}

			relays := gateway.NewRelayGateway(conf.Relays)
			calendar := usecase.NewCalendarUsecase(relays, cache)

			var signal *service.SignalService
			if conf.Server.RedisAddr != "" {
				rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)
				signal = service.NewSignalService(rdb)
			}
			refresh := service.NewRefreshService(calendar, signal)

			var mc *memcache.Client
			if conf.Server.MemcachedAddr != "" {
				mc = database.NewMemcached(conf.Server.MemcachedAddr)
			}

			scheduler := cron.New()
			_, err = scheduler.AddFunc(conf.View.RefreshCron, func() {
				if err := refresh.Refresh(context.Background()); err != nil {
					slog.Error(
						"background refresh failed",
						slog.String("error", err.Error()),
						slog.String("module", "refresh"),
					)
				}
			})
			if err != nil {
				return err
			}
			scheduler.Start()
			defer scheduler.Stop()

			e := echo.New()
			e.Use(middleware.Logger())
			e.Use(middleware.Recover())
			e.Use(middleware.CORS())
			if conf.Server.EnableTrace {
				e.Use(otelecho.Middleware("nostrcal"))
			}

			handler := rest.NewHandler(conf, calendar, mc)
			handler.RegisterRoutes(e)

			e.Logger.Fatal(e.Start(conf.Server.Listen))
			return nil
		},
	}
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/contentloom/loom/internal/config"
	"github.com/contentloom/loom/internal/infra/database"
	"github.com/contentloom/loom/internal/infra/host"
	"github.com/contentloom/loom/internal/infra/repository"
	"github.com/contentloom/loom/internal/present/form"
	"github.com/contentloom/loom/internal/present/rest"
	restmiddleware "github.com/contentloom/loom/internal/present/rest/middleware"
	"github.com/contentloom/loom/internal/service"
	"github.com/contentloom/loom/internal/usecase"
)

func main() {
	configPath := flag.String("c", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	if conf.Server.EnableTrace {
		shutdown, err := setupTracer(ctx, conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.Error("trace shutdown failed", slog.String("error", err.Error()))
			}
		}()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// First-run setup: creates the definition tables, which stand in for
	// the empty lists an install initializes.
	err = database.MigratePostgres(db)
	if err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	defRepo := repository.NewDefinitionRepository(db)
	valueRepo := repository.NewFieldValueRepository(db, mc)
	recordRepo := repository.NewRecordRepository(db)

	nonces := service.NewNonceService(rdb)
	auth := service.NewAuthService(conf.Server)

	defUC := usecase.NewDefinitionUsecase(defRepo)
	fieldUC := usecase.NewFieldValueUsecase(valueRepo, nonces, auth)

	renderer := form.NewRenderer()
	hostRuntime := host.New(fieldUC, renderer)
	recordUC := usecase.NewRecordUsecase(recordRepo, hostRuntime)

	// Materialization: replay the stored definitions into the runtime.
	registry, err := usecase.BuildRegistry(ctx, defRepo)
	if err != nil {
		slog.Error("failed to build registry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	hostRuntime.Reset()
	usecase.NewMaterializer(hostRuntime).Apply(ctx, registry)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	admin := restmiddleware.NewAuthMiddleware(auth)
	handler := rest.NewHandler(defUC, fieldUC, recordUC, hostRuntime, renderer, nonces)
	handler.RegisterRoutes(e, admin.RequireAdmin)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("loom"),
		)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

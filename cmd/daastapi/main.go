package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/rice-crc/daastapi/internal/config"
	"github.com/rice-crc/daastapi/internal/infra/database"
	"github.com/rice-crc/daastapi/internal/infra/repository"
	"github.com/rice-crc/daastapi/internal/present/rest"
	"github.com/rice-crc/daastapi/internal/service"
	"github.com/rice-crc/daastapi/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)

	documentRepo := repository.NewDocumentRepository(db)
	entityRepo := repository.NewEntityRepository(db)

	annotationCache := usecase.NewAnnotationCache(entityRepo)
	searchUC := usecase.NewSearchUsecase(documentRepo, annotationCache)
	manifestUC := usecase.NewManifestUsecase(documentRepo, conf.Server.ManifestURLBase)
	signal := service.NewSignalService(rdb)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if conf.Server.EnableTrace {
		shutdown, err := setupTraceProvider(conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to set up trace provider: " + err.Error())
		}
		defer shutdown()
		e.Use(otelecho.Middleware("daastapi"))
	}

	handler := rest.NewHandler(searchUC, manifestUC, entityRepo, signal)
	handler.RegisterRoutes(e)

	slog.Info("Starting daastapi", slog.String("addr", conf.Server.ListenAddr))
	e.Logger.Fatal(e.Start(conf.Server.ListenAddr))
}

func setupTraceProvider(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := sdkresource.New(ctx,
		sdkresource.WithAttributes(semconv.ServiceName("daastapi")),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Error("Failed to shut down trace provider", slog.String("error", err.Error()))
		}
	}, nil
}

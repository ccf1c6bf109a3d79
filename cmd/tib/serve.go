// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/textisbeautiful/tib/cmd/tib/config"
	"github.com/textisbeautiful/tib/pkg/logging"
	"github.com/textisbeautiful/tib/services/concept"
	"github.com/textisbeautiful/tib/services/feedback"
	"github.com/textisbeautiful/tib/services/mailer"
	"github.com/textisbeautiful/tib/services/webapp/routes"
	"github.com/textisbeautiful/tib/services/wikitext"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web backend",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load the config: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:   parseLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: "webapp",
		JSON:    true,
	})
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	if cfg.Telemetry.OTLPEndpoint != "" {
		cleanup, err := initTracer(cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			log.Fatalf("failed to setup the OTLP tracer: %v", err)
		}
		defer cleanup(context.Background())
	}

	store, err := feedback.Open(feedback.Config{Path: cfg.Feedback.Path})
	if err != nil {
		log.Fatalf("failed to open the feedback store: %v", err)
	}
	defer store.Close()

	conceptSvc := concept.NewService(&concept.Settings{
		BaseURL:          cfg.Analytics.BaseURL,
		Username:         cfg.Analytics.Username,
		Password:         cfg.Analytics.Password,
		TopProjectFolder: cfg.Analytics.TopProjectFolder,
		TopDataFolder:    cfg.Analytics.TopDataFolder,
		DataFolder:       cfg.Analytics.DataFolder,
		ProjectConfigXML: cfg.Analytics.ProjectConfigXML,
		ThemeSize:        cfg.Analytics.ThemeSize,
		TextRoot:         cfg.Server.TextRoot,
	}, nil)

	router := gin.Default()
	router.Use(otelgin.Middleware("tib-webapp"))
	routes.SetupRoutes(router, routes.Deps{
		Concept: conceptSvc,
		Source:  wikitext.NewExtractor(nil),
		Sender: mailer.New(&mailer.Settings{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			Admins:   cfg.Mail.Admins,
		}),
		Feedback: store,
		TextRoot: cfg.Server.TextRoot,
	})

	slog.Info("Starting the tib web backend", "addr", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// initTracer stands up the OTLP/gRPC pipeline and installs the global trace
// provider. The returned cleanup flushes the exporter.
func initTracer(endpoint string) (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("tib-webapp")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

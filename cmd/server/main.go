// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"

	"github.com/MKhiriev/go-newsroom/internal/adapter"
	"github.com/MKhiriev/go-newsroom/internal/config"
	"github.com/MKhiriev/go-newsroom/internal/crypto"
	"github.com/MKhiriev/go-newsroom/internal/handler"
	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/server"
	"github.com/MKhiriev/go-newsroom/internal/service"
	"github.com/MKhiriev/go-newsroom/internal/store"
	"github.com/MKhiriev/go-newsroom/internal/workers"
	"github.com/MKhiriev/go-newsroom/models"
	"golang.org/x/sync/errgroup"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("go-newsroom-server")

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().Any("build", buildInfo).Msg("starting")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = log.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	cfg.App.Version = resolveVersion(cfg.App.Version, buildVersion)

	ctx, stop := server.SignalContext(context.Background())
	defer stop()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repositories := store.NewRepositories(db, log)
	hasher := crypto.NewSecretHasher(crypto.DefaultArgon2Params)

	mailSender, err := adapter.NewMailSender(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail sender")
	}
	mailWorker := workers.NewMailWorker(mailSender, cfg.Workers.MailQueueSize, cfg.Adapter.RequestTimeout, log)

	services, err := service.NewServices(repositories, hasher, mailWorker, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return workers.NewWorkers(mailWorker).Run(groupCtx)
	})
	group.Go(func() error {
		return srv.RunServer(groupCtx)
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}

	log.Info().Msg("server stopped")
}

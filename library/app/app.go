package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/moducation/library-api/library/config"
	"github.com/moducation/library-api/library/internal/handler"
	"github.com/moducation/library-api/library/internal/repository"
	"github.com/moducation/library-api/library/internal/server"
	"github.com/moducation/library-api/library/internal/service/book"
	"github.com/moducation/library-api/library/internal/service/circulation"
	"github.com/moducation/library-api/library/internal/service/user"
	"github.com/moducation/library-api/library/migrations"
	"github.com/moducation/library-api/pkg/kafka"
	"github.com/moducation/library-api/pkg/logger"
	"github.com/moducation/library-api/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	userRepo, err := repository.NewUserRepository(db, log)
	if err != nil {
		log.Fatal("user repo", zap.Error(err))
	}
	bookRepo, err := repository.NewBookRepository(db, log)
	if err != nil {
		log.Fatal("book repo", zap.Error(err))
	}
	circulationRepo, err := repository.NewCirculationRepository(db, log)
	if err != nil {
		log.Fatal("circulation repo", zap.Error(err))
	}

	events := kafka.NopEventLog()
	var producer sarama.AsyncProducer
	if len(cfg.Kafka.Addrs) > 0 {
		producer, err = kafka.NewAsyncProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewAsyncProducer", zap.Error(err))
		}
		events = kafka.NewEventLog(producer, cfg.Kafka.Topic)
	}

	userSvc := user.NewService(userRepo, log)
	bookSvc := book.NewService(bookRepo, log)
	circulationSvc := circulation.NewService(circulationRepo, userRepo, events, log)

	h := handler.New(bookSvc, userSvc, circulationSvc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g := new(errgroup.Group)
	g.Go(srv.Run)
	if producer != nil {
		g.Go(func() error {
			for err := range producer.Errors() {
				log.Error("produce event", zap.Error(err))
			}
			return nil
		})
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		if err = producer.Close(); err != nil {
			log.Error("producer.Close", zap.Error(err))
		}
	}
	db.Close()
	if err = g.Wait(); err != nil {
		log.Error("run group", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}

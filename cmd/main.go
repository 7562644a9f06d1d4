package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"carbroker/internal/cache"
	"carbroker/internal/core"
	"carbroker/internal/db"
	"carbroker/internal/kafka"
	"carbroker/internal/logger"
	"carbroker/internal/repository/postgresql"
	"carbroker/internal/server"
)

const (
	auditWorkerCount  = 3
	auditBatchSize    = 10
	auditBatchTimeout = 5 * time.Second

	approvalSweepInterval = time.Minute
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zlog := logger.New()
	defer zlog.Sync()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.GetPool().Close()

	db.InitAdmin(database)

	orderRepo := postgresql.NewOrderRepo(database)
	auctionRepo := postgresql.NewAuctionRepo(database)
	billingRepo := postgresql.NewBillingRepo(database)
	handoverRepo := postgresql.NewHandoverRepo(database)
	approvalRepo := postgresql.NewApprovalRepo(database)
	userRepo := postgresql.NewUserRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	listingCache := cache.NewAuctionCache(auctionRepo, zlog)
	if err := listingCache.LoadInitialData(ctx); err != nil {
		zlog.Warn("auction cache warm-up failed, serving from store", zap.Error(err))
	}

	broker := core.New(
		database,
		orderRepo,
		auctionRepo,
		billingRepo,
		handoverRepo,
		approvalRepo,
		userRepo,
		outboxRepo,
		zlog,
	).WithListingCache(listingCache)

	producer := newProducer(zlog)
	defer producer.Close()

	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    20,
		MaxAttempts:  5,
	}, zlog)

	sweeper := core.NewApprovalSweeper(approvalRepo, approvalSweepInterval, zlog)

	auditManager := server.NewAuditManager(auditWorkerCount, auditBatchSize, auditBatchTimeout, producer, zlog)
	srv := server.New(broker, userRepo, auditManager, zlog)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		sweeper.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return srv.Run(gctx, port)
	})

	<-ctx.Done()
	zlog.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
	publisher.Shutdown()
	sweeper.Wait()

	if err := g.Wait(); err != nil {
		zlog.Error("worker exited with error", zap.Error(err))
	}
	zlog.Info("shutdown complete")
}

func newProducer(zlog *zap.Logger) kafka.Producer {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return kafka.NewConsoleProducer()
	}
	zlog.Info("using kafka producer", zap.String("brokers", brokers))
	return kafka.NewWriterProducer(strings.Split(brokers, ","))
}

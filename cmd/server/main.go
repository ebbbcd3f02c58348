package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/rdcosta-dev/paysplit-go/internal/application/access"
	"github.com/rdcosta-dev/paysplit-go/internal/application/contracts"
	"github.com/rdcosta-dev/paysplit-go/internal/application/engine"
	"github.com/rdcosta-dev/paysplit-go/internal/domain/fee"
	"github.com/rdcosta-dev/paysplit-go/internal/domain/payment"
	"github.com/rdcosta-dev/paysplit-go/internal/infra/config"
	"github.com/rdcosta-dev/paysplit-go/internal/infra/logging"
	"github.com/rdcosta-dev/paysplit-go/internal/infra/metrics"
	"github.com/rdcosta-dev/paysplit-go/internal/infrastructure/eventbus"
	"github.com/rdcosta-dev/paysplit-go/internal/infrastructure/funds"
	httpapi "github.com/rdcosta-dev/paysplit-go/internal/infrastructure/http"
	"github.com/rdcosta-dev/paysplit-go/internal/infrastructure/notify"
	"github.com/rdcosta-dev/paysplit-go/internal/infrastructure/outbox"
	"github.com/rdcosta-dev/paysplit-go/internal/infrastructure/persistence/inmemory"
	"github.com/rdcosta-dev/paysplit-go/internal/infrastructure/persistence/sqlite"
)

func main() {
	cfg := config.Load()

	logger, err := logging.NewZapLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	bus := eventbus.NewInMemoryBus()

	var ledger payment.Repository
	var recorder contracts.EventRecorder = bus

	if cfg.SQLitePath != "" {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal(err)
		}
		if err := sqlite.RunMigrations(db); err != nil {
			log.Fatal(err)
		}

		ledger = sqlite.NewLedgerRepository(db)

		outboxRepo := outbox.NewSQLiteRepository(db)
		recorder = &outbox.Recorder{Repo: outboxRepo}

		dispatcher := &outbox.Dispatcher{
			Repo:         outboxRepo,
			EventBus:     bus,
			PollInterval: cfg.OutboxPoll,
			BatchSize:    cfg.OutboxBatch,
		}
		go dispatcher.Run(context.Background())
	} else {
		ledger = inmemory.NewLedgerRepository()
	}

	if cfg.RedisAddr != "" {
		publisher := &notify.RedisPublisher{
			Client:  redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
			Channel: cfg.RedisChannel,
			Logger:  logger,
		}
		bus.SubscribeAll(publisher.Handle)
	}

	lifecycleEngine := &engine.Engine{
		Ledger:   ledger,
		Fees:     fee.NewConfig(cfg.FeeBps, cfg.FeeRecipient),
		Gateway:  funds.NewSettlementGateway(),
		Access:   access.Controller{Admin: cfg.AdminID},
		Recorder: recorder,
		Logger:   logger,
		Metrics:  &metrics.Counters{},
	}

	paymentHandler := &httpapi.PaymentHandler{
		Engine: lifecycleEngine,
	}

	router := httpapi.NewRouter(paymentHandler)

	logger.Info("HTTP server running", map[string]any{"addr": cfg.HTTPAddr})
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, router))
}

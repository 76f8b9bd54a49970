package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"gitlab.com/tierpass-exchange/ledger_api/actions"
	"gitlab.com/tierpass-exchange/ledger_api/config"
	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/crons"
	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/monitor"
	"gitlab.com/tierpass-exchange/ledger_api/net/kafka"
	"gitlab.com/tierpass-exchange/ledger_api/oracle"
	"gitlab.com/tierpass-exchange/ledger_api/queries"
	"gitlab.com/tierpass-exchange/ledger_api/service/issuance"
	"gitlab.com/tierpass-exchange/ledger_api/service/tokenledger"
	"gitlab.com/tierpass-exchange/ledger_api/treasury"
)

// Server interface
type Server interface {
	Listen()
}

type server struct {
	config  config.Config
	actions *actions.Actions
	kafka   *kafka.Publisher
	HTTP    *http.Server
}

// NewServer wires both ledgers, the journal and the signal sinks from the
// loaded configuration
func NewServer(cfg config.Config) Server {
	sinks := []data.Publisher{monitor.Recorder{}}

	var repo *queries.Repo
	if cfg.Database.DSN != "" {
		var err error
		repo, err = queries.NewRepo(cfg.Database.DSN)
		if err != nil {
			log.Fatal().Err(err).Str("section", "server").Msg("Unable to connect to the journal database")
		}
		if err := repo.Migrate(); err != nil {
			log.Fatal().Err(err).Str("section", "server").Msg("Unable to migrate the journal database")
		}
		sinks = append(sinks, queries.NewJournal(repo))
	}

	var kafkaPublisher *kafka.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher = kafka.NewPublisher(cfg.Kafka)
		sinks = append(sinks, kafkaPublisher)
	}
	events := data.MultiPublisher(sinks...)

	feed := oracle.NewApp(cfg.Oracle.URL)
	treasuryLedger := treasury.New()

	initialSupply, ok := conv.NewAmountFromString(cfg.Token.InitialSupply)
	if !ok {
		log.Fatal().Str("section", "server").Str("initial_supply", cfg.Token.InitialSupply).
			Msg("Invalid initial token supply")
	}
	token, err := tokenledger.Init(cfg.Token.Owner, initialSupply, cfg.Token.BurnRateBasisUnits, events, nil)
	if err != nil {
		log.Fatal().Err(err).Str("section", "server").Msg("Unable to init the token ledger")
	}

	tiers := issuance.DefaultTiers()
	if len(cfg.Tiers) == len(tiers) {
		for i, tierCfg := range cfg.Tiers {
			tiers[i] = issuance.TierParams{
				USDPriceCents: tierCfg.USDPriceCents,
				MaxSupply:     tierCfg.MaxSupply,
				URI:           tierCfg.URI,
			}
		}
	}
	engine, err := issuance.Init(tiers, issuance.Wallets{
		Partner: cfg.Wallets.Partner,
		Pool:    cfg.Wallets.Pool,
		Company: cfg.Wallets.Company,
	}, feed, treasuryLedger, events, nil)
	if err != nil {
		log.Fatal().Err(err).Str("section", "server").Msg("Unable to init the issuance engine")
	}

	crons.Start(cfg.Crons, repo, engine, token)

	return &server{
		config:  cfg,
		actions: actions.NewActions(cfg, engine, token, treasuryLedger, feed, repo),
		kafka:   kafkaPublisher,
	}
}

// Listen starts the http server and blocks until a termination signal
func (srv *server) Listen() {
	go srv.ListenToRequests()
	srv.stopOnSignal()
}

func (srv *server) stopOnSignal() {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc

	log.Info().Str("section", "server").Str("app_event", "terminate").Str("signal", sig.String()).
		Msg("Shutting down services")
	srv.closeApp(5 * time.Second)
}

func (srv *server) closeApp(timeout time.Duration) {
	timeoutFunc := time.AfterFunc(timeout, func() {
		log.Printf("timeout %d ms has been elapsed, force exit", timeout.Milliseconds())
		os.Exit(0)
	})
	defer timeoutFunc.Stop()

	if srv.HTTP != nil {
		if err := srv.HTTP.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Str("section", "server").Str("action", "terminate").
				Msg("Unable to shutdown HTTP server")
		}
	}

	crons.Close()
	if srv.kafka != nil {
		if err := srv.kafka.Close(); err != nil {
			log.Error().Err(err).Str("section", "server").Str("action", "terminate").
				Msg("Unable to close the kafka publisher")
		}
	}

	log.Info().Str("section", "server").Str("app_event", "terminate").Str("state", "complete").
		Msg("All workers terminated")
}

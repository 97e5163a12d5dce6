package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"example.com/storefront/internal/config"
	domcheckout "example.com/storefront/internal/domain/checkout"
	domuser "example.com/storefront/internal/domain/user"
	"example.com/storefront/internal/infra/backend"
	"example.com/storefront/internal/infra/cache"
	"example.com/storefront/internal/infra/geography"
	"example.com/storefront/internal/infra/messaging/kafka"
	"example.com/storefront/internal/infra/persistence/migrations"
	"example.com/storefront/internal/infra/persistence/mysql"
	"example.com/storefront/internal/infra/persistence/postgres"
	"example.com/storefront/internal/infra/security"
	httpapi "example.com/storefront/internal/interface/http"
	addressuc "example.com/storefront/internal/usecase/address"
	cartuc "example.com/storefront/internal/usecase/cart"
	checkoutuc "example.com/storefront/internal/usecase/checkout"
	orderuc "example.com/storefront/internal/usecase/order"
	voucheruc "example.com/storefront/internal/usecase/voucher"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", ".env", "path to an optional .env or yaml config file")
	devToken := flag.String("dev-token", "", "print a session token for this user id and exit (local testing only)")
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront").Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}
	sessions := security.NewJWTService(cfg.JWTSecret, 24*time.Hour)

	if *devToken != "" {
		token, err := sessions.GenerateToken(domuser.Session{UserID: *devToken})
		if err != nil {
			log.Fatal().Err(err).Msg("sign dev token")
		}
		fmt.Println(token)
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	readiness := map[string]httpapi.ReadinessCheck{
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}

	journal, closeJournal, err := openJournal(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.JournalDriver).Msg("open checkout journal")
	}
	defer closeJournal()
	if p, ok := journal.(interface{ Ping(context.Context) error }); ok {
		readiness["journal"] = p.Ping
	}

	var publisher domcheckout.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		defer kp.Close()
		publisher = kp
	}

	shop := backend.NewClient(backend.Options{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
	}, log)
	carts := backend.NewCartRepository(shop)
	orders := backend.NewOrderRepository(shop)
	addresses := backend.NewAddressRepository(shop)
	payments := backend.NewPaymentGateway(shop)

	geo := geography.NewCachedSource(
		geography.NewGHNClient(cfg.GHNURL, cfg.GHNToken, cfg.BackendTimeout),
		rdb, cfg.GeoCacheTTL, log,
	)

	voucherSvc := voucheruc.NewService(backend.NewVoucherCalculator(shop), cache.NewVoucherStore(rdb), cfg.CheckoutStateTTL, log)
	dispatcher := checkoutuc.NewDispatcher(checkoutuc.DispatcherDeps{
		Providers: []checkoutuc.Provider{
			checkoutuc.NewCODProvider(),
			checkoutuc.NewMomoProvider(payments, checkoutuc.BoundBasis(cfg.MomoBoundBasis)),
			checkoutuc.NewZaloPayProvider(payments),
		},
		Orders:    orders,
		Cart:      carts,
		Journal:   journal,
		Publisher: publisher,
		Logger:    log,
	})

	api := httpapi.NewAPI(httpapi.Dependencies{
		CartService:     cartuc.NewService(carts),
		VoucherService:  voucherSvc,
		CheckoutService: checkoutuc.NewService(carts, addresses, voucherSvc, dispatcher, log),
		OrderService:    orderuc.NewService(orders, log),
		AddressService:  addressuc.NewService(addresses, log),
		Resolver:        addressuc.NewResolver(geo, log),
		Sessions:        sessions,
		Readiness:       readiness,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      otelhttp.NewHandler(api.Router(), "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("storefront listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// openJournal connects the checkout attempt journal and applies its
// migrations. JOURNAL_DRIVER=none returns a nil journal.
func openJournal(cfg *config.Config, log zerolog.Logger) (domcheckout.Journal, func(), error) {
	switch cfg.JournalDriver {
	case config.JournalMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.UpMySQL(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info().Msg("checkout journal on mysql")
		return mysql.NewAttemptJournal(db), func() { db.Close() }, nil

	case config.JournalPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pool, err := pgxpool.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		if err := migrations.UpPostgres(db); err != nil {
			db.Close()
			pool.Close()
			return nil, nil, err
		}
		db.Close()
		log.Info().Msg("checkout journal on postgres")
		return postgres.NewAttemptJournal(pool), pool.Close, nil

	default:
		return nil, func() {}, nil
	}
}

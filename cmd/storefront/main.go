package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/mail"
	"github.com/Skotchmaster/storefront/internal/metrics"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/seed"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/storage"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/logging"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	decimal.MarshalJSONWithoutQuotes = true

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "profile", cfg.Profile)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	r := &repo.GormRepo{DB: db}
	bootCtx := logging.IntoContext(context.Background(), logger)
	if err := r.Migrate(bootCtx); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if cfg.Profile == "dev" {
		if _, err := seed.Run(bootCtx, db); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	var publisher events.Publisher = events.Nop{}
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		publisher = producer
	} else {
		logger.Warn("kafka disabled, events are dropped")
	}

	var index search.Index = search.Nop{}
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index = search.NewESIndex(es, cfg.ESIndex)
	} else {
		logger.Warn("elasticsearch disabled, product search falls back to the database")
	}

	var sender mail.Sender = &mail.LogSender{Logger: logger}
	if !cfg.UsesMockMail() {
		sender = &mail.SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailSender,
		}
	}

	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		up, err := storage.NewS3Uploader(bootCtx, storage.Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			KeyID:    cfg.S3KeyID,
			Secret:   cfg.S3Secret,
		})
		if err != nil {
			log.Fatalf("s3: %v", err)
		}
		uploader = up
	}

	authSvc := &service.AuthService{
		Repo:          r,
		Mail:          sender,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(metrics.Middleware())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		ExposeHeaders: []string{echo.HeaderLocation, echo.HeaderAuthorization},
	}))

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.Profile == "prod"
	csrfCfg.SessionCookie = middleware.AccessCookie
	csrfCfg.SkipPrefixes = []string{"/login", "/auth/"}

	httpserver.Register(e, &httpserver.Deps{
		CategoryHandler: &httpserver.CategoryHTTP{Svc: &service.CategoryService{Repo: r, Events: publisher}},
		ProductHandler:  &httpserver.ProductHTTP{Svc: &service.ProductService{Repo: r, Index: index, Events: publisher}},
		LocationHandler: &httpserver.LocationHTTP{Svc: &service.LocationService{Repo: r}},
		ClientHandler: &httpserver.ClientHTTP{Svc: &service.ClientService{
			Repo:      r,
			Events:    publisher,
			Uploader:  uploader,
			ImgSize:   cfg.ImgProfileSize,
			ImgPrefix: cfg.ImgPrefix,
		}},
		OrderHandler: &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Events: publisher, Mail: sender}},
		AuthHandler:  &httpserver.AuthHTTP{Svc: authSvc},
		JWTSecret:    cfg.JWTAccessSecret,
		Refresher:    authSvc,
		Ready:        r.Ping,
		CSRF:         &csrfCfg,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("storefront stopped")
}

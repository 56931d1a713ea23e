// Package techelevate собирает основное приложение платформы: подключение
// к хранилищу, брокеру уведомлений, сборку сервисов и HTTP-сервер.
package techelevate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/tech-elevate/internal/config"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/jwt"
	"github.com/magabrotheeeer/tech-elevate/internal/paymentprovider"
	"github.com/magabrotheeeer/tech-elevate/internal/rabbitmq"
	couponservice "github.com/magabrotheeeer/tech-elevate/internal/services/coupon"
	productservice "github.com/magabrotheeeer/tech-elevate/internal/services/product"
	reviewservice "github.com/magabrotheeeer/tech-elevate/internal/services/review"
	userservice "github.com/magabrotheeeer/tech-elevate/internal/services/user"
	"github.com/magabrotheeeer/tech-elevate/internal/storage/mongodb"
	"github.com/magabrotheeeer/tech-elevate/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние подключения приложения.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *mongodb.Client
	amqpConn *amqp.Connection
}

// New собирает приложение: хранилище, брокер, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := mongodb.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	if err = db.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	repo := repository.New(db)

	amqpConn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.ConnectDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetNotificationQueues())
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch)

	productService := productservice.New(repo, repo, publisher, logger)
	userService := userservice.New(repo, logger)
	couponService := couponservice.New(repo, logger)
	reviewService := reviewservice.New(repo, logger)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.PaymentProvider.SecretKey, cfg.PaymentProvider.APIURL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg,
		productService, userService, couponService, reviewService,
		jwtMaker, providerClient)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.db.Close(timeoutCtx); cerr != nil {
			a.logger.Error("failed to close mongo client", slog.String("error", cerr.Error()))
		}
		if cerr := a.amqpConn.Close(); cerr != nil {
			a.logger.Error("failed to close amqp connection", slog.String("error", cerr.Error()))
		}
		return err
	}
}

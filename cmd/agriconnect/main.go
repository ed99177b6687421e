package main

import (
	"context"
	"log/slog"
	"os"

	"agriconnect/config"
	"agriconnect/internal/delivery"
	"agriconnect/internal/delivery/http"
	"agriconnect/internal/delivery/http/middleware"
	"agriconnect/internal/delivery/http/router/handler"
	deliverymiddleware "agriconnect/internal/delivery/middleware"
	"agriconnect/internal/infra/auth"
	"agriconnect/internal/infra/cache"
	"agriconnect/internal/infra/catalog"
	logs "agriconnect/internal/infra/log"
	"agriconnect/internal/infra/payment"
	"agriconnect/internal/infra/persistence/database"
	"agriconnect/internal/infra/pubsub"
	"agriconnect/internal/infra/qrcode"
	"agriconnect/internal/infra/session"
	"agriconnect/internal/infra/storage"
	"agriconnect/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		database.New,
		cache.NewRedisClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			database.NewUserRepository,
			database.NewOrderRepository,
			database.NewFarmerNotificationRepository,
			database.NewRatingRepository,
			database.NewSoilTestRepository,
			database.NewFeedbackRepository,
			database.NewCommunityRepository,
			database.NewTransactionManager,
			catalog.NewStore,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			cache.NewAdminInbox,
			cache.NewIdempotencyGuard,
			payment.NewGateway,
			pubsub.NewEventPublisher,
			storage.NewImageStore,
			qrcode.NewQRCodeService,
			session.NewStore,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewCatalogService,
			impl.NewOrderService,
			impl.NewAdminService,
			impl.NewFarmerService,
			impl.NewRatingService,
			impl.NewSoilTestService,
			impl.NewFeedbackService,
			impl.NewCommunityService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
			deliverymiddleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewCatalogHandler,
			handler.NewOrderHandler,
			handler.NewAdminHandler,
			handler.NewRatingHandler,
			handler.NewFarmerHandler,
			handler.NewSoilTestHandler,
			handler.NewFeedbackHandler,
			handler.NewCommunityHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

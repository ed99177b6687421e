package impl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"agriconnect/config"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/infra/auth"
	"agriconnect/internal/infra/cache"
	"agriconnect/internal/infra/catalog"
	"agriconnect/internal/infra/persistence/database"
	"agriconnect/internal/infra/qrcode"
	"agriconnect/internal/infra/storage"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testCatalog = `{"products": [
  {"id": "FP00000001", "name": "Tomato", "category": "Vegetables", "price": 40, "stock": 10, "unit": "kg", "seller_username": "ravi", "seller_type": "farmer"},
  {"id": "FP00000002", "name": "Onion", "category": "Vegetables", "price": 30, "stock": 0, "seller_username": "ravi", "seller_type": "farmer"},
  {"id": 7, "name": "Rice", "category": "Grains", "price": 60, "stock": 5, "seller_type": "store", "origin": "Punjab"}
]}`

const testFarmCatalog = `[{"id": "F1", "name": "Mango", "category": "Fruits", "price": 120, "stock": 3}]`

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(dir string) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: 4,
			TokenTTL:   time.Hour,
		},
		Admins: []config.AdminAccount{
			{Username: "admin", Password: "admin123", Role: "admin"},
			{Username: "field", Password: "field123", Role: "field_admin"},
		},
		Catalog: &config.CatalogConfig{
			ProductsPath:     filepath.Join(dir, "products.json"),
			FarmProductsPath: filepath.Join(dir, "farm_products.json"),
			DealersPath:      filepath.Join(dir, "dealers.json"),
		},
	}
	cfg.Env.Edition = config.EditionAgriConnect
	cfg.SecretKey.Access = "test-secret"

	return cfg
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	return db
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return nil
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateOrder(ctx context.Context, amount int64) (*service.GatewayOrder, error) {
	args := m.Called(ctx, amount)
	order, _ := args.Get(0).(*service.GatewayOrder)

	return order, args.Error(1)
}

func (m *mockGateway) VerifyPayment(ctx context.Context, payload service.PaymentVerification) (bool, error) {
	args := m.Called(ctx, payload)

	return args.Bool(0), args.Error(1)
}

// testEnv wires every service against an in-memory database and a temp catalog.
type testEnv struct {
	cfg       *config.Config
	dir       string
	txManager repository.TransactionManager

	userRepo         repository.UserRepository
	orderRepo        repository.OrderRepository
	notificationRepo repository.FarmerNotificationRepository
	ratingRepo       repository.RatingRepository
	soilTestRepo     repository.SoilTestRepository
	communityRepo    repository.CommunityRepository
	feedbackRepo     repository.FeedbackRepository

	catalog     repository.ProductCatalog
	inbox       service.AdminInbox
	idempotency service.IdempotencyGuard
	publisher   *mockPublisher
	gateway     *mockGateway
	bucket      *blob.Bucket
	imageStore  service.ImageStore
	hasher      service.PasswordHasher
	tokens      service.TokenService
	logger      *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte(testCatalog), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "farm_products.json"), []byte(testFarmCatalog), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dealers.json"), []byte(`[{"name":"Agro Depot"}]`), 0o600))

	cfg := newTestConfig(dir)
	db := newTestDB(t)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	return &testEnv{
		cfg:              cfg,
		dir:              dir,
		txManager:        database.NewTransactionManager(db),
		userRepo:         database.NewUserRepository(db),
		orderRepo:        database.NewOrderRepository(db),
		notificationRepo: database.NewFarmerNotificationRepository(db),
		ratingRepo:       database.NewRatingRepository(db),
		soilTestRepo:     database.NewSoilTestRepository(db),
		communityRepo:    database.NewCommunityRepository(db),
		feedbackRepo:     database.NewFeedbackRepository(db),
		catalog:          catalog.NewStore(cfg),
		inbox:            cache.NewMemoryAdminInbox(),
		idempotency:      cache.NewMemoryIdempotencyGuard(time.Hour),
		publisher:        &mockPublisher{},
		gateway:          &mockGateway{},
		bucket:           bucket,
		imageStore:       storage.NewBlobImageStore(bucket, "/static/uploads", 0, 1<<20),
		hasher:           auth.NewBcryptHasher(cfg),
		tokens:           tokens,
		logger:           newDiscardLogger(),
	}
}

func (env *testEnv) accountService() *accountService {
	return NewAccountService(AccountServiceParams{
		TxManager:    env.txManager,
		UserRepo:     env.userRepo,
		OrderRepo:    env.orderRepo,
		SoilTestRepo: env.soilTestRepo,
		Hasher:       env.hasher,
		TokenService: env.tokens,
		AdminInbox:   env.inbox,
		Config:       env.cfg,
		Logger:       env.logger,
	}).(*accountService)
}

func (env *testEnv) orderService() *orderService {
	return NewOrderService(OrderServiceParams{
		TxManager:   env.txManager,
		OrderRepo:   env.orderRepo,
		Catalog:     env.catalog,
		Gateway:     env.gateway,
		Publisher:   env.publisher,
		Idempotency: env.idempotency,
		QRCode:      qrcode.NewQRCodeService(env.cfg),
		Config:      env.cfg,
		Logger:      env.logger,
	}).(*orderService)
}

func (env *testEnv) adminService() *adminService {
	return NewAdminService(AdminServiceParams{
		TxManager:    env.txManager,
		OrderRepo:    env.orderRepo,
		SoilTestRepo: env.soilTestRepo,
		UserRepo:     env.userRepo,
		Catalog:      env.catalog,
		AdminInbox:   env.inbox,
		Publisher:    env.publisher,
		Logger:       env.logger,
	}).(*adminService)
}

func (env *testEnv) catalogService() *catalogService {
	return NewCatalogService(CatalogServiceParams{
		Catalog:    env.catalog,
		UserRepo:   env.userRepo,
		OrderRepo:  env.orderRepo,
		RatingRepo: env.ratingRepo,
		Logger:     env.logger,
	}).(*catalogService)
}

func (env *testEnv) farmerService() *farmerService {
	return NewFarmerService(FarmerServiceParams{
		Catalog:          env.catalog,
		NotificationRepo: env.notificationRepo,
		Logger:           env.logger,
	}).(*farmerService)
}

func (env *testEnv) ratingService() *ratingService {
	return NewRatingService(RatingServiceParams{
		RatingRepo: env.ratingRepo,
		OrderRepo:  env.orderRepo,
		UserRepo:   env.userRepo,
		Catalog:    env.catalog,
		Logger:     env.logger,
	}).(*ratingService)
}

func (env *testEnv) soilTestService() *soilTestService {
	return NewSoilTestService(SoilTestServiceParams{
		SoilTestRepo: env.soilTestRepo,
		UserRepo:     env.userRepo,
		AdminInbox:   env.inbox,
		Logger:       env.logger,
	}).(*soilTestService)
}

func (env *testEnv) communityService() *communityService {
	return NewCommunityService(CommunityServiceParams{
		TxManager:     env.txManager,
		CommunityRepo: env.communityRepo,
		UserRepo:      env.userRepo,
		ImageStore:    env.imageStore,
		Logger:        env.logger,
	}).(*communityService)
}

func (env *testEnv) feedbackService() *feedbackService {
	return NewFeedbackService(FeedbackServiceParams{
		FeedbackRepo: env.feedbackRepo,
		Logger:       env.logger,
	}).(*feedbackService)
}

// seedUser stores an account with complete delivery details.
func (env *testEnv) seedUser(t *testing.T, username string, loginType entity.LoginType) *entity.UserDetails {
	t.Helper()

	ctx := context.Background()
	hash, err := env.hasher.Hash("secret")
	require.NoError(t, err)
	require.NoError(t, env.userRepo.Create(ctx, &entity.User{Username: username, PasswordHash: hash}))

	details := &entity.UserDetails{
		Username:  username,
		Name:      "Name of " + username,
		Address:   "12 Market Road",
		Pincode:   "560001",
		Phone:     "9876543210",
		LoginType: loginType,
	}
	require.NoError(t, env.userRepo.CreateDetails(ctx, details))

	return details
}

// seedOrder stores an order directly, bypassing the order service.
func (env *testEnv) seedOrder(t *testing.T, username string, status entity.OrderStatus, items ...*entity.OrderItem) *entity.Order {
	t.Helper()

	order := &entity.Order{
		OrderNumber:   "ORD" + time.Now().Format("150405.000000000"),
		Username:      username,
		Name:          "Name of " + username,
		Address:       "12 Market Road",
		Pincode:       "560001",
		Phone:         "9876543210",
		Status:        status,
		PaymentMethod: entity.PaymentMethodCOD,
		OTP:           "123456",
		CreatedAt:     time.Now().UTC(),
		Items:         items,
	}
	for _, item := range items {
		order.TotalAmount += item.Price * float64(item.Quantity)
	}
	require.NoError(t, env.orderRepo.Create(context.Background(), order))

	return order
}

func (env *testEnv) expectPublish(eventType string) {
	env.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e *service.OrderEvent) bool {
		return e.Type == eventType
	})).Return(nil)
}

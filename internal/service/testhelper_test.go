package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServices struct {
	db        *gorm.DB
	users     *repository.GormUserRepository
	products  *repository.GormProductRepository
	carts     *repository.GormCartRepository
	orders    *repository.GormOrderRepository
	guard     *AccountGuard
	cart      *CartService
	order     *OrderService
	status    *OrderStatusMachine
	reconcile *ReconcileService
	auth      *UserAuthService
}

func setupServiceTest(t *testing.T) *testServices {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	previous := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = previous
		_ = sqlDB.Close()
	})

	cfg := &config.Config{
		UserJWT:   config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Reconcile: config.ReconcileConfig{Async: true, DedupeTTLSeconds: 60, MaxItems: 50},
	}
	queueClient, _ := queue.NewClient(&config.QueueConfig{Enabled: false})

	s := &testServices{
		db:       db,
		users:    repository.NewUserRepository(db),
		products: repository.NewProductRepository(db),
		carts:    repository.NewCartRepository(db),
		orders:   repository.NewOrderRepository(db),
	}
	s.guard = NewAccountGuard(s.users)
	s.cart = NewCartService(s.guard, s.carts, s.products, 100)
	s.status = NewOrderStatusMachine(s.guard, s.orders, nil)
	s.order = NewOrderService(s.guard, s.cart, s.carts, s.orders, s.status)
	s.reconcile = NewReconcileService(cfg.Reconcile, s.guard, s.cart, queueClient)
	s.auth = NewUserAuthService(cfg, s.users)
	return s
}

func (s *testServices) createUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{Email: email, PasswordHash: string(hash), Role: role}
	if err := s.users.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (s *testServices) createBuyer(t *testing.T, email string) (Actor, *models.User) {
	t.Helper()
	user := s.createUser(t, email, constants.RoleBuyer)
	return Actor{UserID: user.ID, Role: user.Role}, user
}

func (s *testServices) createAdmin(t *testing.T, email string) Actor {
	t.Helper()
	user := s.createUser(t, email, constants.RoleAdmin)
	return Actor{UserID: user.ID, Role: user.Role}
}

func (s *testServices) createProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, PriceAmount: models.MustMoney(price), IsActive: true}
	if err := s.products.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

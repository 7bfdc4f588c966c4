package main

import (
	"fmt"
	"strings"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

type seedUser struct {
	Email    string
	Username string
	Role     string
	Blocked  bool
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repository.NewUserRepository(models.DB)
	productRepo := repository.NewProductRepository(models.DB)
	authService := service.NewUserAuthService(cfg, userRepo)

	// 商品
	products := []models.Product{
		{Name: "Wireless Mouse", PriceAmount: models.MustMoney("10.00"), IsActive: true},
		{Name: "USB-C Cable", PriceAmount: models.MustMoney("5.00"), IsActive: true},
		{Name: "Mechanical Keyboard", PriceAmount: models.MustMoney("89.90"), IsActive: true},
		{Name: "Desk Lamp", PriceAmount: models.MustMoney("24.50"), IsActive: true},
		{Name: "Discontinued Stand", PriceAmount: models.MustMoney("15.00"), IsActive: false},
	}
	var productCount int64
	if err := models.DB.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		stdLog.Fatalf("Failed to count products: %v", err)
	}
	if productCount == 0 {
		for i := range products {
			if err := productRepo.Create(&products[i]); err != nil {
				stdLog.Fatalf("Failed to create product %s: %v", products[i].Name, err)
			}
			fmt.Printf("product #%d %-22s %s active=%v\n", products[i].ID, products[i].Name, products[i].PriceAmount.String(), products[i].IsActive)
		}
	} else {
		fmt.Printf("products already seeded (%d rows), skipped\n", productCount)
	}

	// 用户
	users := []seedUser{
		{Email: "buyer@example.com", Username: "buyer", Role: constants.RoleBuyer},
		{Email: "blocked@example.com", Username: "blocked", Role: constants.RoleBuyer, Blocked: true},
		{Email: "admin@example.com", Username: "admin", Role: constants.RoleAdmin},
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println()
	fmt.Println("bearer tokens (password: " + seedPassword + ")")
	fmt.Println(strings.Repeat("-", 60))
	for _, item := range users {
		user, err := userRepo.GetByEmail(item.Email)
		if err != nil {
			stdLog.Fatalf("Failed to load user %s: %v", item.Email, err)
		}
		if user == nil {
			user = &models.User{
				Email:        item.Email,
				Username:     item.Username,
				PasswordHash: string(hash),
				Role:         item.Role,
			}
			if err := userRepo.Create(user); err != nil {
				stdLog.Fatalf("Failed to create user %s: %v", item.Email, err)
			}
		}
		if user.IsBlocked != item.Blocked {
			if _, err := userRepo.SetBlocked(user.ID, item.Blocked); err != nil {
				stdLog.Fatalf("Failed to update block flag for %s: %v", item.Email, err)
			}
		}
		token, expiresAt, err := authService.GenerateUserJWT(user)
		if err != nil {
			stdLog.Fatalf("Failed to issue token for %s: %v", item.Email, err)
		}
		fmt.Printf("%-7s %-22s blocked=%-5v expires=%s\n%s\n\n", item.Role, item.Email, item.Blocked, expiresAt.Format("2006-01-02 15:04"), token)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-user-order-service/config"
	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
	"github.com/oksasatya/go-user-order-service/internal/domain/repository"
	mongoinfra "github.com/oksasatya/go-user-order-service/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-user-order-service/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	client, err := mongoinfra.NewClient(ctx, cfg.MongoURI, cfg.MongoMaxPoolSize, cfg.MongoConnectTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongoinfra.RunMigrations(client, cfg.MongoDatabase, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoUsersCollection)
	repo := mongoinfra.NewUserRepository(coll, helpers.NewPasswordHasher(cfg.BcryptCost))

	password := "password123"
	demo := entity.User{
		UserID:   1,
		Username: "demoUser",
		Password: password,
		FullName: entity.FullName{FirstName: "Demo", LastName: "User"},
		Age:      30,
		Email:    "demo@example.com",
		IsActive: true,
		Hobbies:  []string{"reading", "cycling"},
		Address:  entity.Address{Street: "1 Main Street", City: "Springfield", Country: "USA"},
	}

	p, err := repo.Create(ctx, demo)
	if errors.Is(err, repository.ErrDuplicateKey) {
		fmt.Printf("demo user already present: userId=%d username=%s\n", demo.UserID, demo.Username)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: userId=%d username=%s password=%s\n", p.UserID, p.Username, password)

	for _, o := range []entity.Order{
		{ProductName: "Notebook", Price: 4.5, Quantity: 2},
		{ProductName: "Fountain pen", Price: 21, Quantity: 1},
	} {
		if _, err := repo.AppendOrder(ctx, p.UserID, o); err != nil {
			log.Fatalf("failed to seed order: %v", err)
		}
	}
	total, err := repo.SumOrderTotal(ctx, p.UserID)
	if err != nil {
		log.Fatalf("failed to total orders: %v", err)
	}
	fmt.Printf("seeded 2 orders, total price %.2f\n", total)
}

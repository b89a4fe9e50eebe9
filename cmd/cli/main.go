package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/cardealer/dealership-gateway/internal/config"
	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/internal/repository"
	"github.com/cardealer/dealership-gateway/internal/services"
	"github.com/cardealer/dealership-gateway/pkg/logger"
	"github.com/cardealer/dealership-gateway/pkg/pg"
)

// main runs goose migrations and, with --seed, loads the reference data
// the original dealership started with.
//
//	main.go --env=.env --dir=./migrations --seed
func main() {
	err := config.Load(getEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
	}

	pgConf := storeConfig()
	err = pg.Migrate(pgConf, getMigrationPath())
	if err != nil {
		logger.Error("migration: error running migrations", "error", err)
		return
	}

	if hasArg("--seed") {
		if err := seed(pgConf); err != nil {
			logger.Error("seed: error loading reference data", "error", err)
			return
		}
		logger.Info("seed: reference data loaded")
	}
}

func seed(conf pg.Config) error {
	db, err := pg.CreateSingle(conf, false)
	if err != nil {
		return err
	}

	ctx := context.Background()
	manufacturers := repository.NewManufacturerRepository(db)
	vehicles := repository.NewVehicleRepository(db)
	customers := repository.NewCustomerRepository(db)
	inventory := repository.NewInventoryRepository(db)
	financials := repository.NewFinancialRepository(db)
	operators := repository.NewOperatorRepository(db)

	return db.WithinTransaction(ctx, func(ctx context.Context) error {
		type vehicleSeed struct {
			brand, model, manufacturer string
			onHand                     uint
		}
		for _, vs := range []vehicleSeed{
			{"BMW", "X5", "BMW", 5},
			{"Audi", "A8", "Audi", 2},
			{"Mercedes", "C-Class", "Mercedes", 4},
		} {
			m, err := manufacturers.GetOrCreate(ctx, vs.manufacturer)
			if err != nil {
				return err
			}
			v, created, err := vehicles.GetOrCreate(ctx, vs.brand, vs.model, m.ID)
			if err != nil {
				return err
			}
			if created {
				if _, err := inventory.Create(ctx, v.ID, vs.onHand); err != nil {
					return err
				}
			}
		}

		for _, name := range []string{"Ink Factory", "Molotov"} {
			if _, err := customers.GetOrCreate(ctx, name); err != nil {
				return err
			}
		}

		for _, op := range []model.Operator{
			{Username: "202235010623", PasswordHash: services.HashPassword("202235010623"), Role: model.RoleAdmin},
			{Username: "202235010611", PasswordHash: services.HashPassword("202235010611"), Role: model.RoleAdmin},
			{Username: "guest", PasswordHash: services.HashPassword("guest"), Role: model.RoleGuest},
		} {
			if _, err := operators.Create(ctx, &op); err != nil {
				return err
			}
		}

		for _, rec := range []model.FinancialRecord{
			{VehicleID: 2, TransactionType: model.OperationBuy, Amount: 2, CustomerID: 2, Date: time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC)},
			{VehicleID: 3, TransactionType: model.OperationSell, Amount: 1, CustomerID: 1, Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		} {
			if _, err := financials.Create(ctx, &rec); err != nil {
				return err
			}
		}

		return nil
	})
}

func storeConfig() pg.Config {
	if config.Get().DBDriver == pg.DriverSQLite {
		return pg.Config{
			Driver: pg.DriverSQLite,
			Path:   config.Get().SQLitePath,
		}
	}
	return pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
}

func hasArg(name string) bool {
	for _, v := range os.Args {
		if v == name {
			return true
		}
	}
	return false
}

func getEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	if _, err := os.Open(".env"); err != nil {
		logger.Error("failed to open the passed env file, got error" + err.Error())
		return ""
	}
	return ".env"
}

func getMigrationPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--dir=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed migrations dir, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	if _, err := os.Open("./migrations"); err != nil {
		logger.Error("failed to open the migrations dir, got error" + err.Error())
		return ""
	}
	return "./migrations"
}

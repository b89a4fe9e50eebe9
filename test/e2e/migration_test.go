package e2e

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/internal/repository"
	"github.com/cardealer/dealership-gateway/internal/services"
	"github.com/cardealer/dealership-gateway/pkg/pg"
	"github.com/cardealer/dealership-gateway/test/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The other tests build their schema with AutoMigrate, which follows the
// entities by construction. This one provisions the store the way the server
// and the seed CLI do, through the goose migrations, so any drift between the
// shipped SQL and the entity column mappings fails here.
func TestE2E_MigratedSchemaSupportsTrades(t *testing.T) {
	cfg := pg.Config{
		Driver: pg.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "dealership.db"),
	}
	require.NoError(t, pg.Migrate(cfg, "../../migrations"))

	db, err := pg.CreateSingle(cfg, false)
	require.NoError(t, err)

	ctx := context.Background()

	manufacturerRepo := repository.NewManufacturerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	financialRepo := repository.NewFinancialRepository(db)
	tradeService := services.NewTradeService(db, manufacturerRepo, vehicleRepo, customerRepo, inventoryRepo, financialRepo)

	t.Run("customer insert matches the migrated columns", func(t *testing.T) {
		customer, err := customerRepo.GetOrCreate(ctx, "Alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice", customer.Name)
	})

	t.Run("buy then sell against the migrated store", func(t *testing.T) {
		rec, err := tradeService.RecordTransaction(ctx, fixtures.NewBuyRequest("Toyota", "Corolla", "Toyota", 3, "Alice"))
		require.NoError(t, err)
		assert.Equal(t, model.OperationBuy, rec.TransactionType)

		rec, err = tradeService.RecordTransaction(ctx, fixtures.NewSellRequest("Toyota", "Corolla", "Toyota", 1, "Alice"))
		require.NoError(t, err)
		assert.Equal(t, model.OperationSell, rec.TransactionType)

		m, err := manufacturerRepo.GetByName(ctx, "Toyota")
		require.NoError(t, err)
		v, err := vehicleRepo.GetByTriple(ctx, "Toyota", "Corolla", m.ID)
		require.NoError(t, err)
		qty, err := inventoryRepo.GetQuantity(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, uint(2), qty)

		var ledgerCount int64
		db.Read(ctx).Model(&repository.FinancialEntity{}).Count(&ledgerCount)
		assert.Equal(t, int64(2), ledgerCount)
	})
}

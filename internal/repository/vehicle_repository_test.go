package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleRepository_GetOrCreate(t *testing.T) {
	db := setupTestDB(t).DB
	manufacturers := NewManufacturerRepository(db)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	m, err := manufacturers.Create(ctx, mustManufacturer("Toyota"))
	require.NoError(t, err)

	t.Run("creates on first reference", func(t *testing.T) {
		v, created, err := repo.GetOrCreate(ctx, "Toyota", "Corolla", m.ID)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotZero(t, v.ID)
		assert.Equal(t, m.ID, v.ManufacturerID)
	})

	t.Run("reuses the existing triple", func(t *testing.T) {
		first, created, err := repo.GetOrCreate(ctx, "Toyota", "Camry", m.ID)
		require.NoError(t, err)
		assert.True(t, created)

		second, created, err := repo.GetOrCreate(ctx, "Toyota", "Camry", m.ID)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("same brand and model under another manufacturer is a new vehicle", func(t *testing.T) {
		other, err := manufacturers.Create(ctx, mustManufacturer("Toyota GB"))
		require.NoError(t, err)

		v1, _, err := repo.GetOrCreate(ctx, "Toyota", "Yaris", m.ID)
		require.NoError(t, err)
		v2, created, err := repo.GetOrCreate(ctx, "Toyota", "Yaris", other.ID)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, v1.ID, v2.ID)
	})
}

func TestVehicleRepository_Exists(t *testing.T) {
	db := setupTestDB(t).DB
	manufacturers := NewManufacturerRepository(db)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	m, err := manufacturers.Create(ctx, mustManufacturer("BMW"))
	require.NoError(t, err)
	_, _, err = repo.GetOrCreate(ctx, "BMW", "X5", m.ID)
	require.NoError(t, err)

	ok, err := repo.Exists(ctx, "BMW", "X5", m.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "BMW", "X7", m.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// no intervening write, same answer
	again, err := repo.Exists(ctx, "BMW", "X5", m.ID)
	require.NoError(t, err)
	assert.True(t, again)
}

func TestVehicleRepository_DistinctColumns(t *testing.T) {
	db := setupTestDB(t).DB
	manufacturers := NewManufacturerRepository(db)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	m, err := manufacturers.Create(ctx, mustManufacturer("Audi"))
	require.NoError(t, err)

	for _, vm := range []string{"A8", "A4", "A8"} {
		_, _, err := repo.GetOrCreate(ctx, "Audi", vm, m.ID)
		require.NoError(t, err)
	}

	brands, err := repo.DistinctBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Audi"}, brands)

	models, err := repo.DistinctModels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A4", "A8"}, models)
}

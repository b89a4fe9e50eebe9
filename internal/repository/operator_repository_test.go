package repository

import (
	"context"
	"testing"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorRepository_GetByUsername(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewOperatorRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Operator{
		Username:     "202235010623",
		PasswordHash: "deadbeef",
		Role:         model.RoleAdmin,
	})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		op, err := repo.GetByUsername(ctx, "202235010623")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, op.Role)
		assert.Equal(t, "deadbeef", op.PasswordHash)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrOperatorNotFound)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Operator{
			Username:     "202235010623",
			PasswordHash: "cafef00d",
			Role:         model.RoleGuest,
		})
		assert.Error(t, err)
	})
}

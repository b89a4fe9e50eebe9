package repository

import (
	"context"
	"errors"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/pkg/pg"
	"gorm.io/gorm"
)

var ErrOperatorNotFound = errors.New("operator not found")

type OperatorRepository struct {
	*pg.DB
}

func NewOperatorRepository(db *pg.DB) *OperatorRepository {
	return &OperatorRepository{
		db,
	}
}

func (r *OperatorRepository) GetByUsername(ctx context.Context, username string) (*model.Operator, error) {
	var entity OperatorEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("username = ?", username).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}

	return toOperatorModel(&entity), nil
}

func (r *OperatorRepository) Create(ctx context.Context, op *model.Operator) (*model.Operator, error) {
	entity := toOperatorEntity(op)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toOperatorModel(entity), nil
}

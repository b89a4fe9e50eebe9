package repository

import (
	"context"
	"errors"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/pkg/pg"
	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

type VehicleRepository struct {
	*pg.DB
}

func NewVehicleRepository(db *pg.DB) *VehicleRepository {
	return &VehicleRepository{
		db,
	}
}

func (r *VehicleRepository) GetByTriple(ctx context.Context, brand, vmodel string, manufacturerID int64) (*model.Vehicle, error) {
	var entity VehicleEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("brand = ? AND model = ? AND manufacturer_id = ?", brand, vmodel, manufacturerID).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	return toVehicleModel(&entity), nil
}

func (r *VehicleRepository) Exists(ctx context.Context, brand, vmodel string, manufacturerID int64) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&VehicleEntity{}).
		Where("brand = ? AND model = ? AND manufacturer_id = ?", brand, vmodel, manufacturerID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	entity := toVehicleEntity(v)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toVehicleModel(entity), nil
}

// GetOrCreate resolves the vehicle by its identifying triple, inserting it
// when absent. The second return is true when a new row was created, which
// the trade service uses to pair vehicle creation with inventory creation.
func (r *VehicleRepository) GetOrCreate(ctx context.Context, brand, vmodel string, manufacturerID int64) (*model.Vehicle, bool, error) {
	v, err := r.GetByTriple(ctx, brand, vmodel, manufacturerID)
	if err == nil {
		return v, false, nil
	}
	if !errors.Is(err, ErrVehicleNotFound) {
		return nil, false, err
	}

	created, err := r.Create(ctx, &model.Vehicle{
		Brand:          brand,
		Model:          vmodel,
		ManufacturerID: manufacturerID,
	})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (r *VehicleRepository) DistinctBrands(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "brand")
}

func (r *VehicleRepository) DistinctModels(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "model")
}

func (r *VehicleRepository) distinctColumn(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := r.Read(ctx).WithContext(ctx).
		Model(&VehicleEntity{}).
		Distinct(column).
		Order(column).
		Pluck(column, &values).
		Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

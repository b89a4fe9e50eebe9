package repository

import (
	"context"
	"errors"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/pkg/pg"
	"gorm.io/gorm"
)

var ErrManufacturerNotFound = errors.New("manufacturer not found")

type ManufacturerRepository struct {
	*pg.DB
}

func NewManufacturerRepository(db *pg.DB) *ManufacturerRepository {
	return &ManufacturerRepository{
		db,
	}
}

func (r *ManufacturerRepository) GetByName(ctx context.Context, name string) (*model.Manufacturer, error) {
	var entity ManufacturerEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("name = ?", name).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManufacturerNotFound
		}
		return nil, err
	}

	return toManufacturerModel(&entity), nil
}

// Exists reports whether a manufacturer with the given name is on record.
// Read-only; every call re-reads current state.
func (r *ManufacturerRepository) Exists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&ManufacturerEntity{}).
		Where("name = ?", name).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ManufacturerRepository) Create(ctx context.Context, m *model.Manufacturer) (*model.Manufacturer, error) {
	entity := toManufacturerEntity(m)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toManufacturerModel(entity), nil
}

// GetOrCreate resolves the manufacturer by name, inserting it when absent,
// and returns the row with its typed id either way.
func (r *ManufacturerRepository) GetOrCreate(ctx context.Context, name string) (*model.Manufacturer, error) {
	m, err := r.GetByName(ctx, name)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, ErrManufacturerNotFound) {
		return nil, err
	}
	return r.Create(ctx, &model.Manufacturer{Name: name})
}

func (r *ManufacturerRepository) DistinctNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.Read(ctx).WithContext(ctx).
		Model(&ManufacturerEntity{}).
		Distinct("name").
		Order("name").
		Pluck("name", &names).
		Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

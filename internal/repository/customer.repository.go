package repository

import (
	"context"
	"errors"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/pkg/pg"
	"gorm.io/gorm"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

func (r *CustomerRepository) GetByName(ctx context.Context, name string) (*model.Customer, error) {
	var entity CustomerEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("name = ?", name).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return toCustomerModel(&entity), nil
}

func (r *CustomerRepository) Exists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("name = ?", name).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCustomerModel(entity), nil
}

// GetOrCreate resolves a customer by name, creating the row on first
// reference. Both buy and sell paths go through here.
func (r *CustomerRepository) GetOrCreate(ctx context.Context, name string) (*model.Customer, error) {
	c, err := r.GetByName(ctx, name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrCustomerNotFound) {
		return nil, err
	}
	return r.Create(ctx, &model.Customer{Name: name})
}

func (r *CustomerRepository) DistinctNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.Read(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Distinct("name").
		Order("name").
		Pluck("name", &names).
		Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

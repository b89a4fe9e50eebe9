package repository

import (
	"context"
	"errors"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrInventoryNotFound = errors.New("inventory entry not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

type InventoryRepository struct {
	*pg.DB
}

func NewInventoryRepository(db *pg.DB) *InventoryRepository {
	return &InventoryRepository{
		db,
	}
}

func (r *InventoryRepository) Create(ctx context.Context, vehicleID int64, quantity uint) (*model.InventoryEntry, error) {
	entity := &InventoryEntity{
		VehicleID: vehicleID,
		Quantity:  quantity,
	}

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toInventoryModel(entity), nil
}

func (r *InventoryRepository) GetByVehicle(ctx context.Context, vehicleID int64) (*model.InventoryEntry, error) {
	var entity InventoryEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}

	return toInventoryModel(&entity), nil
}

func (r *InventoryRepository) GetQuantity(ctx context.Context, vehicleID int64) (uint, error) {
	entry, err := r.GetByVehicle(ctx, vehicleID)
	if err != nil {
		return 0, err
	}
	return entry.Quantity, nil
}

// Add increments the on-hand quantity of an existing inventory row.
func (r *InventoryRepository) Add(ctx context.Context, vehicleID int64, amount uint) error {
	if amount == 0 {
		return ErrNonPositiveAmount
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&InventoryEntity{}).
		Where("vehicle_id = ?", vehicleID).
		Update("quantity", gorm.Expr("quantity + ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInventoryNotFound
	}
	return nil
}

// Deduct decrements the on-hand quantity only if enough stock is on hand.
// The sufficiency check and the decrement are a single conditional UPDATE,
// so two concurrent sells cannot both pass the check and drive the
// quantity negative.
func (r *InventoryRepository) Deduct(ctx context.Context, vehicleID int64, amount uint) error {
	if amount == 0 {
		return ErrNonPositiveAmount
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&InventoryEntity{}).
		Where("vehicle_id = ? AND quantity >= ?", vehicleID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.checkDeductionFailureReason(ctx, vehicleID)
	}
	return nil
}

// checkDeductionFailureReason tells a missing row apart from a row with
// too little stock after a conditional deduct matched nothing.
func (r *InventoryRepository) checkDeductionFailureReason(ctx context.Context, vehicleID int64) error {
	var entity InventoryEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInventoryNotFound
		}
		return err
	}

	return ErrInsufficientStock
}

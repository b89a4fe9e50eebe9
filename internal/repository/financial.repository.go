package repository

import (
	"context"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/pkg/pg"
)

type FinancialRepository struct {
	*pg.DB
}

func NewFinancialRepository(db *pg.DB) *FinancialRepository {
	return &FinancialRepository{
		db,
	}
}

// Create appends one ledger row. The ledger is append-only; there are no
// update or delete operations on this repository.
func (r *FinancialRepository) Create(ctx context.Context, rec *model.FinancialRecord) (*model.FinancialRecord, error) {
	entity := toFinancialEntity(rec)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toFinancialModel(entity), nil
}

type TradeFilter struct {
	VehicleID       *int64
	CustomerID      *int64
	TransactionType *string // "buy" or "sell"
	Limit           int
	Offset          int
}

func (r *FinancialRepository) List(ctx context.Context, f TradeFilter) ([]*model.FinancialRecord, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&FinancialEntity{})

	if f.VehicleID != nil {
		q = q.Where("vehicle_id = ?", *f.VehicleID)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.TransactionType != nil {
		q = q.Where("transaction_type = ?", *f.TransactionType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var entities []*FinancialEntity
	if err := q.Order("id").Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toFinancialModels(entities), total, nil
}

// ListTrades returns ledger rows joined with vehicle, manufacturer and
// customer names, newest first. This feeds the management page's trade
// history table.
func (r *FinancialRepository) ListTrades(ctx context.Context) ([]*model.TradeRow, error) {
	var rows []*model.TradeRow

	err := r.Read(ctx).WithContext(ctx).
		Table("financials").
		Select(`vehicles.brand AS brand,
			vehicles.model AS model,
			manufacturers.name AS manufacturer_name,
			financials.transaction_type AS transaction_type,
			financials.amount AS amount,
			customers.name AS customer_name,
			financials.date AS date`).
		Joins("JOIN vehicles ON financials.vehicle_id = vehicles.id").
		Joins("JOIN customers ON financials.customer_id = customers.id").
		Joins("JOIN manufacturers ON vehicles.manufacturer_id = manufacturers.id").
		Order("financials.id DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

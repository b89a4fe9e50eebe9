package repository

import (
	"time"

	"github.com/cardealer/dealership-gateway/internal/model"
)

type FinancialEntity struct {
	ID              int64     `db:"id"               gorm:"primaryKey;autoIncrement;column:id"`
	VehicleID       int64     `db:"vehicle_id"       gorm:"column:vehicle_id;not null;index"`
	TransactionType string    `db:"transaction_type" gorm:"column:transaction_type;not null"`
	Amount          uint      `db:"amount"           gorm:"column:amount;not null"`
	CustomerID      int64     `db:"customer_id"      gorm:"column:customer_id;not null;index"`
	Date            time.Time `db:"date"             gorm:"column:date;not null"`
}

func (FinancialEntity) TableName() string {
	return "financials"
}

func toFinancialEntity(m *model.FinancialRecord) *FinancialEntity {
	if m == nil {
		return nil
	}
	return &FinancialEntity{
		ID:              m.ID,
		VehicleID:       m.VehicleID,
		TransactionType: m.TransactionType,
		Amount:          m.Amount,
		CustomerID:      m.CustomerID,
		Date:            m.Date,
	}
}

func toFinancialModel(e *FinancialEntity) *model.FinancialRecord {
	if e == nil {
		return nil
	}
	return &model.FinancialRecord{
		ID:              e.ID,
		VehicleID:       e.VehicleID,
		TransactionType: e.TransactionType,
		Amount:          e.Amount,
		CustomerID:      e.CustomerID,
		Date:            e.Date,
	}
}

func toFinancialModels(entities []*FinancialEntity) []*model.FinancialRecord {
	if entities == nil {
		return nil
	}
	models := make([]*model.FinancialRecord, len(entities))
	for i, e := range entities {
		models[i] = toFinancialModel(e)
	}
	return models
}

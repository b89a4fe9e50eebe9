package repository

import (
	"github.com/cardealer/dealership-gateway/internal/model"
)

type InventoryEntity struct {
	ID        int64 `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	VehicleID int64 `db:"vehicle_id" gorm:"column:vehicle_id;not null;uniqueIndex"`
	Quantity  uint  `db:"quantity"   gorm:"column:quantity;not null;default:0"`
}

func (InventoryEntity) TableName() string {
	return "inventory"
}

func toInventoryEntity(m *model.InventoryEntry) *InventoryEntity {
	if m == nil {
		return nil
	}
	return &InventoryEntity{
		ID:        m.ID,
		VehicleID: m.VehicleID,
		Quantity:  m.Quantity,
	}
}

func toInventoryModel(e *InventoryEntity) *model.InventoryEntry {
	if e == nil {
		return nil
	}
	return &model.InventoryEntry{
		ID:        e.ID,
		VehicleID: e.VehicleID,
		Quantity:  e.Quantity,
	}
}

package repository

import (
	"github.com/cardealer/dealership-gateway/internal/model"
)

type VehicleEntity struct {
	ID             int64  `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	Brand          string `db:"brand"           gorm:"column:brand;not null;uniqueIndex:idx_vehicle_triple"`
	Model          string `db:"model"           gorm:"column:model;not null;uniqueIndex:idx_vehicle_triple"`
	ManufacturerID int64  `db:"manufacturer_id" gorm:"column:manufacturer_id;not null;uniqueIndex:idx_vehicle_triple;index"`
}

func (VehicleEntity) TableName() string {
	return "vehicles"
}

func toVehicleEntity(m *model.Vehicle) *VehicleEntity {
	if m == nil {
		return nil
	}
	return &VehicleEntity{
		ID:             m.ID,
		Brand:          m.Brand,
		Model:          m.Model,
		ManufacturerID: m.ManufacturerID,
	}
}

func toVehicleModel(e *VehicleEntity) *model.Vehicle {
	if e == nil {
		return nil
	}
	return &model.Vehicle{
		ID:             e.ID,
		Brand:          e.Brand,
		Model:          e.Model,
		ManufacturerID: e.ManufacturerID,
	}
}

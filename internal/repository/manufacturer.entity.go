package repository

import (
	"github.com/cardealer/dealership-gateway/internal/model"
)

type ManufacturerEntity struct {
	ID   int64  `db:"id"   gorm:"primaryKey;autoIncrement;column:id"`
	Name string `db:"name" gorm:"column:name;not null;uniqueIndex"`
}

func (ManufacturerEntity) TableName() string {
	return "manufacturers"
}

func toManufacturerEntity(m *model.Manufacturer) *ManufacturerEntity {
	if m == nil {
		return nil
	}
	return &ManufacturerEntity{
		ID:   m.ID,
		Name: m.Name,
	}
}

func toManufacturerModel(e *ManufacturerEntity) *model.Manufacturer {
	if e == nil {
		return nil
	}
	return &model.Manufacturer{
		ID:   e.ID,
		Name: e.Name,
	}
}

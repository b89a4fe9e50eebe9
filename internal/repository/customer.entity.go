package repository

import (
	"github.com/cardealer/dealership-gateway/internal/model"
)

type CustomerEntity struct {
	ID          int64  `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Name        string `db:"name"         gorm:"column:name;not null;uniqueIndex"`
	ContactInfo string `db:"contact_info" gorm:"column:contact_info"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:          m.ID,
		Name:        m.Name,
		ContactInfo: m.ContactInfo,
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:          e.ID,
		Name:        e.Name,
		ContactInfo: e.ContactInfo,
	}
}

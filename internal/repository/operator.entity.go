package repository

import (
	"github.com/cardealer/dealership-gateway/internal/model"
)

type OperatorEntity struct {
	ID           int64  `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string `db:"username"      gorm:"column:username;not null;unique"`
	PasswordHash string `db:"password_hash" gorm:"column:password_hash;not null"`
	Role         string `db:"role"          gorm:"column:role;not null"`
}

func (OperatorEntity) TableName() string {
	return "operators"
}

func toOperatorEntity(m *model.Operator) *OperatorEntity {
	if m == nil {
		return nil
	}
	return &OperatorEntity{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
	}
}

func toOperatorModel(e *OperatorEntity) *model.Operator {
	if e == nil {
		return nil
	}
	return &model.Operator{
		ID:           e.ID,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		Role:         e.Role,
	}
}

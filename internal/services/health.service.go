package services

import (
	"context"

	"gorm.io/gorm"
)

type Pinger interface {
	Read(ctx context.Context) *gorm.DB
}

// HealthService reports whether the store is reachable.
type HealthService struct {
	db Pinger
}

func NewHealthService(db Pinger) *HealthService {
	return &HealthService{db: db}
}

func (s *HealthService) Get() error {
	sqlDB, err := s.db.Read(context.Background()).DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

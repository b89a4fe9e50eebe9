package services

import (
	"context"
	"fmt"

	"github.com/cardealer/dealership-gateway/internal/model"
)

type BrandLister interface {
	DistinctBrands(ctx context.Context) ([]string, error)
	DistinctModels(ctx context.Context) ([]string, error)
}

type NameLister interface {
	DistinctNames(ctx context.Context) ([]string, error)
}

type TradeLister interface {
	ListTrades(ctx context.Context) ([]*model.TradeRow, error)
}

// CatalogService serves the read side of the management page: option
// lists for the form and the trade history table. No caching; every call
// re-reads the store.
type CatalogService struct {
	vehicles      BrandLister
	manufacturers NameLister
	customers     NameLister
	financials    TradeLister
}

func NewCatalogService(vehicles BrandLister, manufacturers, customers NameLister, financials TradeLister) *CatalogService {
	return &CatalogService{
		vehicles:      vehicles,
		manufacturers: manufacturers,
		customers:     customers,
		financials:    financials,
	}
}

func (s *CatalogService) Options(ctx context.Context) (*model.CatalogOptions, error) {
	brands, err := s.vehicles.DistinctBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	models, err := s.vehicles.DistinctModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	manufacturers, err := s.manufacturers.DistinctNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	customers, err := s.customers.DistinctNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	return &model.CatalogOptions{
		Brands:        brands,
		Models:        models,
		Manufacturers: manufacturers,
		Customers:     customers,
	}, nil
}

func (s *CatalogService) Trades(ctx context.Context) ([]*model.TradeRow, error) {
	return s.financials.ListTrades(ctx)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/internal/repository"
	"github.com/cardealer/dealership-gateway/pkg/prom"
)

var (
	ErrManufacturerNotFound = errors.New("manufacturer not found")
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrInsufficientStock    = errors.New("insufficient stock to sell")
	ErrInvalidOperation     = errors.New("operation must be buy or sell")
)

type ManufacturerRepository interface {
	GetByName(ctx context.Context, name string) (*model.Manufacturer, error)
	GetOrCreate(ctx context.Context, name string) (*model.Manufacturer, error)
	Exists(ctx context.Context, name string) (bool, error)
}

type VehicleRepository interface {
	GetByTriple(ctx context.Context, brand, vmodel string, manufacturerID int64) (*model.Vehicle, error)
	GetOrCreate(ctx context.Context, brand, vmodel string, manufacturerID int64) (*model.Vehicle, bool, error)
	Exists(ctx context.Context, brand, vmodel string, manufacturerID int64) (bool, error)
}

type CustomerRepository interface {
	GetOrCreate(ctx context.Context, name string) (*model.Customer, error)
	Exists(ctx context.Context, name string) (bool, error)
}

type InventoryRepository interface {
	Create(ctx context.Context, vehicleID int64, quantity uint) (*model.InventoryEntry, error)
	Add(ctx context.Context, vehicleID int64, amount uint) error
	Deduct(ctx context.Context, vehicleID int64, amount uint) error
}

type FinancialRepository interface {
	Create(ctx context.Context, rec *model.FinancialRecord) (*model.FinancialRecord, error)
}

// TransactionRunner runs fn inside one store transaction; pg.DB satisfies it.
type TransactionRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TradeService owns the write path to inventory and the financial ledger.
// Every buy or sell lands as one atomic unit: catalog rows, the stock
// mutation and the ledger row commit together or not at all.
type TradeService struct {
	runner        TransactionRunner
	manufacturers ManufacturerRepository
	vehicles      VehicleRepository
	customers     CustomerRepository
	inventory     InventoryRepository
	financials    FinancialRepository
	now           func() time.Time
}

func NewTradeService(
	runner TransactionRunner,
	manufacturers ManufacturerRepository,
	vehicles VehicleRepository,
	customers CustomerRepository,
	inventory InventoryRepository,
	financials FinancialRepository,
) *TradeService {
	return &TradeService{
		runner:        runner,
		manufacturers: manufacturers,
		vehicles:      vehicles,
		customers:     customers,
		inventory:     inventory,
		financials:    financials,
		now:           time.Now,
	}
}

// RecordTransaction applies one buy or sell order. Quantity >= 1 and
// non-empty, markup-safe names are the caller's preconditions (see
// model.TradeRequest.Validate); operation validity is checked here.
//
// Checked failures (ErrManufacturerNotFound, ErrVehicleNotFound,
// ErrInsufficientStock, ErrInvalidOperation) and store failures alike
// leave the database exactly as it was before the call.
func (s *TradeService) RecordTransaction(ctx context.Context, req model.TradeRequest) (*model.FinancialRecord, error) {
	if req.Operation != model.OperationBuy && req.Operation != model.OperationSell {
		prom.IncCounterVec(prom.SystemTrades, prom.MetricTradesTotal, req.Operation, "invalid")
		return nil, ErrInvalidOperation
	}

	start := s.now()
	var rec *model.FinancialRecord

	err := s.runner.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if req.Operation == model.OperationBuy {
			rec, err = s.buy(ctx, req)
		} else {
			rec, err = s.sell(ctx, req)
		}
		return err
	})

	prom.ObserveHistogramVec(prom.SystemTrades, prom.MetricTradeDurationSeconds, time.Since(start).Seconds(), req.Operation)
	prom.IncCounterVec(prom.SystemTrades, prom.MetricTradesTotal, req.Operation, resultLabel(err))

	if err != nil {
		return nil, err
	}
	return rec, nil
}

// buy creates any missing catalog rows, raises the stock and appends the
// ledger entry. A brand-new vehicle always gets its inventory row in the
// same step, so an existing vehicle implies an existing inventory row.
func (s *TradeService) buy(ctx context.Context, req model.TradeRequest) (*model.FinancialRecord, error) {
	m, err := s.manufacturers.GetOrCreate(ctx, req.Manufacturer)
	if err != nil {
		return nil, fmt.Errorf("resolve manufacturer: %w", err)
	}

	v, created, err := s.vehicles.GetOrCreate(ctx, req.Brand, req.Model, m.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve vehicle: %w", err)
	}

	if created {
		if _, err := s.inventory.Create(ctx, v.ID, req.Quantity); err != nil {
			return nil, fmt.Errorf("create inventory: %w", err)
		}
	} else {
		if err := s.inventory.Add(ctx, v.ID, req.Quantity); err != nil {
			return nil, fmt.Errorf("raise stock: %w", err)
		}
	}

	return s.appendLedger(ctx, model.OperationBuy, v.ID, req)
}

// sell requires the manufacturer, vehicle and inventory row to pre-exist
// and enough stock to be on hand. The sufficiency check and the decrement
// are one conditional update inside the surrounding transaction, so
// concurrent sells cannot oversell.
func (s *TradeService) sell(ctx context.Context, req model.TradeRequest) (*model.FinancialRecord, error) {
	m, err := s.manufacturers.GetByName(ctx, req.Manufacturer)
	if err != nil {
		if errors.Is(err, repository.ErrManufacturerNotFound) {
			return nil, ErrManufacturerNotFound
		}
		return nil, fmt.Errorf("resolve manufacturer: %w", err)
	}

	v, err := s.vehicles.GetByTriple(ctx, req.Brand, req.Model, m.ID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("resolve vehicle: %w", err)
	}

	if err := s.inventory.Deduct(ctx, v.ID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, repository.ErrInventoryNotFound):
			// a vehicle without an inventory row reports as an unknown
			// vehicle, matching what the dealership front end expects
			return nil, ErrVehicleNotFound
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("deduct stock: %w", err)
	}

	return s.appendLedger(ctx, model.OperationSell, v.ID, req)
}

func (s *TradeService) appendLedger(ctx context.Context, op string, vehicleID int64, req model.TradeRequest) (*model.FinancialRecord, error) {
	c, err := s.customers.GetOrCreate(ctx, req.CustomerName)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	rec, err := s.financials.Create(ctx, &model.FinancialRecord{
		VehicleID:       vehicleID,
		TransactionType: op,
		Amount:          req.Quantity,
		CustomerID:      c.ID,
		Date:            s.today(),
	})
	if err != nil {
		return nil, fmt.Errorf("append ledger: %w", err)
	}
	return rec, nil
}

func (s *TradeService) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}

// ManufacturerExists reports whether the named manufacturer is on record.
// Read-only and safe to call repeatedly; every call re-reads the store.
func (s *TradeService) ManufacturerExists(ctx context.Context, name string) (bool, error) {
	return s.manufacturers.Exists(ctx, name)
}

// VehicleExists reports whether the (brand, model, manufacturer) triple is
// on record. An unknown manufacturer means an unknown vehicle.
func (s *TradeService) VehicleExists(ctx context.Context, brand, vmodel, manufacturer string) (bool, error) {
	m, err := s.manufacturers.GetByName(ctx, manufacturer)
	if err != nil {
		if errors.Is(err, repository.ErrManufacturerNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.vehicles.Exists(ctx, brand, vmodel, m.ID)
}

// CustomerExists reports whether the named customer is on record.
func (s *TradeService) CustomerExists(ctx context.Context, name string) (bool, error) {
	return s.customers.Exists(ctx, name)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrManufacturerNotFound),
		errors.Is(err, ErrVehicleNotFound),
		errors.Is(err, ErrInsufficientStock):
		return "rejected"
	default:
		return "error"
	}
}

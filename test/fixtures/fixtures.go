package fixtures

import (
	"github.com/cardealer/dealership-gateway/internal/model"
)

var (
	TestAdminOperator = model.Operator{
		Username: "202235010611",
		Role:     model.RoleAdmin,
	}

	TestGuestOperator = model.Operator{
		Username: "guest",
		Role:     model.RoleGuest,
	}
)

func NewBuyRequest(brand, vmodel, manufacturer string, quantity uint, customer string) model.TradeRequest {
	return model.TradeRequest{
		Operation:    model.OperationBuy,
		Brand:        brand,
		Model:        vmodel,
		Manufacturer: manufacturer,
		Quantity:     quantity,
		CustomerName: customer,
	}
}

func NewSellRequest(brand, vmodel, manufacturer string, quantity uint, customer string) model.TradeRequest {
	return model.TradeRequest{
		Operation:    model.OperationSell,
		Brand:        brand,
		Model:        vmodel,
		Manufacturer: manufacturer,
		Quantity:     quantity,
		CustomerName: customer,
	}
}

package model

import (
	"fmt"
	"strings"
)

const (
	OperationBuy  = "buy"
	OperationSell = "sell"
)

var (
	ErrQuantityNotPositive = fmt.Errorf("quantity must be greater than zero")
	ErrMissingField        = fmt.Errorf("brand, model, manufacturer and customer are required")
	ErrIllegalCharacters   = fmt.Errorf("input contains characters not allowed in rendered pages")
)

// characters that would break the rendered management page; the same set
// the browser-side form rejects
const illegalChars = `<>&"'\`

// TradeRequest is a buy or sell order as it arrives from the management
// page form.
type TradeRequest struct {
	Operation    string `json:"operation"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Quantity     uint   `json:"quantity"`
	CustomerName string `json:"customername"`
}

// Validate enforces the caller-side preconditions of the trade service:
// positive quantity, non-empty names, and no markup-breaking characters.
// Operation validity is the service's own concern and is not checked here.
func (r TradeRequest) Validate() error {
	if r.Quantity < 1 {
		return ErrQuantityNotPositive
	}
	for _, s := range []string{r.Brand, r.Model, r.Manufacturer, r.CustomerName} {
		if strings.TrimSpace(s) == "" {
			return ErrMissingField
		}
		if strings.ContainsAny(s, illegalChars) {
			return ErrIllegalCharacters
		}
	}
	return nil
}

package model

// InventoryEntry tracks the on-hand quantity of one vehicle. The row is
// created on the first buy and its quantity never goes below zero.
type InventoryEntry struct {
	ID        int64 `json:"id"`
	VehicleID int64 `json:"vehicle_id"`
	Quantity  uint  `json:"quantity"`
}

func (InventoryEntry) TableName() string { return "inventory" }

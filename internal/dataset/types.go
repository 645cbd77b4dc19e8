package dataset

import "time"

// InventoryRow is one inventory movement for a product.
type InventoryRow struct {
	ProductID     int64
	Date          time.Time
	StockReceived float64
	DamagedStock  float64
}

// OrderRow is one order header. OrderDate is the zero time when the source
// value could not be parsed; such orders are dropped during aggregation.
type OrderRow struct {
	OrderID    int64
	OrderDate  time.Time
	CustomerID int64
}

// OrderItemRow is one order line.
type OrderItemRow struct {
	OrderID   int64
	ProductID int64
	Quantity  float64
}

// ProductRow is one catalog entry.
type ProductRow struct {
	ProductID   int64
	ProductName string
	Category    string
}

// CustomerRow is one optional customer record.
type CustomerRow struct {
	CustomerID int64
	Area       string
}

// FestivalEvent is one festival calendar entry with its demand impact.
type FestivalEvent struct {
	Date   time.Time
	Impact float64
}

// Bundle holds all parsed input tables for one pipeline run.
type Bundle struct {
	Inventory  []InventoryRow
	Orders     []OrderRow
	OrderItems []OrderItemRow
	Products   []ProductRow
	Customers  []CustomerRow
	Festivals  []FestivalEvent
}

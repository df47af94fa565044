package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen del tableau de bord.
type DashboardResponse struct {
	MonthRevenue     decimal.Decimal    `json:"month_revenue"`
	StockValue       decimal.Decimal    `json:"stock_value"` // a precio de compra
	LowStockCount    int                `json:"low_stock_count"`
	CustomerCount    int                `json:"customer_count"`
	RecentSales      []InvoiceResponse  `json:"recent_sales"`
	RecentMovements  []MovementResponse `json:"recent_movements"`
	LowStockProducts []ProductResponse  `json:"low_stock_products"`
}

// MonthlySalesDTO total facturado en un mes ("Jan 2025").
type MonthlySalesDTO struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// StatisticsResponse página de estadísticas del vendedor.
type StatisticsResponse struct {
	TotalProducts  int               `json:"total_products"`
	TotalCustomers int               `json:"total_customers"`
	TotalInvoices  int               `json:"total_invoices"`
	TotalRevenue   decimal.Decimal   `json:"total_revenue"`
	MonthlySales   []MonthlySalesDTO `json:"monthly_sales"`
}

package services

import "errors"

// Dataset errors
var (
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrNoSalesData        = errors.New("no sales data found")
	ErrNoCustomerData     = errors.New("no customer data found")
)

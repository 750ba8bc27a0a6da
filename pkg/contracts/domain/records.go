package domain

import "time"

// SalesRecord is a typed view of one cleaned sales row as the dashboards
// consume it. Revenue is derived, never stored.
type SalesRecord struct {
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	Revenue     float64   `json:"revenue"`
}

// CustomerRecord is a typed view of one customer RFM row.
type CustomerRecord struct {
	CustomerID string  `json:"customer_id"`
	Segment    string  `json:"segment"`
	Recency    float64 `json:"recency"`
	Frequency  float64 `json:"frequency"`
	Monetary   float64 `json:"monetary"`
	RScore     int     `json:"r_score"`
	FScore     int     `json:"f_score"`
	MScore     int     `json:"m_score"`
}

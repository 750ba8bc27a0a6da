package domain

// Canonical column names for the sales dataset.
const (
	ColProductName = "Product Name"
	ColQuantity    = "Quantity"
	ColDate        = "Date"
	ColPrice       = "Price"
)

// Canonical column names for the customer RFM dataset.
const (
	ColCustomerID = "Customer ID"
	ColSegment    = "Segment"
	ColRecency    = "Recency"
	ColFrequency  = "Frequency"
	ColMonetary   = "Monetary"
	ColRScore     = "R_Score"
	ColFScore     = "F_Score"
	ColMScore     = "M_Score"
)

// DateFormat is the canonical on-disk date layout after cleaning.
const DateFormat = "2006-01-02"

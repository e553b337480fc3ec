package models

import "github.com/graph-gophers/graphql-go"

// Allocation is the GraphQL view of one allocation with its merchant shares.
type Allocation struct {
	ID                  graphql.ID
	Date                string
	OrderNumber         string
	TrackingNumber      string
	ShipmentID          string
	FreightUnitPrice    float64
	BoxCount            int32
	TotalSettleWeight   float64
	ActualWeightWithBox float64
	TotalActualWeight   float64
	TotalBoxWeight      float64
	TotalThrowWeight    float64
	TotalAmount         float64
	MerchantCount       int32
	Active              bool
	Merchants           []*MerchantShare
}

type MerchantShare struct {
	SequenceNumber      int32
	MerchantName        string
	Pieces              int32
	ActualWeight        float64
	WeightRatio         float64
	BoxWeight           float64
	ThrowWeight         float64
	SettleWeight        float64
	Amount              float64
	LogisticsStatus     string
	ActualReceivedCount int32
}

type MerchantSummary struct {
	MerchantName      string
	AllocationCount   int32
	TotalPieces       int32
	TotalActualWeight float64
	TotalSettleWeight float64
	TotalAmount       float64
	AvgAmount         float64
	FirstDate         string
	LastDate          string
}

type Statistics struct {
	TotalRecords   int32
	TotalWeight    float64
	TotalAmount    float64
	AvgAmount      float64
	TotalMerchants int32
	AvgMerchants   float64
}

package resolvers

import (
	"context"

	allocationRepo "shipshare.GO/model/repository/allocation"
	gqlmodels "shipshare.GO/graphql/models"
)

// Allocations resolves the filtered allocation list.
func (r *queryResolver) Allocations(ctx context.Context, filters allocationRepo.ListFilters) ([]*gqlmodels.Allocation, error) {
	repo := allocationRepo.NewAllocationRepository(r.db)
	rows, err := repo.List(filters)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Allocation, 0, len(rows))
	for i := range rows {
		out = append(out, mapAllocation(&rows[i]))
	}
	return out, nil
}

// Allocation resolves a single allocation by order number, soft-deleted rows
// included (Active reports the status flag).
func (r *queryResolver) Allocation(ctx context.Context, orderNumber string) (*gqlmodels.Allocation, error) {
	repo := allocationRepo.NewAllocationRepository(r.db)
	row, err := repo.GetByOrderNumber(orderNumber)
	if err != nil || row == nil {
		return nil, err
	}
	return mapAllocation(row), nil
}

// MerchantSummary resolves the per-merchant rollup.
func (r *queryResolver) MerchantSummary(ctx context.Context, merchantName, startDate, endDate string) ([]*gqlmodels.MerchantSummary, error) {
	repo := allocationRepo.NewAllocationRepository(r.db)
	rows, err := repo.MerchantSummary(merchantName, startDate, endDate)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.MerchantSummary, 0, len(rows))
	for _, s := range rows {
		out = append(out, &gqlmodels.MerchantSummary{
			MerchantName:      s.MerchantName,
			AllocationCount:   int32(s.AllocationCount),
			TotalPieces:       int32(s.TotalPieces),
			TotalActualWeight: s.TotalActualWeight,
			TotalSettleWeight: s.TotalSettleWeight,
			TotalAmount:       s.TotalAmount,
			AvgAmount:         s.AvgAmount,
			FirstDate:         s.FirstDate,
			LastDate:          s.LastDate,
		})
	}
	return out, nil
}

// OverallStatistics resolves the overall rollup.
func (r *queryResolver) OverallStatistics(ctx context.Context, startDate, endDate string) (*gqlmodels.Statistics, error) {
	repo := allocationRepo.NewAllocationRepository(r.db)
	row, err := repo.Statistics(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return &gqlmodels.Statistics{
		TotalRecords:   int32(row.TotalRecords),
		TotalWeight:    row.TotalWeight,
		TotalAmount:    row.TotalAmount,
		AvgAmount:      row.AvgAmount,
		TotalMerchants: int32(row.TotalMerchants),
		AvgMerchants:   row.AvgMerchants,
	}, nil
}

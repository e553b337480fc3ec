package resolvers

import (
	"strconv"

	"github.com/graph-gophers/graphql-go"

	allocationEntity "shipshare.GO/model/entity/allocation"
	gqlmodels "shipshare.GO/graphql/models"
)

func mapAllocation(m *allocationEntity.AllocationMain) *gqlmodels.Allocation {
	out := &gqlmodels.Allocation{
		ID:                  graphql.ID(strconv.FormatUint(uint64(m.ID), 10)),
		Date:                m.Date,
		OrderNumber:         m.OrderNumber,
		TrackingNumber:      m.TrackingNumber,
		ShipmentID:          m.ShipmentID,
		FreightUnitPrice:    m.FreightUnitPrice,
		BoxCount:            int32(m.BoxCount),
		TotalSettleWeight:   m.TotalSettleWeight,
		ActualWeightWithBox: m.ActualWeightWithBox,
		TotalActualWeight:   m.TotalActualWeight,
		TotalBoxWeight:      m.TotalBoxWeight,
		TotalThrowWeight:    m.TotalThrowWeight,
		TotalAmount:         m.TotalAmount,
		MerchantCount:       int32(m.MerchantCount),
		Active:              m.Status == allocationEntity.StatusActive,
		Merchants:           make([]*gqlmodels.MerchantShare, 0, len(m.Merchants)),
	}
	for _, d := range m.Merchants {
		out.Merchants = append(out.Merchants, &gqlmodels.MerchantShare{
			SequenceNumber:      int32(d.SequenceNumber),
			MerchantName:        d.MerchantName,
			Pieces:              int32(d.Pieces),
			ActualWeight:        d.ActualWeight,
			WeightRatio:         d.WeightRatio,
			BoxWeight:           d.BoxWeight,
			ThrowWeight:         d.ThrowWeight,
			SettleWeight:        d.SettleWeight,
			Amount:              d.Amount,
			LogisticsStatus:     d.LogisticsStatus,
			ActualReceivedCount: int32(d.ActualReceivedCount),
		})
	}
	return out
}

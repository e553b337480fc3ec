package allocation

import "math"

// MerchantInput is one merchant's raw share of a shipment.
type MerchantInput struct {
	MerchantName string  `json:"merchant_name"`
	Pieces       int     `json:"pieces"`
	ActualWeight float64 `json:"weight"`
}

// ShipmentInput is everything the calculator needs for one shipment.
type ShipmentInput struct {
	FreightUnitPrice    float64
	TotalSettleWeight   float64
	ActualWeightWithBox float64
	Merchants           []MerchantInput
}

// MerchantShare is one merchant's computed allocation.
type MerchantShare struct {
	MerchantName string
	Pieces       int
	ActualWeight float64
	WeightRatio  float64
	BoxWeight    float64
	ThrowWeight  float64
	SettleWeight float64
	Amount       float64
}

// ShipmentResult is the full allocation for one shipment.
type ShipmentResult struct {
	TotalActualWeight float64
	TotalBoxWeight    float64
	TotalThrowWeight  float64
	TotalAmount       float64
	MerchantCount     int
	Shares            []MerchantShare
}

// round half away from zero at the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// Weights carry 3 decimal places, ratios 6, money 2. Per-merchant rounding
// residue is accepted as-is and never redistributed.
const (
	weightPlaces = 3
	ratioPlaces  = 6
	moneyPlaces  = 2
)

// Calculate splits a shipment's freight cost and weight categories across
// merchants by physical-weight share. Pure: identical inputs always produce
// identical outputs.
//
//	total_box_weight   = max(0, actual_weight_with_box - total_actual_weight)
//	total_throw_weight = max(0, total_settle_weight - actual_weight_with_box)
//	settle_weight      = actual_weight + box_weight + throw_weight
//	amount             = settle_weight * freight_unit_price
func Calculate(in ShipmentInput) (*ShipmentResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	totalActual := 0.0
	for _, m := range in.Merchants {
		totalActual += m.ActualWeight
	}
	if totalActual <= 0 {
		return nil, validationErrorf("merchants", "no weight basis for allocation")
	}

	totalBox := math.Max(0, in.ActualWeightWithBox-totalActual)
	totalThrow := math.Max(0, in.TotalSettleWeight-in.ActualWeightWithBox)

	res := &ShipmentResult{
		TotalActualWeight: round(totalActual, weightPlaces),
		TotalBoxWeight:    round(totalBox, weightPlaces),
		TotalThrowWeight:  round(totalThrow, weightPlaces),
		MerchantCount:     len(in.Merchants),
		Shares:            make([]MerchantShare, 0, len(in.Merchants)),
	}

	for _, m := range in.Merchants {
		ratio := m.ActualWeight / totalActual
		boxW := round(ratio*totalBox, weightPlaces)
		throwW := round(ratio*totalThrow, weightPlaces)
		settleW := round(m.ActualWeight+boxW+throwW, weightPlaces)
		amount := round(settleW*in.FreightUnitPrice, moneyPlaces)

		res.Shares = append(res.Shares, MerchantShare{
			MerchantName: m.MerchantName,
			Pieces:       m.Pieces,
			ActualWeight: round(m.ActualWeight, weightPlaces),
			WeightRatio:  round(ratio, ratioPlaces),
			BoxWeight:    boxW,
			ThrowWeight:  throwW,
			SettleWeight: settleW,
			Amount:       amount,
		})
		res.TotalAmount += amount
	}
	res.TotalAmount = round(res.TotalAmount, moneyPlaces)

	return res, nil
}

func badNumber(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func validateInput(in ShipmentInput) error {
	if len(in.Merchants) == 0 {
		return validationErrorf("merchants", "at least one merchant entry is required")
	}
	if badNumber(in.FreightUnitPrice) || badNumber(in.TotalSettleWeight) || badNumber(in.ActualWeightWithBox) {
		return validationErrorf("", "non-numeric shipment value")
	}
	if in.FreightUnitPrice < 0 {
		return validationErrorf("freight_unit_price", "must not be negative")
	}
	if in.TotalSettleWeight < 0 {
		return validationErrorf("total_settle_weight", "must not be negative")
	}
	if in.ActualWeightWithBox < 0 {
		return validationErrorf("actual_weight_with_box", "must not be negative")
	}
	for i, m := range in.Merchants {
		if m.MerchantName == "" {
			return validationErrorf("merchants", "entry %d is missing merchant_name", i+1)
		}
		if badNumber(m.ActualWeight) {
			return validationErrorf("merchants", "entry %d (%s): non-numeric weight", i+1, m.MerchantName)
		}
		if m.ActualWeight < 0 {
			return validationErrorf("merchants", "entry %d (%s): weight must not be negative", i+1, m.MerchantName)
		}
		if m.Pieces < 0 {
			return validationErrorf("merchants", "entry %d (%s): pieces must not be negative", i+1, m.MerchantName)
		}
	}
	return nil
}

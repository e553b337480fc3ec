package allocation

import (
	"math"
	"reflect"
	"testing"
)

func f64(v float64) *float64 { return &v }

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculate_WorkedExample(t *testing.T) {
	in := ShipmentInput{
		FreightUnitPrice:    60.00,
		TotalSettleWeight:   38.000,
		ActualWeightWithBox: 35.000,
		Merchants: []MerchantInput{
			{MerchantName: "A", Pieces: 1, ActualWeight: 10},
			{MerchantName: "B", Pieces: 2, ActualWeight: 20},
		},
	}

	res, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if res.TotalActualWeight != 30 {
		t.Errorf("TotalActualWeight = %v, want 30", res.TotalActualWeight)
	}
	if res.TotalBoxWeight != 5 {
		t.Errorf("TotalBoxWeight = %v, want 5", res.TotalBoxWeight)
	}
	if res.TotalThrowWeight != 3 {
		t.Errorf("TotalThrowWeight = %v, want 3", res.TotalThrowWeight)
	}
	if res.MerchantCount != 2 {
		t.Errorf("MerchantCount = %d, want 2", res.MerchantCount)
	}

	a := res.Shares[0]
	if !almostEqual(a.WeightRatio, 0.333333, 1e-6) {
		t.Errorf("A.WeightRatio = %v, want ~0.333333", a.WeightRatio)
	}
	if !almostEqual(a.BoxWeight, 1.667, 1e-9) {
		t.Errorf("A.BoxWeight = %v, want 1.667", a.BoxWeight)
	}
	if !almostEqual(a.ThrowWeight, 1.0, 1e-9) {
		t.Errorf("A.ThrowWeight = %v, want 1.0", a.ThrowWeight)
	}
	if !almostEqual(a.SettleWeight, 12.667, 1e-9) {
		t.Errorf("A.SettleWeight = %v, want 12.667", a.SettleWeight)
	}
	if !almostEqual(a.Amount, 760.02, 1e-9) {
		t.Errorf("A.Amount = %v, want 760.02", a.Amount)
	}

	b := res.Shares[1]
	if !almostEqual(b.BoxWeight, 2*a.BoxWeight, 0.002) {
		t.Errorf("B.BoxWeight = %v, want ~double A's %v", b.BoxWeight, a.BoxWeight)
	}
	if !almostEqual(b.Amount, 2*a.Amount, 0.1) {
		t.Errorf("B.Amount = %v, want ~double A's %v", b.Amount, a.Amount)
	}
	if !almostEqual(res.TotalAmount, a.Amount+b.Amount, 1e-9) {
		t.Errorf("TotalAmount = %v, want %v", res.TotalAmount, a.Amount+b.Amount)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	in := ShipmentInput{
		FreightUnitPrice:    42.5,
		TotalSettleWeight:   17.3,
		ActualWeightWithBox: 16.1,
		Merchants: []MerchantInput{
			{MerchantName: "X", Pieces: 3, ActualWeight: 4.4},
			{MerchantName: "Y", Pieces: 1, ActualWeight: 7.7},
			{MerchantName: "Z", Pieces: 5, ActualWeight: 2.9},
		},
	}
	first, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	second, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate (second run): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second run differs from first:\n%+v\n%+v", first, second)
	}
}

func TestCalculate_RatiosSumToOne(t *testing.T) {
	in := ShipmentInput{
		FreightUnitPrice:    10,
		TotalSettleWeight:   100,
		ActualWeightWithBox: 90,
		Merchants: []MerchantInput{
			{MerchantName: "a", ActualWeight: 13.37},
			{MerchantName: "b", ActualWeight: 0.003},
			{MerchantName: "c", ActualWeight: 55.1},
			{MerchantName: "d", ActualWeight: 7},
		},
	}
	res, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	sum := 0.0
	for _, s := range res.Shares {
		sum += s.WeightRatio
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("sum of ratios = %v, want 1.0 within 1e-6", sum)
	}
}

func TestCalculate_FloorAtZero(t *testing.T) {
	// Measured weight exceeds both box and settlement weight: both derived
	// totals floor at zero instead of going negative.
	in := ShipmentInput{
		FreightUnitPrice:    12,
		TotalSettleWeight:   5,
		ActualWeightWithBox: 8,
		Merchants: []MerchantInput{
			{MerchantName: "heavy", ActualWeight: 10},
		},
	}
	res, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.TotalBoxWeight != 0 {
		t.Errorf("TotalBoxWeight = %v, want 0", res.TotalBoxWeight)
	}
	if res.TotalThrowWeight != 0 {
		t.Errorf("TotalThrowWeight = %v, want 0", res.TotalThrowWeight)
	}
	s := res.Shares[0]
	if s.SettleWeight != 10 {
		t.Errorf("SettleWeight = %v, want 10 (actual weight only)", s.SettleWeight)
	}
	if s.Amount != 120 {
		t.Errorf("Amount = %v, want 120", s.Amount)
	}
}

func TestCalculate_SingleMerchantTakesAll(t *testing.T) {
	in := ShipmentInput{
		FreightUnitPrice:    50,
		TotalSettleWeight:   12,
		ActualWeightWithBox: 11,
		Merchants: []MerchantInput{
			{MerchantName: "only", Pieces: 4, ActualWeight: 10},
		},
	}
	res, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	s := res.Shares[0]
	if s.WeightRatio != 1 {
		t.Errorf("WeightRatio = %v, want 1", s.WeightRatio)
	}
	if s.BoxWeight != 1 {
		t.Errorf("BoxWeight = %v, want 1", s.BoxWeight)
	}
	if s.ThrowWeight != 1 {
		t.Errorf("ThrowWeight = %v, want 1", s.ThrowWeight)
	}
	if s.SettleWeight != 12 {
		t.Errorf("SettleWeight = %v, want 12", s.SettleWeight)
	}
	if s.Amount != 600 {
		t.Errorf("Amount = %v, want 600", s.Amount)
	}
}

func TestCalculate_Rejections(t *testing.T) {
	cases := []struct {
		name string
		in   ShipmentInput
	}{
		{"no merchants", ShipmentInput{FreightUnitPrice: 1}},
		{"zero total weight", ShipmentInput{
			FreightUnitPrice: 1,
			Merchants:        []MerchantInput{{MerchantName: "a", ActualWeight: 0}},
		}},
		{"negative weight", ShipmentInput{
			FreightUnitPrice: 1,
			Merchants:        []MerchantInput{{MerchantName: "a", ActualWeight: -2}},
		}},
		{"negative price", ShipmentInput{
			FreightUnitPrice: -1,
			Merchants:        []MerchantInput{{MerchantName: "a", ActualWeight: 1}},
		}},
		{"missing merchant name", ShipmentInput{
			FreightUnitPrice: 1,
			Merchants:        []MerchantInput{{ActualWeight: 1}},
		}},
		{"negative pieces", ShipmentInput{
			FreightUnitPrice: 1,
			Merchants:        []MerchantInput{{MerchantName: "a", ActualWeight: 1, Pieces: -1}},
		}},
		{"NaN settle weight", ShipmentInput{
			FreightUnitPrice:  1,
			TotalSettleWeight: math.NaN(),
			Merchants:         []MerchantInput{{MerchantName: "a", ActualWeight: 1}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Calculate(tc.in); err == nil {
				t.Error("expected validation error, got nil")
			} else if !IsValidation(err) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

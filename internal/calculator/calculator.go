// Package calculator implements the ROI/revenue calculator shown next to the
// pricing section. It is a pure function of its inputs.
package calculator

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default slider positions on page load.
const (
	DefaultVisitors       = 5000
	DefaultDealValue      = 5000
	DefaultConversionRate = 2
	DefaultImprovedRate   = 5
)

// Inputs are the calculator's sliders. Rates are percentages.
type Inputs struct {
	Visitors       float64 `json:"visitors"`
	DealValue      float64 `json:"deal_value"`
	ConversionRate float64 `json:"conversion_rate"`
	ImprovedRate   float64 `json:"improved_rate"`
}

// DefaultInputs returns the initial slider positions.
func DefaultInputs() Inputs {
	return Inputs{
		Visitors:       DefaultVisitors,
		DealValue:      DefaultDealValue,
		ConversionRate: DefaultConversionRate,
		ImprovedRate:   DefaultImprovedRate,
	}
}

// Result holds the derived figures, raw and formatted as US dollars.
type Result struct {
	Inputs            Inputs  `json:"inputs"`
	CurrentLeads      float64 `json:"current_leads"`
	PotentialLeads    float64 `json:"potential_leads"`
	CurrentRevenue    float64 `json:"current_revenue"`
	PotentialRevenue  float64 `json:"potential_revenue"`
	RevenueDifference float64 `json:"revenue_difference"`

	Formatted Formatted `json:"formatted"`
}

// Formatted carries display strings for the revenue figures.
type Formatted struct {
	CurrentRevenue    string `json:"current_revenue"`
	PotentialRevenue  string `json:"potential_revenue"`
	RevenueDifference string `json:"revenue_difference"`
}

var printer = message.NewPrinter(language.AmericanEnglish)

// Compute derives leads and revenue. There is no rounding or bounds checking.
func Compute(in Inputs) Result {
	currentLeads := in.Visitors * in.ConversionRate / 100
	potentialLeads := in.Visitors * in.ImprovedRate / 100
	currentRevenue := currentLeads * in.DealValue
	potentialRevenue := potentialLeads * in.DealValue
	difference := potentialRevenue - currentRevenue

	return Result{
		Inputs:            in,
		CurrentLeads:      currentLeads,
		PotentialLeads:    potentialLeads,
		CurrentRevenue:    currentRevenue,
		PotentialRevenue:  potentialRevenue,
		RevenueDifference: difference,
		Formatted: Formatted{
			CurrentRevenue:    FormatUSD(currentRevenue),
			PotentialRevenue:  FormatUSD(potentialRevenue),
			RevenueDifference: FormatUSD(difference),
		},
	}
}

// Finite reports whether every input is a finite number.
func (in Inputs) Finite() bool {
	return isFinite(in.Visitors) && isFinite(in.DealValue) &&
		isFinite(in.ConversionRate) && isFinite(in.ImprovedRate)
}

// Finite reports whether every derived figure is a finite number. Large
// finite inputs can still overflow to infinity.
func (r Result) Finite() bool {
	return isFinite(r.CurrentLeads) && isFinite(r.PotentialLeads) &&
		isFinite(r.CurrentRevenue) && isFinite(r.PotentialRevenue) &&
		isFinite(r.RevenueDifference)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatUSD renders v as "$1,250,000", keeping cents only when present.
func FormatUSD(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return sign + "$" + printer.Sprint(v)
	}
	if v == math.Trunc(v) && v < 1e18 {
		return sign + printer.Sprintf("$%d", int64(v))
	}
	return sign + printer.Sprintf("$%.2f", v)
}

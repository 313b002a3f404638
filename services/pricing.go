package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Experience categories. Each maps to its own pricing formula.
const (
	CategoryLocalGuide  = "Local Guide"
	CategoryPhotography = "Photographer"
	CategoryTripPlanner = "Trip Planner"
	CategoryComboGuide  = "Combo Guide"
)

// Photographer package tiers.
const (
	TierBasic    = "basic"
	TierStandard = "standard"
	TierPremium  = "premium"
)

// ServicePhotography inside a combo booking adds 80% of the base price.
const ServicePhotography = "photography"

const comboPhotographySurcharge = 0.8

var tierMultipliers = map[string]float64{
	TierBasic:    1.0,
	TierStandard: 1.5,
	TierPremium:  2.0,
}

// BookingSelections are the form-submitted choices a pricing formula can
// consume. Irrelevant fields are ignored per category.
type BookingSelections struct {
	ParticipantCount int
	PackageTier      string
	Services         []string
}

// CalculateTotal maps (category, base price, selections) to a booking total:
//
//	Local Guide:  base x participants
//	Photographer: base x tier multiplier (basic 1.0, standard 1.5, premium 2.0)
//	Trip Planner: base, fixed
//	Combo Guide:  base, +80% of base when photography is selected
//
// Unknown categories fall back to the Local Guide formula. Totals stay
// unrounded; rounding happens at display time only (see FormatIDR).
func CalculateTotal(category string, basePrice float64, sel BookingSelections) float64 {
	switch category {
	case CategoryPhotography:
		m, ok := tierMultipliers[sel.PackageTier]
		if !ok {
			m = tierMultipliers[TierBasic]
		}
		return basePrice * m
	case CategoryTripPlanner:
		return basePrice
	case CategoryComboGuide:
		total := basePrice
		for _, s := range sel.Services {
			if s == ServicePhotography {
				total += basePrice * comboPhotographySurcharge
				break
			}
		}
		return total
	default:
		participants := sel.ParticipantCount
		if participants < 1 {
			participants = 1
		}
		return basePrice * float64(participants)
	}
}

var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders a total in Indonesian Rupiah, zero fraction digits.
func FormatIDR(total float64) string {
	return idrPrinter.Sprintf("Rp%v", number.Decimal(total, number.MaxFractionDigits(0)))
}

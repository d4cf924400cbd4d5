package models

import (
	"finanzbot/internal/nlp"
)

// Sector is the business category that selects the evaluation thresholds.
type Sector string

const (
	SectorTechnology    Sector = "technology"
	SectorCommerce      Sector = "commerce"
	SectorManufacturing Sector = "manufacturing"
	SectorServices      Sector = "services"
	SectorOther         Sector = "other"
)

// Sectors lists every known sector in display order.
var Sectors = []Sector{SectorTechnology, SectorCommerce, SectorManufacturing, SectorServices, SectorOther}

var sectorAliases = map[string]Sector{
	"technology":    SectorTechnology,
	"tech":          SectorTechnology,
	"tecnologia":    SectorTechnology,
	"commerce":      SectorCommerce,
	"retail":        SectorCommerce,
	"comercio":      SectorCommerce,
	"manufacturing": SectorManufacturing,
	"manufactura":   SectorManufacturing,
	"services":      SectorServices,
	"servicios":     SectorServices,
	"other":         SectorOther,
	"otro":          SectorOther,
}

// ParseSector resolves English or Spanish sector names regardless of case
// and accents. Unrecognized names fold into SectorOther.
func ParseSector(name string) Sector {
	if s, ok := sectorAliases[nlp.Normalize(name)]; ok {
		return s
	}
	return SectorOther
}

// Valid reports whether s is one of the known sectors.
func (s Sector) Valid() bool {
	_, ok := sectorLabels[s]
	return ok
}

var sectorLabels = map[Sector]string{
	SectorTechnology:    "Tecnología",
	SectorCommerce:      "Comercio",
	SectorManufacturing: "Manufactura",
	SectorServices:      "Servicios",
	SectorOther:         "Otro",
}

// Label returns the Spanish display name.
func (s Sector) Label() string {
	if l, ok := sectorLabels[s]; ok {
		return l
	}
	return string(s)
}

// CompanyProfile is the validated input of one analysis. It is never
// mutated; a new submission replaces it.
type CompanyProfile struct {
	Name             string  `json:"name"`
	Sector           Sector  `json:"sector"`
	AnnualEarnings   float64 `json:"annualEarnings"`
	Employees        int     `json:"employees"`
	Receivables      float64 `json:"receivables"`
	TotalAssets      float64 `json:"totalAssets"`
	TotalLiabilities float64 `json:"totalLiabilities"`
}

// ProfileInput is the wire form of a profile as submitted by forms, job
// variables or database rows, before the sector is resolved.
type ProfileInput struct {
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	AnnualEarnings   float64 `json:"annualEarnings"`
	Employees        int     `json:"employees"`
	Receivables      float64 `json:"receivables"`
	TotalAssets      float64 `json:"totalAssets"`
	TotalLiabilities float64 `json:"totalLiabilities"`
}

// Profile resolves the sector and returns the immutable profile.
func (in ProfileInput) Profile() CompanyProfile {
	return CompanyProfile{
		Name:             in.Name,
		Sector:           ParseSector(in.Sector),
		AnnualEarnings:   in.AnnualEarnings,
		Employees:        in.Employees,
		Receivables:      in.Receivables,
		TotalAssets:      in.TotalAssets,
		TotalLiabilities: in.TotalLiabilities,
	}
}

package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Indicator identifies one of the four computed ratios. The declaration
// order is the order recommendations are emitted in.
type Indicator int

const (
	IndicatorDebt Indicator = iota
	IndicatorProfitability
	IndicatorProductivity
	IndicatorTurnover
)

// AllIndicators in declaration order.
var AllIndicators = []Indicator{IndicatorDebt, IndicatorProfitability, IndicatorProductivity, IndicatorTurnover}

func (i Indicator) String() string {
	switch i {
	case IndicatorDebt:
		return "debt"
	case IndicatorProfitability:
		return "profitability"
	case IndicatorProductivity:
		return "productivity"
	case IndicatorTurnover:
		return "turnover"
	}
	return fmt.Sprintf("indicator(%d)", int(i))
}

// IndicatorSet holds the four ratios. Values may be +Inf.
type IndicatorSet struct {
	DebtRatio               float64
	ReturnOnAssets          float64
	ProductivityPerEmployee float64
	ReceivablesTurnoverDays float64
}

// Value returns the raw value of one indicator.
func (s IndicatorSet) Value(i Indicator) float64 {
	switch i {
	case IndicatorDebt:
		return s.DebtRatio
	case IndicatorProfitability:
		return s.ReturnOnAssets
	case IndicatorProductivity:
		return s.ProductivityPerEmployee
	default:
		return s.ReceivablesTurnoverDays
	}
}

type indicatorSetJSON struct {
	DebtRatio               json.RawMessage `json:"debtRatio"`
	ReturnOnAssets          json.RawMessage `json:"returnOnAssets"`
	ProductivityPerEmployee json.RawMessage `json:"productivityPerEmployee"`
	ReceivablesTurnoverDays json.RawMessage `json:"receivablesTurnoverDays"`
}

const infinityLiteral = `"Infinity"`

func encodeRatio(v float64) (json.RawMessage, error) {
	if math.IsInf(v, 1) {
		return json.RawMessage(infinityLiteral), nil
	}
	return json.Marshal(v)
}

func decodeRatio(raw json.RawMessage, field string) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("indicator %s is missing", field)
	}
	if string(raw) == infinityLiteral {
		return math.Inf(1), nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("indicator %s: %w", field, err)
	}
	return v, nil
}

// MarshalJSON writes +Inf as the string "Infinity", which encoding/json
// cannot represent as a number.
func (s IndicatorSet) MarshalJSON() ([]byte, error) {
	var out indicatorSetJSON
	var err error
	if out.DebtRatio, err = encodeRatio(s.DebtRatio); err != nil {
		return nil, err
	}
	if out.ReturnOnAssets, err = encodeRatio(s.ReturnOnAssets); err != nil {
		return nil, err
	}
	if out.ProductivityPerEmployee, err = encodeRatio(s.ProductivityPerEmployee); err != nil {
		return nil, err
	}
	if out.ReceivablesTurnoverDays, err = encodeRatio(s.ReceivablesTurnoverDays); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// UnmarshalJSON rejects sets with a missing indicator.
func (s *IndicatorSet) UnmarshalJSON(data []byte) error {
	var in indicatorSetJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var err error
	if s.DebtRatio, err = decodeRatio(in.DebtRatio, "debtRatio"); err != nil {
		return err
	}
	if s.ReturnOnAssets, err = decodeRatio(in.ReturnOnAssets, "returnOnAssets"); err != nil {
		return err
	}
	if s.ProductivityPerEmployee, err = decodeRatio(in.ProductivityPerEmployee, "productivityPerEmployee"); err != nil {
		return err
	}
	if s.ReceivablesTurnoverDays, err = decodeRatio(in.ReceivablesTurnoverDays, "receivablesTurnoverDays"); err != nil {
		return err
	}
	return nil
}

// Tier is the verdict of one indicator against its sector threshold. The
// zero value marks a verdict that was never computed.
type Tier string

const (
	TierUnknown    Tier = ""
	TierAcceptable Tier = "acceptable"
	TierElevated   Tier = "elevated"
	TierAdequate   Tier = "adequate"
	TierLow        Tier = "low"
)

// Favorable reports whether the tier counts toward the overall status.
func (t Tier) Favorable() bool {
	return t == TierAcceptable || t == TierAdequate
}

// Verdict holds one tier per indicator.
type Verdict struct {
	Debt          Tier `json:"debt"`
	Profitability Tier `json:"profitability"`
	Productivity  Tier `json:"productivity"`
	Turnover      Tier `json:"turnover"`
}

// Tier returns the verdict for one indicator.
func (v Verdict) Tier(i Indicator) Tier {
	switch i {
	case IndicatorDebt:
		return v.Debt
	case IndicatorProfitability:
		return v.Profitability
	case IndicatorProductivity:
		return v.Productivity
	default:
		return v.Turnover
	}
}

// Favorable counts the favorable tiers.
func (v Verdict) Favorable() int {
	n := 0
	for _, i := range AllIndicators {
		if v.Tier(i).Favorable() {
			n++
		}
	}
	return n
}

var allowedTiers = map[Indicator][2]Tier{
	IndicatorDebt:          {TierAcceptable, TierElevated},
	IndicatorProfitability: {TierAdequate, TierLow},
	IndicatorProductivity:  {TierAdequate, TierLow},
	IndicatorTurnover:      {TierAdequate, TierElevated},
}

// TierLabel returns the Spanish adjective used in reports, which agrees in
// gender with the indicator's noun.
func TierLabel(i Indicator, t Tier) string {
	switch {
	case i == IndicatorDebt && t == TierAcceptable:
		return "bueno"
	case i == IndicatorDebt && t == TierElevated:
		return "alto"
	case t == TierAdequate:
		return "buena"
	case t == TierLow:
		return "baja"
	case t == TierElevated:
		return "alta"
	}
	return string(t)
}

// Status is the overall health derived from the favorable count.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusRegular   Status = "regular"
	StatusCritical  Status = "critical"
)

// StatusFromFavorable applies the fixed majority rule: 3-4 favorable is
// Excellent, 2 Good, 1 Regular, 0 Critical.
func StatusFromFavorable(n int) Status {
	switch {
	case n >= 3:
		return StatusExcellent
	case n == 2:
		return StatusGood
	case n == 1:
		return StatusRegular
	default:
		return StatusCritical
	}
}

// Label returns the Spanish display name.
func (s Status) Label() string {
	switch s {
	case StatusExcellent:
		return "Excelente"
	case StatusGood:
		return "Bueno"
	case StatusRegular:
		return "Regular"
	case StatusCritical:
		return "Crítico"
	}
	return string(s)
}

// AnalysisResult is the snapshot produced by one evaluation and reused by
// every later chat turn of the session.
type AnalysisResult struct {
	CompanyName      string       `json:"companyName"`
	Sector           Sector       `json:"sector"`
	Receivables      float64      `json:"receivables"`
	TotalLiabilities float64      `json:"totalLiabilities"`
	Indicators       IndicatorSet `json:"indicators"`
	Verdict          Verdict      `json:"verdict"`
	Status           Status       `json:"status"`
	Recommendations  []string     `json:"recommendations"`
}

// Validate checks the invariants a consumer relies on. A failing snapshot
// was built or stored incorrectly.
func (r *AnalysisResult) Validate() error {
	if r == nil {
		return fmt.Errorf("analysis result is nil")
	}
	if !r.Sector.Valid() {
		return fmt.Errorf("unknown sector %q", r.Sector)
	}
	for _, i := range AllIndicators {
		t := r.Verdict.Tier(i)
		allowed := allowedTiers[i]
		if t != allowed[0] && t != allowed[1] {
			return fmt.Errorf("%s verdict %q is not valid", i, t)
		}
		if math.IsNaN(r.Indicators.Value(i)) {
			return fmt.Errorf("%s value is NaN", i)
		}
	}
	if want := StatusFromFavorable(r.Verdict.Favorable()); r.Status != want {
		return fmt.Errorf("status %q does not match verdict (want %q)", r.Status, want)
	}
	return nil
}

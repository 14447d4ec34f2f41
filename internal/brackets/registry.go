// Package brackets builds the three income choices shown at step 6.
// Their thresholds depend only on household size.
package brackets

import (
	"strconv"
	"strings"

	"primeadapt/internal/model"
)

// Thresholds is the (very modest, modest) yearly reference income cap pair
// for one household size, in euros.
type Thresholds struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// 2024 ANAH caps outside Île-de-France. Index 0 is a single-person household,
// index 5 covers six people or more.
var table = [model.MaxHouseholdSize]Thresholds{
	{Low: 17009, High: 21805},
	{Low: 24875, High: 31889},
	{Low: 29917, High: 38349},
	{Low: 34948, High: 44802},
	{Low: 40002, High: 51281},
	{Low: 45047, High: 57743},
}

// Clamp maps any household size onto the table range.
func Clamp(size int) int {
	if size < 1 {
		return 1
	}
	if size > model.MaxHouseholdSize {
		return model.MaxHouseholdSize
	}
	return size
}

// Lookup returns the thresholds for the given household size.
func Lookup(size int) Thresholds {
	return table[Clamp(size)-1]
}

// Set is a generated bracket list, tagged with the household size it was
// built for.
type Set struct {
	HouseholdSize int            `json:"household_size"`
	Thresholds    Thresholds     `json:"thresholds"`
	Options       []model.Option `json:"options"`
}

// Generate builds exactly three choices: below low, between low and high,
// above high.
func Generate(size int) Set {
	size = Clamp(size)
	th := Lookup(size)
	return Set{
		HouseholdSize: size,
		Thresholds:    th,
		Options: []model.Option{
			{Value: string(model.Tranche1), Label: "Moins de " + FormatEuro(th.Low)},
			{Value: string(model.Tranche2), Label: "Entre " + FormatEuro(th.Low) + " et " + FormatEuro(th.High)},
			{Value: string(model.Tranche3), Label: "Plus de " + FormatEuro(th.High)},
		},
	}
}

// Empty reports whether no brackets were generated yet.
func (s Set) Empty() bool {
	return len(s.Options) == 0
}

// Valid reports whether value is one of this set's choices and the set was
// generated for householdSize.
func (s Set) Valid(value string, householdSize int) bool {
	if s.Empty() || s.HouseholdSize != Clamp(householdSize) || householdSize < 1 {
		return false
	}
	for _, o := range s.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// FormatEuro renders 17009 as "17 009 €".
func FormatEuro(v int) string {
	if v < 0 {
		return "-" + FormatEuro(-v)
	}
	s := strconv.Itoa(v)
	if len(s) <= 3 {
		return s + " €"
	}
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	var b strings.Builder
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(' ')
		b.WriteString(s[i : i+3])
	}
	b.WriteString(" €")
	return b.String()
}

// Package extract pulls fuel prices and the price adjustment notice out of
// m.qiyoujiage.com detail pages.
//
// Both strategies are tied to the vendor's markup: a price table built from
// <dt>label</dt> ... <dd>price</dd> pairs and a <div class="tishi"> block
// holding the next adjustment. Layout changes on the site surface as an empty
// price list, never as an error.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andygrunwald/fuelprice/internal/models"
)

const (
	// KindPattern selects the regular expression extractor.
	KindPattern = "pattern"
	// KindDOM selects the goquery based extractor.
	KindDOM = "dom"
)

// grades are the label substrings of the fuel grades worth reporting.
// Rows like CNG or 89号 are dropped.
var grades = []string{"92", "95", "98", "0号"}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Extractor scans a price page.
type Extractor interface {
	// Prices returns the qualifying price rows in document order.
	Prices(body string) []models.PriceEntry
	// Adjustment returns the next price adjustment, or nil when the page
	// carries no complete notice.
	Adjustment(body string) *models.AdjustmentNotice
}

// New returns the extractor registered under kind.
func New(kind string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindPattern:
		return NewPattern(), nil
	case KindDOM:
		return NewDOM(), nil
	default:
		return nil, fmt.Errorf("unknown extractor: %s", kind)
	}
}

// isCommonGrade reports whether label names one of the reported grades.
func isCommonGrade(label string) bool {
	for _, g := range grades {
		if strings.Contains(label, g) {
			return true
		}
	}
	return false
}

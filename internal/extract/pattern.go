package extract

import (
	"regexp"

	"github.com/andygrunwald/fuelprice/internal/models"
)

var (
	// labelPattern finds every <dt>. A row's price is searched only between
	// its </dt> and the next <dt>, so a row without a usable <dd> never
	// borrows digits from its neighbour.
	labelPattern = regexp.MustCompile(`<dt[^>]*>([\s\S]*?)</dt>`)
	valuePattern = regexp.MustCompile(`<dd[^>]*>([\s\S]*?)(?:</dd>|$)`)

	noticeBlockPattern = regexp.MustCompile(`<div[^>]*\bclass="(?:[^"]*\s)?tishi(?:\s[^"]*)?"[^>]*>([\s\S]*?)</div>`)
	noticeDatePattern  = regexp.MustCompile(`^\s*<span[^>]*>([\s\S]*?)</span>`)
	noticeInfoPattern  = regexp.MustCompile(`<br\s*/?>([\s\S]*?)<br\s*/?>`)
)

// Pattern extracts with regular expressions over the raw HTML.
type Pattern struct{}

// NewPattern creates a new Pattern extractor.
func NewPattern() *Pattern {
	return &Pattern{}
}

// Prices implements Extractor. The site sometimes wraps the price in extra
// markup or currency symbols, so the first number inside the <dd> is taken.
func (p *Pattern) Prices(body string) []models.PriceEntry {
	prices := make([]models.PriceEntry, 0)

	rows := labelPattern.FindAllStringSubmatchIndex(body, -1)
	for i, row := range rows {
		label := cleanText(body[row[2]:row[3]])
		if !isCommonGrade(label) {
			continue
		}

		end := len(body)
		if i+1 < len(rows) {
			end = rows[i+1][0]
		}

		dd := valuePattern.FindStringSubmatch(body[row[1]:end])
		if dd == nil {
			continue
		}

		value := numberPattern.FindString(cleanText(dd[1]))
		if value == "" {
			continue
		}

		prices = append(prices, models.PriceEntry{Label: label, Value: value})
	}

	return prices
}

// Adjustment implements Extractor. The notice block must open with the date
// <span>; the description is the text between the first two <br> that
// follow it inside the block.
func (p *Pattern) Adjustment(body string) *models.AdjustmentNotice {
	block := noticeBlockPattern.FindStringSubmatch(body)
	if block == nil {
		return nil
	}

	date := noticeDatePattern.FindStringSubmatchIndex(block[1])
	if date == nil {
		return nil
	}

	info := noticeInfoPattern.FindStringSubmatch(block[1][date[1]:])
	if info == nil {
		return nil
	}

	return buildNotice(block[1][date[2]:date[3]], info[1])
}

package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/andygrunwald/fuelprice/internal/models"
)

// DOM extracts by walking the parsed document with goquery.
type DOM struct{}

// NewDOM creates a new DOM extractor.
func NewDOM() *DOM {
	return &DOM{}
}

// Prices implements Extractor. Each <dt> is paired with the first <dd>
// sibling that follows it before the next <dt>.
func (d *DOM) Prices(body string) []models.PriceEntry {
	prices := make([]models.PriceEntry, 0)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return prices
	}

	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		label := strings.TrimSpace(dt.Text())
		if !isCommonGrade(label) {
			return
		}

		dd := dt.NextUntil("dt").Filter("dd").First()
		if dd.Length() == 0 {
			return
		}

		value := numberPattern.FindString(dd.Text())
		if value == "" {
			return
		}

		prices = append(prices, models.PriceEntry{Label: label, Value: value})
	})

	return prices
}

// Adjustment implements Extractor. The notice block must open with the date
// <span>; the description is the content between the first two <br>
// elements that follow it.
func (d *DOM) Adjustment(body string) *models.AdjustmentNotice {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	block := doc.Find("div.tishi").First()
	if block.Length() == 0 {
		return nil
	}

	var (
		date   *goquery.Selection
		info   strings.Builder
		breaks int
	)
	block.Contents().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name := goquery.NodeName(s)
		if date == nil {
			if name == "#text" && strings.TrimSpace(s.Text()) == "" {
				return true
			}
			if name != "span" {
				return false
			}
			date = s
			return true
		}

		if name == "br" {
			breaks++
			return breaks < 2
		}
		if breaks == 1 {
			info.WriteString(s.Text())
		}
		return true
	})
	if date == nil || breaks < 2 {
		return nil
	}

	return buildNotice(date.Text(), info.String())
}

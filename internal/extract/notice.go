package extract

import (
	"html"
	"regexp"
	"strings"

	"github.com/andygrunwald/fuelprice/internal/models"
)

// effectiveTime is appended to the date; the site announces changes effective at midnight.
const effectiveTime = "24:00"

var (
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	spacePattern    = regexp.MustCompile(`\s+`)
	monthDayPattern = regexp.MustCompile(`(\d{1,2})月(\d{1,2})日`)
	// perUnitPattern also accepts a leading range such as "0.11-0.13元/升".
	perUnitPattern = regexp.MustCompile(`(\d+(?:\.\d+)?(?:\s*-\s*\d+(?:\.\d+)?)?)\s*元/(升|吨)`)
	rangePattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)\s*元`)

	dateFiller = strings.NewReplacer("国内油价", "", "预计", "", "开启", "")
)

var (
	heldMarkers = []string{"搁浅"}
	downMarkers = []string{"下调", "下跌"}
	upMarkers   = []string{"上调", "上涨"}
)

// buildNotice turns the raw date and description fragments of the notice
// block into an AdjustmentNotice. Blank fragments yield nil.
func buildNotice(rawDate, rawInfo string) *models.AdjustmentNotice {
	date := cleanText(rawDate)
	info := cleanText(rawInfo)
	if date == "" || info == "" {
		return nil
	}

	return &models.AdjustmentNotice{
		Date:   noticeDate(date),
		Trend:  classifyTrend(info),
		Amount: noticeAmount(info),
	}
}

// cleanText drops markup and entity artifacts and collapses whitespace.
func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// classifyTrend checks held, then down, then up markers.
func classifyTrend(info string) models.Trend {
	switch {
	case containsAny(info, heldMarkers):
		return models.TrendHeld
	case containsAny(info, downMarkers):
		return models.TrendDown
	case containsAny(info, upMarkers):
		return models.TrendUp
	default:
		return models.TrendFlat
	}
}

// noticeAmount returns the announced amount, falling back to the whole
// description so nothing is silently dropped.
func noticeAmount(info string) string {
	if m := perUnitPattern.FindStringSubmatch(info); m != nil {
		return strings.ReplaceAll(m[1], " ", "") + "元/" + m[2]
	}
	if m := rangePattern.FindStringSubmatch(info); m != nil {
		return m[1] + "-" + m[2] + "元"
	}
	return info
}

// noticeDate reduces the date fragment to "M月D日 24:00" when possible.
func noticeDate(date string) string {
	if m := monthDayPattern.FindStringSubmatch(date); m != nil {
		return m[1] + "月" + m[2] + "日 " + effectiveTime
	}
	return strings.TrimSpace(dateFiller.Replace(date))
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

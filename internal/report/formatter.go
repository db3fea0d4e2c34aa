package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andygrunwald/fuelprice/internal/models"
)

const (
	// MaxPriceLines caps how many grades are shown.
	MaxPriceLines = 3

	successTitle = "今日油价信息"
	successIcon  = "fuelpump.fill"
	successColor = "#CA3A05"

	errorIcon  = "exclamationmark.triangle.fill"
	errorColor = "#E02020"
)

// Success formats price rows and the optional adjustment notice.
func Success(prices []models.PriceEntry, notice *models.AdjustmentNotice) models.ResultPayload {
	n := len(prices)
	if n > MaxPriceLines {
		n = MaxPriceLines
	}

	lines := make([]string, 0, n)
	for _, p := range prices[:n] {
		lines = append(lines, fmt.Sprintf("%s：%s 元/升", p.Label, p.Value))
	}
	content := strings.Join(lines, "\n")

	if notice != nil {
		content += fmt.Sprintf("\n\n%s %s %s", notice.Date, notice.Trend.Glyph(), notice.Amount)
	}

	return models.ResultPayload{
		Title:     successTitle,
		Content:   content,
		Icon:      successIcon,
		IconColor: successColor,
	}
}

// Error formats a failure. Errors that are not a *Failure are reported as
// internal exceptions.
func Error(err error) models.ResultPayload {
	var f *Failure
	if !errors.As(err, &f) {
		f = &Failure{Kind: KindInternal, Err: err}
	}

	var title, content string
	switch f.Kind {
	case KindTransport:
		title = "油价查询失败"
		content = "网络请求失败，请检查网络连接后重试"
	case KindHTTPStatus:
		title = "油价查询失败"
		content = fmt.Sprintf("服务器返回异常状态码 %d，请稍后重试", f.StatusCode)
	case KindNotFoundPage:
		title = "油价查询失败"
		content = fmt.Sprintf("页面不存在，地区代码 %q 可能错误，请检查 URL 格式", f.Region)
	case KindConfigurationHint:
		title = "地区配置错误"
		content = fmt.Sprintf("地区 %q 仅精确到省份，请使用 province/city 格式（如 sichuan/chengdu）", f.Region)
	case KindStructureChanged:
		title = "油价数据解析失败"
		content = "未能匹配到油价数据，网站结构可能已变更或地区代码有误"
	default:
		title = "脚本执行异常"
		content = "解析油价数据时发生异常，请查看日志"
	}

	return models.ResultPayload{
		Title:     title,
		Content:   content,
		Icon:      errorIcon,
		IconColor: errorColor,
	}
}

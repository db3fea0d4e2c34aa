package report

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andygrunwald/fuelprice/internal/models"
)

func TestSuccess(t *testing.T) {
	prices := []models.PriceEntry{
		{Label: "92号汽油", Value: "7.85"},
		{Label: "95号汽油", Value: "8.35"},
	}

	got := Success(prices, nil)
	assert.Equal(t, "今日油价信息", got.Title)
	assert.Equal(t, "92号汽油：7.85 元/升\n95号汽油：8.35 元/升", got.Content)
	assert.Equal(t, "fuelpump.fill", got.Icon)
	assert.Equal(t, "#CA3A05", got.IconColor)
}

func TestSuccessCapsLinesAndAppendsNotice(t *testing.T) {
	prices := []models.PriceEntry{
		{Label: "92号汽油", Value: "7.85"},
		{Label: "95号汽油", Value: "8.35"},
		{Label: "98号汽油", Value: "9.13"},
		{Label: "0号柴油", Value: "7.52"},
	}
	notice := &models.AdjustmentNotice{Date: "10月24日 24:00", Trend: models.TrendDown, Amount: "120元/吨"}

	got := Success(prices, notice)
	assert.Equal(t,
		"92号汽油：7.85 元/升\n95号汽油：8.35 元/升\n98号汽油：9.13 元/升\n\n10月24日 24:00 📉 下跌 120元/吨",
		got.Content)
}

func TestSuccessNoticeGlyphs(t *testing.T) {
	prices := []models.PriceEntry{{Label: "92号汽油", Value: "7.85"}}

	tests := []struct {
		trend models.Trend
		want  string
	}{
		{models.TrendUp, "📈 上涨"},
		{models.TrendDown, "📉 下跌"},
		{models.TrendHeld, "⏸ 搁浅"},
		{models.TrendFlat, "平稳"},
	}

	for _, tt := range tests {
		t.Run(string(tt.trend), func(t *testing.T) {
			got := Success(prices, &models.AdjustmentNotice{Date: "d", Trend: tt.trend, Amount: "a"})
			assert.Equal(t, "92号汽油：7.85 元/升\n\nd "+tt.want+" a", got.Content)
		})
	}
}

func TestEmptyResult(t *testing.T) {
	assert.Equal(t, KindConfigurationHint, EmptyResult("sichuan", "u").Kind)
	assert.Equal(t, KindStructureChanged, EmptyResult("sichuan/chengdu", "u").Kind)
}

func TestErrorPayloads(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantTitle string
		contains  string
	}{
		{"transport", &Failure{Kind: KindTransport, Err: errors.New("dial tcp: timeout")}, "油价查询失败", "网络请求失败"},
		{"status", &Failure{Kind: KindHTTPStatus, StatusCode: 503}, "油价查询失败", "503"},
		{"not found", &Failure{Kind: KindNotFoundPage, Region: "foo/bar"}, "油价查询失败", "地区代码"},
		{"configuration", EmptyResult("sichuan", ""), "地区配置错误", "province/city"},
		{"structure", EmptyResult("sichuan/chengdu", ""), "油价数据解析失败", "网站结构"},
		{"internal", &Failure{Kind: KindInternal}, "脚本执行异常", "异常"},
		{"plain error", errors.New("boom"), "脚本执行异常", "异常"},
		{"wrapped failure", fmt.Errorf("run: %w", &Failure{Kind: KindHTTPStatus, StatusCode: 500}), "油价查询失败", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Error(tt.err)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Contains(t, got.Content, tt.contains)
			assert.NotEmpty(t, got.Icon)
		})
	}
}

func TestErrorPayloadsAreDistinct(t *testing.T) {
	kinds := []*Failure{
		{Kind: KindTransport},
		{Kind: KindHTTPStatus, StatusCode: 502},
		{Kind: KindNotFoundPage, Region: "x/y"},
		{Kind: KindConfigurationHint, Region: "x"},
		{Kind: KindStructureChanged, Region: "x/y"},
		{Kind: KindInternal},
	}

	seen := make(map[string]Kind)
	for _, f := range kinds {
		p := Error(f)
		key := p.Title + "|" + p.Content
		if prev, ok := seen[key]; ok {
			t.Errorf("payload for %s duplicates %s", f.Kind, prev)
		}
		seen[key] = f.Kind
	}
}

func TestFailureError(t *testing.T) {
	cause := errors.New("connection refused")
	f := &Failure{Kind: KindTransport, Region: "beijing", Err: cause}

	assert.ErrorIs(t, f, cause)
	assert.Contains(t, f.Error(), "transport_error")
	assert.Contains(t, f.Error(), "connection refused")
	assert.Equal(t, KindTransport, KindOf(fmt.Errorf("wrapped: %w", f)))
	assert.Equal(t, Kind(""), KindOf(cause))
}

package region

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/andygrunwald/fuelprice/internal/kv"
	"github.com/andygrunwald/fuelprice/internal/models"
)

type failingReader struct{}

func (failingReader) Read(context.Context, string) (string, error) {
	return "", errors.New("store unavailable")
}

func TestResolve(t *testing.T) {
	stored := kv.NewMemory(map[string]string{DefaultKey: " sichuan/chengdu "})
	blank := kv.NewMemory(map[string]string{DefaultKey: "   "})

	tests := []struct {
		name  string
		store kv.Reader
		arg   string
		want  models.RegionID
	}{
		{"argument wins", stored, "beijing", "beijing"},
		{"argument is trimmed", stored, "  guangdong/shenzhen\n", "guangdong/shenzhen"},
		{"blank argument falls through to store", stored, "   ", "sichuan/chengdu"},
		{"stored value", stored, "", "sichuan/chengdu"},
		{"blank stored value", blank, "", DefaultRegion},
		{"missing key", kv.NewMemory(nil), "", DefaultRegion},
		{"store error is swallowed", failingReader{}, "", DefaultRegion},
		{"nil store", nil, "", DefaultRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.store, DefaultKey, DefaultRegion, zerolog.Nop())
			assert.Equal(t, tt.want, r.Resolve(context.Background(), tt.arg))
		})
	}
}

func TestResolveCustomKeyAndFallback(t *testing.T) {
	store := kv.NewMemory(map[string]string{"region": "hubei/wuhan"})

	r := NewResolver(store, "region", "beijing", zerolog.Nop())
	assert.Equal(t, models.RegionID("hubei/wuhan"), r.Resolve(context.Background(), ""))

	r = NewResolver(kv.NewMemory(nil), "", "", zerolog.Nop())
	assert.Equal(t, DefaultRegion, r.Resolve(context.Background(), ""))
}

package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlatform(t *testing.T) {
	r := NewRouter("euw1")

	tests := []struct {
		name string
		code string
		want Platform
	}{
		{"canonical", "na1", "na1"},
		{"upper case", "KR", "kr"},
		{"padded", "  eun1 ", "eun1"},
		{"unknown", "euw", "euw1"},
		{"empty", "", "euw1"},
		{"garbage", "../../etc", "euw1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.NormalizePlatform(tt.code))
		})
	}
}

func TestRegionForPlatform(t *testing.T) {
	r := NewRouter("euw1")

	assert.Equal(t, RegionAmericas, r.RegionForPlatform("na1"))
	assert.Equal(t, RegionAmericas, r.RegionForPlatform("la2"))
	assert.Equal(t, RegionEurope, r.RegionForPlatform("tr1"))
	assert.Equal(t, RegionAsia, r.RegionForPlatform("jp1"))
	assert.Equal(t, RegionSEA, r.RegionForPlatform("vn2"))
	assert.Equal(t, DefaultRegion, r.RegionForPlatform("nope"))
}

func TestEveryPlatformHasRegion(t *testing.T) {
	r := NewRouter("")
	for p, region := range platformRegions {
		assert.Equal(t, region, r.RegionForPlatform(p), string(p))
		assert.Contains(t, []Region{RegionAmericas, RegionEurope, RegionAsia, RegionSEA}, region)
	}
}

func TestResolveUnknownUsesDefaultAndItsRegion(t *testing.T) {
	r := NewRouter("kr")

	p, region := r.Resolve("xx9")
	assert.Equal(t, Platform("kr"), p)
	assert.Equal(t, RegionAsia, region)
}

func TestNewRouterRejectsUnknownFallback(t *testing.T) {
	r := NewRouter("moon1")
	assert.Equal(t, DefaultPlatform, r.Default())
	assert.True(t, Known("BR1"))
	assert.False(t, Known("moon1"))
}

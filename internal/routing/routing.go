// Package routing maps platform shards to the regional routing values the
// provider uses for account and match endpoints.
package routing

import (
	"strings"
)

type (
	Platform string
	Region   string
)

const (
	RegionAmericas Region = "americas"
	RegionEurope   Region = "europe"
	RegionAsia     Region = "asia"
	RegionSEA      Region = "sea"
)

const (
	DefaultPlatform Platform = "euw1"
	DefaultRegion   Region   = RegionEurope
)

var platformRegions = map[Platform]Region{
	"na1":  RegionAmericas,
	"br1":  RegionAmericas,
	"la1":  RegionAmericas,
	"la2":  RegionAmericas,
	"euw1": RegionEurope,
	"eun1": RegionEurope,
	"tr1":  RegionEurope,
	"ru":   RegionEurope,
	"me1":  RegionEurope,
	"kr":   RegionAsia,
	"jp1":  RegionAsia,
	"oc1":  RegionSEA,
	"ph2":  RegionSEA,
	"sg2":  RegionSEA,
	"th2":  RegionSEA,
	"tw2":  RegionSEA,
	"vn2":  RegionSEA,
}

// Known reports whether code names a supported platform shard.
func Known(code string) bool {
	_, ok := platformRegions[Platform(clean(code))]
	return ok
}

type Router struct {
	fallback Platform
}

// NewRouter builds a router falling back to the given platform for unknown
// codes. An unknown fallback is itself replaced by DefaultPlatform.
func NewRouter(fallback string) *Router {
	p := Platform(clean(fallback))
	if _, ok := platformRegions[p]; !ok {
		p = DefaultPlatform
	}
	return &Router{fallback: p}
}

func (r *Router) Default() Platform {
	return r.fallback
}

// NormalizePlatform returns the canonical code for a user supplied platform,
// or the router default when the code is not recognised.
func (r *Router) NormalizePlatform(code string) Platform {
	p := Platform(clean(code))
	if _, ok := platformRegions[p]; ok {
		return p
	}
	return r.fallback
}

// RegionForPlatform returns the regional routing value for a platform, or
// DefaultRegion for unmapped platforms.
func (r *Router) RegionForPlatform(p Platform) Region {
	if region, ok := platformRegions[p]; ok {
		return region
	}
	return DefaultRegion
}

// Resolve normalizes the platform and pairs it with its region.
func (r *Router) Resolve(code string) (Platform, Region) {
	p := r.NormalizePlatform(code)
	return p, r.RegionForPlatform(p)
}

func clean(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

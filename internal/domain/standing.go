package domain

import (
	"slices"
	"strings"
)

type Tier string

const (
	TierUnranked    Tier = "UNRANKED"
	TierIron        Tier = "IRON"
	TierBronze      Tier = "BRONZE"
	TierSilver      Tier = "SILVER"
	TierGold        Tier = "GOLD"
	TierPlatinum    Tier = "PLATINUM"
	TierEmerald     Tier = "EMERALD"
	TierDiamond     Tier = "DIAMOND"
	TierMaster      Tier = "MASTER"
	TierGrandmaster Tier = "GRANDMASTER"
	TierChallenger  Tier = "CHALLENGER"
)

// Lowest first.
var tierOrder = []Tier{
	TierIron, TierBronze, TierSilver, TierGold, TierPlatinum,
	TierEmerald, TierDiamond, TierMaster, TierGrandmaster, TierChallenger,
}

// Division IV is the lowest. The zero value means "no division" and is
// what an unranked player carries.
type Division string

const (
	DivisionNone Division = ""
	DivisionIV   Division = "IV"
	DivisionIII  Division = "III"
	DivisionII   Division = "II"
	DivisionI    Division = "I"
)

var divisionOrder = []Division{DivisionIV, DivisionIII, DivisionII, DivisionI}

func ParseTier(s string) (Tier, bool) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	if slices.Contains(tierOrder, t) {
		return t, true
	}
	return TierUnranked, false
}

func ParseDivision(s string) (Division, bool) {
	d := Division(strings.ToUpper(strings.TrimSpace(s)))
	if slices.Contains(divisionOrder, d) {
		return d, true
	}
	return DivisionNone, false
}

// Value is the position of the tier in ranked order, -1 for unranked.
func (t Tier) Value() int {
	return slices.Index(tierOrder, t)
}

// Value is the position of the division in ranked order, -1 for none.
func (d Division) Value() int {
	return slices.Index(divisionOrder, d)
}

type Standing struct {
	Tier     Tier
	Division Division
	LP       int
}

// Compare orders standings by tier, then division, then league points.
// It returns a negative number when a ranks below b, zero when equal and a
// positive number when a ranks above b.
func Compare(a, b Standing) int {
	if d := a.Tier.Value() - b.Tier.Value(); d != 0 {
		return d
	}
	if d := a.Division.Value() - b.Division.Value(); d != 0 {
		return d
	}
	return a.LP - b.LP
}

// SortLadder orders profiles from the highest standing to the lowest.
// Equal standings keep their input order.
func SortLadder(profiles []*PlayerProfile) {
	slices.SortStableFunc(profiles, func(a, b *PlayerProfile) int {
		return Compare(b.Standing(), a.Standing())
	})
}

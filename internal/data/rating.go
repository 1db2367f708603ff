package data

// Rating names a row of the combat-ratings table.
type Rating uint8

const (
	RatingExpertise Rating = iota
	RatingHasteMelee
	RatingCritMelee
	RatingHitMelee
	RatingHitSpell
	RatingDodge
	RatingParry
	RatingMastery

	RatingCount
)

var ratingKeys = [RatingCount]string{
	RatingExpertise:  "expertise",
	RatingHasteMelee: "haste melee",
	RatingCritMelee:  "crit melee",
	RatingHitMelee:   "hit melee",
	RatingHitSpell:   "hit spell",
	RatingDodge:      "dodge",
	RatingParry:      "parry",
	RatingMastery:    "mastery",
}

// Ratings returns every rating in declaration order.
func Ratings() []Rating {
	out := make([]Rating, 0, RatingCount)
	for r := Rating(0); r < RatingCount; r++ {
		out = append(out, r)
	}
	return out
}

// Key returns the combat-ratings table key for the rating.
func (r Rating) Key() string {
	if r >= RatingCount {
		return ""
	}
	return ratingKeys[r]
}

func (r Rating) String() string { return r.Key() }

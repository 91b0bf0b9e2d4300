package recommendation

import (
	"myFashionHub/domain"
	"regexp"
	"strconv"
	"time"
)

// Additive relevance weights. A candidate's score is the sum of every
// signal that applies; signals never subtract.
const (
	scoreCategoryMatch  = 40
	scoreBrandMatch     = 20
	scorePriceProximity = 15
	scoreWishlisted     = 15
	scoreViewedCategory = 10
	scoreViewedBrand    = 5
	scoreDeepDiscount   = 5

	// Price proximity: within ±30% of the reference price.
	priceProximityRatio = 0.30

	// Discount boost kicks in at 30% off or more.
	deepDiscountThreshold = 30

	recentViewWindow = 30 * 24 * time.Hour
	recentViewLimit  = 50

	defaultLimit = 10
)

// Matches the first percentage in free-form discount labels like
// "Flat 40% OFF" or "30-60% off".
var discountPercentPattern = regexp.MustCompile(`(\d+)%`)

// userSignals is the per-request personalization state. The browsing
// bonuses depend only on the reference product, so they resolve to two
// booleans applied uniformly to every candidate.
type userSignals struct {
	wishlisted              map[uint64]struct{}
	viewedReferenceCategory bool
	viewedReferenceBrand    bool
}

func scoreCandidate(
	reference, candidate domain.Product,
	categorySet map[uint64]struct{},
	signals *userSignals,
) int {
	score := 0

	if _, ok := categorySet[candidate.ID]; ok {
		score += scoreCategoryMatch
	}

	if candidate.Brand == reference.Brand {
		score += scoreBrandMatch
	}

	if priceWithinRange(reference.Price, candidate.Price) {
		score += scorePriceProximity
	}

	if signals != nil {
		if _, ok := signals.wishlisted[candidate.ID]; ok {
			score += scoreWishlisted
		}
		if signals.viewedReferenceCategory {
			score += scoreViewedCategory
		}
		if signals.viewedReferenceBrand {
			score += scoreViewedBrand
		}
	}

	if discountPercent(candidate.Discount) >= deepDiscountThreshold {
		score += scoreDeepDiscount
	}

	return score
}

func priceWithinRange(referencePrice, candidatePrice float64) bool {
	if referencePrice <= 0 {
		return false
	}
	delta := referencePrice * priceProximityRatio
	return candidatePrice >= referencePrice-delta && candidatePrice <= referencePrice+delta
}

// discountPercent extracts the numeric percentage from a discount
// label, or 0 when none is present.
func discountPercent(label string) int {
	match := discountPercentPattern.FindStringSubmatch(label)
	if match == nil {
		return 0
	}

	percent, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}

	return percent
}

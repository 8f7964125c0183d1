package hole

import (
	"math"
	"sort"

	"target-scorer/internal/target"
)

// Classify buckets detector candidates into accepted, suggested, and
// rejected sets. The caller is responsible for validating cfg; presets
// and the config loader always satisfy the threshold ordering invariant.
//
// Each candidate is classified independently, in this order:
//
//  1. Circularity below MinCircularity rejects, regardless of confidence.
//  2. With FilterScoringRingArtifacts, a candidate whose normalized
//     radial distance lies within ScoringRingTolerance of any ring radius
//     rejects: printed ring lines photograph like small holes.
//  3. Confidence tiers decide the rest. Threshold boundaries are
//     inclusive on the higher tier.
//
// Classification is deterministic and total: identical input always
// yields identical sets, and every candidate lands in exactly one set.
func Classify(candidates []Candidate, rings target.RingTable, cfg DetectionConfig) Classification {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sortCandidates(ordered)

	var result Classification
	var lowerBand []Candidate

	for _, cand := range ordered {
		switch {
		case cand.Circularity < cfg.MinCircularity:
			cand.FilterReason = ReasonLowCircularity
			result.Rejected = append(result.Rejected, cand)

		case cfg.FilterScoringRingArtifacts &&
			nearRingBoundary(cand, rings, cfg.ScoringRingTolerance):
			cand.FilterReason = ReasonRingArtifact
			result.Rejected = append(result.Rejected, cand)

		case cand.Confidence >= cfg.AutoAcceptConfidence:
			result.Accepted = append(result.Accepted, cand)

		case cand.Confidence >= cfg.SuggestionConfidence:
			result.Suggested = append(result.Suggested, cand)

		case cand.Confidence >= cfg.MinimumConfidence:
			// Below the suggestion threshold but above the floor: still
			// suggested, ranked after the upper band.
			lowerBand = append(lowerBand, cand)

		default:
			cand.FilterReason = ReasonLowConfidence
			result.Rejected = append(result.Rejected, cand)
		}
	}

	result.Suggested = append(result.Suggested, lowerBand...)
	return result
}

// nearRingBoundary reports whether the candidate's normalized distance
// from target center sits within tolerance of any scoring ring radius.
func nearRingBoundary(cand Candidate, rings target.RingTable, tolerance float64) bool {
	d := cand.NormalizedPosition.Norm()
	for _, r := range rings {
		if math.Abs(d-r.Radius) <= tolerance {
			return true
		}
	}
	return false
}

// SortByDistanceFrom orders candidates by distance from a normalized
// point, nearest first. Used by overlay tooling to pair suggestions with
// operator taps.
func SortByDistanceFrom(candidates []Candidate, x, y float64) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di := math.Hypot(candidates[i].NormalizedPosition.X-x, candidates[i].NormalizedPosition.Y-y)
		dj := math.Hypot(candidates[j].NormalizedPosition.X-x, candidates[j].NormalizedPosition.Y-y)
		return di < dj
	})
}

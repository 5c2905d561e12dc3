package matcher

import "math"

// CosineSimilarity returns a·b / (|a||b|). Mismatched lengths or a zero vector yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// MatchPercent converts a similarity to a percentage rounded to two decimals.
func MatchPercent(similarity float64) float64 {
	return math.Round(similarity*100*100) / 100
}

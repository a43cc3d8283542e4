package review

import (
	"strings"

	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/utils"
)

// Composite weighs semantic relevance, technical depth and innovation.
func Composite(semantic float64, technical, innovation int) float64 {
	return semantic*0.4 + float64(technical)*0.4 + float64(innovation)*0.2
}

// DetermineRanking honours a top-tier or strong assertion from the model and
// otherwise derives the tier from the composite score.
func DetermineRanking(claimed, text string, semantic float64, technical, innovation int) domain.Ranking {
	if r, ok := assertedRanking(claimed, text); ok {
		return r
	}

	composite := Composite(semantic, technical, innovation)
	switch {
	case composite >= 85 && technical >= 80:
		return domain.RankingTopTier
	case composite >= 75:
		return domain.RankingStrong
	case composite >= 60:
		return domain.RankingGood
	case composite >= 45:
		return domain.RankingAverage
	default:
		return domain.RankingBelowAverage
	}
}

// assertedRanking looks for a tier claim in the ranking field first and then
// in the full reply. A bare "strong" only counts inside the ranking field.
func assertedRanking(claimed, text string) (domain.Ranking, bool) {
	if r, ok := tierClaim(claimed, "strong"); ok {
		return r, true
	}
	return tierClaim(text, "strong candidate")
}

func tierClaim(s, strongPhrase string) (domain.Ranking, bool) {
	lower := strings.ToLower(s)
	normalized := utils.Normalize(s)
	switch {
	case strings.Contains(lower, "top 5%"),
		utils.ContainsPhrase(normalized, "top tier"),
		utils.ContainsPhrase(normalized, "toptier"):
		return domain.RankingTopTier, true
	case strings.Contains(lower, "top 20%"),
		utils.ContainsPhrase(normalized, strongPhrase):
		return domain.RankingStrong, true
	}
	return "", false
}

// RecommendationFor maps a ranking and semantic score to a recommendation.
func RecommendationFor(r domain.Ranking, semantic float64) domain.Recommendation {
	switch {
	case r == domain.RankingTopTier && semantic >= 80:
		return domain.RecommendStrongly
	case r == domain.RankingTopTier || r == domain.RankingStrong:
		return domain.Recommend
	case r == domain.RankingGood:
		return domain.RecommendConsider
	default:
		return domain.RecommendNot
	}
}

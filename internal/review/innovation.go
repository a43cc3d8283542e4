package review

import (
	"strings"

	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/utils"
)

var innovationKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "ml", "deep learning", "llm",
	"blockchain", "web3", "microservices", "real time", "realtime", "graphql", "rust",
	"serverless", "distributed", "kubernetes", "event driven", "webassembly", "wasm",
	"computer vision", "nlp", "iot", "edge computing", "streaming",
}

const (
	innovationBase      = 50
	manyKeywordsBonus   = 15
	someKeywordsBonus   = 8
	complexProjectBonus = 10
	activeCIBonus       = 5
	recentActivityBonus = 5
)

// InnovationScore is computed locally from project text and signals.
func InnovationScore(signals []domain.ProjectSignal) int {
	score := innovationBase
	for _, s := range signals {
		p := s.Project()
		switch hits := keywordHits(p); {
		case hits >= 3:
			score += manyKeywordsBonus
		case hits > 0:
			score += someKeywordsBonus
		}

		complexity := p.Complexity
		if e, ok := s.(domain.Enriched); ok {
			if e.Repo.Complexity.Level() > complexity.Level() {
				complexity = e.Repo.Complexity
			}
			if e.Repo.HasCICD {
				score += activeCIBonus
			}
			if e.Repo.HasRecentActivity {
				score += recentActivityBonus
			}
		}
		if complexity.Level() >= domain.ComplexityComplex.Level() {
			score += complexProjectBonus
		}
	}
	return domain.ClampScore(score)
}

func keywordHits(p domain.DeclaredProject) int {
	text := utils.Normalize(strings.Join([]string{
		p.Title,
		p.Description,
		strings.Join(p.Technologies, " "),
		p.Documentation,
	}, " "))

	hits := 0
	for _, kw := range innovationKeywords {
		if utils.ContainsPhrase(text, kw) {
			hits++
		}
	}
	return hits
}

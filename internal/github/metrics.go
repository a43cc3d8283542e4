package github

import (
	"math"
	"strings"
	"time"

	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/utils"
)

const (
	recentWindow = 30 * 24 * time.Hour
	activeMonths = 6
)

var (
	testMarkers = []string{"test", "tests", "testing", "unit test", "e2e", "coverage", "tdd", "jest", "pytest"}
	ciMarkers   = []string{"ci", "cicd", "ci cd", "github actions", "actions", "workflow", "pipeline", "travis", "circleci", "jenkins"}
)

func (s *snapshot) derive(now time.Time) domain.RepositorySignals {
	sig := domain.RepositorySignals{
		Languages:    languageShares(s.languages),
		CommitCount:  len(s.commits),
		Contributors: len(s.contributors),
		Size:         s.meta.Size,
		Stars:        s.meta.Stars,
		Forks:        s.meta.Forks,
		LastActivity: parseTime(s.meta.PushedAt),
	}

	for _, c := range s.commits {
		at := parseTime(c.Commit.Author.Date)
		if at.After(sig.LastCommitAt) {
			sig.LastCommitAt = at
		}
		if !at.IsZero() && now.Sub(at) <= recentWindow {
			sig.RecentCommits++
		}
	}

	for _, c := range s.contributors {
		sig.TotalContributorCommits += c.Contributions
	}

	for _, i := range s.issues {
		if i.PullRequest != nil {
			continue
		}
		if i.State == "closed" {
			sig.ClosedIssues++
		} else {
			sig.OpenIssues++
		}
	}

	if created := parseTime(s.meta.CreatedAt); !created.IsZero() {
		sig.RepositoryAgeMonths = int(now.Sub(created).Hours() / 24 / 30)
	}

	sig.CodeQuality = codeQuality(sig)
	sig.Complexity = classify(sig, len(s.languages))
	sig.ArchitectureScore = architectureScore(len(s.languages), sig.Size, sig.Contributors)
	sig.DocumentationScore = documentationScore(s.meta)

	markers := s.markerText()
	sig.HasTests = containsAny(markers, testMarkers)
	sig.HasCICD = containsAny(markers, ciMarkers)

	sig.IsActive = !sig.LastActivity.IsZero() && sig.LastActivity.After(now.AddDate(0, -activeMonths, 0))
	sig.HasRecentActivity = !sig.LastCommitAt.IsZero() && now.Sub(sig.LastCommitAt) <= recentWindow

	return sig
}

func languageShares(bytes map[string]int) map[string]float64 {
	total := 0
	for _, n := range bytes {
		total += n
	}
	if total == 0 {
		return nil
	}
	out := make(map[string]float64, len(bytes))
	for lang, n := range bytes {
		out[lang] = math.Round(float64(n)/float64(total)*1000) / 10
	}
	return out
}

// codeQuality: recent commits up to 40, stars up to 15, forks up to 15 and
// issue health up to 30 (15 when the repository has no issues).
func codeQuality(s domain.RepositorySignals) int {
	score := math.Min(float64(s.RecentCommits*2), 40) +
		math.Min(float64(s.Stars*2), 15) +
		math.Min(float64(s.Forks*3), 15)

	if total := s.OpenIssues + s.ClosedIssues; total > 0 {
		score += float64(s.ClosedIssues) / float64(total) * 30
	} else {
		score += 15
	}

	return domain.ClampScore(int(math.Round(score)))
}

func classify(s domain.RepositorySignals, languages int) domain.Complexity {
	commits := max(s.CommitCount, s.TotalContributorCommits)
	switch {
	case s.Size > 10000 || languages > 5 || commits > 100 || s.RepositoryAgeMonths > 12:
		return domain.ComplexityComplex
	case s.Size > 1000 || languages > 2 || commits > 20 || s.RepositoryAgeMonths > 3:
		return domain.ComplexityMedium
	default:
		return domain.ComplexitySimple
	}
}

func architectureScore(languages, size, contributors int) int {
	score := 30 + min(languages*10, 30)
	if size > 1000 {
		score += 20
	}
	if size > 10000 {
		score += 10
	}
	if contributors > 1 {
		score += 10
	}
	return domain.ClampScore(score)
}

func documentationScore(m repoMeta) int {
	score := 20
	if strings.TrimSpace(m.Description) != "" {
		score += 20
	}
	if strings.TrimSpace(m.Homepage) != "" {
		score += 15
	}
	if len(m.Topics) > 0 {
		score += 15
	}
	if m.HasWiki {
		score += 10
	}
	if m.License != nil && m.License.Key != "" {
		score += 20
	}
	return domain.ClampScore(score)
}

// markerText joins topics, description and commit messages for heuristics.
func (s *snapshot) markerText() string {
	parts := append([]string{s.meta.Description}, s.meta.Topics...)
	for _, c := range s.commits {
		parts = append(parts, c.Commit.Message)
	}
	return utils.Normalize(strings.Join(parts, " "))
}

func containsAny(normalized string, phrases []string) bool {
	for _, p := range phrases {
		if utils.ContainsPhrase(normalized, p) {
			return true
		}
	}
	return false
}

package review

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/utils"
)

const (
	maxProjectsInPrompt = 8
	projectBlockLimit   = 900
	jobBlockLimit       = 1500
)

func jobBlock(job *domain.JobRequirement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	if job.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", job.Category)
	}
	fmt.Fprintf(&b, "Description: %s\n", strings.TrimSpace(job.Description))
	fmt.Fprintf(&b, "Required skills: %s\n", listOrNone(job.RequiredSkills))
	fmt.Fprintf(&b, "Preferred skills: %s\n", listOrNone(job.PreferredSkills))
	fmt.Fprintf(&b, "Experience: %.0f-%.0f years, %s level\n", job.Experience.Min, job.Experience.Max, job.Experience.Level)
	fmt.Fprintf(&b, "Required technologies: %s\n", listOrNone(job.Projects.RequiredTechnologies))
	fmt.Fprintf(&b, "Minimum project complexity: %s", valueOrNone(string(job.Projects.MinimumComplexity)))
	return utils.TruncateForLog(b.String(), jobBlockLimit)
}

func candidateBlock(app *domain.Application, semantic domain.SemanticResult, technical domain.TechnicalResult, innovation int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Experience: %.1f years\n", app.ExperienceYears)
	fmt.Fprintf(&b, "Skills: %s\n", listOrNone(app.SkillNames()))
	fmt.Fprintf(&b, "Projects: %d\n", len(app.Projects))
	fmt.Fprintf(&b, "Semantic relevance: %.1f/100\n", semantic.Score)
	fmt.Fprintf(&b, "Technical depth: %d/100\n", technical.Score)
	fmt.Fprintf(&b, "Innovation: %d/100", innovation)
	return b.String()
}

func projectBlocks(signals []domain.ProjectSignal, semantic domain.SemanticResult, technical domain.TechnicalResult) string {
	if len(signals) == 0 {
		return "No projects declared."
	}

	blocks := make([]string, 0, min(len(signals), maxProjectsInPrompt))
	for i, s := range signals {
		if i == maxProjectsInPrompt {
			break
		}
		blocks = append(blocks, utils.TruncateForLog(projectBlock(i, s, semantic, technical), projectBlockLimit))
	}
	return strings.Join(blocks, "\n\n")
}

func projectBlock(i int, signal domain.ProjectSignal, semantic domain.SemanticResult, technical domain.TechnicalResult) string {
	p := signal.Project()

	var b strings.Builder
	fmt.Fprintf(&b, "### Project %d: %s\n", i+1, p.Title)
	if i < len(semantic.Projects) {
		fmt.Fprintf(&b, "Semantic relevance: %.1f/100\n", semantic.Projects[i].Score)
	}
	if i < len(technical.Projects) {
		fmt.Fprintf(&b, "Technical score: %d/100\n", technical.Projects[i].Score)
	}
	fmt.Fprintf(&b, "Technologies: %s\n", listOrNone(p.Technologies))
	fmt.Fprintf(&b, "Declared complexity: %s\n", valueOrNone(string(p.Complexity)))
	if d := strings.TrimSpace(p.Description); d != "" {
		fmt.Fprintf(&b, "Description: %s\n", d)
	}

	switch s := signal.(type) {
	case domain.Enriched:
		r := s.Repo
		fmt.Fprintf(&b, "Repository: %s/%s, %d commits (%d in the last 30 days), %d contributors, %d stars, %d forks\n",
			r.Owner, r.Name, max(r.CommitCount, r.TotalContributorCommits), r.RecentCommits, r.Contributors, r.Stars, r.Forks)
		fmt.Fprintf(&b, "Languages: %s\n", languages(r.Languages))
		fmt.Fprintf(&b, "Code quality: %d, architecture: %d, documentation: %d\n", r.CodeQuality, r.ArchitectureScore, r.DocumentationScore)
		fmt.Fprintf(&b, "Measured complexity: %s, tests: %t, CI/CD: %t, active: %t", r.Complexity, r.HasTests, r.HasCICD, r.IsActive)
	case domain.Declared:
		fmt.Fprintf(&b, "Repository data: unavailable (%s)", valueOrNone(s.Reason))
	}

	return b.String()
}

func languages(shares map[string]float64) string {
	if len(shares) == 0 {
		return "none"
	}
	names := make([]string, 0, len(shares))
	for name := range shares {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if shares[names[i]] == shares[names[j]] {
			return names[i] < names[j]
		}
		return shares[names[i]] > shares[names[j]]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", name, shares[name]))
	}
	return strings.Join(parts, ", ")
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func valueOrNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "none"
	}
	return v
}

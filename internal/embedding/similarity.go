package embedding

import (
	"math"
	"strings"

	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/utils"
)

const documentPreviewLength = 500

// Similarity is the cosine similarity of a and b rescaled from [-1,1] to
// [0,100]. Empty or mismatched vectors score 0.
func Similarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(na) * math.Sqrt(nb))
	cos = math.Max(-1, math.Min(1, cos))
	return (cos + 1) / 2 * 100
}

// JobContext is the text embedded for a job.
func JobContext(job *domain.JobRequirement) string {
	parts := []string{
		job.Title,
		job.Description,
		"Required skills: " + strings.Join(job.RequiredSkills, ", "),
		"Preferred skills: " + strings.Join(job.PreferredSkills, ", "),
		"Requirements: " + strings.Join(job.Requirements, "; "),
		"Category: " + job.Category,
	}
	return joinNonEmpty(parts)
}

// ProjectContext is the text embedded for a declared project.
func ProjectContext(p domain.DeclaredProject) string {
	parts := []string{
		p.Title,
		p.Description,
		"Technologies: " + strings.Join(p.Technologies, ", "),
		"Role: " + p.Role,
		"Duration: " + p.Duration,
		"Challenges: " + strings.Join(p.Challenges, "; "),
		"Achievements: " + strings.Join(p.Achievements, "; "),
	}
	if doc := strings.TrimSpace(p.Documentation); doc != "" {
		parts = append(parts, utils.TruncateRunes(doc, documentPreviewLength))
	}
	return joinNonEmpty(parts)
}

// joinNonEmpty drops parts that are blank or only a label.
func joinNonEmpty(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasSuffix(p, ":") {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, "\n")
}

package rubric

import (
	"math"
	"testing"

	"github.com/spigell/hire-scorer/internal/domain"
)

func fullStackJob() *domain.JobRequirement {
	return &domain.JobRequirement{
		ID:             "job-1",
		Title:          "Full Stack Engineer",
		Description:    "Build a scalable web application with React dashboards, Node.js services and PostgreSQL storage for analytics customers.",
		RequiredSkills: []string{"React", "Node.js", "PostgreSQL"},
		Experience:     domain.ExperienceRange{Min: 3, Max: 7, Level: domain.LevelSenior},
		Projects: domain.ProjectCriteria{
			RequiredProjectTypes: []string{"web application"},
			MinimumComplexity:    domain.ComplexityMedium,
			RequiredTechnologies: []string{"React", "Node.js", "PostgreSQL"},
		},
	}
}

func dashboardProject() domain.DeclaredProject {
	return domain.DeclaredProject{
		Title:         "Analytics dashboard",
		Description:   "A real-time web application with React dashboards backed by Node.js services and PostgreSQL storage, serving analytics to thousands of customers daily.",
		Technologies:  []string{"React", "Node.js", "PostgreSQL"},
		RepositoryURL: "https://github.com/acme/dashboard",
		LiveURL:       "https://dashboard.example.com",
		Complexity:    domain.ComplexityComplex,
		Achievements:  []string{"Cut page load time by 60%", "Onboarded 40 enterprise customers"},
	}
}

func strongApplication() *domain.Application {
	return &domain.Application{
		ID:              "app-1",
		JobID:           "job-1",
		ExperienceYears: 5,
		TechnicalSkills: []domain.Skill{{Name: "react"}, {Name: "NodeJS"}, {Name: "PostgreSQL"}},
		Projects:        []domain.DeclaredProject{dashboardProject()},
	}
}

func TestScoreStrongCandidateIsShortlisted(t *testing.T) {
	result := Score(fullStackJob(), strongApplication(), nil, domain.DefaultCriteria())

	if result.Project < 90 {
		t.Fatalf("expected project score >= 90, got %d", result.Project)
	}
	if result.Overall < 80 {
		t.Fatalf("expected overall >= 80, got %d", result.Overall)
	}
	if result.ShortlistStatus != domain.StatusShortlisted {
		t.Fatalf("expected shortlisted, got %s", result.ShortlistStatus)
	}
	if result.ProjectFloorApplied {
		t.Fatalf("did not expect the project floor to apply")
	}
}

func TestScoreProjectFloorRejects(t *testing.T) {
	criteria := domain.DefaultCriteria()
	criteria.MinimumProjectScore = 95

	result := Score(fullStackJob(), strongApplication(), nil, criteria)

	if result.Overall < 80 {
		t.Fatalf("overall should still qualify on its own, got %d", result.Overall)
	}
	if result.ShortlistStatus != domain.StatusRejected {
		t.Fatalf("expected rejected by project floor, got %s", result.ShortlistStatus)
	}
	if !result.ProjectFloorApplied {
		t.Fatalf("expected project floor flag")
	}
}

func TestScoreHardFloorIgnoresOtherDimensions(t *testing.T) {
	app := strongApplication()
	app.Projects = nil

	result := Score(fullStackJob(), app, nil, domain.DefaultCriteria())

	if result.Project != 0 {
		t.Fatalf("expected project score 0 without projects, got %d", result.Project)
	}
	if result.Experience != 100 || result.Skills != 100 {
		t.Fatalf("expected perfect experience and skills, got %+v", result.Scores)
	}
	if result.ShortlistStatus != domain.StatusRejected {
		t.Fatalf("expected rejected, got %s", result.ShortlistStatus)
	}
}

func TestScoreOverallMatchesWeights(t *testing.T) {
	criteria := domain.DefaultCriteria()
	criteria.Weights = domain.Weights{Project: 0.5, Experience: 0.25, Skills: 0.25}

	app := strongApplication()
	app.ExperienceYears = 1
	app.TechnicalSkills = app.TechnicalSkills[:1]

	result := Score(fullStackJob(), app, nil, criteria)

	want := int(math.Round(float64(result.Project)*0.5 + float64(result.Experience)*0.25 + float64(result.Skills)*0.25))
	if result.Overall != want {
		t.Fatalf("overall %d does not match weighted sum %d", result.Overall, want)
	}
}

func TestTechnologyMatchIsMonotonic(t *testing.T) {
	required := []string{"React", "Node.js", "PostgreSQL", "Redis"}
	declared := []string{}
	previous := TechnologyMatch(required, nil, declared)

	for _, tech := range required {
		declared = append(declared, tech)
		current := TechnologyMatch(required, nil, declared)
		if current < previous {
			t.Fatalf("score decreased from %v to %v after adding %s", previous, current, tech)
		}
		previous = current
	}

	if previous != 100 {
		t.Fatalf("expected full match to score 100, got %v", previous)
	}
}

func TestTechnologyMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		required  []string
		preferred []string
		declared  []string
		expect    float64
	}{
		{name: "no requirements", declared: []string{"go"}, expect: 80},
		{name: "half matched", required: []string{"go", "rust"}, declared: []string{"Go"}, expect: 50},
		{name: "preferred bonus", required: []string{"go", "rust"}, preferred: []string{"docker"}, declared: []string{"Go", "Docker"}, expect: 60},
		{name: "capped", required: []string{"go"}, preferred: []string{"docker", "k8s"}, declared: []string{"go", "docker", "k8s"}, expect: 100},
		{name: "symbol names", required: []string{"C++", "C#"}, declared: []string{"React", "JavaScript"}, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TechnologyMatch(tt.required, tt.preferred, tt.declared); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestExperienceScore(t *testing.T) {
	t.Parallel()

	want := domain.ExperienceRange{Min: 3, Max: 6, Level: domain.LevelMid}

	tests := []struct {
		name   string
		years  float64
		expect int
	}{
		{name: "in range and level match", years: 4, expect: 100},
		{name: "in range and higher level", years: 5.5, expect: 90},
		{name: "overqualified lead", years: 10, expect: 80},
		{name: "close to minimum", years: 2.2, expect: 80},
		{name: "far below", years: 1, expect: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExperienceScore(want, tt.years); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestSkillsScore(t *testing.T) {
	if got := SkillsScore(nil, []string{"go"}, []string{"go"}); got != 80 {
		t.Fatalf("expected fixed 80 without required skills, got %d", got)
	}
	if got := SkillsScore([]string{"Go", "Kubernetes", "Terraform"}, nil, []string{"golang", "kubernetes"}); got != 67 {
		t.Fatalf("expected 67 for two of three skills, got %d", got)
	}
	if got := SkillsScore([]string{"C#"}, nil, []string{"JavaScript", "TypeScript"}); got != 0 {
		t.Fatalf("expected C# to miss a JavaScript profile, got %d", got)
	}
}

func TestRelevanceMatchesProjectTypeLoosely(t *testing.T) {
	t.Parallel()

	job := &domain.JobRequirement{
		Title: "Engineer",
		Projects: domain.ProjectCriteria{
			RequiredProjectTypes: []string{"api", "e-commerce"},
		},
	}

	tests := []struct {
		name    string
		project domain.DeclaredProject
		expect  float64
	}{
		{name: "plural", project: domain.DeclaredProject{Title: "Public APIs", Description: "Payments gateway"}, expect: 80},
		{name: "hyphen dropped", project: domain.DeclaredProject{Title: "Shop", Description: "An ecommerce platform"}, expect: 80},
		{name: "unrelated", project: domain.DeclaredProject{Title: "Blog", Description: "Static site"}, expect: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := relevance(job, tt.project); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestRecommendationsForWeakDimensions(t *testing.T) {
	app := strongApplication()
	app.ExperienceYears = 0.5
	app.TechnicalSkills = nil

	result := Score(fullStackJob(), app, nil, domain.DefaultCriteria())

	if len(result.DetailedFeedback.Recommendations) < 2 {
		t.Fatalf("expected recommendations for weak experience and skills, got %v", result.DetailedFeedback.Recommendations)
	}
	if result.Feedback == "" || result.DetailedFeedback.Dimensions.Skills == "" {
		t.Fatalf("expected templated feedback")
	}

	again := Score(fullStackJob(), app, nil, domain.DefaultCriteria())
	if again.Feedback != result.Feedback {
		t.Fatalf("feedback must be deterministic")
	}
}

func TestScoreRecordsDeclaredActivity(t *testing.T) {
	result := Score(fullStackJob(), strongApplication(), nil, domain.DefaultCriteria())

	if len(result.Projects) != 1 {
		t.Fatalf("expected one project activity, got %d", len(result.Projects))
	}
	if result.Projects[0].IsActive || result.Projects[0].Enriched {
		t.Fatalf("declared project must not be active: %+v", result.Projects[0])
	}
}

package domain

import "strings"

// Complexity is the declared or derived complexity tier of a project.
type Complexity string

const (
	ComplexitySimple     Complexity = "simple"
	ComplexityMedium     Complexity = "medium"
	ComplexityComplex    Complexity = "complex"
	ComplexityEnterprise Complexity = "enterprise"
)

// Level maps a complexity tier to 1..4. Unknown tiers map to 0.
func (c Complexity) Level() int {
	switch Complexity(strings.ToLower(strings.TrimSpace(string(c)))) {
	case ComplexitySimple:
		return 1
	case ComplexityMedium:
		return 2
	case ComplexityComplex:
		return 3
	case ComplexityEnterprise:
		return 4
	default:
		return 0
	}
}

// Scale is the size tier of a project.
type Scale string

const (
	ScaleSmall  Scale = "small"
	ScaleMedium Scale = "medium"
	ScaleLarge  Scale = "large"
)

// ExperienceLevel is the seniority required by a job or derived for a candidate.
type ExperienceLevel string

const (
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelLead   ExperienceLevel = "lead"
)

// Rank orders levels junior < mid < senior < lead. Unknown levels rank 0.
func (l ExperienceLevel) Rank() int {
	switch ExperienceLevel(strings.ToLower(strings.TrimSpace(string(l)))) {
	case LevelJunior:
		return 1
	case LevelMid:
		return 2
	case LevelSenior:
		return 3
	case LevelLead:
		return 4
	default:
		return 0
	}
}

// LevelForYears derives a seniority level from total years of experience.
func LevelForYears(years float64) ExperienceLevel {
	switch {
	case years >= 8:
		return LevelLead
	case years >= 5:
		return LevelSenior
	case years >= 2:
		return LevelMid
	default:
		return LevelJunior
	}
}

type ExperienceRange struct {
	Min   float64         `json:"min" mapstructure:"min"`
	Max   float64         `json:"max" mapstructure:"max"`
	Level ExperienceLevel `json:"level" mapstructure:"level"`
}

type ProjectCriteria struct {
	RequiredProjectTypes []string   `json:"requiredProjectTypes,omitempty" mapstructure:"requiredProjectTypes"`
	MinimumComplexity    Complexity `json:"minimumComplexity,omitempty" mapstructure:"minimumComplexity"`
	RequiredTechnologies []string   `json:"requiredTechnologies,omitempty" mapstructure:"requiredTechnologies"`
	ProjectScale         Scale      `json:"projectScale,omitempty" mapstructure:"projectScale"`
}

// JobRequirement is the immutable input describing what a job asks for.
type JobRequirement struct {
	ID              string          `json:"id"`
	OrganizationID  string          `json:"organizationId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        string          `json:"category,omitempty"`
	Requirements    []string        `json:"requirements,omitempty"`
	RequiredSkills  []string        `json:"requiredSkills,omitempty"`
	PreferredSkills []string        `json:"preferredSkills,omitempty"`
	Experience      ExperienceRange `json:"experience"`
	Projects        ProjectCriteria `json:"projectEvaluation"`
}

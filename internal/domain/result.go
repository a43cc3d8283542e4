package domain

import (
	"math"
	"time"
)

type ShortlistStatus string

const (
	StatusShortlisted ShortlistStatus = "shortlisted"
	StatusUnderReview ShortlistStatus = "under_review"
	StatusRejected    ShortlistStatus = "rejected"
)

// Rank orders statuses rejected < under_review < shortlisted.
func (s ShortlistStatus) Rank() int {
	switch s {
	case StatusShortlisted:
		return 2
	case StatusUnderReview:
		return 1
	default:
		return 0
	}
}

// StatusForOverall maps an overall score to a status without the project floor.
func StatusForOverall(overall int) ShortlistStatus {
	switch {
	case overall >= 80:
		return StatusShortlisted
	case overall >= 60:
		return StatusUnderReview
	default:
		return StatusRejected
	}
}

type Ranking string

const (
	RankingTopTier      Ranking = "top-tier"
	RankingStrong       Ranking = "strong"
	RankingGood         Ranking = "good"
	RankingAverage      Ranking = "average"
	RankingBelowAverage Ranking = "below-average"
)

type Recommendation string

const (
	RecommendStrongly Recommendation = "strongly-recommend"
	Recommend         Recommendation = "recommend"
	RecommendConsider Recommendation = "consider"
	RecommendNot      Recommendation = "not-recommended"
)

// Scores is the closed set of score dimensions, each 0..100.
type Scores struct {
	Project    int `json:"projectScore" mapstructure:"projectScore"`
	Experience int `json:"experienceScore" mapstructure:"experienceScore"`
	Skills     int `json:"skillsScore" mapstructure:"skillsScore"`
	Overall    int `json:"overallScore" mapstructure:"overallScore"`
}

// BlendScore returns round(rule·(1-alpha) + other·alpha).
func BlendScore(rule, other int, alpha float64) int {
	return ClampScore(int(math.Round(float64(rule)*(1-alpha) + float64(other)*alpha)))
}

// Blend mixes two score sets dimension by dimension. Overall is recomputed
// from the blended dimensions with w and never blended on its own.
func Blend(rule, other Scores, alpha float64, w Weights) Scores {
	blended := Scores{
		Project:    BlendScore(rule.Project, other.Project, alpha),
		Experience: BlendScore(rule.Experience, other.Experience, alpha),
		Skills:     BlendScore(rule.Skills, other.Skills, alpha),
	}
	blended.Overall = w.Overall(blended)
	return blended
}

type DimensionFeedback struct {
	Project    string `json:"project"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

type DetailedFeedback struct {
	Dimensions      DimensionFeedback `json:"dimensions"`
	Recommendations []string          `json:"recommendations,omitempty"`
}

type ProjectInsight struct {
	Title          string   `json:"title"`
	SemanticScore  float64  `json:"semanticScore"`
	TechnicalScore int      `json:"technicalScore"`
	Highlights     []string `json:"highlights,omitempty"`
}

// AdvancedEvaluation is the qualitative verdict attached by the reviewer.
type AdvancedEvaluation struct {
	SemanticScore         float64          `json:"semanticScore"`
	TechnicalDepthScore   int              `json:"technicalDepthScore"`
	InnovationScore       int              `json:"innovationScore"`
	AIRanking             Ranking          `json:"aiRanking"`
	AIConfidence          int              `json:"aiConfidence"`
	AIAnalysis            string           `json:"aiAnalysis"`
	OverallRecommendation Recommendation   `json:"overallRecommendation"`
	Strengths             []string         `json:"strengths,omitempty"`
	Weaknesses            []string         `json:"weaknesses,omitempty"`
	KeyTakeaways          []string         `json:"keyTakeaways,omitempty"`
	ProjectInsights       []ProjectInsight `json:"projectInsights,omitempty"`
	Degraded              bool             `json:"degraded,omitempty"`
}

// ProjectActivity is the persisted summary of one project's enrichment.
type ProjectActivity struct {
	Title             string `json:"title"`
	Enriched          bool   `json:"enriched"`
	IsActive          bool   `json:"isActive"`
	HasRecentActivity bool   `json:"hasRecentActivity"`
	CodeQuality       int    `json:"codeQuality,omitempty"`
	MeetsQualityBar   bool   `json:"meetsQualityBar,omitempty"`
	Note              string `json:"note,omitempty"`
}

type ProjectSimilarity struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
	Note  string  `json:"note,omitempty"`
}

// SemanticResult is the output of the similarity stage.
type SemanticResult struct {
	Available bool                `json:"available"`
	Score     float64             `json:"score"`
	Projects  []ProjectSimilarity `json:"projects,omitempty"`
	Note      string              `json:"note,omitempty"`
}

type ProjectTechnical struct {
	Title string `json:"title"`
	Score int    `json:"score"`
}

// TechnicalResult is the per-project technical depth derived from signals.
type TechnicalResult struct {
	Score    int                `json:"score"`
	Projects []ProjectTechnical `json:"projects,omitempty"`
}

// EvaluationResult is the persisted outcome of one application's evaluation.
type EvaluationResult struct {
	ID            string `json:"id"`
	ApplicationID string `json:"applicationId"`
	JobID         string `json:"jobId"`

	Scores
	ShortlistStatus ShortlistStatus `json:"shortlistStatus"`
	// ProjectFloorApplied is set when the project score fell below the
	// configured minimum and forced a rejection.
	ProjectFloorApplied bool `json:"projectFloorApplied,omitempty"`

	Feedback         string           `json:"feedback"`
	DetailedFeedback DetailedFeedback `json:"detailedFeedback"`

	Projects           []ProjectActivity   `json:"projects,omitempty"`
	Semantic           *SemanticResult     `json:"semantic,omitempty"`
	RuleScores         *Scores             `json:"ruleScores,omitempty"`
	AdvancedEvaluation *AdvancedEvaluation `json:"advancedEvaluation,omitempty"`

	InternalStatus ShortlistStatus `json:"internalStatus"`
	EvaluatedAt    time.Time       `json:"evaluatedAt"`
	VisibleAt      time.Time       `json:"visibleAt"`
}

// ClampScore bounds v to 0..100.
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

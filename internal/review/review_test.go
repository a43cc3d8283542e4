package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/ai"
	"github.com/spigell/hire-scorer/internal/domain"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
	lastOpts   ai.GenerateOptions
	calls      int
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, opts ai.GenerateOptions) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastOpts = opts
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func reviewJob() *domain.JobRequirement {
	return &domain.JobRequirement{
		ID:             "job-1",
		Title:          "Backend Engineer",
		Description:    "Build distributed Go services.",
		RequiredSkills: []string{"Go", "PostgreSQL"},
		Experience:     domain.ExperienceRange{Min: 3, Max: 6, Level: domain.LevelSenior},
		Projects:       domain.ProjectCriteria{RequiredTechnologies: []string{"Go"}},
	}
}

func reviewSignals() []domain.ProjectSignal {
	return []domain.ProjectSignal{
		domain.Declared{
			DeclaredProject: domain.DeclaredProject{
				Title:        "Realtime analytics",
				Description:  "Distributed microservices using GraphQL",
				Technologies: []string{"Go"},
				Complexity:   domain.ComplexityComplex,
			},
			Reason: "no github repository",
		},
		domain.Enriched{
			DeclaredProject: domain.DeclaredProject{Title: "Blog", Description: "personal blog"},
			Repo: domain.RepositorySignals{
				Owner:              "acme",
				Name:               "blog",
				CodeQuality:        80,
				ArchitectureScore:  60,
				DocumentationScore: 50,
				Complexity:         domain.ComplexityMedium,
				HasTests:           true,
				HasCICD:            true,
				IsActive:           true,
				HasRecentActivity:  true,
			},
		},
	}
}

func semanticFor(score float64) domain.SemanticResult {
	return domain.SemanticResult{
		Available: true,
		Score:     score,
		Projects:  []domain.ProjectSimilarity{{Title: "Realtime analytics", Score: score}, {Title: "Blog", Score: score}},
	}
}

func TestReviewWithoutGeneratorIsNil(t *testing.T) {
	r := NewReviewer(nil, zap.NewNop(), Options{})
	if got := r.Review(context.Background(), reviewJob(), &domain.Application{}, reviewSignals(), semanticFor(70), TechnicalScore(reviewSignals())); got != nil {
		t.Fatalf("expected nil verdict without generator, got %+v", got)
	}
}

func TestReviewParsesJSONVerdict(t *testing.T) {
	stub := &stubGenerator{response: "```json\n" + `{"ranking": "strong", "confidence": "0.85", "strengths": ["a", "b", "c", "d"], "weaknesses": "one", "keyTakeaways": ["k"], "summary": "Solid backend profile."}` + "\n```"}
	r := NewReviewer(stub, zap.NewNop(), Options{MaxTokens: 512})

	signals := reviewSignals()
	technical := TechnicalScore(signals)
	got := r.Review(context.Background(), reviewJob(), &domain.Application{ExperienceYears: 4}, signals, semanticFor(70), technical)
	if got == nil {
		t.Fatal("expected verdict")
	}

	if got.AIRanking != domain.RankingStrong || got.OverallRecommendation != domain.Recommend {
		t.Fatalf("expected strong/recommend, got %s/%s", got.AIRanking, got.OverallRecommendation)
	}
	if got.AIConfidence != 85 {
		t.Fatalf("expected confidence 85, got %d", got.AIConfidence)
	}
	if len(got.Strengths) != 3 || len(got.Weaknesses) != 1 || got.Weaknesses[0] != "one" {
		t.Fatalf("unexpected lists: %v / %v", got.Strengths, got.Weaknesses)
	}
	if got.AIAnalysis != "Solid backend profile." || got.Degraded {
		t.Fatalf("unexpected analysis: %+v", got)
	}
	if got.TechnicalDepthScore != technical.Score || got.InnovationScore != InnovationScore(signals) {
		t.Fatalf("expected locally computed scores to be attached")
	}
	if len(got.ProjectInsights) != 2 || got.ProjectInsights[1].TechnicalScore != technical.Projects[1].Score {
		t.Fatalf("unexpected insights: %+v", got.ProjectInsights)
	}

	if stub.lastOpts.MaxTokens != 512 || stub.lastOpts.Temperature != defaultTemperature {
		t.Fatalf("unexpected generation options: %+v", stub.lastOpts)
	}
	for _, want := range []string{"Backend Engineer", "### Project 1: Realtime analytics", "Repository: acme/blog", "CI/CD: true"} {
		if !strings.Contains(stub.lastPrompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}

func TestReviewCrossChecksClaimedRanking(t *testing.T) {
	stub := &stubGenerator{response: `{"ranking": "good", "summary": "Fine."}`}
	r := NewReviewer(stub, nil, Options{})

	strong := domain.TechnicalResult{Score: 90}
	got := r.Review(context.Background(), reviewJob(), &domain.Application{}, nil, domain.SemanticResult{Score: 90}, strong)
	// composite 90*0.4 + 90*0.4 + 50*0.2 = 82, below the top-tier bar
	if got.AIRanking != domain.RankingStrong {
		t.Fatalf("expected ranking derived from composite, got %s", got.AIRanking)
	}
	if got.AIConfidence != defaultConfidence {
		t.Fatalf("expected default confidence, got %d", got.AIConfidence)
	}
}

func TestReviewHeuristicFallback(t *testing.T) {
	stub := &stubGenerator{response: "The candidate shows excellent React skills. Strong system design. Good testing culture. Good documentation. There is a lack of cloud experience. Needs more leadership."}
	r := NewReviewer(stub, zap.NewNop(), Options{})

	got := r.Review(context.Background(), reviewJob(), &domain.Application{}, nil, domain.SemanticResult{Score: 70}, domain.TechnicalResult{Score: 60})
	if got == nil || got.Degraded {
		t.Fatalf("expected heuristic verdict, got %+v", got)
	}
	if len(got.Strengths) != 3 {
		t.Fatalf("expected strengths capped at 3, got %v", got.Strengths)
	}
	if len(got.Weaknesses) != 2 {
		t.Fatalf("expected two weaknesses, got %v", got.Weaknesses)
	}
	if len(got.KeyTakeaways) != 1 || got.KeyTakeaways[0] != "The candidate shows excellent React skills" {
		t.Fatalf("expected first sentence as takeaway, got %v", got.KeyTakeaways)
	}
	// composite 70*0.4 + 60*0.4 + 50*0.2 = 62
	if got.AIRanking != domain.RankingGood || got.OverallRecommendation != domain.RecommendConsider {
		t.Fatalf("expected good/consider, got %s/%s", got.AIRanking, got.OverallRecommendation)
	}
}

func TestReviewSentenceCanBeStrengthAndWeakness(t *testing.T) {
	v, err := decodeHeuristic("Good React skills but a lack of testing. Excellent communication.")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(v.Strengths) != 2 || v.Strengths[0] != "Good React skills but a lack of testing" {
		t.Fatalf("unexpected strengths: %v", v.Strengths)
	}
	if len(v.Weaknesses) != 1 || v.Weaknesses[0] != "Good React skills but a lack of testing" {
		t.Fatalf("unexpected weaknesses: %v", v.Weaknesses)
	}
}

func TestDecodeJSONToleratesLooseShapes(t *testing.T) {
	v, err := decodeJSON(`{"ranking": "strong", "strengths": "Clean Go code", "weaknesses": ["", {"area": "testing"}, 3], "summary": ["Solid", "profile"]}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(v.Strengths) != 1 || v.Strengths[0] != "Clean Go code" {
		t.Fatalf("unexpected strengths: %v", v.Strengths)
	}
	if len(v.Weaknesses) != 2 || v.Weaknesses[0] != `{"area":"testing"}` || v.Weaknesses[1] != "3" {
		t.Fatalf("unexpected weaknesses: %v", v.Weaknesses)
	}
	if v.Summary != `["Solid","profile"]` {
		t.Fatalf("unexpected summary: %q", v.Summary)
	}
}

func TestReviewRemoteFailureDegrades(t *testing.T) {
	stub := &stubGenerator{err: errors.New("timeout")}
	r := NewReviewer(stub, zap.NewNop(), Options{})

	got := r.Review(context.Background(), reviewJob(), &domain.Application{}, reviewSignals(), semanticFor(50), TechnicalScore(reviewSignals()))
	if got == nil {
		t.Fatal("expected degraded verdict, got nil")
	}
	if !got.Degraded || got.AIConfidence != 50 {
		t.Fatalf("expected degraded verdict with confidence 50, got %+v", got)
	}
	if len(got.Strengths) == 0 || len(got.Weaknesses) == 0 {
		t.Fatalf("expected generic strengths and weaknesses")
	}
	if stub.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", stub.calls)
	}
}

func TestDetermineRanking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		claimed    string
		text       string
		semantic   float64
		technical  int
		innovation int
		expect     domain.Ranking
	}{
		{name: "claimed top tier", claimed: "Top-Tier", semantic: 10, technical: 10, innovation: 10, expect: domain.RankingTopTier},
		{name: "text top 5%", text: "This candidate is in the top 5% of applicants.", semantic: 10, technical: 10, innovation: 10, expect: domain.RankingTopTier},
		{name: "text top 20%", text: "Likely top 20%.", semantic: 10, technical: 10, innovation: 10, expect: domain.RankingStrong},
		{name: "claimed phrase top tier", claimed: "Top-tier candidate", semantic: 10, technical: 10, innovation: 10, expect: domain.RankingTopTier},
		{name: "claimed strong with percentile", claimed: "Strong (top 20%)", semantic: 10, technical: 10, innovation: 10, expect: domain.RankingStrong},
		{name: "claimed strong candidate", claimed: "strong candidate", semantic: 10, technical: 10, innovation: 10, expect: domain.RankingStrong},
		{name: "weak claim falls back to text", claimed: "good", text: "Overall in the top 5% we have seen.", semantic: 10, technical: 10, innovation: 10, expect: domain.RankingTopTier},
		{name: "bare strong in text", text: "Strong system design.", semantic: 10, technical: 10, innovation: 10, expect: domain.RankingBelowAverage},
		{name: "composite top tier", semantic: 90, technical: 85, innovation: 80, expect: domain.RankingTopTier},
		{name: "high composite weak technical", semantic: 100, technical: 79, innovation: 100, expect: domain.RankingStrong},
		{name: "good", semantic: 65, technical: 65, innovation: 65, expect: domain.RankingGood},
		{name: "average", semantic: 50, technical: 50, innovation: 50, expect: domain.RankingAverage},
		{name: "below average", semantic: 20, technical: 20, innovation: 50, expect: domain.RankingBelowAverage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetermineRanking(tt.claimed, tt.text, tt.semantic, tt.technical, tt.innovation); got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
		})
	}
}

func TestRecommendationFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ranking  domain.Ranking
		semantic float64
		expect   domain.Recommendation
	}{
		{ranking: domain.RankingTopTier, semantic: 80, expect: domain.RecommendStrongly},
		{ranking: domain.RankingTopTier, semantic: 79, expect: domain.Recommend},
		{ranking: domain.RankingStrong, semantic: 95, expect: domain.Recommend},
		{ranking: domain.RankingGood, semantic: 95, expect: domain.RecommendConsider},
		{ranking: domain.RankingAverage, semantic: 95, expect: domain.RecommendNot},
	}

	for _, tt := range tests {
		if got := RecommendationFor(tt.ranking, tt.semantic); got != tt.expect {
			t.Fatalf("%s/%v: expected %s, got %s", tt.ranking, tt.semantic, tt.expect, got)
		}
	}
}

func TestInnovationScore(t *testing.T) {
	// 50 base, +15 keywords and +10 complexity for the first project,
	// +5 CI and +5 recent activity for the second.
	if got := InnovationScore(reviewSignals()); got != 85 {
		t.Fatalf("expected 85, got %d", got)
	}
	if got := InnovationScore(nil); got != 50 {
		t.Fatalf("expected base score 50, got %d", got)
	}

	many := make([]domain.ProjectSignal, 0, 5)
	for range 5 {
		many = append(many, reviewSignals()[0])
	}
	if got := InnovationScore(many); got != 100 {
		t.Fatalf("expected score capped at 100, got %d", got)
	}
}

func TestTechnicalScore(t *testing.T) {
	got := TechnicalScore(reviewSignals())
	if len(got.Projects) != 2 {
		t.Fatalf("expected two projects, got %d", len(got.Projects))
	}
	if got.Projects[0].Score != 70 {
		t.Fatalf("expected declared complex project to score 70, got %d", got.Projects[0].Score)
	}
	if got.Projects[1].Score != 73 {
		t.Fatalf("expected enriched project to score 73, got %d", got.Projects[1].Score)
	}
	if got.Score != 72 {
		t.Fatalf("expected mean 72, got %d", got.Score)
	}
	if empty := TechnicalScore(nil); empty.Score != 0 {
		t.Fatalf("expected 0 without projects")
	}
}

func TestFirstOf(t *testing.T) {
	failing := func(string) (*verdict, error) { return nil, errors.New("nope") }
	succeeding := func(raw string) (*verdict, error) { return &verdict{Summary: raw}, nil }

	v, err := firstOf(failing, succeeding)("text")
	if err != nil || v.Summary != "text" {
		t.Fatalf("expected second decoder result, got %+v %v", v, err)
	}

	if _, err := firstOf(failing, failing)("text"); err == nil {
		t.Fatal("expected joined error when every decoder fails")
	}
}

func TestScorer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		err      error
		expect   *domain.Scores
	}{
		{
			name:     "valid with prose",
			response: `Here are the scores: {"projectScore": "82", "experienceScore": 70.6, "skillsScore": 90, "overallScore": 120}`,
			expect:   &domain.Scores{Project: 82, Experience: 71, Skills: 90, Overall: 100},
		},
		{name: "missing dimension", response: `{"projectScore": 80, "experienceScore": 70}`},
		{name: "not a number", response: `{"projectScore": "high", "experienceScore": 70, "skillsScore": 60}`},
		{name: "remote failure", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stub := &stubGenerator{response: tt.response, err: tt.err}
			got := NewScorer(stub, nil, Options{}).Score(context.Background(), reviewJob(), &domain.Application{ID: "app-1"})

			if tt.expect == nil {
				if got != nil {
					t.Fatalf("expected nil scores, got %+v", got)
				}
				return
			}
			if got == nil || *got != *tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
			if !strings.Contains(stub.lastPrompt, `"title": "Backend Engineer"`) {
				t.Fatalf("expected job json in prompt")
			}
		})
	}

	if got := NewScorer(nil, nil, Options{}).Score(context.Background(), reviewJob(), &domain.Application{}); got != nil {
		t.Fatalf("expected nil without generator")
	}
}

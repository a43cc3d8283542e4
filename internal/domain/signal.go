package domain

import "time"

// RepositorySignals are independently fetched facts about a project's repository.
type RepositorySignals struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`

	// Languages maps a language to its share of the code base in percent.
	Languages               map[string]float64 `json:"languages,omitempty"`
	CommitCount             int                `json:"commitCount"`
	RecentCommits           int                `json:"recentCommits"`
	Contributors            int                `json:"contributors"`
	TotalContributorCommits int                `json:"totalContributorCommits"`
	Size                    int                `json:"size"`
	Stars                   int                `json:"stars"`
	Forks                   int                `json:"forks"`
	OpenIssues              int                `json:"openIssues"`
	ClosedIssues            int                `json:"closedIssues"`
	LastActivity            time.Time          `json:"lastActivity"`
	LastCommitAt            time.Time          `json:"lastCommitAt"`
	RepositoryAgeMonths     int                `json:"repositoryAgeMonths"`

	CodeQuality        int        `json:"codeQuality"`
	ArchitectureScore  int        `json:"architectureScore"`
	DocumentationScore int        `json:"documentationScore"`
	Complexity         Complexity `json:"complexity"`

	HasTests          bool `json:"hasTests"`
	HasCICD           bool `json:"hasCICD"`
	IsActive          bool `json:"isActive"`
	HasRecentActivity bool `json:"hasRecentActivity"`
}

// ProjectSignal is either a Declared project or an Enriched one.
// Consumers switch on the concrete type.
type ProjectSignal interface {
	Project() DeclaredProject
	isProjectSignal()
}

// Declared is a project that carries no repository signals.
// Reason records why enrichment did not happen.
type Declared struct {
	DeclaredProject
	Reason string
}

func (d Declared) Project() DeclaredProject { return d.DeclaredProject }
func (Declared) isProjectSignal()           {}

// Enriched is a project whose repository was fetched successfully.
type Enriched struct {
	DeclaredProject
	Repo RepositorySignals
}

func (e Enriched) Project() DeclaredProject { return e.DeclaredProject }
func (Enriched) isProjectSignal()           {}

// DeclaredSignals wraps every project as Declared with the same reason.
func DeclaredSignals(projects []DeclaredProject, reason string) []ProjectSignal {
	signals := make([]ProjectSignal, 0, len(projects))
	for _, p := range projects {
		signals = append(signals, Declared{DeclaredProject: p, Reason: reason})
	}
	return signals
}

// Activity summarizes a signal for the evaluation record.
func Activity(signal ProjectSignal, minCodeQuality int) ProjectActivity {
	switch s := signal.(type) {
	case Enriched:
		return ProjectActivity{
			Title:             s.Title,
			Enriched:          true,
			IsActive:          s.Repo.IsActive,
			HasRecentActivity: s.Repo.HasRecentActivity,
			CodeQuality:       s.Repo.CodeQuality,
			MeetsQualityBar:   s.Repo.CodeQuality >= minCodeQuality,
		}
	case Declared:
		return ProjectActivity{Title: s.Title, Note: s.Reason}
	default:
		return ProjectActivity{}
	}
}

package domain

// DeclaredProject is a portfolio entry exactly as the candidate submitted it.
type DeclaredProject struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Technologies  []string   `json:"technologies,omitempty"`
	RepositoryURL string     `json:"repositoryUrl,omitempty"`
	LiveURL       string     `json:"liveUrl,omitempty"`
	Role          string     `json:"role,omitempty"`
	Duration      string     `json:"duration,omitempty"`
	TeamSize      int        `json:"teamSize,omitempty"`
	Complexity    Complexity `json:"complexity,omitempty"`
	Scale         Scale      `json:"scale,omitempty"`
	Features      []string   `json:"features,omitempty"`
	Challenges    []string   `json:"challenges,omitempty"`
	Achievements  []string   `json:"achievements,omitempty"`
	// Documentation holds long-form text such as a README.
	Documentation string `json:"documentation,omitempty"`
}

type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Application is a candidate's submission against one job.
type Application struct {
	ID              string            `json:"id"`
	JobID           string            `json:"jobId"`
	CandidateName   string            `json:"candidateName,omitempty"`
	ExperienceYears float64           `json:"experienceYears"`
	TechnicalSkills []Skill           `json:"technicalSkills,omitempty"`
	Projects        []DeclaredProject `json:"projects,omitempty"`
}

// SkillNames returns the declared technical skill names.
func (a *Application) SkillNames() []string {
	names := make([]string, 0, len(a.TechnicalSkills))
	for _, s := range a.TechnicalSkills {
		names = append(names, s.Name)
	}
	return names
}

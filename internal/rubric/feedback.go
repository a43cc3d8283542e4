package rubric

import (
	"fmt"
	"strings"

	"github.com/spigell/hire-scorer/internal/domain"
)

const recommendationThreshold = 70

type band int

const (
	bandLimited band = iota
	bandFair
	bandGood
	bandExcellent
)

func bandFor(score int) band {
	switch {
	case score >= 80:
		return bandExcellent
	case score >= 60:
		return bandGood
	case score >= 40:
		return bandFair
	default:
		return bandLimited
	}
}

var projectFeedback = map[band]string{
	bandExcellent: "Projects demonstrate excellent alignment with the required technologies and complexity.",
	bandGood:      "Projects show good relevance to the role with room to demonstrate more depth.",
	bandFair:      "Projects partially match the role; several requirements are not demonstrated.",
	bandLimited:   "Projects show limited relevance to the role requirements.",
}

var experienceFeedback = map[band]string{
	bandExcellent: "Experience level is an excellent match for the role.",
	bandGood:      "Experience is a good fit for the role.",
	bandFair:      "Experience is somewhat below what the role expects.",
	bandLimited:   "Experience falls well short of the role's expectations.",
}

var skillsFeedback = map[band]string{
	bandExcellent: "Declared skills cover the required skill set.",
	bandGood:      "Declared skills cover most of the required skill set.",
	bandFair:      "Declared skills cover part of the required skill set.",
	bandLimited:   "Few of the required skills are declared.",
}

var statusSentence = map[domain.ShortlistStatus]string{
	domain.StatusShortlisted: "The application is shortlisted.",
	domain.StatusUnderReview: "The application needs further review.",
	domain.StatusRejected:    "The application does not meet the current requirements.",
}

// Describe regenerates the templated feedback of r from its current scores
// and status.
func Describe(job *domain.JobRequirement, r *domain.EvaluationResult) {
	r.Feedback = summary(r.Scores, r.ShortlistStatus)
	r.DetailedFeedback = detailedFeedback(job, r.Scores)
}

func summary(s domain.Scores, status domain.ShortlistStatus) string {
	return fmt.Sprintf("Overall score %d/100 (projects %d, experience %d, skills %d). %s",
		s.Overall, s.Project, s.Experience, s.Skills, statusSentence[status])
}

func detailedFeedback(job *domain.JobRequirement, s domain.Scores) domain.DetailedFeedback {
	fb := domain.DetailedFeedback{
		Dimensions: domain.DimensionFeedback{
			Project:    projectFeedback[bandFor(s.Project)],
			Experience: experienceFeedback[bandFor(s.Experience)],
			Skills:     skillsFeedback[bandFor(s.Skills)],
		},
	}

	if s.Project < recommendationThreshold {
		if techs := job.Projects.RequiredTechnologies; len(techs) > 0 {
			fb.Recommendations = append(fb.Recommendations,
				fmt.Sprintf("Add projects demonstrating the required technologies: %s.", strings.Join(techs, ", ")))
		} else {
			fb.Recommendations = append(fb.Recommendations, "Add projects relevant to the role.")
		}
		fb.Recommendations = append(fb.Recommendations,
			"Link repositories and live demos, and describe challenges and achievements for each project.")
	}
	if s.Experience < recommendationThreshold {
		fb.Recommendations = append(fb.Recommendations,
			"Highlight professional experience that matches the required seniority.")
	}
	if s.Skills < recommendationThreshold {
		if skills := job.RequiredSkills; len(skills) > 0 {
			fb.Recommendations = append(fb.Recommendations,
				fmt.Sprintf("Develop or declare the required skills: %s.", strings.Join(skills, ", ")))
		}
	}

	return fb
}

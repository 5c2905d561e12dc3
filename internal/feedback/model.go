package feedback

import (
	"time"

	"hiring-signals/internal/jobs"
)

// Trait labels scored by the zero-shot classifier.
const (
	TraitConfidence       = "Confidence"
	TraitCommunication    = "Communication"
	TraitTechnicalAbility = "Technical Ability"
)

// Traits returns the fixed trait set in scoring order.
func Traits() []string {
	return []string{TraitConfidence, TraitCommunication, TraitTechnicalAbility}
}

// Recommendation is the hiring decision derived from the average trait score.
type Recommendation string

const (
	RecommendHire     Recommendation = "Hire"
	RecommendConsider Recommendation = "Consider"
	RecommendReject   Recommendation = "Reject"
)

const (
	hireThreshold     = 0.85
	considerThreshold = 0.65
)

// Recommend maps an average score to a recommendation. Thresholds are inclusive.
func Recommend(avg float64) Recommendation {
	switch {
	case avg >= hireThreshold:
		return RecommendHire
	case avg >= considerThreshold:
		return RecommendConsider
	default:
		return RecommendReject
	}
}

// AverageScore is the arithmetic mean over the fixed trait set.
func AverageScore(scores map[string]float64) float64 {
	traits := Traits()
	var sum float64
	for _, t := range traits {
		sum += scores[t]
	}
	return sum / float64(len(traits))
}

// FileRecord describes where a job's interview feedback CSV lives.
type FileRecord struct {
	ID         jobs.ID `json:"id,omitempty"`
	JobID      jobs.ID `json:"job_id"`
	FileURL    string  `json:"file_url"`
	FileName   string  `json:"file_name"`
	UploadedBy string  `json:"uploaded_by"`
}

// Row is one parsed line of a feedback CSV.
type Row struct {
	Line          int
	CandidateID   string
	CandidateName string
	Interviewer   string
	Feedback      string
}

// Assessment is the model-derived evaluation of one feedback row.
type Assessment struct {
	CandidateName    string             `json:"candidate_name"`
	Interviewer      string             `json:"interviewer,omitempty"`
	OriginalFeedback string             `json:"original_feedback"`
	Summary          string             `json:"summary"`
	TraitScores      map[string]float64 `json:"traits"`
	TopTrait         string             `json:"top_trait"`
	TopTraitScore    float64            `json:"top_trait_score"`
	AverageScore     float64            `json:"average_score"`
	Recommendation   Recommendation     `json:"recommendation"`
}

// PersistedAssessment is the stored form of an Assessment.
type PersistedAssessment struct {
	ID                    string             `json:"id,omitempty"`
	JobID                 string             `json:"job_id"`
	FileURL               string             `json:"file_url"`
	CandidateName         string             `json:"candidate_name"`
	Interviewer           string             `json:"interviewer"`
	OriginalFeedback      string             `json:"original_feedback"`
	Summary               string             `json:"summary"`
	Traits                map[string]float64 `json:"traits"`
	TopTrait              string             `json:"top_trait"`
	TopTraitScore         float64            `json:"top_trait_score"`
	ConfidenceScore       float64            `json:"confidence_score"`
	CommunicationScore    float64            `json:"communication_score"`
	TechnicalAbilityScore float64            `json:"technical_ability_score"`
	AverageScore          float64            `json:"average_score"`
	Recommendation        Recommendation     `json:"recommendation"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// stamp attaches job and file metadata with identical created/updated timestamps.
func stamp(jobID string, rec FileRecord, items []Assessment, now time.Time) []PersistedAssessment {
	now = now.UTC()
	out := make([]PersistedAssessment, 0, len(items))
	for _, a := range items {
		out = append(out, PersistedAssessment{
			JobID:                 jobID,
			FileURL:               rec.FileURL,
			CandidateName:         a.CandidateName,
			Interviewer:           a.Interviewer,
			OriginalFeedback:      a.OriginalFeedback,
			Summary:               a.Summary,
			Traits:                a.TraitScores,
			TopTrait:              a.TopTrait,
			TopTraitScore:         a.TopTraitScore,
			ConfidenceScore:       a.TraitScores[TraitConfidence],
			CommunicationScore:    a.TraitScores[TraitCommunication],
			TechnicalAbilityScore: a.TraitScores[TraitTechnicalAbility],
			AverageScore:          a.AverageScore,
			Recommendation:        a.Recommendation,
			CreatedAt:             now,
			UpdatedAt:             now,
		})
	}
	return out
}

package model

import "time"

// UserProfile represents a person eligible for group assignment.
//
// Clinical scores and tags are populated once, when the intake questionnaire
// is completed, and are treated as write-once by this engine. GroupID is set
// at most once by the join protocol; there is no reassignment path.
type UserProfile struct {
	ID                string         `json:"id"`
	DisplayName       string         `json:"display_name,omitempty"`
	ClinicalScores    ClinicalScores `json:"clinical_scores"`
	Interests         []string       `json:"interests,omitempty"`
	LifeTransitions   []string       `json:"life_transitions,omitempty"`
	Location          Location       `json:"location"`
	GroupID           *string        `json:"group_id,omitempty"`
	QuestionnaireDone bool           `json:"questionnaire_done"`
	CreatedOn         time.Time      `json:"created_on"`
	UpdatedOn         time.Time      `json:"updated_on"`
}

// ClinicalScores holds the standardized assessment results from the intake
// questionnaire. PHQ-9 scores range 0-27, GAD-7 scores range 0-21.
type ClinicalScores struct {
	PHQ9 int `json:"phq9"`
	GAD7 int `json:"gad7"`
}

// Clinical score scale maximums
const (
	PHQ9Max = 27
	GAD7Max = 21
)

// Location stores a geographic point as longitude/latitude.
type Location struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// HasGroup reports whether the user has already been assigned to a group.
func (u *UserProfile) HasGroup() bool {
	return u.GroupID != nil && *u.GroupID != ""
}

// ReadyForAssignment reports whether the join protocol may run for this user:
// the questionnaire must be complete and no group assigned yet.
func (u *UserProfile) ReadyForAssignment() bool {
	return u.QuestionnaireDone && !u.HasGroup()
}

// ValidScores reports whether the clinical scores fall inside their scales.
func (c ClinicalScores) ValidScores() bool {
	return c.PHQ9 >= 0 && c.PHQ9 <= PHQ9Max && c.GAD7 >= 0 && c.GAD7 <= GAD7Max
}

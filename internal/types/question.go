// Package types provides type definitions for structured data used throughout the interview-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category identifies one of the question groupings returned by the generator.
type Category string

// Question categories. The set may vary by deployment; consumers treat
// unknown categories as additional groups and missing ones as empty.
const (
	CategoryTechnical       Category = "technical"
	CategoryBehavioral      Category = "behavioral"
	CategorySituational     Category = "situational"
	CategoryCompanySpecific Category = "company_specific"
)

// Categories returns the default category set in display order.
func Categories() []Category {
	return []Category{
		CategoryTechnical,
		CategoryBehavioral,
		CategorySituational,
		CategoryCompanySpecific,
	}
}

// Question represents one generated interview question with its model answer.
// A Question is immutable once created; it is removed only by discarding the
// ResultSet that owns it.
type Question struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	Answer         string   `json:"answer"`
	Category       Category `json:"category"`
	JobDescription string   `json:"job_description,omitempty"`
	Source         string   `json:"source,omitempty"` // "web_search" or absent
	SourceURL      string   `json:"source_url,omitempty"`
	Company        string   `json:"company,omitempty"`
	SkillTag       string   `json:"skill_tag,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"` // easy, medium, hard
}

// JobAnalysis is the backend-derived structured summary of a submitted
// job description. It arrives at most once per generation session.
type JobAnalysis struct {
	CompanyName string   `json:"company_name,omitempty"`
	JobTitle    string   `json:"job_title,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	Seniority   string   `json:"seniority,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Domain      string   `json:"domain,omitempty"`
}

// ResultSet is the accumulated output of one generation session: an ordered
// sequence of questions per category plus the optional job analysis.
type ResultSet struct {
	Categories  map[Category][]Question `json:"categories"`
	JobAnalysis *JobAnalysis            `json:"job_analysis,omitempty"`
}

// NewResultSet returns an empty ResultSet with no category sequences.
func NewResultSet() *ResultSet {
	return &ResultSet{Categories: make(map[Category][]Question)}
}

// Append adds a question to its category's sequence, creating the sequence
// if absent. Insertion order is preserved for display.
func (rs *ResultSet) Append(q Question) {
	if rs.Categories == nil {
		rs.Categories = make(map[Category][]Question)
	}
	rs.Categories[q.Category] = append(rs.Categories[q.Category], q)
}

// Count returns the total number of questions across all categories.
func (rs *ResultSet) Count() int {
	n := 0
	for _, qs := range rs.Categories {
		n += len(qs)
	}
	return n
}

// Get returns the question sequence for a category. Missing categories are empty.
func (rs *ResultSet) Get(c Category) []Question {
	if rs.Categories == nil {
		return nil
	}
	return rs.Categories[c]
}

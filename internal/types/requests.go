package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all request types. "required" alone accepts
// whitespace-only strings, so free-text fields use "notblank" as well.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// GenerateQuestionsRequest is the body for both the one-shot and streaming
// generate-questions endpoints.
type GenerateQuestionsRequest struct {
	JobDescription string `json:"job_description" validate:"required,notblank"`
}

// GenerateQuestionsResponse is the one-shot response shape. Category fields
// absent from a deployment's response are decoded as empty slices.
type GenerateQuestionsResponse struct {
	Technical       []Question   `json:"technical"`
	Behavioral      []Question   `json:"behavioral"`
	Situational     []Question   `json:"situational"`
	CompanySpecific []Question   `json:"company_specific"`
	JobAnalysis     *JobAnalysis `json:"job_analysis"`
}

// ResultSet converts the per-category response fields into a ResultSet.
func (r *GenerateQuestionsResponse) ResultSet() *ResultSet {
	rs := NewResultSet()
	for _, group := range []struct {
		category  Category
		questions []Question
	}{
		{CategoryTechnical, r.Technical},
		{CategoryBehavioral, r.Behavioral},
		{CategorySituational, r.Situational},
		{CategoryCompanySpecific, r.CompanySpecific},
	} {
		for _, q := range group.questions {
			if q.Category == "" {
				q.Category = group.category
			}
			rs.Append(q)
		}
	}
	rs.JobAnalysis = r.JobAnalysis
	return rs
}

// LoadMoreRequest asks the backend for additional questions in one category,
// excluding questions the client already holds.
type LoadMoreRequest struct {
	JobDescription    string   `json:"job_description" validate:"required,notblank"`
	Category          Category `json:"category" validate:"required"`
	ExistingQuestions []string `json:"existing_questions"`
	Skills            []string `json:"skills,omitempty"`
	Domain            string   `json:"domain,omitempty"`
	JobTitle          string   `json:"job_title,omitempty"`
	Seniority         string   `json:"seniority,omitempty"`
}

// LoadMoreResponse carries the additional questions. An empty slice means
// "no more unique results", which is not an error.
type LoadMoreResponse struct {
	Questions []Question `json:"questions"`
}

// AddFavoriteRequest is the body for saving a question to favorites.
type AddFavoriteRequest struct {
	Question       string   `json:"question" validate:"required,notblank"`
	Answer         string   `json:"answer" validate:"required,notblank"`
	Category       Category `json:"category" validate:"required"`
	JobDescription string   `json:"job_description"`
	Source         string   `json:"source,omitempty"`
	SourceURL      string   `json:"source_url,omitempty"`
	Company        string   `json:"company,omitempty"`
	SkillTag       string   `json:"skill_tag,omitempty"`
}

// ExtractTextBase64Request is the body for image-based text extraction.
type ExtractTextBase64Request struct {
	ImageBase64 string `json:"image_base64" validate:"required,min=1"`
}

// ExtractTextResponse is returned by both extract-text endpoints.
type ExtractTextResponse struct {
	ExtractedText string `json:"extracted_text"`
}

// Validate validates the GenerateQuestionsRequest using the validator.
func (r *GenerateQuestionsRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the LoadMoreRequest using the validator.
func (r *LoadMoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AddFavoriteRequest using the validator.
func (r *AddFavoriteRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ExtractTextBase64Request using the validator.
func (r *ExtractTextBase64Request) Validate() error {
	return validate.Struct(r)
}

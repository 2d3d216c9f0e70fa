// Package questions turns a job description into categorized interview
// questions with model answers, using an LLM behind the llm.Client
// abstraction. Output is validated against an embedded JSON schema before
// it is trusted.
package questions

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/prompts"
	"github.com/jonathan/interview-prep/internal/types"
)

// DefaultPerCategory is how many questions each category gets on a full
// generation pass.
const DefaultPerCategory = 4

//go:embed batch_schema.json
var batchSchema string

// Generator produces interview questions and job analysis.
type Generator interface {
	// Analyze summarizes the job description as structured data.
	Analyze(ctx context.Context, jobDescription string) (*types.JobAnalysis, error)
	// Category generates count questions for one category.
	Category(ctx context.Context, jobDescription string, category types.Category, count int) ([]types.Question, error)
	// Generate produces the full per-category set plus the job analysis.
	Generate(ctx context.Context, jobDescription string) (*types.ResultSet, error)
	// LoadMore generates additional questions excluding ones the client holds.
	LoadMore(ctx context.Context, req types.LoadMoreRequest) ([]types.Question, error)
}

// LLMGenerator implements Generator over an llm.Client.
type LLMGenerator struct {
	client      llm.Client
	perCategory int
}

// NewLLMGenerator creates a generator. perCategory <= 0 uses DefaultPerCategory.
func NewLLMGenerator(client llm.Client, perCategory int) *LLMGenerator {
	if perCategory <= 0 {
		perCategory = DefaultPerCategory
	}
	return &LLMGenerator{client: client, perCategory: perCategory}
}

// Analyze summarizes the job description with the fast model tier.
func (g *LLMGenerator) Analyze(ctx context.Context, jobDescription string) (*types.JobAnalysis, error) {
	prompt := prompts.Format(prompts.MustGet("questions.json", "job_analysis"), map[string]string{
		"JobDescription": jobDescription,
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierFast)
	if err != nil {
		return nil, fmt.Errorf("job analysis failed: %w", err)
	}

	var analysis types.JobAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse job analysis response: %w", err)
	}
	return &analysis, nil
}

// Category generates count questions for one category with the quality tier.
func (g *LLMGenerator) Category(ctx context.Context, jobDescription string, category types.Category, count int) ([]types.Question, error) {
	prompt := prompts.Format(prompts.MustGet("questions.json", "category_batch"), map[string]string{
		"JobDescription": jobDescription,
		"Category":       categoryLabel(category),
		"Count":          strconv.Itoa(count),
	})
	return g.generateBatch(ctx, prompt, jobDescription, category)
}

// Generate runs the job analysis and all category batches, the batches
// concurrently. The first failure cancels the remaining work.
func (g *LLMGenerator) Generate(ctx context.Context, jobDescription string) (*types.ResultSet, error) {
	analysis, err := g.Analyze(ctx, jobDescription)
	if err != nil {
		return nil, err
	}

	categories := types.Categories()
	batches := make([][]types.Question, len(categories))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, category := range categories {
		eg.Go(func() error {
			batch, err := g.Category(egCtx, jobDescription, category, g.perCategory)
			if err != nil {
				return err
			}
			batches[i] = batch
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	rs := types.NewResultSet()
	rs.JobAnalysis = analysis
	for _, batch := range batches {
		for _, q := range batch {
			rs.Append(q)
		}
	}
	return rs, nil
}

// LoadMore generates additional questions for one category, excluding the
// questions the client already holds. An empty result means the model found
// no further unique questions; that is not an error.
func (g *LLMGenerator) LoadMore(ctx context.Context, req types.LoadMoreRequest) ([]types.Question, error) {
	existing := "- (none)"
	if len(req.ExistingQuestions) > 0 {
		existing = "- " + strings.Join(req.ExistingQuestions, "\n- ")
	}

	prompt := prompts.Format(prompts.MustGet("questions.json", "load_more"), map[string]string{
		"JobDescription": req.JobDescription,
		"Category":       categoryLabel(req.Category),
		"Count":          strconv.Itoa(DefaultPerCategory),
		"Existing":       existing,
	})
	return g.generateBatch(ctx, prompt, req.JobDescription, req.Category)
}

// generatedQuestion is the shape the model is asked to produce.
type generatedQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	SkillTag   string `json:"skill_tag"`
	Difficulty string `json:"difficulty"`
}

func (g *LLMGenerator) generateBatch(ctx context.Context, prompt, jobDescription string, category types.Category) ([]types.Question, error) {
	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierQuality)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	if err := validateBatch(raw); err != nil {
		return nil, fmt.Errorf("model output failed schema validation: %w", err)
	}

	var batch struct {
		Questions []generatedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse question batch: %w", err)
	}

	result := make([]types.Question, 0, len(batch.Questions))
	for _, gq := range batch.Questions {
		result = append(result, types.Question{
			ID:             uuid.NewString(),
			Question:       gq.Question,
			Answer:         gq.Answer,
			Category:       category,
			JobDescription: jobDescription,
			SkillTag:       gq.SkillTag,
			Difficulty:     gq.Difficulty,
		})
	}
	return result, nil
}

// validateBatch checks the raw model output against the embedded schema.
func validateBatch(raw string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(batchSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return err
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return fmt.Errorf("%s", strings.Join(issues, "; "))
	}
	return nil
}

// categoryLabel renders a category for use inside a prompt.
func categoryLabel(c types.Category) string {
	return strings.ReplaceAll(string(c), "_", " ")
}

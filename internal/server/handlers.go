package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/extract"
	"github.com/jonathan/interview-prep/internal/questions"
	"github.com/jonathan/interview-prep/internal/types"
)

// maxUploadSize caps job description uploads at 10 MB.
const maxUploadSize = 10 << 20

// handleGenerateQuestions runs the full generation pass and returns every
// category in one response body.
func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "job_description is required")
		return
	}

	results, err := s.generator.Generate(r.Context(), req.JobDescription)
	if err != nil {
		log.Printf("generate-questions failed: %v", err)
		s.errorResponse(w, HTTPStatus(&ErrGeneration{Cause: err}), "question generation failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.GenerateQuestionsResponse{
		Technical:       orEmpty(results.Get(types.CategoryTechnical)),
		Behavioral:      orEmpty(results.Get(types.CategoryBehavioral)),
		Situational:     orEmpty(results.Get(types.CategorySituational)),
		CompanySpecific: orEmpty(results.Get(types.CategoryCompanySpecific)),
		JobAnalysis:     results.JobAnalysis,
	})
}

// handleGenerateQuestionsStream runs the generation pass and pushes results
// over SSE as they arrive: a job_analysis event, one question event per
// generated question, status events between phases, and a final complete
// event. Generator failures after the stream has started are reported as
// error events since the HTTP status is already committed.
func (s *Server) handleGenerateQuestionsStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "job_description is required")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()

	sse.WriteStatus("Analyzing job description...")
	analysis, err := s.generator.Analyze(ctx, req.JobDescription)
	if err != nil {
		log.Printf("stream: job analysis failed: %v", err)
		sse.WriteError("job analysis failed")
		return
	}
	sse.WriteJobAnalysis(analysis)

	total := 0
	for _, category := range types.Categories() {
		sse.WriteStatus(fmt.Sprintf("Generating %s questions...", categoryDisplay(category)))

		batch, err := s.generator.Category(ctx, req.JobDescription, category, questions.DefaultPerCategory)
		if err != nil {
			// One failed category does not end the stream; the client keeps
			// whatever has already arrived.
			log.Printf("stream: %s batch failed: %v", category, err)
			sse.WriteError(fmt.Sprintf("failed to generate %s questions", categoryDisplay(category)))
			continue
		}

		for _, q := range batch {
			sse.WriteQuestion(q)
			total++
		}
	}

	sse.WriteComplete(total)
}

// handleLoadMore generates additional questions for one category.
func (s *Server) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	var req types.LoadMoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "job_description and category are required")
		return
	}

	batch, err := s.generator.LoadMore(r.Context(), req)
	if err != nil {
		log.Printf("load-more failed: %v", err)
		s.errorResponse(w, HTTPStatus(&ErrGeneration{Cause: err}), "question generation failed")
		return
	}

	// An empty batch means no further unique questions; still a 200.
	s.jsonResponse(w, http.StatusOK, types.LoadMoreResponse{Questions: orEmpty(batch)})
}

// handleListFavorites returns all saved favorites, newest first.
func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.favorites.ListFavorites(r.Context())
	if err != nil {
		log.Printf("list favorites failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}

	questions := make([]types.Question, 0, len(favorites))
	for _, f := range favorites {
		questions = append(questions, f.ToQuestion())
	}
	s.jsonResponse(w, http.StatusOK, questions)
}

// handleAddFavorite saves a question to favorites.
func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req types.AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "question, answer and category are required")
		return
	}

	favorite, err := s.favorites.CreateFavorite(r.Context(), req)
	if err != nil {
		log.Printf("add favorite failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to save favorite")
		return
	}
	s.jsonResponse(w, http.StatusCreated, favorite.ToQuestion())
}

// handleGetFavorite returns one favorite by id.
func (s *Server) handleGetFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid favorite id")
		return
	}

	favorite, err := s.favorites.GetFavorite(r.Context(), id)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("get favorite failed: %v", err)
		}
		s.errorResponse(w, status, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, favorite.ToQuestion())
}

// handleRemoveFavorite deletes a favorite by id.
func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid favorite id")
		return
	}

	if err := s.favorites.DeleteFavorite(r.Context(), id); err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("remove favorite failed: %v", err)
		}
		s.errorResponse(w, status, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleExtractText extracts job description text from an uploaded file.
// The file arrives as multipart form data under the "file" field.
func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	text, err := extract.FromFile(header.Filename, file)
	if err != nil {
		log.Printf("extract-text failed for %s: %v", header.Filename, err)
		s.errorResponse(w, HTTPStatus(&ErrExtraction{Cause: err}), "could not extract text from file")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ExtractTextResponse{ExtractedText: text})
}

// handleExtractTextBase64 extracts text from a base64-encoded image via OCR.
func (s *Server) handleExtractTextBase64(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractTextBase64Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "image_base64 is required")
		return
	}

	text, err := extract.FromBase64Image(req.ImageBase64)
	if err != nil {
		log.Printf("extract-text-base64 failed: %v", err)
		s.errorResponse(w, HTTPStatus(&ErrExtraction{Cause: err}), "could not extract text from image")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ExtractTextResponse{ExtractedText: text})
}

// orEmpty keeps JSON array fields as [] instead of null.
func orEmpty(qs []types.Question) []types.Question {
	if qs == nil {
		return []types.Question{}
	}
	return qs
}

func categoryDisplay(c types.Category) string {
	switch c {
	case types.CategoryCompanySpecific:
		return "company-specific"
	default:
		return string(c)
	}
}

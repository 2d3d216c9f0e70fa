package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/api"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/types"
)

// stubGenerator returns canned questions without an LLM.
type stubGenerator struct {
	analyzeErr  error
	categoryErr map[types.Category]error
	loadMore    []types.Question
	loadMoreErr error
}

func (g *stubGenerator) Analyze(_ context.Context, _ string) (*types.JobAnalysis, error) {
	if g.analyzeErr != nil {
		return nil, g.analyzeErr
	}
	return &types.JobAnalysis{CompanyName: "Acme Corp", JobTitle: "Backend Engineer"}, nil
}

func (g *stubGenerator) Category(_ context.Context, _ string, category types.Category, count int) ([]types.Question, error) {
	if err := g.categoryErr[category]; err != nil {
		return nil, err
	}
	qs := make([]types.Question, 0, count)
	for i := 0; i < count; i++ {
		qs = append(qs, types.Question{
			ID:       fmt.Sprintf("%s-%d", category, i),
			Question: fmt.Sprintf("Question %d about %s", i, category),
			Answer:   "Because.",
			Category: category,
		})
	}
	return qs, nil
}

func (g *stubGenerator) Generate(ctx context.Context, jobDescription string) (*types.ResultSet, error) {
	analysis, err := g.Analyze(ctx, jobDescription)
	if err != nil {
		return nil, err
	}
	rs := types.NewResultSet()
	rs.JobAnalysis = analysis
	for _, category := range types.Categories() {
		batch, err := g.Category(ctx, jobDescription, category, 2)
		if err != nil {
			return nil, err
		}
		for _, q := range batch {
			rs.Append(q)
		}
	}
	return rs, nil
}

func (g *stubGenerator) LoadMore(_ context.Context, _ types.LoadMoreRequest) ([]types.Question, error) {
	return g.loadMore, g.loadMoreErr
}

// memFavorites is an in-memory FavoritesStore.
type memFavorites struct {
	items []db.Favorite
	err   error
}

func (m *memFavorites) CreateFavorite(_ context.Context, req types.AddFavoriteRequest) (*db.Favorite, error) {
	if m.err != nil {
		return nil, m.err
	}
	f := db.Favorite{
		ID:       uuid.New(),
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
	}
	m.items = append(m.items, f)
	return &f, nil
}

func (m *memFavorites) ListFavorites(_ context.Context) ([]db.Favorite, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *memFavorites) GetFavorite(_ context.Context, id uuid.UUID) (*db.Favorite, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, db.ErrFavoriteNotFound
}

func (m *memFavorites) DeleteFavorite(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	for i, f := range m.items {
		if f.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return db.ErrFavoriteNotFound
}

func newTestServer(gen *stubGenerator, favorites *memFavorites) *Server {
	if gen == nil {
		gen = &stubGenerator{}
	}
	if favorites == nil {
		favorites = &memFavorites{}
	}
	return &Server{generator: gen, favorites: favorites}
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleGenerateQuestions(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := postJSON(t, s.routes(), "/api/generate-questions",
		types.GenerateQuestionsRequest{JobDescription: "Go backend role"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.GenerateQuestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Technical, 2)
	assert.Len(t, resp.Behavioral, 2)
	assert.Len(t, resp.Situational, 2)
	assert.Len(t, resp.CompanySpecific, 2)
	require.NotNil(t, resp.JobAnalysis)
	assert.Equal(t, "Acme Corp", resp.JobAnalysis.CompanyName)
}

func TestHandleGenerateQuestions_EmptyInput(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := postJSON(t, s.routes(), "/api/generate-questions",
		types.GenerateQuestionsRequest{JobDescription: ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "job_description")
}

func TestHandleGenerateQuestions_WhitespaceOnlyInput(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := postJSON(t, s.routes(), "/api/generate-questions",
		types.GenerateQuestionsRequest{JobDescription: "   \n\t "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerateQuestions_InvalidJSON(t *testing.T) {
	s := newTestServer(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-questions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerateQuestions_GeneratorFailure(t *testing.T) {
	s := newTestServer(&stubGenerator{analyzeErr: fmt.Errorf("model unavailable")}, nil)

	rec := postJSON(t, s.routes(), "/api/generate-questions",
		types.GenerateQuestionsRequest{JobDescription: "Go backend role"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleGenerateQuestionsStream(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := postJSON(t, s.routes(), "/api/generate-questions/stream",
		types.GenerateQuestionsRequest{JobDescription: "Go backend role"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: status\n")
	assert.Contains(t, body, "event: job_analysis\n")
	assert.Contains(t, body, "event: question\n")
	assert.Contains(t, body, "event: complete\n")
	assert.Contains(t, body, `"total":16`)
	// Frames are blank-line separated
	assert.Contains(t, body, "\n\n")
}

func TestHandleGenerateQuestionsStream_CategoryFailureContinues(t *testing.T) {
	gen := &stubGenerator{categoryErr: map[types.Category]error{
		types.CategoryBehavioral: fmt.Errorf("model hiccup"),
	}}
	s := newTestServer(gen, nil)

	rec := postJSON(t, s.routes(), "/api/generate-questions/stream",
		types.GenerateQuestionsRequest{JobDescription: "Go backend role"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "event: error\n")
	assert.Contains(t, body, "behavioral")
	// Remaining categories still stream and the session completes
	assert.Contains(t, body, "event: complete\n")
	assert.Contains(t, body, `"total":12`)
}

func TestHandleLoadMore(t *testing.T) {
	gen := &stubGenerator{loadMore: []types.Question{
		{ID: "n1", Question: "New question", Answer: "A", Category: types.CategoryTechnical},
	}}
	s := newTestServer(gen, nil)

	rec := postJSON(t, s.routes(), "/api/load-more", types.LoadMoreRequest{
		JobDescription:    "Go backend role",
		Category:          types.CategoryTechnical,
		ExistingQuestions: []string{"Old question"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.LoadMoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "New question", resp.Questions[0].Question)
}

func TestHandleLoadMore_EmptyIsNotAnError(t *testing.T) {
	s := newTestServer(&stubGenerator{loadMore: nil}, nil)

	rec := postJSON(t, s.routes(), "/api/load-more", types.LoadMoreRequest{
		JobDescription: "Go backend role",
		Category:       types.CategoryTechnical,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"questions":[]`)
}

func TestFavoritesLifecycle(t *testing.T) {
	favorites := &memFavorites{}
	s := newTestServer(nil, favorites)
	mux := s.routes()

	// Add
	rec := postJSON(t, mux, "/api/favorites", types.AddFavoriteRequest{
		Question: "Explain channels",
		Answer:   "Typed conduits",
		Category: types.CategoryTechnical,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var added types.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.NotEmpty(t, added.ID)

	// List returns a bare question array, the shape api.Client decodes.
	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []types.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Explain channels", listed[0].Question)

	// Remove
	req = httptest.NewRequest(http.MethodDelete, "/api/favorites/"+added.ID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, favorites.items)
}

// TestFavorites_ClientRoundTrip drives the favorites endpoints through the
// real HTTP client to pin the wire shapes on both sides.
func TestFavorites_ClientRoundTrip(t *testing.T) {
	s := newTestServer(nil, &memFavorites{})
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	client := api.NewClient(srv.URL+"/api", nil)
	ctx := context.Background()

	created, err := client.AddFavorite(ctx, types.AddFavoriteRequest{
		Question: "Explain channels",
		Answer:   "Typed conduits",
		Category: types.CategoryTechnical,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	listed, err := client.ListFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Explain channels", listed[0].Question)

	shown, err := client.GetFavorite(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Typed conduits", shown.Answer)

	require.NoError(t, client.RemoveFavorite(ctx, created.ID))

	listed, err = client.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestHandleGetFavorite_NotFound(t *testing.T) {
	s := newTestServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/favorites/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRemoveFavorite_NotFound(t *testing.T) {
	s := newTestServer(nil, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/favorites/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRemoveFavorite_InvalidID(t *testing.T) {
	s := newTestServer(nil, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/favorites/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAddFavorite_MissingFields(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := postJSON(t, s.routes(), "/api/favorites", types.AddFavoriteRequest{Question: "Q only"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtractText(t *testing.T) {
	s := newTestServer(nil, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "posting.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Senior Go Engineer\nBuild things in Go."))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/extract-text", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.ExtractTextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.ExtractedText, "Senior Go Engineer")
}

func TestHandleExtractText_MissingFile(t *testing.T) {
	s := newTestServer(nil, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/extract-text", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtractTextBase64_MissingImage(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := postJSON(t, s.routes(), "/api/extract-text-base64", types.ExtractTextBase64Request{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

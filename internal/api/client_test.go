package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/types"
)

func TestGenerateQuestions_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/generate-questions", r.URL.Path)

		var req types.GenerateQuestionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Senior Go engineer", req.JobDescription)

		_ = json.NewEncoder(w).Encode(types.GenerateQuestionsResponse{
			Technical: []types.Question{{ID: "t1", Question: "Explain channels", Answer: "..."}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	resp, err := client.GenerateQuestions(context.Background(), "Senior Go engineer")
	require.NoError(t, err)
	require.Len(t, resp.Technical, 1)
	assert.Equal(t, "t1", resp.Technical[0].ID)
}

func TestGenerateQuestions_EmptyInputNoRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.GenerateQuestions(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 0, requests)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid request", apiErr.Message)
}

func TestGenerateQuestions_BackendErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to parse AI response"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.GenerateQuestions(context.Background(), "Backend role")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Failed to parse AI response")
}

func TestOpen_StreamsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-questions/stream", r.URL.Path)
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = io.WriteString(w, "event: status\ndata: {\"message\":\"Analyzing\"}\n\n")
		flusher.Flush()
		_, _ = io.WriteString(w, "event: complete\ndata: {}\n\n")
		flusher.Flush()
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	body, err := client.Open(context.Background(), "Backend role")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "event: status")
	assert.Contains(t, string(data), "event: complete")
}

func TestOpen_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Open(context.Background(), "Backend role")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestLoadMore_EmptyResultIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.LoadMoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, types.CategoryTechnical, req.Category)
		assert.Equal(t, []string{"Explain channels"}, req.ExistingQuestions)

		_, _ = w.Write([]byte(`{"questions":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	resp, err := client.LoadMore(context.Background(), types.LoadMoreRequest{
		JobDescription:    "Backend role",
		Category:          types.CategoryTechnical,
		ExistingQuestions: []string{"Explain channels"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Questions)
}

func TestFavorites_RoundTrip(t *testing.T) {
	var stored []types.Question
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/favorites":
			var req types.AddFavoriteRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			q := types.Question{ID: "fav-1", Question: req.Question, Answer: req.Answer, Category: req.Category}
			stored = append(stored, q)
			_ = json.NewEncoder(w).Encode(q)
		case r.Method == http.MethodGet && r.URL.Path == "/favorites":
			_ = json.NewEncoder(w).Encode(stored)
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/favorites/"):
			stored = nil
			_, _ = w.Write([]byte(`{"message":"Favorite removed successfully"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	ctx := context.Background()

	created, err := client.AddFavorite(ctx, types.AddFavoriteRequest{
		Question: "Explain channels",
		Answer:   "Channels are typed conduits...",
		Category: types.CategoryTechnical,
	})
	require.NoError(t, err)
	assert.Equal(t, "fav-1", created.ID)

	favorites, err := client.ListFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	require.NoError(t, client.RemoveFavorite(ctx, "fav-1"))
	favorites, err = client.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestExtractText_Multipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "posting.txt", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		_ = json.NewEncoder(w).Encode(types.ExtractTextResponse{ExtractedText: string(content)})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	text, err := client.ExtractText(context.Background(), "/tmp/posting.txt", strings.NewReader("We are hiring"))
	require.NoError(t, err)
	assert.Equal(t, "We are hiring", text)
}

func TestExtractTextBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.ExtractTextBase64Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.ImageBase64)
		_ = json.NewEncoder(w).Encode(types.ExtractTextResponse{ExtractedText: "Job posting text"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	text, err := client.ExtractTextBase64(context.Background(), "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "Job posting text", text)
}

func TestClient_ConnectionRefused(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)
	_, err := client.ListFavorites(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
}

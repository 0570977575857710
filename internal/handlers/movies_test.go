package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/moviehub/movies-api/internal/database"
	"github.com/moviehub/movies-api/internal/models"
)

// mockMovieRepo is an in-memory MovieRepositoryInterface implementation
type mockMovieRepo struct {
	movies map[int64]*models.Movie
}

func newMockMovieRepo() *mockMovieRepo {
	return &mockMovieRepo{movies: make(map[int64]*models.Movie)}
}

func (m *mockMovieRepo) Create(ctx context.Context, movie *models.Movie) error {
	now := time.Now()
	movie.CreatedAt = now
	movie.UpdatedAt = now
	m.movies[movie.ID] = movie
	return nil
}

func (m *mockMovieRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	movie, ok := m.movies[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", database.ErrMovieNotFound, id)
	}
	return movie, nil
}

func (m *mockMovieRepo) GetAll(ctx context.Context) ([]*models.Movie, error) {
	var out []*models.Movie
	for _, movie := range m.movies {
		out = append(out, movie)
	}
	return out, nil
}

func (m *mockMovieRepo) GetByCategory(ctx context.Context, category models.Category) ([]*models.Movie, error) {
	var out []*models.Movie
	for _, movie := range m.movies {
		if movie.Category == category {
			out = append(out, movie)
		}
	}
	return out, nil
}

func (m *mockMovieRepo) Update(ctx context.Context, movie *models.Movie) error {
	if _, ok := m.movies[movie.ID]; !ok {
		return fmt.Errorf("%w: id %d", database.ErrMovieNotFound, movie.ID)
	}
	movie.UpdatedAt = time.Now()
	m.movies[movie.ID] = movie
	return nil
}

func (m *mockMovieRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.movies[id]; !ok {
		return fmt.Errorf("%w: id %d", database.ErrMovieNotFound, id)
	}
	delete(m.movies, id)
	return nil
}

func newMovieRouter(repo database.MovieRepositoryInterface) *mux.Router {
	r := mux.NewRouter()
	NewMovieHandler(repo).RegisterRoutes(r.PathPrefix("/api/v1/movie").Subrouter())
	return r
}

func validMovieJSON(id int64) string {
	return fmt.Sprintf(`{
		"id": %d,
		"title": "The Long Voyage",
		"overview": "A crew crosses the ocean against every odd imaginable.",
		"year": 2020,
		"rating": 7.5,
		"category": "adventure"
	}`, id)
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateMovie(t *testing.T) {
	t.Parallel()

	repo := newMockMovieRepo()
	router := newMovieRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/v1/movie/movies", validMovieJSON(1)))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}
	if _, ok := repo.movies[1]; !ok {
		t.Error("Expected movie to be stored")
	}
}

func TestCreateMovie_ValidationFailure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"title too short", `{"id":1,"title":"Abc","overview":"A perfectly valid overview text.","year":2020,"rating":7.5,"category":"drama"}`},
		{"overview too short", `{"id":1,"title":"Valid Title","overview":"Too short","year":2020,"rating":7.5,"category":"drama"}`},
		{"year before cinema", `{"id":1,"title":"Valid Title","overview":"A perfectly valid overview text.","year":1800,"rating":7.5,"category":"drama"}`},
		{"rating off the half step", `{"id":1,"title":"Valid Title","overview":"A perfectly valid overview text.","year":2020,"rating":7.3,"category":"drama"}`},
		{"unknown category", `{"id":1,"title":"Valid Title","overview":"A perfectly valid overview text.","year":2020,"rating":7.5,"category":"documentary"}`},
		{"non-positive id", `{"id":0,"title":"Valid Title","overview":"A perfectly valid overview text.","year":2020,"rating":7.5,"category":"drama"}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newMovieRouter(newMockMovieRepo())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest("POST", "/api/v1/movie/movies", tc.body))

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestGetMovie(t *testing.T) {
	t.Parallel()

	repo := newMockMovieRepo()
	router := newMovieRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/v1/movie/movies", validMovieJSON(7)))
	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("Setup create failed with status %d", w.Result().StatusCode)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/movie/movies/7", nil))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Data models.Movie `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Data.ID != 7 {
		t.Errorf("Expected movie ID 7, got %d", body.Data.ID)
	}
}

func TestGetMovie_NotFound(t *testing.T) {
	t.Parallel()

	router := newMovieRouter(newMockMovieRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/movie/movies/42", nil))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", resp.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !strings.Contains(body.Message, "Movie with ID 42 not found in the system.") {
		t.Errorf("Unexpected message: %q", body.Message)
	}
}

func TestGetMovie_InvalidID(t *testing.T) {
	t.Parallel()

	router := newMovieRouter(newMockMovieRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/movie/movies/-3", nil))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestGetAllMovies_Empty(t *testing.T) {
	t.Parallel()

	router := newMovieRouter(newMockMovieRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/movie/get-all-movies", nil))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", resp.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Message != "This user has no movies in the system." {
		t.Errorf("Unexpected message: %q", body.Message)
	}
}

func TestGetMoviesByCategory(t *testing.T) {
	t.Parallel()

	repo := newMockMovieRepo()
	router := newMovieRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/v1/movie/movies", validMovieJSON(1)))
	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("Setup create failed with status %d", w.Result().StatusCode)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/movie/get-movies-by-category/adventure", nil))
	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 for populated category, got %d", w.Result().StatusCode)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/movie/get-movies-by-category/western", nil))
	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 for empty category, got %d", w.Result().StatusCode)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/movie/get-movies-by-category/documentary", nil))
	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown category, got %d", w.Result().StatusCode)
	}
}

func TestUpdateMovie(t *testing.T) {
	t.Parallel()

	repo := newMockMovieRepo()
	router := newMovieRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/v1/movie/movies", validMovieJSON(5)))
	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("Setup create failed with status %d", w.Result().StatusCode)
	}

	updated := `{"id":5,"title":"The Longer Voyage","overview":"A crew crosses two oceans against every odd imaginable.","year":2021,"rating":8.0,"category":"adventure"}`
	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/api/v1/movie/update-movie/5", updated))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if repo.movies[5].Title != "The Longer Voyage" {
		t.Errorf("Expected updated title, got %q", repo.movies[5].Title)
	}
}

func TestUpdateMovie_NotFound(t *testing.T) {
	t.Parallel()

	router := newMovieRouter(newMockMovieRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/api/v1/movie/update-movie/9", validMovieJSON(9)))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestDeleteMovie(t *testing.T) {
	t.Parallel()

	repo := newMockMovieRepo()
	router := newMovieRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/v1/movie/movies", validMovieJSON(3)))
	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("Setup create failed with status %d", w.Result().StatusCode)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/movie/delete-movie/3", nil))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", resp.StatusCode)
	}
	if resp.Header.Get("deleted") != "true" {
		t.Errorf("Expected deleted header 'true', got %q", resp.Header.Get("deleted"))
	}
	if resp.Header.Get("deleted_at") == "" {
		t.Error("Expected deleted_at header")
	}
	if _, ok := repo.movies[3]; ok {
		t.Error("Expected movie to be removed")
	}
}

func TestDeleteMovie_NotFound(t *testing.T) {
	t.Parallel()

	router := newMovieRouter(newMockMovieRepo())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/movie/delete-movie/3", nil))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", resp.StatusCode)
	}
}

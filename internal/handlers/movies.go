package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/moviehub/movies-api/internal/database"
	"github.com/moviehub/movies-api/internal/models"
	"github.com/moviehub/movies-api/internal/validation"
)

// MovieHandler handles movie-related requests
type MovieHandler struct {
	movieRepo database.MovieRepositoryInterface
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(movieRepo database.MovieRepositoryInterface) *MovieHandler {
	return &MovieHandler{movieRepo: movieRepo}
}

// RegisterRoutes registers movie routes on the given router
// The router should already have the /movie prefix (e.g., from apiRouter.PathPrefix("/movie"))
func (h *MovieHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/movies", h.CreateMovie).Methods("POST")
	r.HandleFunc("/movies/{id}", h.GetMovie).Methods("GET")
	r.HandleFunc("/get-all-movies", h.GetAllMovies).Methods("GET")
	r.HandleFunc("/get-movies-by-category/{category}", h.GetMoviesByCategory).Methods("GET")
	r.HandleFunc("/update-movie/{id}", h.UpdateMovie).Methods("PUT")
	r.HandleFunc("/delete-movie/{id}", h.DeleteMovie).Methods("DELETE")
}

// parseMovieID extracts and validates the positive movie ID path variable
func parseMovieID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("movie ID must be a positive integer")
	}
	return id, nil
}

// decodeMovie decodes and validates a movie request body
func (h *MovieHandler) decodeMovie(w http.ResponseWriter, r *http.Request) (*models.Movie, bool) {
	var movie models.Movie
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&movie); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return nil, false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return nil, false
	}

	movie.Title = validation.SanitizeText(movie.Title)
	movie.Overview = validation.SanitizeText(movie.Overview)

	if err := validation.Validate.Struct(movie); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return nil, false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return nil, false
	}

	return &movie, true
}

// CreateMovie creates a new movie
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.decodeMovie(w, r)
	if !ok {
		return
	}

	if err := h.movieRepo.Create(r.Context(), movie); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create movie")
		return
	}

	respondJSON(w, http.StatusCreated, movie)
}

// GetMovie retrieves a movie by ID
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseMovieID(r)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	movie, err := h.movieRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrMovieNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", fmt.Sprintf("Movie with ID %d not found in the system.", id))
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve movie")
		return
	}

	respondJSON(w, http.StatusOK, movie)
}

// GetAllMovies retrieves every movie in the system
func (h *MovieHandler) GetAllMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movieRepo.GetAll(r.Context())
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve movies")
		return
	}
	if len(movies) == 0 {
		respondJSONError(w, http.StatusNotFound, "Not Found", "This user has no movies in the system.")
		return
	}

	respondJSON(w, http.StatusOK, movies)
}

// GetMoviesByCategory retrieves all movies with the given category
func (h *MovieHandler) GetMoviesByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	if err := validation.ValidateCategory(category); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	movies, err := h.movieRepo.GetByCategory(r.Context(), models.Category(category))
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve movies")
		return
	}
	if len(movies) == 0 {
		respondJSONError(w, http.StatusNotFound, "Not Found", fmt.Sprintf("This user has no movies from category: %s in the system.", category))
		return
	}

	respondJSON(w, http.StatusOK, movies)
}

// UpdateMovie replaces a movie's data
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseMovieID(r)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	movie, ok := h.decodeMovie(w, r)
	if !ok {
		return
	}
	movie.ID = id

	if err := h.movieRepo.Update(r.Context(), movie); err != nil {
		if errors.Is(err, database.ErrMovieNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", fmt.Sprintf("Movie with ID %d not found in the system.", id))
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update movie")
		return
	}

	respondJSON(w, http.StatusOK, movie)
}

// DeleteMovie deletes a movie and reports the deletion in response headers
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseMovieID(r)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	if err := h.movieRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrMovieNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", fmt.Sprintf("Movie with ID %d not found in the system.", id))
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete movie")
		return
	}

	w.Header().Set("deleted", "true")
	w.Header().Set("deleted_at", time.Now().UTC().Format(time.RFC3339))
	w.WriteHeader(http.StatusNoContent)
}

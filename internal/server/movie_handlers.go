package server

import (
	"cinelog/internal/models"
	"cinelog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMovies handles GET /api/movies?q=...
func (s *Server) GetMovies(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	movies, err := s.movieRepo.List(c.Context(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(movies)
}

// GetMovie handles GET /api/movies/:id
func (s *Server) GetMovie(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	movie, err := s.movieRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(movie)
}

type movieRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Year        int               `json:"year"`
	Genre       models.StringList `json:"genre,omitempty"`
	Director    string            `json:"director"`
	Cast        models.StringList `json:"cast,omitempty"`
	TrailerURL  string            `json:"trailer_url"`
}

// CreateMovie handles POST /api/movies (admin only)
func (s *Server) CreateMovie(c *fiber.Ctx) error {
	var req movieRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if err := validation.ValidateMovieInput(req.Title, req.Year); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	movie := &models.Movie{
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		Genre:       req.Genre,
		Director:    req.Director,
		Cast:        req.Cast,
		TrailerURL:  req.TrailerURL,
	}
	if err := s.movieRepo.Create(c.Context(), movie); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movie)
}

// UpdateMovie handles PUT /api/movies/:id (admin only)
func (s *Server) UpdateMovie(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	movie, err := s.movieRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req movieRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if req.Title != "" {
		movie.Title = req.Title
	}
	if req.Description != "" {
		movie.Description = req.Description
	}
	if req.Year != 0 {
		movie.Year = req.Year
	}
	if req.Genre != nil {
		movie.Genre = req.Genre
	}
	if req.Director != "" {
		movie.Director = req.Director
	}
	if req.Cast != nil {
		movie.Cast = req.Cast
	}
	if req.TrailerURL != "" {
		movie.TrailerURL = req.TrailerURL
	}
	if err := validation.ValidateMovieInput(movie.Title, movie.Year); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if err := s.movieRepo.Update(c.Context(), movie); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(movie)
}

// DeleteMovie handles DELETE /api/movies/:id (admin only)
func (s *Server) DeleteMovie(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.movieRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Movie deleted"})
}

// UploadMoviePoster handles POST /api/movies/:id/poster (admin only).
// Expects a multipart form with a "poster" file; the stored object's
// public URL lands on the movie record.
func (s *Server) UploadMoviePoster(c *fiber.Ctx) error {
	if s.posterStorage == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Poster uploads are not configured"))
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	movie, err := s.movieRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	fileHeader, err := c.FormFile("poster")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A 'poster' file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	defer file.Close()

	url, err := s.posterStorage.UploadPoster(c.Context(),
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	movie.PosterURL = url
	if err := s.movieRepo.Update(c.Context(), movie); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(movie)
}

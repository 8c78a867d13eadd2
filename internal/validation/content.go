package validation

import (
	"fmt"
	"strings"
)

const (
	maxTitleLength   = 200
	maxBodyLength    = 50000
	maxCommentLength = 2000
	maxTagCount      = 10
)

// ValidateBlogInput checks a blog title and body.
func ValidateBlogInput(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("title must not exceed %d characters", maxTitleLength)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	if len(content) > maxBodyLength {
		return fmt.Errorf("content must not exceed %d characters", maxBodyLength)
	}
	return nil
}

// ValidateTags limits the number of tags attached to a blog.
func ValidateTags(tags []string) error {
	if len(tags) > maxTagCount {
		return fmt.Errorf("a blog can have at most %d tags", maxTagCount)
	}
	return nil
}

// ValidateReviewInput checks a review's movie reference, rating and body.
func ValidateReviewInput(movieID string, rating int, content string) error {
	if strings.TrimSpace(movieID) == "" {
		return fmt.Errorf("movie_id is required")
	}
	if rating < 1 || rating > 10 {
		return fmt.Errorf("rating must be between 1 and 10")
	}
	if len(content) > maxBodyLength {
		return fmt.Errorf("content must not exceed %d characters", maxBodyLength)
	}
	return nil
}

// ValidateComment checks a comment body.
func ValidateComment(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment text is required")
	}
	if len(text) > maxCommentLength {
		return fmt.Errorf("comment must not exceed %d characters", maxCommentLength)
	}
	return nil
}

// ValidateMovieInput checks an admin-managed movie record.
func ValidateMovieInput(title string, year int) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("title must not exceed %d characters", maxTitleLength)
	}
	if year != 0 && (year < 1878 || year > 2100) {
		return fmt.Errorf("year must be a plausible release year")
	}
	return nil
}

package models

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestStatusOfMapsEveryCodeOnce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    *AppError
		status int
	}{
		{NewNotFoundError("Blog", 1), fiber.StatusNotFound},
		{NewValidationError("bad"), fiber.StatusBadRequest},
		{NewUnauthorizedError("no token"), fiber.StatusUnauthorized},
		{NewForbiddenError("admin only"), fiber.StatusForbidden},
		{NewConflictError("duplicate"), fiber.StatusConflict},
		{NewInvalidCredentialsError(), fiber.StatusBadRequest},
		{NewNotApprovedError(), fiber.StatusForbidden},
		{NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := StatusOf(tc.err); got != tc.status {
			t.Fatalf("code %s: expected status %d, got %d", tc.err.Code, tc.status, got)
		}
	}
}

func TestStatusOfUnknownErrorIsInternal(t *testing.T) {
	t.Parallel()

	if got := StatusOf(errors.New("plain")); got != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 for plain error, got %d", got)
	}
}

func TestInternalErrorResponseHidesWrappedDetail(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return RespondWithAppError(c,
			NewInternalError(errors.New("pq: connection to host=db-internal failed")))
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if strings.Contains(string(body), "db-internal") {
		t.Fatalf("response leaked wrapped error detail: %s", body)
	}
	if !strings.Contains(string(body), "Internal server error") {
		t.Fatalf("expected generic message, got: %s", body)
	}
}

func TestInvalidCredentialsMessageDoesNotLeakCause(t *testing.T) {
	t.Parallel()

	err := NewInvalidCredentialsError()
	if err.Message != "Invalid email or password" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pulse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Not Found", models.NewNotFoundError("Post", 1), http.StatusNotFound},
		{"Empty Result", models.NewEmptyResultError("nothing"), http.StatusNotFound},
		{"Already Liked", models.NewAlreadyLikedError(), http.StatusConflict},
		{"Not Liked", models.NewNotLikedError(), http.StatusConflict},
		{"Forbidden", models.NewForbiddenError("no"), http.StatusForbidden},
		{"Unauthorized", models.NewUnauthorizedError("who"), http.StatusUnauthorized},
		{"Validation", models.NewValidationError("bad"), http.StatusBadRequest},
		{"Invalid Range", models.NewInvalidRangeError("backwards"), http.StatusBadRequest},
		{"Internal", models.NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"Plain Error", errors.New("anonymous"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusForError(tt.err))
		})
	}
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "post author ID", humanizeParam("postAuthorId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()

	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePagination(c, 20)
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name     string
		query    string
		expected Pagination
	}{
		{"Defaults", "", Pagination{Limit: 20, Offset: 0}},
		{"Explicit", "?limit=5&offset=10", Pagination{Limit: 5, Offset: 10}},
		{"Capped", "?limit=1000", Pagination{Limit: 100, Offset: 0}},
		{"Negative", "?limit=-1&offset=-5", Pagination{Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, tt.expected, got)
		})
	}
}

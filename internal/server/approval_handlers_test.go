package server

import (
	"net/http"
	"testing"

	"cinelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveIsIdempotentOverHTTP(t *testing.T) {
	app, s, db := newTestServer(t)

	admin := seedAccount(t, db, models.User{
		Username: "adm", Email: "adm@example.com", IsAdmin: true, IsApproved: true,
	}, testPassword)
	pending := seedAccount(t, db, models.User{Username: "pen", Email: "pen@example.com"}, testPassword)
	token := tokenFor(t, s, admin.ID, admin.Username)

	for i := 0; i < 2; i++ {
		resp, body := doJSON(t, app, http.MethodPatch,
			"/api/admin/requests/"+uintStr(pending.ID)+"/approve", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "call %d", i+1)
		assert.Equal(t, true, body["is_approved"])
	}
}

func TestApproveMissingAccountIs404(t *testing.T) {
	app, s, db := newTestServer(t)

	admin := seedAccount(t, db, models.User{
		Username: "adm", Email: "adm@example.com", IsAdmin: true, IsApproved: true,
	}, testPassword)
	token := tokenFor(t, s, admin.ID, admin.Username)

	resp, body := doJSON(t, app, http.MethodPatch, "/api/admin/requests/9999/approve", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestRejectDeletesAccountAndReplayIs404(t *testing.T) {
	app, s, db := newTestServer(t)

	admin := seedAccount(t, db, models.User{
		Username: "adm", Email: "adm@example.com", IsAdmin: true, IsApproved: true,
	}, testPassword)
	pending := seedAccount(t, db, models.User{Username: "rj", Email: "rj@example.com"}, testPassword)
	token := tokenFor(t, s, admin.ID, admin.Username)

	resp, _ := doJSON(t, app, http.MethodDelete,
		"/api/admin/requests/"+uintStr(pending.ID)+"/reject", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The account is gone: a login attempt reads as unknown credentials.
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "rj@example.com", "password": testPassword,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])

	// Replayed rejection degrades to 404.
	resp, body = doJSON(t, app, http.MethodDelete,
		"/api/admin/requests/"+uintStr(pending.ID)+"/reject", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestRejectAfterApproveIs404(t *testing.T) {
	app, s, db := newTestServer(t)

	admin := seedAccount(t, db, models.User{
		Username: "adm", Email: "adm@example.com", IsAdmin: true, IsApproved: true,
	}, testPassword)
	pending := seedAccount(t, db, models.User{Username: "ap", Email: "ap@example.com"}, testPassword)
	token := tokenFor(t, s, admin.ID, admin.Username)

	resp, _ := doJSON(t, app, http.MethodPatch,
		"/api/admin/requests/"+uintStr(pending.ID)+"/approve", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete,
		"/api/admin/requests/"+uintStr(pending.ID)+"/reject", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The approved account survived the rejection attempt.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", pending.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApprovalRoutesRequireAdmin(t *testing.T) {
	app, s, db := newTestServer(t)

	regular := seedAccount(t, db, models.User{
		Username: "reg", Email: "reg@example.com", IsApproved: true,
	}, testPassword)
	token := tokenFor(t, s, regular.ID, regular.Username)

	resp, body := doJSON(t, app, http.MethodGet, "/api/admin/requests", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

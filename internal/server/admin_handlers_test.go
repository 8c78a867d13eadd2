package server

import (
	"net/http"
	"testing"

	"cinelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminToggleFlipsAdminBit(t *testing.T) {
	app, s, db := newTestServer(t)

	admin := seedAccount(t, db, models.User{
		Username: "adm", Email: "adm@example.com", IsAdmin: true, IsApproved: true,
	}, testPassword)
	target := seedAccount(t, db, models.User{
		Username: "tg", Email: "tg@example.com", IsApproved: true,
	}, testPassword)
	token := tokenFor(t, s, admin.ID, admin.Username)

	resp, body := doJSON(t, app, http.MethodPut,
		"/api/admin/users/"+uintStr(target.ID)+"/admin", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["is_admin"])

	// A second call revokes: two flips restore the original state.
	resp, body = doJSON(t, app, http.MethodPut,
		"/api/admin/users/"+uintStr(target.ID)+"/admin", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["is_admin"])
}

func TestProtectedAdminCannotBeDemoted(t *testing.T) {
	app, s, db := newTestServer(t)

	root := seedAccount(t, db, models.User{
		Username: "root", Email: testProtectedEmail, IsAdmin: true, IsApproved: true,
	}, testPassword)
	token := tokenFor(t, s, root.ID, root.Username)

	// Even the protected admin itself cannot flip its own bit off.
	resp, body := doJSON(t, app, http.MethodPut,
		"/api/admin/users/"+uintStr(root.ID)+"/admin", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])

	var after models.User
	require.NoError(t, db.First(&after, root.ID).Error)
	assert.True(t, after.IsAdmin)
}

func TestProtectedAdminCannotBeDeleted(t *testing.T) {
	app, s, db := newTestServer(t)

	root := seedAccount(t, db, models.User{
		Username: "root", Email: testProtectedEmail, IsAdmin: true, IsApproved: true,
	}, testPassword)
	other := seedAccount(t, db, models.User{
		Username: "adm2", Email: "adm2@example.com", IsAdmin: true, IsApproved: true,
	}, testPassword)
	token := tokenFor(t, s, other.ID, other.Username)

	resp, body := doJSON(t, app, http.MethodDelete,
		"/api/admin/users/"+uintStr(root.ID), token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestDeleteUserCascadesContent(t *testing.T) {
	app, s, db := newTestServer(t)

	admin := seedAccount(t, db, models.User{
		Username: "adm", Email: "adm@example.com", IsAdmin: true, IsApproved: true,
	}, testPassword)
	author := seedAccount(t, db, models.User{
		Username: "aut", Email: "aut@example.com", IsApproved: true,
	}, testPassword)
	authorToken := tokenFor(t, s, author.ID, author.Username)
	adminToken := tokenFor(t, s, admin.ID, admin.Username)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/blogs", authorToken, map[string]any{
		"title": "t", "content": "c",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete,
		"/api/admin/users/"+uintStr(author.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var blogCount int64
	require.NoError(t, db.Model(&models.Blog{}).Count(&blogCount).Error)
	assert.Zero(t, blogCount)
}

func TestCreateAdminAccountIsApprovedImmediately(t *testing.T) {
	app, s, db := newTestServer(t)

	admin := seedAccount(t, db, models.User{
		Username: "adm", Email: "adm@example.com", IsAdmin: true, IsApproved: true,
	}, testPassword)
	token := tokenFor(t, s, admin.ID, admin.Username)

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/create-admin", token, map[string]string{
		"username": "newadmin", "email": "newadmin@example.com", "password": testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["is_admin"])
	assert.Equal(t, true, body["is_approved"])

	// The new admin can log in straight away.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "newadmin@example.com", "password": testPassword,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminCanDeleteAnyComment(t *testing.T) {
	app, s, db := newTestServer(t)

	admin := seedAccount(t, db, models.User{
		Username: "adm", Email: "adm@example.com", IsAdmin: true, IsApproved: true,
	}, testPassword)
	author := seedAccount(t, db, models.User{
		Username: "aut", Email: "aut@example.com", IsApproved: true,
	}, testPassword)
	authorToken := tokenFor(t, s, author.ID, author.Username)
	adminToken := tokenFor(t, s, admin.ID, admin.Username)

	resp, blogBody := doJSON(t, app, http.MethodPost, "/api/blogs", authorToken, map[string]any{
		"title": "t", "content": "c",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	blogID := uintStr(uint(blogBody["id"].(float64)))

	resp, commentBody := doJSON(t, app, http.MethodPost, "/api/blogs/"+blogID+"/comments", authorToken, map[string]string{
		"text": "my own comment",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	commentID := uintStr(uint(commentBody["id"].(float64)))

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/admin/comments/"+commentID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

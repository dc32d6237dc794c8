package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthMiddleware_InjectsUserID(t *testing.T) {
	app := newTestApp()
	uid := primitive.NewObjectID()
	token, err := signJWT(app.cfg.JWTSecret, uid)
	require.NoError(t, err)

	var got primitive.ObjectID
	handler := app.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = mustUserID(r)
	}))

	req := httptest.NewRequest("GET", "/api/crops", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uid, got)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := newTestApp()
	called := false
	handler := app.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/crops", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "handler must not run without auth")
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	app := newTestApp()
	handler := app.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, authz := range []string{
		"Bearer garbage",
		"Basic dXNlcjpwYXNz",
		"Bearer ",
	} {
		req := httptest.NewRequest("GET", "/api/crops", nil)
		req.Header.Set("Authorization", authz)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "authz=%q", authz)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := newTestApp()
	token, err := signJWT("some-other-secret", primitive.NewObjectID())
	require.NoError(t, err)

	handler := app.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	req := httptest.NewRequest("GET", "/api/crops", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMustUserID_EmptyContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, primitive.NilObjectID, mustUserID(req))
}

func TestRequestLogger_PreservesStatus(t *testing.T) {
	app := newTestApp()
	handler := app.requestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

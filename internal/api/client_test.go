package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestEnvelopeUnwrapping(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications", r.URL.Path)
		w.Write([]byte(`{"data":{"notifications":[
			{"_id":"n1","type":"global","message":"hello","isRead":false,"createdAt":"2026-08-30T10:00:00Z"}
		]}}`))
	})
	defer srv.Close()

	got, err := c.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "n1", got[0].ID)
	assert.Equal(t, "hello", got[0].Message)
	assert.False(t, got[0].Read)
}

func TestBackendErrorMessageSurfaced(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Incorrect email or password"}`))
	})
	defer srv.Close()

	_, err := c.Login(context.Background(), "a@b.c", "nope")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Incorrect email or password", apiErr.Message)
}

func TestLoginInstallsBearerToken(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			w.Write([]byte(`{"token":"tok123","data":{"user":{"_id":"u1","name":"Ada","email":"a@b.c","role":"admin"}}}`))
		case "/users":
			assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
			w.Write([]byte(`{"data":{"users":[]}}`))
		}
	})
	defer srv.Close()

	sess, err := c.Login(context.Background(), "a@b.c", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "tok123", sess.Token)

	_, err = c.ListUsers(context.Background())
	require.NoError(t, err)
}

func TestValidationRejectsBeforeSubmission(t *testing.T) {
	called := false
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	defer srv.Close()

	// Password mismatch never reaches the wire.
	_, err := c.Register(context.Background(), RegisterInput{
		Name:            "Ada",
		Email:           "a@b.c",
		Password:        "secret123",
		PasswordConfirm: "different",
	})
	require.Error(t, err)
	assert.False(t, called)

	_, err = c.CreateUser(context.Background(), CreateUserInput{
		Name:     "Bob",
		Email:    "not-an-email",
		Password: "secret123",
		Role:     "teacher",
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestContextCancellationAborts(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListLessons(ctx)
	assert.Error(t, err)
}

func TestParseTokenClaims(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u7",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	userID, err := ParseTokenClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "u7", userID)
}

func TestParseTokenClaimsRejectsExpired(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u7",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseTokenClaims(token)
	assert.Error(t, err)
}

func TestParseTokenClaimsRejectsGarbage(t *testing.T) {
	_, err := ParseTokenClaims("not-a-token")
	assert.Error(t, err)
}

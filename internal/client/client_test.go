package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmPresence(t *testing.T) {
	var got ConfirmRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/confirmar-presenca", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"Presença já confirmada","duplicatas":{"nome":true,"acompanhantes":[false,true]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second)
	res, err := c.ConfirmPresence(context.Background(), ConfirmRequest{Name: "Ana", Companions: []string{"Bruno", "Carla"}})
	require.NoError(t, err)

	assert.Equal(t, ConfirmRequest{Name: "Ana", Companions: []string{"Bruno", "Carla"}}, got)
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	require.NotNil(t, res.Body.Duplicates)
	assert.True(t, res.Body.Duplicates.Name)
	assert.False(t, res.Body.Duplicates.Flagged(0))
	assert.True(t, res.Body.Duplicates.Flagged(1))
	assert.False(t, res.Body.Duplicates.Flagged(5))
}

func TestUploadPhoto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/fotos/upload", r.URL.Path)
		var req UploadRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "image/jpeg", req.MimeType)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL, 0).UploadPhoto(context.Background(), UploadRequest{ImageData: "data:image/jpeg;base64,AAAA", FileName: "a.jpg", MimeType: "image/jpeg"})
	require.NoError(t, err)
	assert.True(t, res.OK())
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	_, err := New(srv.URL, time.Second).ConfirmPresence(context.Background(), ConfirmRequest{Name: "Ana"})
	assert.ErrorIs(t, err, ErrUnreachable)

	srv.Close()
	_, err = New(srv.URL, time.Second).UploadPhoto(context.Background(), UploadRequest{})
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestNewDefaults(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("", 0).BaseURL())
	assert.Equal(t, "http://x", NewWithHTTPClient("http://x//", nil).BaseURL())
}

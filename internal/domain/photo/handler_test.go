package photo

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aniversario/internal/session"
)

type envelope struct {
	Success bool      `json:"success"`
	Data    ViewModel `json:"data"`
	Error   struct {
		Code    string    `json:"code"`
		Details ViewModel `json:"details"`
	} `json:"error"`
}

func setupRouter(t *testing.T, maxBytes int64) (*gin.Engine, *Service, *Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(func(origin string) bool { return origin == "https://convite.example.com" })
	svc := NewService(session.NewStore(time.Hour, NewState), &fakeUploader{}, hub).WithCompressor(fixedCompressor)
	t.Cleanup(svc.Close)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("session_id", c.GetHeader("X-Session"))
		c.Next()
	})
	RegisterRoutes(r.Group("/api/v1"), r.Group("/ws"), NewHandler(svc, hub, maxBytes))
	return r, svc, hub
}

func multipartBody(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func do(r http.Handler, req *http.Request, sessionID string) (*httptest.ResponseRecorder, envelope) {
	req.Header.Set("X-Session", sessionID)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func upload(t *testing.T, r http.Handler, sessionID, filename, contentType string, data []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	body, ct := multipartBody(t, filename, contentType, data)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fotos/arquivo", body)
	req.Header.Set("Content-Type", ct)
	return do(r, req, sessionID)
}

func TestHandler_SelectFile(t *testing.T) {
	r, svc, _ := setupRouter(t, 0)

	rr, _ := do(r, httptest.NewRequest(http.MethodPost, "/api/v1/fotos/opcoes", nil), "s1")
	require.Equal(t, http.StatusOK, rr.Code)

	rr, env := upload(t, r, "s1", "festa.png", "image/png", pngBytes(t, 8, 8))
	require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())
	assert.Equal(t, ViewPreviewing, env.Data.View)
	assert.Equal(t, "festa.png", env.Data.FileName)
	assert.True(t, strings.HasPrefix(env.Data.Preview, "data:image/png;base64,"))

	svc.Wait()
	rr, env = do(r, httptest.NewRequest(http.MethodGet, "/api/v1/fotos", nil), "s1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Data.Ready)
}

func TestHandler_SelectFileSniffsMissingType(t *testing.T) {
	r, _, _ := setupRouter(t, 0)
	do(r, httptest.NewRequest(http.MethodPost, "/api/v1/fotos/opcoes", nil), "s1")

	rr, env := upload(t, r, "s1", "blob", "application/octet-stream", pngBytes(t, 4, 4))
	require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())
	assert.True(t, strings.HasPrefix(env.Data.Preview, "data:image/png;base64,"))
}

func TestHandler_SelectFileErrors(t *testing.T) {
	r, _, _ := setupRouter(t, 64)
	do(r, httptest.NewRequest(http.MethodPost, "/api/v1/fotos/opcoes", nil), "s1")

	rr, env := upload(t, r, "s1", "doc.pdf", "application/pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	assert.Equal(t, "NOT_AN_IMAGE", env.Error.Code)
	assert.Equal(t, ViewSelecting, env.Error.Details.View)

	rr, env = upload(t, r, "s1", "big.png", "image/png", bytes.Repeat([]byte{1}, 65))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/fotos/arquivo", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rr, env = do(r, req, "s1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "NO_FILE", env.Error.Code)

	rr, env = do(r, httptest.NewRequest(http.MethodPost, "/api/v1/fotos/enviar", nil), "s1")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "NOT_READY", env.Error.Code)

	rr, env = do(r, httptest.NewRequest(http.MethodPost, "/api/v1/fotos/outra", nil), "s1")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "WRONG_VIEW", env.Error.Code)
}

func TestHandler_EventsPushCompressionResult(t *testing.T) {
	r, _, hub := setupRouter(t, 0)
	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{}
	header.Set("X-Session", "s1")
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/fotos"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Connections("s1") == 1 }, time.Second, 5*time.Millisecond)

	do(r, httptest.NewRequest(http.MethodPost, "/api/v1/fotos/opcoes", nil), "s1")
	rr, _ := upload(t, r, "s1", "a.png", "image/png", pngBytes(t, 4, 4))
	require.Equal(t, http.StatusAccepted, rr.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, EventCompressionReady, event.Type)
	require.NotNil(t, event.Payload)
	assert.True(t, event.Payload.Ready)
}

func dialEvents(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	header := http.Header{}
	header.Set("X-Session", "s1")
	if origin != "" {
		header.Set("Origin", origin)
	}
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/fotos"
	return websocket.DefaultDialer.Dial(wsURL, header)
}

func TestHandler_EventsRejectForeignOrigin(t *testing.T) {
	r, _, hub := setupRouter(t, 0)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, resp, err := dialEvents(t, srv, "https://evil.example")
	if conn != nil {
		conn.Close()
	}
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, hub.Connections("s1"))
}

func TestHandler_EventsAcceptAllowedAndSameOrigin(t *testing.T) {
	r, _, hub := setupRouter(t, 0)
	srv := httptest.NewServer(r)
	defer srv.Close()

	for i, origin := range []string{"https://convite.example.com", srv.URL} {
		conn, _, err := dialEvents(t, srv, origin)
		require.NoError(t, err, origin)
		defer conn.Close()

		want := i + 1
		require.Eventually(t, func() bool { return hub.Connections("s1") == want }, time.Second, 5*time.Millisecond)
	}
}

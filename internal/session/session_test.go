package session

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	n int
}

func TestStore_UpdateIsSerializedPerSession(t *testing.T) {
	store := NewStore(time.Hour, func() *counter { return &counter{} })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update("a", func(c *counter) error {
				c.n++
				return nil
			})
		}()
	}
	wg.Wait()

	var got int
	require.NoError(t, store.Update("a", func(c *counter) error {
		got = c.n
		return nil
	}))
	assert.Equal(t, 50, got)
	assert.Equal(t, 1, store.Len())

	store.Delete("a")
	require.NoError(t, store.Update("a", func(c *counter) error {
		got = c.n
		return nil
	}))
	assert.Zero(t, got)
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	token, id, err := tokens.Issue()
	require.NoError(t, err)

	parsed, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = NewTokens("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	notUUID, err := tokens.Sign("not-a-uuid")
	require.NoError(t, err)
	_, err = tokens.Parse(notUUID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("secret", -time.Minute)
	token, _, err := tokens.Issue()
	require.NoError(t, err)

	_, err = tokens.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware_IssuesAndReusesCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokens("secret", time.Hour)

	r := gin.New()
	r.Use(Middleware(tokens, CookieOptions{SameSite: http.SameSiteLaxMode}))
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, ID(c)) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/id", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	first := rr.Body.String()
	require.NotEmpty(t, first)

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, first, rr.Body.String())
	assert.Empty(t, rr.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/id", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.NotEqual(t, first, rr.Body.String())
	assert.Len(t, rr.Result().Cookies(), 1)
}

func TestMiddleware_RefreshesAgingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokens("secret", time.Hour)

	r := gin.New()
	r.Use(Middleware(tokens, CookieOptions{SameSite: http.SameSiteLaxMode}))
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, ID(c)) })

	// Same secret, but only 20 of the 60 minutes left.
	aging, id, err := NewTokens("secret", 20*time.Minute).Issue()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: aging})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, id, rr.Body.String())
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, aging, cookies[0].Value)

	claims, err := tokens.ParseClaims(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)
	assert.False(t, tokens.NeedsRefresh(claims))
}

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/logging"
	"github.com/dmitrijs2005/gophboard/internal/server/auth"
	"github.com/dmitrijs2005/gophboard/internal/server/posts"
	"github.com/dmitrijs2005/gophboard/internal/server/shared/db"
	"github.com/dmitrijs2005/gophboard/internal/server/users"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	*HTTPServer
	tokens *auth.TokenManager
}

type serverOption func(*serverDeps)

type serverDeps struct {
	unify     bool
	store     Pinger
	postsRepo posts.Repository
	origins   []string
	logger    logging.Logger
}

func withUnifiedLoginErrors() serverOption {
	return func(d *serverDeps) { d.unify = true }
}

func withStore(p Pinger) serverOption {
	return func(d *serverDeps) { d.store = p }
}

func withPostsRepo(r posts.Repository) serverOption {
	return func(d *serverDeps) { d.postsRepo = r }
}

func withLogger(l logging.Logger) serverOption {
	return func(d *serverDeps) { d.logger = l }
}

func withOrigins(o ...string) serverOption {
	return func(d *serverDeps) { d.origins = o }
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	m := db.NewInMemoryRepositoryManager()
	deps := &serverDeps{store: m, postsRepo: m.Posts(), origins: []string{"*"}, logger: logging.Nop()}
	for _, o := range opts {
		o(deps)
	}

	tm := auth.NewTokenManager([]byte(testSecret), auth.DefaultTokenValidity)
	us := users.NewService(m.Users(), auth.NewBcryptHasher(bcrypt.MinCost), tm, deps.unify)
	ps := posts.NewService(deps.postsRepo)

	s := NewHTTPServer(Options{Address: "127.0.0.1:0", AllowedOrigins: deps.origins}, deps.logger, us, ps, tm, deps.store)
	return &testServer{HTTPServer: s, tokens: tm}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	switch b := body.(type) {
	case nil:
		r = httptest.NewRequest(method, path, nil)
	case string:
		r = httptest.NewRequest(method, path, strings.NewReader(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = httptest.NewRequest(method, path, bytes.NewReader(raw))
	}
	r.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	assert.Equal(t, map[string]any{"error": msg}, decode(t, w))
}

var aliceSignup = map[string]string{"username": "alice", "email": "a@x.com", "password": "Abcdef1!"}

func (s *testServer) signupAlice(t *testing.T) map[string]any {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/signup", aliceSignup)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestSignup_Success(t *testing.T) {
	s := newTestServer(t)

	body := s.signupAlice(t)

	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	assert.Equal(t, map[string]any{"id": float64(1), "username": "alice", "email": "a@x.com"}, body["user"])
	assert.Len(t, body, 2, "only token and user are returned")

	claims, err := s.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{ID: 1, Username: "alice", Email: "a@x.com"}, claims.Identity())
}

func TestSignup_Errors(t *testing.T) {
	s := newTestServer(t)
	s.signupAlice(t)

	tests := []struct {
		name   string
		body   any
		status int
		msg    string
	}{
		{"duplicate username", map[string]string{"username": "alice", "email": "b@x.com", "password": "Abcdef1!"}, http.StatusConflict, msgDuplicate},
		{"duplicate email other case", map[string]string{"username": "bob", "email": "A@X.COM", "password": "Abcdef1!"}, http.StatusConflict, msgDuplicate},
		{"weak password", map[string]string{"username": "bob", "email": "b@x.com", "password": "abcdefgh"}, http.StatusBadRequest, msgWeakPassword},
		{"missing email", map[string]string{"username": "bob", "password": "Abcdef1!"}, http.StatusBadRequest, msgMissingFields},
		{"empty object", map[string]string{}, http.StatusBadRequest, msgMissingFields},
		{"no body", nil, http.StatusBadRequest, msgMissingFields},
		{"not json", "{nope", http.StatusBadRequest, msgMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertError(t, s.do(t, http.MethodPost, "/api/auth/signup", tt.body), tt.status, tt.msg)
		})
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	signed := s.signupAlice(t)

	t.Run("case-insensitive username", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"loginId": "ALICE", "password": "Abcdef1!"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, signed["user"], body["user"])
		assert.NotEmpty(t, body["token"])
	})

	t.Run("by email", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"loginId": "A@x.com", "password": "Abcdef1!"})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"loginId": "alice", "password": "Abcdef1?"})
		assertError(t, w, http.StatusUnauthorized, msgInvalidPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"loginId": "ghost", "password": "Abcdef1!"})
		assertError(t, w, http.StatusNotFound, msgUserNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"loginId": "alice"})
		assertError(t, w, http.StatusBadRequest, msgMissingFields)
	})
}

func TestLogin_UnifiedErrors(t *testing.T) {
	s := newTestServer(t, withUnifiedLoginErrors())
	s.signupAlice(t)

	w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"loginId": "ghost", "password": "Abcdef1!"})
	assertError(t, w, http.StatusUnauthorized, msgInvalidPassword)
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAlice(t)["token"].(string)

	t.Run("valid token", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/me", nil, "Authorization", "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		user, ok := decode(t, w)["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(1), user["id"])
		assert.Equal(t, "alice", user["username"])
		assert.Equal(t, "a@x.com", user["email"])

		iat, _ := user["iat"].(float64)
		exp, _ := user["exp"].(float64)
		assert.Equal(t, (7 * 24 * time.Hour).Seconds(), exp-iat)
	})

	t.Run("no header", func(t *testing.T) {
		assertError(t, s.do(t, http.MethodGet, "/api/me", nil), http.StatusUnauthorized, msgMissingToken)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/me", nil, "Authorization", "Basic "+token)
		assertError(t, w, http.StatusUnauthorized, msgMissingToken)
	})

	t.Run("empty bearer", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/me", nil, "Authorization", "Bearer ")
		assertError(t, w, http.StatusUnauthorized, msgMissingToken)
	})

	t.Run("garbage", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/me", nil, "Authorization", "Bearer garbage")
		assertError(t, w, http.StatusUnauthorized, msgInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-8 * 24 * time.Hour)
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
			UserID: 1, Username: "alice", Email: "a@x.com",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(past),
				ExpiresAt: jwt.NewNumericDate(past.Add(auth.DefaultTokenValidity)),
			},
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		w := s.do(t, http.MethodGet, "/api/me", nil, "Authorization", "Bearer "+expired)
		assertError(t, w, http.StatusUnauthorized, msgInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := auth.NewTokenManager([]byte("other"), time.Hour).Issue(auth.Identity{ID: 1})
		require.NoError(t, err)

		w := s.do(t, http.MethodGet, "/api/me", nil, "Authorization", "Bearer "+other)
		assertError(t, w, http.StatusUnauthorized, msgInvalidToken)
	})
}

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestMe_RejectedTokenLoggedAtDebug(t *testing.T) {
	for _, tt := range []struct {
		level  string
		logged bool
	}{
		{level: "debug", logged: true},
		{level: "info", logged: false},
	} {
		t.Run(tt.level, func(t *testing.T) {
			var logs bytes.Buffer
			s := newTestServer(t, withLogger(logging.New(&logs, tt.level, "json")))

			w := s.do(t, http.MethodGet, "/api/me", nil, "Authorization", "Bearer garbage")
			assertError(t, w, http.StatusUnauthorized, msgInvalidToken)
			assert.Equal(t, tt.logged, strings.Contains(logs.String(), "token rejected"), logs.String())
		})
	}
}

func TestReady(t *testing.T) {
	w := newTestServer(t).do(t, http.MethodGet, "/api/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"database":"connected"}`, w.Body.String())

	down := newTestServer(t, withStore(pingerFunc(func(context.Context) error { return errors.New("refused") })))
	w = down.do(t, http.MethodGet, "/api/ready", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Database not reachable"}`, w.Body.String())
}

func TestPosts(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/posts", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/posts", map[string]any{"title": "first", "content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode(t, w)
	assert.Equal(t, "first", first["title"])
	assert.Equal(t, "hello", first["content"])
	assert.NotEmpty(t, first["createdAt"])

	w = s.do(t, http.MethodPost, "/api/posts", map[string]any{"title": "second", "content": ""})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, decode(t, w)["content"])

	assertError(t, s.do(t, http.MethodPost, "/api/posts", map[string]any{"content": "x"}), http.StatusBadRequest, msgTitleRequired)

	w = s.do(t, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0]["title"])
	assert.Equal(t, "first", list[1]["title"])
}

type brokenPosts struct{}

func (brokenPosts) Create(context.Context, *posts.Post) (*posts.Post, error) {
	return nil, errors.New("disk full")
}
func (brokenPosts) List(context.Context) ([]posts.Post, error) { return nil, errors.New("disk full") }

func TestPosts_StoreFailures(t *testing.T) {
	s := newTestServer(t, withPostsRepo(brokenPosts{}))

	assertError(t, s.do(t, http.MethodGet, "/api/posts", nil), http.StatusInternalServerError, msgFetchPostsFailed)
	assertError(t, s.do(t, http.MethodPost, "/api/posts", map[string]any{"title": "t"}), http.StatusInternalServerError, msgCreatePostFailed)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodOptions, "/api/auth/login", nil,
		"Origin", "http://localhost:5173",
		"Access-Control-Request-Method", "POST",
		"Access-Control-Request-Headers", "content-type,authorization")
	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	restricted := newTestServer(t, withOrigins("http://app.test"))
	w = restricted.do(t, http.MethodGet, "/api/health", nil, "Origin", "http://app.test")
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))

	w = restricted.do(t, http.MethodGet, "/api/health", nil, "Origin", "http://evil.test")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/health", nil)
	assert.Len(t, w.Header().Get(common.RequestIDHeaderName), 36)

	w = s.do(t, http.MethodGet, "/api/health", nil, common.RequestIDHeaderName, "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get(common.RequestIDHeaderName))
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken("Bearer "))
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("abc"))
}

func TestServe_StopsOnCancel(t *testing.T) {
	s := newTestServer(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	url := "http://" + l.Addr().String() + "/api/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadAddress(t *testing.T) {
	s := newTestServer(t)
	s.opts.Address = "256.0.0.1:bad"

	assert.Error(t, s.Run(context.Background()))
}

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSPolicy_Allows(t *testing.T) {
	p := newCORSPolicy([]string{"https://app.example.com", "*.trusted.org", " "})

	tests := []struct {
		origin string
		want   bool
	}{
		{origin: "https://app.example.com", want: true},
		{origin: "https://evil.example.com", want: false},
		{origin: "https://api.trusted.org", want: true},
		{origin: "http://a.b.trusted.org:8080", want: true},
		{origin: "https://trusted.org", want: false},
		{origin: "https://nottrusted.org", want: false},
		{origin: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.want, p.allows(tt.origin))
		})
	}
}

func TestCORSPolicy_AllowAll(t *testing.T) {
	p := newCORSPolicy([]string{"*"})

	assert.True(t, p.enabled())
	assert.True(t, p.allows("https://anything.test"))
	assert.False(t, newCORSPolicy(nil).enabled())
}

func TestPipeline_CORSPreflight_Allowed(t *testing.T) {
	env := newTestEnv(t, withCORS("https://app.example.com"), withLimit(1))

	// preflights do not consume the client's rate limit budget
	for i := 0; i < 3; i++ {
		r := newRequest(http.MethodOptions, "/api/private/admin/users", "192.0.2.1")
		r.Header.Set("Origin", "https://app.example.com")
		r.Header.Set("Access-Control-Request-Method", http.MethodGet)
		r.Header.Set("Access-Control-Request-Headers", "Authorization")

		rec := env.do(r)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
	}

	assert.Equal(t, http.StatusOK, env.do(newRequest(http.MethodGet, "/api/map", "192.0.2.1")).Code)
}

func TestPipeline_CORSPreflight_OriginRejected(t *testing.T) {
	env := newTestEnv(t, withCORS("https://app.example.com"))

	r := newRequest(http.MethodOptions, "/api/map", "192.0.2.1")
	r.Header.Set("Origin", "https://evil.test")
	r.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := env.do(r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPipeline_CORS_SimpleRequestDecorated(t *testing.T) {
	env := newTestEnv(t, withCORS("https://app.example.com"))

	r := newRequest(http.MethodGet, "/api/map", "192.0.2.1")
	r.Header.Set("Origin", "https://app.example.com")

	rec := env.do(r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Authorization")
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestPipeline_CORS_Disabled(t *testing.T) {
	env := newTestEnv(t)

	r := newRequest(http.MethodGet, "/api/map", "192.0.2.1")
	r.Header.Set("Origin", "https://app.example.com")

	rec := env.do(r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

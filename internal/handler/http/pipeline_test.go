package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-api-gateway/internal/policy"
	"github.com/MKhiriev/go-api-gateway/internal/store"
	"github.com/MKhiriev/go-api-gateway/models"
)

// ─────────────────────────────────────────────
// Rate limiting
// ─────────────────────────────────────────────

func TestPipeline_RateLimit_61stRequestRejected(t *testing.T) {
	env := newTestEnv(t)

	for i := 1; i <= 60; i++ {
		rec := env.do(newRequest(http.MethodGet, "/api/map/tiles", "203.0.113.5"))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := env.do(newRequest(http.MethodGet, "/api/map/tiles", "203.0.113.5"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, tooManyRequestsMessage, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	// another client is unaffected
	other := env.do(newRequest(http.MethodGet, "/api/map/tiles", "198.51.100.7"))
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestPipeline_RateLimit_UsesForwardedFor(t *testing.T) {
	env := newTestEnv(t, withLimit(1))

	first := newRequest(http.MethodGet, "/api/users", "10.0.0.1")
	first.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	second := newRequest(http.MethodGet, "/api/users", "10.0.0.2")
	second.Header.Set("X-Forwarded-For", "203.0.113.5")

	assert.Equal(t, http.StatusOK, env.do(first).Code)
	assert.Equal(t, http.StatusTooManyRequests, env.do(second).Code)
}

func TestPipeline_RateLimit_RunsBeforeAuthentication(t *testing.T) {
	env := newTestEnv(t, withLimit(1))

	// only the first request reaches the user store
	env.users.EXPECT().
		FindUserByID(gomock.Any(), int64(1)).
		Return(models.User{UserID: 1, Role: models.RoleUser}, nil).
		Times(1)

	header := bearerFor(t, 1, time.Hour)
	for _, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		r := newRequest(http.MethodGet, "/api/private/users/me", "203.0.113.9")
		r.Header.Set("Authorization", header)
		assert.Equal(t, want, env.do(r).Code)
	}
}

func TestPipeline_RateLimit_ResetReadmits(t *testing.T) {
	env := newTestEnv(t, withLimit(1))

	env.do(newRequest(http.MethodGet, "/health", "203.0.113.5"))
	require.Equal(t, http.StatusTooManyRequests, env.do(newRequest(http.MethodGet, "/health", "203.0.113.5")).Code)

	env.limiter.Reset()

	assert.Equal(t, http.StatusOK, env.do(newRequest(http.MethodGet, "/health", "203.0.113.5")).Code)
}

// ─────────────────────────────────────────────
// Authentication and authorization
// ─────────────────────────────────────────────

func TestPipeline_PublicRoute_NoTokenNeeded(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(newRequest(http.MethodGet, "/api/users/42", "192.0.2.1"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.StubResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user-service", body.Service)
	assert.Zero(t, body.UserID)
}

func TestPipeline_PrivateRoute_Authentication(t *testing.T) {
	tests := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{name: "no header", header: func(*testing.T) string { return "" }},
		{name: "basic scheme", header: func(*testing.T) string { return "Basic dXNlcjpwYXNz" }},
		{name: "garbage token", header: func(*testing.T) string { return "Bearer abc.def.ghi" }},
		{name: "expired token", header: func(t *testing.T) string { return bearerFor(t, 5, -time.Minute) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			r := newRequest(http.MethodGet, "/api/private/notifications", "192.0.2.1")
			if h := tt.header(t); h != "" {
				r.Header.Set("Authorization", h)
			}

			rec := env.do(r)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestPipeline_PrivateRoute_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().FindUserByID(gomock.Any(), int64(404)).Return(models.User{}, store.ErrNoUserWasFound)

	r := newRequest(http.MethodGet, "/api/private/map", "192.0.2.1")
	r.Header.Set("Authorization", bearerFor(t, 404, time.Hour))

	assert.Equal(t, http.StatusUnauthorized, env.do(r).Code)
}

func TestPipeline_PrivateRoute_StoreTimeout_FailsClosed(t *testing.T) {
	env := newTestEnv(t, withLookup(20*time.Millisecond))
	env.users.EXPECT().
		FindUserByID(gomock.Any(), int64(3)).
		DoAndReturn(func(ctx context.Context, _ int64) (models.User, error) {
			<-ctx.Done()
			return models.User{}, ctx.Err()
		})

	r := newRequest(http.MethodGet, "/api/private/users/3", "192.0.2.1")
	r.Header.Set("Authorization", bearerFor(t, 3, time.Hour))

	assert.Equal(t, http.StatusUnauthorized, env.do(r).Code)
}

func TestPipeline_PrivateRoute_StoreError_FailsClosed(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().FindUserByID(gomock.Any(), int64(3)).Return(models.User{}, errors.New("connection reset"))

	r := newRequest(http.MethodGet, "/api/private/users/3", "192.0.2.1")
	r.Header.Set("Authorization", bearerFor(t, 3, time.Hour))

	assert.Equal(t, http.StatusUnauthorized, env.do(r).Code)
}

func TestPipeline_RoleChecks(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		path string
		want int
	}{
		{name: "user on private", role: models.RoleUser, path: "/api/private/notifications", want: http.StatusOK},
		{name: "user on admin", role: models.RoleUser, path: "/api/private/admin/users", want: http.StatusForbidden},
		{name: "admin on admin", role: models.RoleAdmin, path: "/api/private/admin/users", want: http.StatusOK},
		{name: "super admin on admin", role: models.RoleSuperAdmin, path: "/api/private/admin/users/7", want: http.StatusOK},
		{name: "admin on protected", role: models.RoleAdmin, path: "/api/private/protected/keys", want: http.StatusForbidden},
		{name: "super admin on protected", role: models.RoleSuperAdmin, path: "/api/private/protected/keys", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.users.EXPECT().
				FindUserByID(gomock.Any(), int64(11)).
				Return(models.User{UserID: 11, Role: tt.role}, nil)

			r := newRequest(http.MethodGet, tt.path, "192.0.2.1")
			r.Header.Set("Authorization", bearerFor(t, 11, time.Hour))

			rec := env.do(r)
			require.Equal(t, tt.want, rec.Code)

			if tt.want == http.StatusOK {
				var body models.StubResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, int64(11), body.UserID)
				assert.Equal(t, tt.role, body.Role)
			}
		})
	}
}

func TestPipeline_UnmountedPrivatePath_AuthenticatedBeforeNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(newRequest(http.MethodGet, "/api/private/unknown", "192.0.2.1"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPipeline_SimilarPrefixIsPublic(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(newRequest(http.MethodGet, "/api/privateer", "192.0.2.1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// Access log tap
// ─────────────────────────────────────────────

func TestPipeline_AccessLogRecords(t *testing.T) {
	env := newTestEnv(t, withLimit(1))

	env.do(newRequest(http.MethodGet, "/api/contact", "192.0.2.1"))
	env.do(newRequest(http.MethodGet, "/api/contact", "192.0.2.1"))
	env.do(newRequest(http.MethodGet, "/api/private/map", "192.0.2.2"))

	records := env.records()
	require.Len(t, records, 3)

	assert.Equal(t, "contact-service", records[0].Service)
	assert.Equal(t, "/api/contact", records[0].Endpoint)
	assert.Equal(t, http.MethodGet, records[0].Method)
	assert.Equal(t, http.StatusOK, records[0].StatusCode)
	assert.GreaterOrEqual(t, records[0].ElapsedMs, int64(0))
	assert.False(t, records[0].Timestamp.IsZero())

	// rejected requests are still recorded and classified
	assert.Equal(t, "contact-service", records[1].Service)
	assert.Equal(t, http.StatusTooManyRequests, records[1].StatusCode)
	assert.Equal(t, "map-service", records[2].Service)
	assert.Equal(t, http.StatusUnauthorized, records[2].StatusCode)
}

func TestPipeline_FullAccessLogQueue_DoesNotAffectResponse(t *testing.T) {
	env := newTestEnv(t, withQueueSize(0))

	rec := env.do(newRequest(http.MethodGet, "/api/map", "192.0.2.1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.records())
}

func TestPipeline_TraceIDHeader(t *testing.T) {
	env := newTestEnv(t)

	r := newRequest(http.MethodGet, "/health", "192.0.2.1")
	r.Header.Set(traceIDHeader, "trace-123")

	assert.Equal(t, "trace-123", env.do(r).Header().Get(traceIDHeader))
	assert.NotEmpty(t, env.do(newRequest(http.MethodGet, "/health", "192.0.2.1")).Header().Get(traceIDHeader))
}

func TestPipeline_PanicRecoveredAndRecorded(t *testing.T) {
	env := newTestEnv(t)
	env.router.Get("/api/contact/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := env.do(newRequest(http.MethodGet, "/api/contact/panic", "192.0.2.1"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	records := env.records()
	require.Len(t, records, 1)
	assert.Equal(t, http.StatusInternalServerError, records[0].StatusCode)
}

// ─────────────────────────────────────────────
// Pipeline states
// ─────────────────────────────────────────────

func TestPipeline_FinalStates(t *testing.T) {
	env := newTestEnv(t, withLimit(3))
	env.users.EXPECT().
		FindUserByID(gomock.Any(), int64(2)).
		Return(models.User{UserID: 2, Role: models.RoleUser}, nil)

	admin := newRequest(http.MethodGet, "/api/private/admin/users", "192.0.2.1")
	admin.Header.Set("Authorization", bearerFor(t, 2, time.Hour))

	env.do(newRequest(http.MethodGet, "/api/map", "192.0.2.1"))
	env.do(newRequest(http.MethodGet, "/api/private/map", "192.0.2.1"))
	env.do(admin)
	env.do(newRequest(http.MethodGet, "/api/map", "192.0.2.1"))

	tests := []struct {
		service string
		state   models.PipelineState
	}{
		{service: "map-service", state: models.StateCompleted},
		{service: "map-service", state: models.StateRejectedUnauthenticated},
		{service: "user-service", state: models.StateRejectedUnauthorized},
		{service: "map-service", state: models.StateRejectedByRateLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, 1.0, pipelineOutcomes(t, env, tt.service, tt.state), "%s/%s", tt.service, tt.state)
	}
}

func TestPipeline_DispatchedRequestSeesPrincipal(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().
		FindUserByID(gomock.Any(), int64(9)).
		Return(models.User{UserID: 9, Role: models.RoleAdmin}, nil)

	var seen *models.RequestContext
	var state models.PipelineState
	env.router.Get(policy.PrefixPrivateUsers+"/probe", func(w http.ResponseWriter, r *http.Request) {
		seen = requestContextOf(r)
		state = seen.State
	})

	r := newRequest(http.MethodGet, policy.PrefixPrivateUsers+"/probe", "192.0.2.1")
	r.Header.Set("Authorization", bearerFor(t, 9, time.Hour))
	env.do(r)

	require.NotNil(t, seen)
	assert.Equal(t, models.StateDispatched, state)
	assert.Equal(t, models.StateCompleted, seen.State)
	assert.Equal(t, "user-service", seen.Service)
	assert.Equal(t, "192.0.2.1", seen.ClientIdentity)
	require.NotNil(t, seen.Principal)
	assert.Equal(t, models.Principal{UserID: 9, Role: models.RoleAdmin}, *seen.Principal)
}

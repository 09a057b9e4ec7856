package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/internal/mock"
	"github.com/MKhiriev/go-api-gateway/internal/policy"
	"github.com/MKhiriev/go-api-gateway/internal/ratelimit"
	"github.com/MKhiriev/go-api-gateway/internal/service"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

const (
	testSignKey = "handler-test-key"
	testIssuer  = "go-api-gateway"
)

// testEnv is a fully wired router backed by a real limiter, route table,
// token validator and access log queue. Only the user store and the OAuth
// flow are mocked.
type testEnv struct {
	router    *chi.Mux
	handler   *Handler
	limiter   *ratelimit.Limiter
	users     *mock.MockUserRepository
	oauth     *mock.MockOAuthService
	accessLog service.AccessLogService
	metrics   *metrics.Metrics
}

type envOption func(*envConfig)

type envConfig struct {
	limit      int64
	queueSize  int
	corsOrigin []string
	lookup     time.Duration
}

func withLimit(n int64) envOption          { return func(c *envConfig) { c.limit = n } }
func withQueueSize(n int) envOption        { return func(c *envConfig) { c.queueSize = n } }
func withCORS(origins ...string) envOption { return func(c *envConfig) { c.corsOrigin = origins } }
func withLookup(d time.Duration) envOption { return func(c *envConfig) { c.lookup = d } }

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{limit: 60, queueSize: 128, lookup: time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	oauth := mock.NewMockOAuthService(ctrl)
	m := metrics.New()

	appInfo, err := service.NewAppInfoService(config.App{Version: "1.2.3"}, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"), logger.Nop())
	require.NoError(t, err)

	accessLog := service.NewAccessLogService(config.Workers{AccessLogQueueSize: cfg.queueSize}, m, logger.Nop())
	services := &service.Services{
		AuthService: service.NewAuthService(users, config.App{
			TokenSignKey:           testSignKey,
			TokenIssuer:            testIssuer,
			TokenDuration:          time.Hour,
			PrincipalLookupTimeout: cfg.lookup,
		}, logger.Nop()),
		OAuthService:     oauth,
		AccessLogService: accessLog,
		AppInfoService:   appInfo,
	}

	limiter := ratelimit.New(cfg.limit, 10*time.Minute)
	h := NewHandler(services, limiter, policy.NewDefaultTable(), m, config.Server{CORSAllowedOrigins: cfg.corsOrigin}, logger.Nop())

	return &testEnv{
		router:    h.Init(),
		handler:   h,
		limiter:   limiter,
		users:     users,
		oauth:     oauth,
		accessLog: accessLog,
		metrics:   m,
	}
}

func (e *testEnv) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

// records drains every access log record queued so far.
func (e *testEnv) records() []models.AccessLogRecord {
	var out []models.AccessLogRecord
	for {
		select {
		case rec := <-e.accessLog.Records():
			out = append(out, rec)
		default:
			return out
		}
	}
}

func newRequest(method, path, clientIP string) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	r.RemoteAddr = clientIP + ":51234"
	return r
}

func bearerFor(t *testing.T, userID int64, d time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(testIssuer, userID, d, testSignKey)
	require.NoError(t, err)
	return utils.BearerPrefix + token.SignedString
}

func requestContextOf(r *http.Request) *models.RequestContext {
	return utils.GetRequestContext(r.Context())
}

// pipelineOutcomes reads the pipeline outcome counter for service and state.
func pipelineOutcomes(t *testing.T, env *testEnv, service string, state models.PipelineState) float64 {
	t.Helper()

	families, err := env.metrics.Registry().Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != "api_gateway_pipeline_outcomes_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			if labels["service"] == service && labels["state"] == string(state) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

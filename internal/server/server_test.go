package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/config"
	"github.com/jonathan/application-tracker/internal/server/ratelimit"
	"github.com/jonathan/application-tracker/internal/sqlite"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv is a fully wired server over an in-memory store.
type testEnv struct {
	store   *sqlite.Store
	jwt     *JWTService
	handler http.Handler
}

func testPasswords() *config.PasswordConfig {
	return &config.PasswordConfig{BcryptCost: 10} // lowest accepted cost keeps tests fast
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, nil, nil)
}

// newTestEnvWith builds an environment whose application store may be wrapped and whose
// rate limiter may be replaced.
func newTestEnvWith(t *testing.T, wrap func(store.ApplicationStore) store.ApplicationStore, limiter *ratelimit.Limiter) *testEnv {
	t.Helper()

	st, err := sqlite.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	var apps store.ApplicationStore = st
	if wrap != nil {
		apps = wrap(st)
	}

	jwtService := setupTestJWTService(t, 24)
	srv, err := New(Config{}, Deps{
		Applications: apps,
		Identities:   st,
		JWT:          jwtService,
		Passwords:    testPasswords(),
		RateLimiter:  limiter,
	})
	require.NoError(t, err)

	return &testEnv{store: st, jwt: jwtService, handler: srv.Handler()}
}

// user creates an account directly in the store and returns its id and a bearer token.
func (e *testEnv) user(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()
	u, err := e.store.CreateUser(context.Background(), types.NewUser{
		Email:        email,
		FirstName:    strings.Split(email, "@")[0],
		PasswordHash: "unused",
	})
	require.NoError(t, err)

	token, err := e.jwt.GenerateToken(u.ID)
	require.NoError(t, err)
	return u.ID, token
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// createApp posts an application and returns the persisted record.
func (e *testEnv) createApp(t *testing.T, token, body string) types.Application {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/applications", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeJSON[types.Application](t, w)
}

func appPath(id int64) string {
	return "/api/applications/" + itoa(id)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestNew_RequiresStores(t *testing.T) {
	_, err := New(Config{}, Deps{})
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

// untouchable fails the test if the handler reaches the store.
type untouchable struct {
	store.ApplicationStore
	t *testing.T
}

func (u untouchable) ListApplications(context.Context, uuid.UUID) ([]types.Application, error) {
	u.t.Fatal("store reached without authentication")
	return nil, nil
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnvWith(t, func(s store.ApplicationStore) store.ApplicationStore {
		return untouchable{ApplicationStore: s, t: t}
	}, nil)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/applications"},
		{http.MethodPost, "/api/applications"},
		{http.MethodGet, "/api/applications/1"},
		{http.MethodPut, "/api/applications/1"},
		{http.MethodDelete, "/api/applications/1"},
		{http.MethodPost, "/api/interviews"},
		{http.MethodDelete, "/api/interviews/1"},
		{http.MethodGet, "/api/stats"},
		{http.MethodGet, "/api/auth/user"},
		{http.MethodPut, "/api/auth/password"},
	}

	for _, rt := range routes {
		for _, token := range []string{"", "not-a-token"} {
			w := env.do(t, rt.method, rt.path, token, `{}`)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s token=%q", rt.method, rt.path, token)
		}
	}
}

func TestApplications_OwnershipScenario(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.user(t, "alice@example.com")
	_, bobToken := env.user(t, "bob@example.com")

	app := env.createApp(t, aliceToken, `{"company":"Acme","role":"SWE"}`)
	assert.Equal(t, alice, app.UserID)
	assert.Equal(t, types.StatusApplied, app.Status)
	require.NotNil(t, app.DateApplied)

	w := env.do(t, http.MethodGet, appPath(app.ID), bobToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden", decodeErrorBody(t, w).Message)

	w = env.do(t, http.MethodGet, "/api/applications/999", aliceToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Application not found", decodeErrorBody(t, w).Message)

	w = env.do(t, http.MethodDelete, appPath(app.ID), aliceToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.do(t, http.MethodGet, appPath(app.ID), aliceToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateApplication_IgnoresServerAssignedFields(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.user(t, "alice@example.com")
	bob, _ := env.user(t, "bob@example.com")

	body := `{"id":424242,"userId":"` + bob.String() + `","createdAt":"2001-01-01T00:00:00Z",` +
		`"company":"Acme","role":"SWE","status":"Interview","salaryMin":"90000","salaryMax":120000,"dateApplied":"2024-01-15"}`
	app := env.createApp(t, aliceToken, body)

	assert.Equal(t, alice, app.UserID)
	assert.NotEqual(t, int64(424242), app.ID)
	assert.Equal(t, types.StatusInterview, app.Status)
	assert.Equal(t, int64(90000), *app.SalaryMin)
	assert.Equal(t, int64(120000), *app.SalaryMax)
	assert.True(t, app.CreatedAt.After(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCreateApplication_IsNotIdempotent(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user(t, "alice@example.com")

	first := env.createApp(t, token, `{"company":"Acme","role":"SWE"}`)
	second := env.createApp(t, token, `{"company":"Acme","role":"SWE"}`)
	assert.NotEqual(t, first.ID, second.ID)

	w := env.do(t, http.MethodGet, "/api/applications", token, "")
	assert.Len(t, decodeJSON[[]types.Application](t, w), 2)
}

func TestCreateApplication_Validation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user(t, "alice@example.com")

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing role", body: `{"company":"Acme"}`, wantField: "role"},
		{name: "bad status", body: `{"company":"Acme","role":"SWE","status":"Ghosted"}`, wantField: "status"},
		{name: "inverted salary", body: `{"company":"Acme","role":"SWE","salaryMin":5,"salaryMax":1}`, wantField: "salaryMax"},
		{name: "bad date", body: `{"company":"Acme","role":"SWE","dateApplied":"soon"}`, wantField: "dateApplied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/applications", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeErrorBody(t, w)
			assert.Equal(t, tt.wantField, body.Field)
			assert.NotEmpty(t, body.Message)
		})
	}

	w := env.do(t, http.MethodPost, "/api/applications", token, `{"company":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decodeErrorBody(t, w).Message)

	w = env.do(t, http.MethodGet, "/api/applications", token, "")
	assert.Empty(t, decodeJSON[[]types.Application](t, w), "rejected payloads must not persist")
}

func TestListApplications_ScopedAndFiltered(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.user(t, "alice@example.com")
	_, bobToken := env.user(t, "bob@example.com")

	env.createApp(t, aliceToken, `{"company":"Acme","role":"Software Engineer","dateApplied":"2024-01-01"}`)
	env.createApp(t, aliceToken, `{"company":"Globex Engineering","role":"PM","status":"Interview","dateApplied":"2024-02-01"}`)
	env.createApp(t, aliceToken, `{"company":"Initech","role":"Designer","status":"Interview","dateApplied":"2024-03-01"}`)
	env.createApp(t, bobToken, `{"company":"Hooli","role":"Engineer"}`)

	companies := func(query string) []string {
		w := env.do(t, http.MethodGet, "/api/applications"+query, aliceToken, "")
		require.Equal(t, http.StatusOK, w.Code)
		var out []string
		for _, a := range decodeJSON[[]types.Application](t, w) {
			out = append(out, a.Company)
		}
		return out
	}

	assert.Equal(t, []string{"Initech", "Globex Engineering", "Acme"}, companies(""))
	assert.Equal(t, []string{"Initech", "Globex Engineering", "Acme"}, companies("?status=All"))
	assert.Equal(t, []string{"Initech", "Globex Engineering"}, companies("?status=Interview"))
	assert.Equal(t, []string{"Globex Engineering", "Acme"}, companies("?search=ENGINEER"))
	assert.Equal(t, []string{"Globex Engineering"}, companies("?status=Interview&search=engineer"))

	w := env.do(t, http.MethodGet, "/api/applications?search=zzz", aliceToken, "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

// steppingClock returns a clock that starts at start and advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func TestUpdateApplication(t *testing.T) {
	env := newTestEnv(t)
	env.store.SetClock(steppingClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)))
	_, aliceToken := env.user(t, "alice@example.com")
	_, bobToken := env.user(t, "bob@example.com")

	app := env.createApp(t, aliceToken, `{"company":"Acme","role":"SWE","notes":"referral","salaryMin":100}`)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		w := env.do(t, http.MethodPut, appPath(app.ID), aliceToken, `{"status":"Offer"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decodeJSON[types.Application](t, w)
		assert.Equal(t, types.StatusOffer, updated.Status)
		assert.Equal(t, "Acme", updated.Company)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "referral", *updated.Notes)
		assert.True(t, updated.UpdatedAt.After(app.UpdatedAt))
		assert.Equal(t, app.CreatedAt, updated.CreatedAt)
	})

	t.Run("null clears optional field", func(t *testing.T) {
		w := env.do(t, http.MethodPut, appPath(app.ID), aliceToken, `{"notes":null,"salaryMin":""}`)
		require.Equal(t, http.StatusOK, w.Code)
		updated := decodeJSON[types.Application](t, w)
		assert.Nil(t, updated.Notes)
		assert.Nil(t, updated.SalaryMin)
	})

	t.Run("null on required field is rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPut, appPath(app.ID), aliceToken, `{"company":null}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "company", decodeErrorBody(t, w).Field)
	})

	t.Run("foreign row is 404 and unchanged", func(t *testing.T) {
		w := env.do(t, http.MethodPut, appPath(app.ID), bobToken, `{"company":"Hijacked"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		got, err := env.store.GetApplication(context.Background(), app.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Company)
	})

	t.Run("missing row is 404", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/applications/999", aliceToken, `{"status":"Offer"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteApplication_ForeignIsNoop(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.user(t, "alice@example.com")
	_, bobToken := env.user(t, "bob@example.com")

	app := env.createApp(t, aliceToken, `{"company":"Acme","role":"SWE"}`)

	w := env.do(t, http.MethodDelete, appPath(app.ID), bobToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, appPath(app.ID), aliceToken, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/applications/999", aliceToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestInvalidPathID(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user(t, "alice@example.com")

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := env.do(t, method, "/api/applications/abc", token, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, method)
		body := decodeErrorBody(t, w)
		assert.Equal(t, "Invalid application ID", body.Message)
		assert.Equal(t, "id", body.Field)
	}

	w := env.do(t, http.MethodDelete, "/api/interviews/-3", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id", decodeErrorBody(t, w).Field)
}

func TestInterviews(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.user(t, "alice@example.com")
	_, bobToken := env.user(t, "bob@example.com")

	app := env.createApp(t, aliceToken, `{"company":"Acme","role":"SWE"}`)
	bobApp := env.createApp(t, bobToken, `{"company":"Hooli","role":"SWE"}`)

	later := env.do(t, http.MethodPost, "/api/interviews", aliceToken,
		`{"applicationId":`+itoa(app.ID)+`,"date":"2024-04-10T10:00:00Z","type":"Onsite"}`)
	require.Equal(t, http.StatusCreated, later.Code, later.Body.String())
	earlier := env.do(t, http.MethodPost, "/api/interviews", aliceToken,
		`{"applicationId":"`+itoa(app.ID)+`","date":"2024-04-01","type":"Phone","notes":"recruiter"}`)
	require.Equal(t, http.StatusCreated, earlier.Code, earlier.Body.String())
	first := decodeJSON[types.Interview](t, earlier)
	assert.Equal(t, app.ID, first.ApplicationID)

	t.Run("interviews come back in date order", func(t *testing.T) {
		w := env.do(t, http.MethodGet, appPath(app.ID), aliceToken, "")
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeJSON[types.ApplicationWithInterviews](t, w)
		require.Len(t, got.Interviews, 2)
		assert.Equal(t, types.InterviewPhone, got.Interviews[0].Type)
		assert.Equal(t, types.InterviewOnsite, got.Interviews[1].Type)
	})

	t.Run("foreign parent is forbidden and writes nothing", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/interviews", aliceToken,
			`{"applicationId":`+itoa(bobApp.ID)+`,"date":"2024-04-01","type":"Phone"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)

		got, err := env.store.GetApplication(context.Background(), bobApp.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Interviews)
	})

	t.Run("absent parent is forbidden", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/interviews", aliceToken,
			`{"applicationId":999,"date":"2024-04-01","type":"Phone"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/interviews", aliceToken,
			`{"applicationId":`+itoa(app.ID)+`,"date":"2024-04-01","type":"Lunch"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "type", decodeErrorBody(t, w).Field)
	})

	t.Run("non-owner delete leaves the row", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/interviews/"+itoa(first.ID), bobToken, "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		_, err := env.store.GetInterview(context.Background(), first.ID)
		assert.NoError(t, err)
	})

	t.Run("owner delete removes the row", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/interviews/"+itoa(first.ID), aliceToken, "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		_, err := env.store.GetInterview(context.Background(), first.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("deleting the application cascades", func(t *testing.T) {
		remaining := decodeJSON[types.Interview](t, later)
		w := env.do(t, http.MethodDelete, appPath(app.ID), aliceToken, "")
		require.Equal(t, http.StatusNoContent, w.Code)

		_, err := env.store.GetInterview(context.Background(), remaining.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

// vanishingParent simulates the parent being deleted between the ownership check and the insert.
type vanishingParent struct {
	store.ApplicationStore
}

func (v vanishingParent) CreateInterview(context.Context, *types.CreateInterviewRequest) (*types.Interview, error) {
	return nil, store.ErrApplicationNotFound
}

func TestCreateInterview_ParentDeletedConcurrently(t *testing.T) {
	env := newTestEnvWith(t, func(s store.ApplicationStore) store.ApplicationStore {
		return vanishingParent{ApplicationStore: s}
	}, nil)
	_, token := env.user(t, "alice@example.com")
	app := env.createApp(t, token, `{"company":"Acme","role":"SWE"}`)

	w := env.do(t, http.MethodPost, "/api/interviews", token,
		`{"applicationId":`+itoa(app.ID)+`,"date":"2024-04-01","type":"Phone"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.user(t, "alice@example.com")
	_, bobToken := env.user(t, "bob@example.com")

	for _, status := range []string{"Applied", "Applied", "Interview", "Offer", "Rejected"} {
		env.createApp(t, aliceToken, `{"company":"Acme","role":"SWE","status":"`+status+`"}`)
	}
	env.createApp(t, bobToken, `{"company":"Hooli","role":"SWE","status":"Offer"}`)

	w := env.do(t, http.MethodGet, "/api/stats", aliceToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.Stats{Total: 5, Applied: 2, Interviewing: 1, Offered: 1, Rejected: 1}, decodeJSON[types.Stats](t, w))

	// Stats always reflect the current list.
	list := decodeJSON[[]types.Application](t, env.do(t, http.MethodGet, "/api/applications", aliceToken, ""))
	env.do(t, http.MethodDelete, appPath(list[0].ID), aliceToken, "")
	w = env.do(t, http.MethodGet, "/api/stats", aliceToken, "")
	assert.Equal(t, 4, decodeJSON[types.Stats](t, w).Total)
}

// failingStore answers every list with an internal error.
type failingStore struct {
	store.ApplicationStore
}

func (failingStore) ListApplications(context.Context, uuid.UUID) ([]types.Application, error) {
	return nil, assert.AnError
}

func TestInternalErrorIsGeneric(t *testing.T) {
	env := newTestEnvWith(t, func(s store.ApplicationStore) store.ApplicationStore {
		return failingStore{ApplicationStore: s}
	}, nil)
	_, token := env.user(t, "alice@example.com")

	w := env.do(t, http.MethodGet, "/api/applications", token, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeErrorBody(t, w).Message)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestGetSchema(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/schemas/application_create", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/schema+json", w.Header().Get("Content-Type"))
	doc := decodeJSON[map[string]any](t, w)
	assert.Contains(t, doc, "properties")

	w = env.do(t, http.MethodGet, "/api/schemas/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodOptions, "/api/applications", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(2),
	})
	t.Cleanup(limiter.Stop)
	env := newTestEnvWith(t, nil, limiter)

	body := `{"email":"nobody@example.com","password":"whatever"}`
	w := env.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	w = env.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_RejectionsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(2),
	})
	t.Cleanup(limiter.Stop)
	env := newTestEnvWith(t, nil, limiter)

	body := `{"email":"nobody@example.com","password":"whatever"}`
	env.do(t, http.MethodPost, "/api/auth/login", "", body)
	w := env.do(t, http.MethodPost, "/api/auth/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	assert.Contains(t, logs.String(), "[POST] /api/auth/login 429")
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decodeErrorBody(t, w).Message)
}

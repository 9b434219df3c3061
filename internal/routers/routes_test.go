package routers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"intervue/internal/handlers"
	"intervue/internal/llm"
	"intervue/internal/locks"
	"intervue/internal/middleware"
	"intervue/internal/models"
	"intervue/internal/repositories"
	"intervue/internal/sessions"
	"intervue/internal/testhelpers"
)

const testSecret = "test-secret"

type scriptedEvaluator struct{}

func (scriptedEvaluator) EvaluateAnswer(ctx context.Context, questionText, answerText string, ec llm.EvalContext) (*llm.EvalResult, error) {
	return &llm.EvalResult{
		Evaluation: models.Evaluation{
			Grammar:       90,
			Technical:     90,
			Depth:         90,
			Communication: 90,
			Feedback:      "Strong answer.",
			Strengths:     []string{"precise"},
		},
		InterviewerText: "Great, next one.",
	}, nil
}

func (scriptedEvaluator) GetProviderName() string { return "scripted" }

type testAPI struct {
	router *chi.Mux
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	logger := zap.NewNop()
	userRepo := repositories.NewUserRepository(db)
	manager := sessions.NewManager(db, scriptedEvaluator{}, locks.NewSessionLocks(rdb, time.Minute), logger, sessions.ManagerOptions{})

	authenticate := middleware.Authenticate(userRepo, testSecret)

	router := chi.NewRouter()
	HealthRoutes(router, handlers.NewHealthHandler(db, scriptedEvaluator{}))
	AuthRoutes(router, handlers.NewAuthHandler(userRepo, testSecret, time.Hour, logger))
	SessionRoutes(router, handlers.NewSessionHandler(manager, logger), authenticate)
	AdminRoutes(router,
		handlers.NewTopicHandler(repositories.NewTopicRepository(db), repositories.NewQuestionRepository(db), logger),
		handlers.NewQuestionHandler(repositories.NewQuestionRepository(db), logger),
		handlers.NewTestHandler(repositories.NewTestRepository(db), logger),
		authenticate)

	return &testAPI{router: router, db: db}
}

func (a *testAPI) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates a user through the API and returns its token.
func (a *testAPI) registerAndLogin(t *testing.T, username string, admin bool) string {
	t.Helper()

	body := fmt.Sprintf(`{"username": %q, "password": "supersecret"}`, username)
	rec := a.do(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	if admin {
		require.NoError(t, a.db.Model(&models.User{}).Where("username = ?", username).Update("role", models.RoleAdmin).Error)
	}

	rec = a.do(t, http.MethodPost, "/api/auth/login", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// seedTest creates a topic, three questions and a test via the admin API and
// returns the test ID.
func (a *testAPI) seedTest(t *testing.T, adminToken string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/topics", adminToken, `{"name": "databases"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var topic models.Topic
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&topic))

	questionIDs := make([]string, 3)
	for i, text := range []string{"What is an index?", "Explain ACID.", "What is a deadlock?"} {
		body := fmt.Sprintf(`{"topicId": %q, "questionText": %q, "difficulty": "medium"}`, topic.ID, text)
		rec = a.do(t, http.MethodPost, "/api/questions", adminToken, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var q models.Question
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&q))
		questionIDs[i] = q.ID
	}

	ids, err := json.Marshal(questionIDs)
	require.NoError(t, err)
	body := fmt.Sprintf(`{"name": "DB fundamentals", "questionIds": %s}`, ids)
	rec = a.do(t, http.MethodPost, "/api/tests", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var test models.Test
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&test))
	return test.ID
}

func TestHealthEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionEndpointsRequireAuth(t *testing.T) {
	api := newTestAPI(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/sessions/start"},
		{http.MethodPost, "/api/sessions/answer"},
		{http.MethodGet, "/api/sessions/recent"},
		{http.MethodGet, "/api/sessions/some-id"},
		{http.MethodGet, "/api/stats"},
		{http.MethodGet, "/api/topics"},
	} {
		rec := api.do(t, route.method, route.path, "", `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestAdminMutationsForbiddenForRegularUsers(t *testing.T) {
	api := newTestAPI(t)
	userToken := api.registerAndLogin(t, "student", false)

	rec := api.do(t, http.MethodPost, "/api/topics", userToken, `{"name": "databases"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// listings stay readable
	rec = api.do(t, http.MethodGet, "/api/topics", userToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInterviewFlow(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.registerAndLogin(t, "admin", true)
	userToken := api.registerAndLogin(t, "student", false)
	testID := api.seedTest(t, adminToken)

	// start
	rec := api.do(t, http.MethodPost, "/api/sessions/start", userToken, fmt.Sprintf(`{"testId": %q}`, testID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var started models.StartSessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&started))
	require.NotNil(t, started.CurrentQuestion)
	sessionID := started.Session.ID

	// answer all three questions
	var last models.SubmitAnswerResponse
	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"sessionId": %q, "answer": "my answer"}`, sessionID)
		rec = api.do(t, http.MethodPost, "/api/sessions/answer", userToken, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&last))
	}
	assert.True(t, last.Completed)
	require.NotNil(t, last.Score)
	assert.Equal(t, 90, last.Score.TotalScore)
	assert.Equal(t, "A", last.Score.Grade)

	// score endpoint returns the same aggregate
	rec = api.do(t, http.MethodGet, "/api/sessions/"+sessionID+"/score", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// turns listing has one entry per question
	rec = api.do(t, http.MethodGet, "/api/sessions/"+sessionID+"/turns", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var turns []models.TurnWithQuestion
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&turns))
	assert.Len(t, turns, 3)

	// completed session rejects further answers
	rec = api.do(t, http.MethodPost, "/api/sessions/answer", userToken,
		fmt.Sprintf(`{"sessionId": %q, "answer": "extra"}`, sessionID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// history and stats reflect the completed session
	rec = api.do(t, http.MethodGet, "/api/sessions/history", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []models.SessionSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&history))
	assert.Len(t, history, 1)

	rec = api.do(t, http.MethodGet, "/api/stats", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats models.UserStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalTests)
	assert.Equal(t, 90, stats.AverageScore)
}

func TestSessionOwnership(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.registerAndLogin(t, "admin", true)
	aliceToken := api.registerAndLogin(t, "alice", false)
	bobToken := api.registerAndLogin(t, "bob", false)
	testID := api.seedTest(t, adminToken)

	rec := api.do(t, http.MethodPost, "/api/sessions/start", aliceToken, fmt.Sprintf(`{"testId": %q}`, testID))
	require.Equal(t, http.StatusOK, rec.Code)
	var started models.StartSessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&started))

	// bob cannot read, answer or quit alice's session
	rec = api.do(t, http.MethodGet, "/api/sessions/"+started.Session.ID, bobToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/sessions/answer", bobToken,
		fmt.Sprintf(`{"sessionId": %q, "answer": "hijack"}`, started.Session.ID))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/sessions/"+started.Session.ID+"/quit", bobToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStartValidation(t *testing.T) {
	api := newTestAPI(t)
	userToken := api.registerAndLogin(t, "student", false)

	// neither source
	rec := api.do(t, http.MethodPost, "/api/sessions/start", userToken, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// both sources
	rec = api.do(t, http.MethodPost, "/api/sessions/start", userToken, `{"testId": "a", "topicId": "b"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown test
	rec = api.do(t, http.MethodPost, "/api/sessions/start", userToken, `{"testId": "missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuitEndpoint(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.registerAndLogin(t, "admin", true)
	userToken := api.registerAndLogin(t, "student", false)
	testID := api.seedTest(t, adminToken)

	rec := api.do(t, http.MethodPost, "/api/sessions/start", userToken, fmt.Sprintf(`{"testId": %q}`, testID))
	require.Equal(t, http.StatusOK, rec.Code)
	var started models.StartSessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&started))

	rec = api.do(t, http.MethodPost, "/api/sessions/"+started.Session.ID+"/quit", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var session models.InterviewSession
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&session))
	assert.Equal(t, models.SessionAbandoned, session.Status)

	// no score for an abandoned session
	rec = api.do(t, http.MethodGet, "/api/sessions/"+started.Session.ID+"/score", userToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuestionCRUD(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.registerAndLogin(t, "admin", true)

	rec := api.do(t, http.MethodPost, "/api/topics", adminToken, `{"name": "networking"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var topic models.Topic
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&topic))

	body := fmt.Sprintf(`{"topicId": %q, "questionText": "What is TCP?", "difficulty": "easy", "expectedKeyPoints": ["handshake"]}`, topic.ID)
	rec = api.do(t, http.MethodPost, "/api/questions", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var q models.Question
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&q))
	assert.Equal(t, []string{"handshake"}, []string(q.ExpectedKeyPoints))

	// invalid difficulty rejected
	rec = api.do(t, http.MethodPost, "/api/questions", adminToken,
		fmt.Sprintf(`{"topicId": %q, "questionText": "x", "difficulty": "extreme"}`, topic.ID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// update
	body = fmt.Sprintf(`{"topicId": %q, "questionText": "What is UDP?", "difficulty": "easy"}`, topic.ID)
	rec = api.do(t, http.MethodPut, "/api/questions/"+q.ID, adminToken, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// topic question listing
	rec = api.do(t, http.MethodGet, "/api/topics/"+topic.ID+"/questions", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Question
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "What is UDP?", listed[0].QuestionText)

	// delete
	rec = api.do(t, http.MethodDelete, "/api/questions/"+q.ID, adminToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/questions/"+q.ID, adminToken, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

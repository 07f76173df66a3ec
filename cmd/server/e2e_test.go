package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"f1-bets.backend/internal/infrastructure/datasources"
	"f1-bets.backend/internal/infrastructure/models"
	"f1-bets.backend/pkg/redis"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := baseTestConfig()
	db, err := datasources.NewConnection(cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &testServer{t: t, router: newRouter(cfg, db, prometheus.NewRegistry(), newServices(cfg, db)), db: db}
}

func (s *testServer) seedDrivers(names ...string) {
	s.t.Helper()
	for i, name := range names {
		require.NoError(s.t, s.db.Create(&models.Driver{
			ID:     int64(i + 1),
			Name:   name,
			Season: null.IntFrom(2024),
		}).Error)
	}
}

func (s *testServer) do(method, path, body string, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var out map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func (s *testServer) register(email, password string) int64 {
	s.t.Helper()
	rec, body := s.do(http.MethodPost, "/register", fmt.Sprintf(
		`{"nombre":"Ana","apellido":"Diaz","email":%q,"password":%q,"fecha_nacimiento":"1990-05-01"}`, email, password))
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return int64(body["user_id"].(float64))
}

func TestEndToEnd_BettingScenario(t *testing.T) {
	redis.SetClient(nil)
	s := newTestServer(t)
	s.seedDrivers("Max Verstappen", "Lando Norris", "Charles Leclerc")

	rec, body := s.do(http.MethodPost, "/register",
		`{"nombre":"Ana","apellido":"Diaz","email":"a@x.com","password":"Abcdef1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	userA := int64(body["user_id"].(float64))

	rec, body = s.do(http.MethodPost, "/register",
		`{"nombre":"Ana","apellido":"Diaz","email":"A@X.COM","password":"Abcdef1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, _ = s.do(http.MethodPost, "/login", `{"email":"a@x.com","password":"Wrong99"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body = s.do(http.MethodPost, "/login", `{"email":"a@x.com","password":"Abcdef1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana Diaz", body["user_name"])
	assert.NotEmpty(t, body["token"])

	rec, body = s.do(http.MethodPost, "/apuestas/top3",
		fmt.Sprintf(`{"user_id":%d,"top1":1,"top2":"2","top3":3}`, userA))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	bet := body["bet"].(map[string]interface{})
	assert.Equal(t, "pendiente", bet["status"])
	assert.Equal(t, "Max Verstappen", bet["top1"])
	assert.Equal(t, "Lando Norris", bet["top2"])
	assert.Equal(t, "Charles Leclerc", bet["top3"])
	betID := int64(bet["id"].(float64))

	rec, body = s.do(http.MethodPost, "/apuestas/top3/status",
		fmt.Sprintf(`{"bet_id":%d,"user_id":%d,"status":"activa"}`, betID, userA))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "activa", body["bet"].(map[string]interface{})["status"])

	rec, body = s.do(http.MethodGet, fmt.Sprintf("/apuestas/top3/detalle?bet_id=%d", betID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "activa", body["bet"].(map[string]interface{})["status"])

	otherUser := s.register("b@x.com", "Abcdef1")
	notOwned, _ := s.do(http.MethodDelete, fmt.Sprintf("/apuestas/top3?bet_id=%d&user_id=%d", betID, otherUser), "")
	missing, _ := s.do(http.MethodDelete, fmt.Sprintf("/apuestas/top3?bet_id=%d&user_id=%d", betID+100, otherUser), "")
	assert.Equal(t, http.StatusNotFound, notOwned.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.JSONEq(t, missing.Body.String(), notOwned.Body.String())

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/apuestas/top3?bet_id=%d&user_id=%d", betID, userA), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, fmt.Sprintf("/apuestas/top3/detalle?bet_id=%d", betID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEndToEnd_DriversAndListing(t *testing.T) {
	redis.SetClient(nil)
	s := newTestServer(t)
	s.seedDrivers("Lando Norris", "Charles Leclerc", "Max Verstappen", "Oscar Piastri")
	userID := s.register("lister@x.com", "Abcdef1")

	rec, body := s.do(http.MethodGet, "/api/pilotos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	pilots := body["pilotos"].([]interface{})
	require.Len(t, pilots, 4)
	assert.Equal(t, "Charles Leclerc", pilots[0].(map[string]interface{})["name"])

	for _, picks := range [][3]int{{1, 2, 3}, {2, 3, 4}, {4, 1, 2}} {
		rec, _ = s.do(http.MethodPost, "/apuestas/top3",
			fmt.Sprintf(`{"user_id":%d,"top1":%d,"top2":%d,"top3":%d}`, userID, picks[0], picks[1], picks[2]))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec, body = s.do(http.MethodGet, fmt.Sprintf("/apuestas/top3?user_id=%d", userID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	bets := body["apuestas"].([]interface{})
	require.Len(t, bets, 3)
	// same-second inserts fall back to id order, newest first
	assert.Equal(t, "Oscar Piastri", bets[0].(map[string]interface{})["top1"])
	assert.Equal(t, "Lando Norris", bets[2].(map[string]interface{})["top1"])

	rec, body = s.do(http.MethodGet, fmt.Sprintf("/apuestas/top3?user_id=%d&page=2&limit=2", userID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["apuestas"].([]interface{}), 1)

	rec, _ = s.do(http.MethodPost, "/apuestas/top3",
		fmt.Sprintf(`{"user_id":%d,"top1":1,"top2":1,"top3":3}`, userID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, "/apuestas/top3",
		fmt.Sprintf(`{"user_id":%d,"top1":1,"top2":2,"top3":99}`, userID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, "/apuestas/top3", `{"user_id":999,"top1":1,"top2":2,"top3":3}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEndToEnd_BearerTokenBindsUser(t *testing.T) {
	redis.SetClient(nil)
	s := newTestServer(t)
	s.seedDrivers("Max Verstappen", "Lando Norris", "Charles Leclerc")
	userA := s.register("owner@x.com", "Abcdef1")
	userB := s.register("other@x.com", "Abcdef1")

	rec, body := s.do(http.MethodPost, "/login", `{"email":"owner@x.com","password":"Abcdef1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	auth := "Bearer " + body["token"].(string)

	rec, _ = s.do(http.MethodPost, "/apuestas/top3",
		fmt.Sprintf(`{"user_id":%d,"top1":1,"top2":2,"top3":3}`, userB), "Authorization", auth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(http.MethodPost, "/apuestas/top3",
		fmt.Sprintf(`{"user_id":%d,"top1":1,"top2":2,"top3":3}`, userA), "Authorization", auth)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, "/apuestas/top3?user_id=1", "", "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(http.MethodPost, "/change-password",
		fmt.Sprintf(`{"user_id":%d,"current_password":"Abcdef1","new_password":"Ghijkl2"}`, userA), "Authorization", auth)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPost, "/login", `{"email":"owner@x.com","password":"Ghijkl2"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEndToEnd_IdempotentCreate(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	redis.SetClient(client)
	t.Cleanup(func() {
		redis.SetClient(nil)
		_ = client.Close()
	})

	s := newTestServer(t)
	s.seedDrivers("Max Verstappen", "Lando Norris", "Charles Leclerc")
	userID := s.register("idem@x.com", "Abcdef1")
	payload := fmt.Sprintf(`{"user_id":%d,"top1":1,"top2":2,"top3":3}`, userID)

	first, firstBody := s.do(http.MethodPost, "/apuestas/top3", payload, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	second, secondBody := s.do(http.MethodPost, "/apuestas/top3", payload, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	assert.Equal(t, firstBody, secondBody)

	rec, body := s.do(http.MethodGet, fmt.Sprintf("/apuestas/top3?user_id=%d", userID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["apuestas"].([]interface{}), 1)

	// another user reusing the key gets a bet of their own
	otherID := s.register("other@x.com", "Abcdef1")
	otherPayload := fmt.Sprintf(`{"user_id":%d,"top1":3,"top2":2,"top3":1}`, otherID)
	other, otherBody := s.do(http.MethodPost, "/apuestas/top3", otherPayload, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusOK, other.Code, other.Body.String())
	assert.Empty(t, other.Header().Get("X-Idempotency-Hit"))
	otherBet := otherBody["bet"].(map[string]interface{})
	assert.Equal(t, float64(otherID), otherBet["user_id"])
	assert.NotEqual(t, firstBody["bet"].(map[string]interface{})["id"], otherBet["id"])

	rec, body = s.do(http.MethodGet, fmt.Sprintf("/apuestas/top3?user_id=%d", otherID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["apuestas"].([]interface{}), 1)

	// the catalog is served from cache once populated
	rec, _ = s.do(http.MethodGet, "/api/pilotos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, mr.Exists("drivers:catalog"))
}

func TestEndToEnd_HealthAndMetrics(t *testing.T) {
	redis.SetClient(nil)
	s := newTestServer(t)

	rec, body := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, _ = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `f1bets_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

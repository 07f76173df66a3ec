package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"f1-bets.backend/internal/domain/entities"
	"f1-bets.backend/internal/interfaces/http/middleware"
	"f1-bets.backend/pkg/utils"
)

type authServiceStub struct {
	registerFn       func(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	loginFn          func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	changePasswordFn func(ctx context.Context, input *entities.ChangePasswordInput) error
}

func (s authServiceStub) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	return s.registerFn(ctx, input)
}
func (s authServiceStub) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.loginFn(ctx, input)
}
func (s authServiceStub) ChangePassword(ctx context.Context, input *entities.ChangePasswordInput) error {
	return s.changePasswordFn(ctx, input)
}

type driverServiceStub struct {
	listFn func(ctx context.Context) ([]entities.DriverOption, error)
}

func (s driverServiceStub) List(ctx context.Context) ([]entities.DriverOption, error) {
	return s.listFn(ctx)
}

type betServiceStub struct {
	createFn       func(ctx context.Context, userID int64, picks entities.Picks) (*entities.Bet, error)
	listFn         func(ctx context.Context, userID int64, page utils.PaginationParams) ([]*entities.Bet, int64, error)
	getFn          func(ctx context.Context, betID int64) (*entities.Bet, error)
	updateStatusFn func(ctx context.Context, betID, userID int64, status string) (*entities.Bet, error)
	deleteFn       func(ctx context.Context, betID, userID int64) error
}

func (s betServiceStub) Create(ctx context.Context, userID int64, picks entities.Picks) (*entities.Bet, error) {
	return s.createFn(ctx, userID, picks)
}
func (s betServiceStub) ListForUser(ctx context.Context, userID int64, page utils.PaginationParams) ([]*entities.Bet, int64, error) {
	return s.listFn(ctx, userID, page)
}
func (s betServiceStub) GetByID(ctx context.Context, betID int64) (*entities.Bet, error) {
	return s.getFn(ctx, betID)
}
func (s betServiceStub) UpdateStatus(ctx context.Context, betID, userID int64, status string) (*entities.Bet, error) {
	return s.updateStatusFn(ctx, betID, userID, status)
}
func (s betServiceStub) Delete(ctx context.Context, betID, userID int64) error {
	return s.deleteFn(ctx, betID, userID)
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withTokenUser simulates OptionalAuthMiddleware having accepted a bearer token
func withTokenUser(id int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "f1-bets.backend/internal/domain/errors"
	"f1-bets.backend/internal/interfaces/http/response"
	"f1-bets.backend/pkg/logger"
	"f1-bets.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the stored copy
	IdempotencyReplayHeader = "X-Idempotency-Hit"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the first successful response for a repeated
// Idempotency-Key. Without Redis, or without the header, requests pass through.
func IdempotencyMiddleware(retention time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", idempotencyScope(c), c.Request.URL.Path, key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			if val == processingMarker {
				response.Error(c, domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeConflict, "request already in progress", domainerrors.ErrAlreadyExists))
				return
			}
			var stored storedResponse
			if err := json.Unmarshal([]byte(val), &stored); err != nil {
				logger.Warn(ctx, "Discarding unreadable idempotency entry", zap.String("key", storageKey), zap.Error(err))
				_ = redisDel(ctx, storageKey)
				break
			}
			c.Header(IdempotencyReplayHeader, "true")
			c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
			c.Abort()
			return
		case errors.Is(err, redis.ErrNil):
		default:
			if !errors.Is(err, redis.ErrDisabled) {
				logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			}
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			response.Error(c, domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeConflict, "request already in progress", domainerrors.ErrAlreadyExists))
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			payload, err := json.Marshal(storedResponse{Status: status, Body: w.body.Bytes()})
			if err == nil {
				err = redisSet(ctx, storageKey, payload, retention)
			}
			if err != nil {
				logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
				_ = redisDel(ctx, storageKey)
			}
			return
		}
		// failures may be retried with the same key
		_ = redisDel(ctx, storageKey)
	}
}

// idempotencyScope names the caller a key belongs to: the token's user id,
// else the user_id in the JSON body. The body is restored for the handler.
func idempotencyScope(c *gin.Context) string {
	if userID, ok := GetUserID(c); ok {
		return strconv.FormatInt(userID, 10)
	}
	if c.Request.Body == nil {
		return "anonymous"
	}

	raw, err := io.ReadAll(c.Request.Body)
	_ = c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return "anonymous"
	}

	var body struct {
		UserID json.RawMessage `json:"user_id"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "anonymous"
	}
	// 7 and "7" name the same user
	id, err := strconv.ParseInt(strings.TrimSpace(strings.Trim(strings.TrimSpace(string(body.UserID)), `"`)), 10, 64)
	if err != nil {
		return "anonymous"
	}
	return strconv.FormatInt(id, 10)
}

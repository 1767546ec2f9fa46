package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"student-portal.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time the key is held while the request is in flight
	LockDuration = 30 * time.Second
	// RetentionDuration is how long the recorded response is replayed
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware guards mutating endpoints against double submission.
// Requests carrying an Idempotency-Key acquire a redis lock; a concurrent
// duplicate gets 409, a later duplicate replays the recorded response.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		storageKey := "idempotency:" + key

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			// Redis being down must not take registration down with it.
			c.Next()
			return
		}

		if !acquired {
			val, err := redisGet(ctx, storageKey)
			if err != nil || val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error": "Request already in progress",
				})
				return
			}

			var cached cachedResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.Data(cached.Status, "application/json", []byte(cached.Body))
				c.Abort()
				return
			}

			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Duplicate request",
			})
			return
		}

		recorder := responseRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			// Let the client retry server-side failures with the same key.
			_ = redisDel(ctx, storageKey)
			return
		}

		payload, err := json.Marshal(cachedResponse{Status: status, Body: recorder.body.String()})
		if err == nil {
			_ = redisSet(ctx, storageKey, string(payload), RetentionDuration)
		}
	}
}

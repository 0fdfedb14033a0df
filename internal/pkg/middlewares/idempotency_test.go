package middlewares

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DS-LIT/hrba-forms/internal/constant"
	"github.com/DS-LIT/hrba-forms/internal/pkg/apperr"
	"github.com/DS-LIT/hrba-forms/internal/pkg/fiberstore"
)

func idempotentApp(calls *int, status int) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*apperr.Error); ok {
				return c.Status(e.StatusCode).JSON(fiber.Map{"code": e.ErrorCode})
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	app.Use(Idempotency(IdempotencyConfig{
		Lifetime: time.Hour,
		Storage:  fiberstore.NewMemory(),
	}))
	app.Post("/submit", func(c *fiber.Ctx) error {
		*calls++
		return c.Status(status).JSON(fiber.Map{"n": *calls})
	})
	return app
}

func post(t *testing.T, app *fiber.App, key string) (int, string, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/submit", strings.NewReader(`{}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(constant.IdempotencyKeyHeader, key)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), resp.Header.Get(constant.IdempotencyHeader)
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	calls := 0
	app := idempotentApp(&calls, fiber.StatusOK)

	status, body, marker := post(t, app, "abc123")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"n":1}`, body)
	assert.Equal(t, "saved", marker)

	status, body, marker = post(t, app, "abc123")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"n":1}`, body)
	assert.Equal(t, "hit", marker)
	assert.Equal(t, 1, calls)

	_, body, _ = post(t, app, "")
	assert.JSONEq(t, `{"n":2}`, body)
}

func TestIdempotencyDoesNotKeepFailures(t *testing.T) {
	calls := 0
	app := idempotentApp(&calls, fiber.StatusInternalServerError)

	post(t, app, "retry1")
	post(t, app, "retry1")
	assert.Equal(t, 2, calls)
}

func TestIdempotencyRejectsBadKey(t *testing.T) {
	calls := 0
	app := idempotentApp(&calls, fiber.StatusOK)

	status, _, _ := post(t, app, "not a key!")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, 0, calls)
}

func TestIdempotencyKeysAreScopedByRoute(t *testing.T) {
	calls := 0
	app := idempotentApp(&calls, fiber.StatusOK)
	app.Post("/other", func(c *fiber.Ctx) error {
		calls++
		return c.JSON(fiber.Map{"other": calls})
	})

	_, body, _ := post(t, app, "shared1")
	assert.JSONEq(t, `{"n":1}`, body)

	req := httptest.NewRequest(fiber.MethodPost, "/other", strings.NewReader(`{}`))
	req.Header.Set(constant.IdempotencyKeyHeader, "shared1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"other":2}`, string(b))
	assert.Equal(t, "saved", resp.Header.Get(constant.IdempotencyHeader))
}

func TestKeyLocksKeepsEntryWhileWaiting(t *testing.T) {
	k := &keyLocks{locks: make(map[string]*keyLock)}
	refs := func() int {
		k.mu.Lock()
		defer k.mu.Unlock()
		if l, ok := k.locks["a"]; ok {
			return l.refs
		}
		return 0
	}

	unlockFirst := k.lock("a")

	var (
		mu     sync.Mutex
		holder []string
	)
	hold := func(name string, release <-chan struct{}, done chan<- struct{}) {
		unlock := k.lock("a")
		mu.Lock()
		holder = append(holder, name)
		mu.Unlock()
		<-release
		unlock()
		close(done)
	}

	releaseSecond, secondDone := make(chan struct{}), make(chan struct{})
	go hold("second", releaseSecond, secondDone)
	assert.Eventually(t, func() bool { return refs() == 2 }, time.Second, time.Millisecond)

	// the waiter must keep the entry alive, so a newcomer queues on the same mutex
	unlockFirst()
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(holder) == 1
	}, time.Second, time.Millisecond)

	releaseThird, thirdDone := make(chan struct{}), make(chan struct{})
	go hold("third", releaseThird, thirdDone)
	assert.Eventually(t, func() bool { return refs() == 2 }, time.Second, time.Millisecond)
	assert.Never(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(holder) > 1
	}, 50*time.Millisecond, 5*time.Millisecond)

	close(releaseSecond)
	<-secondDone
	close(releaseThird)
	<-thirdDone

	assert.Equal(t, []string{"second", "third"}, holder)
	assert.Empty(t, k.locks)
}

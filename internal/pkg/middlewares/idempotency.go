package middlewares

import (
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/DS-LIT/hrba-forms/internal/constant"
	"github.com/DS-LIT/hrba-forms/internal/pkg/apperr"
	"github.com/DS-LIT/hrba-forms/internal/util/rekuest"
)

type IdempotencyConfig struct {
	// Lifetime is how long a successful response can be replayed.
	Lifetime time.Duration

	// Storage keeps the replayable responses.
	Storage fiber.Storage

	// RedSync locks a key across instances. When nil a process-local lock is used.
	RedSync *redsync.Redsync
}

// replay is what gets stored for an idempotency key. Only successful responses are kept so a
// failed submission can be retried with the same key.
type replay struct {
	StatusCode  int    `msgpack:"s"`
	ContentType string `msgpack:"t"`
	Body        []byte `msgpack:"b"`
}

type unlocker func()

// keyLock is removed from keyLocks only once nobody holds or waits for it.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

func (k *keyLocks) lock(key string) unlocker {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// storageKey scopes a client key to the route it was sent to.
func storageKey(c *fiber.Ctx, key string) string {
	return c.Method() + " " + c.Path() + "#" + key
}

func Idempotency(config IdempotencyConfig) fiber.Handler {
	local := &keyLocks{locks: make(map[string]*keyLock)}

	acquire := func(key string) (unlocker, error) {
		if config.RedSync == nil {
			return local.lock(key), nil
		}
		mutex := config.RedSync.NewMutex("mutex:idempotency:"+key,
			redsync.WithExpiry(time.Minute),
			redsync.WithTries(5),
			redsync.WithRetryDelay(time.Millisecond*250),
		)
		if err := mutex.Lock(); err != nil {
			return nil, err
		}
		return func() {
			if _, err := mutex.Unlock(); err != nil {
				log.Err(err).
					Str("evt.name", "http.idempotency.unlock.failed").
					Str("key", key).
					Msg("failed to unlock idempotency key")
			}
		}, nil
	}

	return func(c *fiber.Ctx) error {
		key := c.Get(constant.IdempotencyKeyHeader)
		if key == "" {
			return c.Next()
		}

		if err := rekuest.Validate.Var(key, "max=128,alphanum"); err != nil {
			return apperr.ErrInvalidReq.Msg("invalid idempotency key: at most %d alphanumeric characters", constant.IdempotencyKeyLengthLimit)
		}
		c.Locals(constant.IdempotencyKeyLocalsKey, key)
		scoped := storageKey(c, key)

		if hit, err := writeReplay(c, config.Storage, scoped); hit {
			return err
		}

		unlock, err := acquire(scoped)
		if err != nil {
			log.Err(err).
				Str("evt.name", "http.idempotency.lock.failed").
				Str("key", key).
				Msg("failed to lock idempotency key")
			return apperr.ErrTooManyRequests.Msg("a submission with this idempotency key is still in progress")
		}
		defer unlock()

		// another request holding the lock may have finished meanwhile
		if hit, err := writeReplay(c, config.Storage, scoped); hit {
			return err
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return nil
		}

		b, err := msgpack.Marshal(replay{
			StatusCode:  status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		})
		if err != nil {
			return err
		}
		if err := config.Storage.Set(scoped, b, config.Lifetime); err != nil {
			log.Error().
				Err(err).
				Str("evt.name", "http.idempotency.save.failed").
				Str("key", key).
				Msg("failed to save idempotency response")
			return nil
		}

		c.Set(constant.IdempotencyHeader, "saved")
		return nil
	}
}

func writeReplay(c *fiber.Ctx, storage fiber.Storage, key string) (bool, error) {
	b, err := storage.Get(key)
	if err != nil || len(b) == 0 {
		return false, nil
	}

	var r replay
	if err := msgpack.Unmarshal(b, &r); err != nil {
		return true, err
	}

	log.Debug().
		Str("evt.name", "http.idempotency.hit").
		Str("key", key).
		Msg("replaying stored response")

	c.Status(r.StatusCode)
	if r.ContentType != "" {
		c.Set(fiber.HeaderContentType, r.ContentType)
	}
	c.Set(constant.IdempotencyHeader, "hit")
	return true, c.Send(r.Body)
}

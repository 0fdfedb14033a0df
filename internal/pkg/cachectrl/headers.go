package cachectrl

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/zeebo/xxh3"
)

// Public lets browsers and proxies keep the response for maxAge. since is the
// moment the underlying data last changed.
func Public(ctx *fiber.Ctx, since time.Time, maxAge time.Duration) {
	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
	ctx.Set(fiber.HeaderExpires, time.Now().Add(maxAge).UTC().Format(http1123))
	ctx.Response().Header.SetLastModified(since)
}

// ETag is a strong validator derived from the response body.
func ETag(body []byte) string {
	return `"` + strconv.FormatUint(xxh3.Hash(body), 16) + `"`
}

// CachedJSON encodes v and answers 304 Not Modified when the request already
// holds the same representation.
func CachedJSON(ctx *fiber.Ctx, v any, since time.Time, maxAge time.Duration) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	tag := ETag(body)
	Public(ctx, since, maxAge)
	ctx.Set(fiber.HeaderETag, tag)

	if ctx.Get(fiber.HeaderIfNoneMatch) == tag {
		return ctx.SendStatus(fiber.StatusNotModified)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return ctx.Send(body)
}

// NoStore keeps submissions and their echoes out of every cache.
func NoStore(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}

const http1123 = "Mon, 02 Jan 2006 15:04:05 GMT"

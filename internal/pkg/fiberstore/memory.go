package fiberstore

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

// Memory is a process-local fiber.Storage used when no Redis is configured.
type Memory struct {
	c *cache.Cache
}

var _ fiber.Storage = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		c: cache.New(cache.NoExpiration, time.Minute*10),
	}
}

func (m *Memory) Get(key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, nil
	}
	return v.([]byte), nil
}

// Set stores a copy of val. exp <= 0 keeps the entry until deleted.
func (m *Memory) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}
	if exp <= 0 {
		exp = cache.NoExpiration
	}
	m.c.Set(key, append([]byte(nil), val...), exp)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.c.Delete(key)
	return nil
}

func (m *Memory) Reset() error {
	m.c.Flush()
	return nil
}

func (m *Memory) Close() error {
	return nil
}

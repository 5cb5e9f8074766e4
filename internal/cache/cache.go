// Package cache provides thread-safe generic caching and the rendered
// markdown cache used by the renderer gateway.
package cache

import "sync"

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

var renderedMarkdownCache = NewCache[string, string]()

func GetRenderedMarkdown(contentHash, variant string) (string, bool) {
	return renderedMarkdownCache.Get(contentHash + ":" + variant)
}

func SetRenderedMarkdown(contentHash, variant, html string) {
	renderedMarkdownCache.Set(contentHash+":"+variant, html)
}

func ClearRenderedMarkdownCache() {
	renderedMarkdownCache.Clear()
}

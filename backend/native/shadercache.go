// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"container/list"
	"crypto/sha256"
	"sync"
	"sync/atomic"
)

// shaderCacheCapacity bounds the number of compiled modules kept.
const shaderCacheCapacity = 64

// spirvCache is an LRU of SPIR-V words keyed by the digest of the WGSL
// source. Scenes recreated on device loss or between demo runs compile the
// same sources again; naga is the slowest step of scene construction.
type spirvCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[[sha256.Size]byte]*list.Element
	lru      *list.List

	hits   atomic.Uint64
	misses atomic.Uint64
}

type spirvEntry struct {
	key   [sha256.Size]byte
	words []uint32
}

func newSPIRVCache(capacity int) *spirvCache {
	return &spirvCache{
		capacity: capacity,
		entries:  make(map[[sha256.Size]byte]*list.Element),
		lru:      list.New(),
	}
}

// getOrCompile returns the cached words for src, or compiles and stores
// them. Compile errors are not cached.
func (c *spirvCache) getOrCompile(src string, compile func(string) ([]uint32, error)) ([]uint32, error) {
	key := sha256.Sum256([]byte(src))

	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.lru.MoveToFront(el)
		words := el.Value.(*spirvEntry).words
		c.mu.Unlock()
		c.hits.Add(1)
		return words, nil
	}
	c.mu.Unlock()
	c.misses.Add(1)

	// Compile without the lock; a concurrent miss on the same source
	// compiles twice and the later store wins.
	words, err := compile(src)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.lru.MoveToFront(el)
		return el.Value.(*spirvEntry).words, nil
	}
	for c.lru.Len() >= c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*spirvEntry).key)
	}
	c.entries[key] = c.lru.PushFront(&spirvEntry{key: key, words: words})
	return words, nil
}

func (c *spirvCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

var shaderCache = newSPIRVCache(shaderCacheCapacity)

// ShaderCacheStats reports hits and misses of the compiled shader cache.
func ShaderCacheStats() (hits, misses uint64) {
	return shaderCache.hits.Load(), shaderCache.misses.Load()
}

package storage

import (
	"os"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shed-tools/shed/codec"
)

type cachedObject struct {
	modTime time.Time
	size    int64
	obj     *codec.Object
}

// ObjectCache keeps decoded objects keyed by file path, so repeated loads of an unchanged
// file skip reading and verifying it again. An entry is only served while the file's
// modification time and size still match. A nil *ObjectCache disables caching.
type ObjectCache struct {
	lru *expirable.LRU[string, cachedObject]
}

// NewObjectCache returns a cache holding at most size objects for at most ttl each (zero ttl
// means no expiry). It returns nil when size is not positive.
func NewObjectCache(size int, ttl time.Duration) *ObjectCache {
	if size <= 0 {
		return nil
	}
	return &ObjectCache{
		lru: expirable.NewLRU[string, cachedObject](size, nil, ttl),
	}
}

// Len returns the number of cached objects.
func (c *ObjectCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

func (c *ObjectCache) get(path string, info os.FileInfo) (*codec.Object, bool) {
	if c == nil {
		return nil, false
	}

	entry, ok := c.lru.Get(path)
	if !ok {
		return nil, false
	}

	if !entry.modTime.Equal(info.ModTime()) || entry.size != info.Size() {
		c.lru.Remove(path)
		return nil, false
	}

	return entry.obj, true
}

func (c *ObjectCache) add(path string, info os.FileInfo, obj *codec.Object) {
	if c == nil {
		return
	}
	c.lru.Add(path, cachedObject{modTime: info.ModTime(), size: info.Size(), obj: obj})
}

func (c *ObjectCache) remove(path string) {
	if c == nil {
		return
	}
	c.lru.Remove(path)
}

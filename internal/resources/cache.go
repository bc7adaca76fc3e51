// Package resources implements a keyed resource cache: a (type, filename)
// → resource table backed by pluggable per-type loaders, fatal on a miss
// with no handler or a failing loader, with references stable for the
// life of the process.
package resources

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/barhaim/arkgo/internal/corelog"
)

// Loader loads the resource named by path (already joined with the
// type's subfolder) and returns it, or an error if it couldn't be loaded.
type Loader func(path string) (interface{}, error)

// Handler binds a component/resource type to the subfolder it lives
// under and the function that loads one instance of it.
type Handler struct {
	Subfolder string
	Load      Loader
}

type cacheKey struct {
	rtype reflect.Type
	name  string
}

// Cache is the process-wide resource table. Root is the resources
// directory files are resolved under, following a
// "<resources>/<subfolder>/<filename>" layout.
type Cache struct {
	mu       sync.RWMutex
	root     string
	handlers map[reflect.Type]Handler
	entries  map[cacheKey]interface{}
}

// NewCache creates an empty cache rooted at root.
func NewCache(root string) *Cache {
	return &Cache{
		root:     root,
		handlers: make(map[reflect.Type]Handler),
		entries:  make(map[cacheKey]interface{}),
	}
}

// Register binds type T to h, so future Get[T] calls know where and how
// to load a miss.
func Register[T any](c *Cache, h Handler) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[rt] = h
}

// Get returns the cached resource of type T named filename, loading it
// on first request. A missing handler or a loader error is fatal;
// resources are assumed present at deploy time, not optional.
func Get[T any](c *Cache, filename string) (T, bool) {
	var zero T
	rt := reflect.TypeOf((*T)(nil)).Elem()
	key := cacheKey{rtype: rt, name: filename}

	c.mu.RLock()
	if v, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return v.(T), true
	}
	h, ok := c.handlers[rt]
	c.mu.RUnlock()

	if !ok {
		corelog.Fatal(corelog.CategoryResource, "no loader registered for type %s", rt)
		return zero, false
	}

	// The loader runs without the lock held, so loads of different keys
	// proceed concurrently; if two callers race on one key, the first value
	// stored wins and both get it.
	path := filepath.Join(c.root, h.Subfolder, filename)
	v, err := h.Load(path)
	if err != nil {
		corelog.Fatal(corelog.CategoryResource, "failed to load %s: %v", path, err)
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing.(T), true
	}
	c.entries[key] = v
	return v.(T), true
}

// preloadKey names one (type, filename) pair. Preload does not use it:
// the work it fans out is whatever its load callback schedules.
type preloadKey struct {
	rtype    reflect.Type
	filename string
}

// Preload calls load with an errgroup so it can schedule concurrent loads
// (see PreloadOne), waits for every scheduled call to finish, and returns
// the first error any of them reported. It exists for startup scenes
// that want every texture/sound resident before the first frame instead
// of paying load latency lazily mid-gameplay.
func Preload(ctx context.Context, c *Cache, load func(g *errgroup.Group)) error {
	g, _ := errgroup.WithContext(ctx)
	load(g)
	return g.Wait()
}

// PreloadOne is a convenience for the common case: schedule one Get[T]
// call inside an errgroup started by Preload.
func PreloadOne[T any](g *errgroup.Group, c *Cache, filename string) {
	g.Go(func() error {
		if _, ok := Get[T](c, filename); !ok {
			return fmt.Errorf("preload: failed to load %s", filename)
		}
		return nil
	})
}

package siteapi

import (
	"sync"
	"time"
)

// ContentCache is an in-memory cache of published projects and blog posts
// with TTL. Public reads go through it; every successful admin mutation
// calls Invalidate.
type ContentCache struct {
	mu       sync.RWMutex
	projects []Project
	posts    []BlogPost
	fetched  time.Time
	ttl      time.Duration
	store    *Store
}

// NewContentCache creates a ContentCache backed by the given Store.
func NewContentCache(s *Store, ttl time.Duration) *ContentCache {
	return &ContentCache{store: s, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	return c.projects != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.projects = nil
	c.posts = nil
	c.mu.Unlock()
}

func (c *ContentCache) load() error {
	if c.valid() {
		return nil
	}
	projects, err := c.store.ListProjects()
	if err != nil {
		return err
	}
	posts, err := c.store.ListBlogPosts()
	if err != nil {
		return err
	}
	c.projects = projects
	c.posts = posts
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached content after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ContentCache) ensureLoaded() ([]Project, []BlogPost, error) {
	c.mu.RLock()
	if c.valid() {
		projects, posts := c.projects, c.posts
		c.mu.RUnlock()
		return projects, posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.projects, c.posts, nil
}

// ListProjects returns published projects.
func (c *ContentCache) ListProjects() ([]Project, error) {
	projects, _, err := c.ensureLoaded()
	return projects, err
}

// ListBlogPosts returns published blog posts.
func (c *ContentCache) ListBlogPosts() ([]BlogPost, error) {
	_, posts, err := c.ensureLoaded()
	return posts, err
}

// GetProject returns a single published project by slug.
func (c *ContentCache) GetProject(slug string) (Project, error) {
	projects, _, err := c.ensureLoaded()
	if err != nil {
		return Project{}, err
	}
	for _, p := range projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Project{}, ErrNotFound
}

// GetBlogPost returns a single published post by slug.
func (c *ContentCache) GetBlogPost(slug string) (BlogPost, error) {
	_, posts, err := c.ensureLoaded()
	if err != nil {
		return BlogPost{}, err
	}
	for _, b := range posts {
		if b.Slug == slug {
			return b, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

package siteapi

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// timeLayout is RFC 3339 with zero-padded nanoseconds so stored timestamps
// sort correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps a SQLite database and provides the persistence operations for
// contact submissions, projects and blog posts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates missing tables.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent readers during writes, busy timeout so writers
	// wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS contact_submissions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    message TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    summary TEXT,
    description TEXT,
    image_url TEXT,
    link_url TEXT,
    status TEXT NOT NULL DEFAULT 'draft',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS blog_posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    excerpt TEXT,
    content TEXT NOT NULL,
    cover_image_url TEXT,
    status TEXT NOT NULL DEFAULT 'draft',
    published_at TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	return err
}

// isUniqueViolation reports whether err is the SQLite unique-constraint
// failure raised by the slug indexes.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func toPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// --- Contact submissions ---

// CreateContact persists a contact submission and returns it with its
// generated id and timestamp.
func (s *Store) CreateContact(c ContactSubmission) (ContactSubmission, error) {
	c.CreatedAt = time.Now().UTC()
	res, err := s.db.Exec(
		`INSERT INTO contact_submissions (full_name, email, phone, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.FullName, c.Email, c.Phone, c.Message, formatTime(c.CreatedAt),
	)
	if err != nil {
		return ContactSubmission{}, err
	}
	c.ID, err = res.LastInsertId()
	return c, err
}

// CountContacts returns the number of stored submissions.
func (s *Store) CountContacts() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM contact_submissions`).Scan(&n)
	return n, err
}

// --- Projects ---

const projectColumns = `id, title, slug, summary, description, image_url, link_url, status, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (Project, error) {
	var p Project
	var summary, description, imageURL, linkURL sql.NullString
	var status, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &summary, &description, &imageURL, &linkURL, &status, &createdAt, &updatedAt)
	if err != nil {
		return Project{}, err
	}
	p.Summary = toPtr(summary)
	p.Description = toPtr(description)
	p.ImageURL = toPtr(imageURL)
	p.LinkURL = toPtr(linkURL)
	p.Status = Status(status)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

// CreateProject inserts a new project. A slug collision returns ErrSlugTaken.
func (s *Store) CreateProject(title, slug string, summary, description, imageURL, linkURL *string, status Status) (Project, error) {
	now := formatTime(time.Now())
	res, err := s.db.Exec(
		`INSERT INTO projects (title, slug, summary, description, image_url, link_url, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		title, slug, nullable(summary), nullable(description), nullable(imageURL), nullable(linkURL), string(status), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Project{}, fmt.Errorf("project slug %q: %w", slug, ErrSlugTaken)
		}
		return Project{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Project{}, err
	}
	return s.GetProjectByID(id)
}

// GetProjectByID returns a project regardless of status (for admin flows).
func (s *Store) GetProjectByID(id int64) (Project, error) {
	p, err := scanProject(s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

// GetProjectBySlug returns a published project. Drafts are not found on
// this path, even when the slug matches.
func (s *Store) GetProjectBySlug(slug string) (Project, error) {
	p, err := scanProject(s.db.QueryRow(
		`SELECT `+projectColumns+` FROM projects WHERE slug = ? AND status = ?`, slug, string(StatusPublished)))
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

// ListProjects returns published projects, newest first.
func (s *Store) ListProjects() ([]Project, error) {
	return s.queryProjects(`SELECT `+projectColumns+` FROM projects WHERE status = ? ORDER BY created_at DESC, id DESC`, string(StatusPublished))
}

// ListAllProjects returns every project regardless of status, newest first.
func (s *Store) ListAllProjects() ([]Project, error) {
	return s.queryProjects(`SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`)
}

func (s *Store) queryProjects(query string, args ...any) ([]Project, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject applies a partial update. Nil patch fields keep their stored
// value; updated_at always refreshes.
func (s *Store) UpdateProject(id int64, patch ProjectPatch) (Project, error) {
	sets := []string{"updated_at = ?"}
	args := []any{formatTime(time.Now())}
	addSet := func(column string, v *string) {
		if v != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *v)
		}
	}
	addSet("title", patch.Title)
	addSet("slug", patch.Slug)
	addSet("summary", patch.Summary)
	addSet("description", patch.Description)
	addSet("image_url", patch.ImageURL)
	addSet("link_url", patch.LinkURL)
	addSet("status", patch.Status)

	args = append(args, id)
	res, err := s.db.Exec(`UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return Project{}, fmt.Errorf("project %d: %w", id, ErrSlugTaken)
		}
		return Project{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Project{}, err
	}
	if n == 0 {
		return Project{}, ErrNotFound
	}
	return s.GetProjectByID(id)
}

// DeleteProject removes a project by id.
func (s *Store) DeleteProject(id int64) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Blog posts ---

const blogColumns = `id, title, slug, excerpt, content, cover_image_url, status, published_at, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }) (BlogPost, error) {
	var b BlogPost
	var excerpt, coverImageURL, publishedAt sql.NullString
	var status, createdAt, updatedAt string
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &excerpt, &b.Content, &coverImageURL, &status, &publishedAt, &createdAt, &updatedAt)
	if err != nil {
		return BlogPost{}, err
	}
	b.Excerpt = toPtr(excerpt)
	b.CoverImageURL = toPtr(coverImageURL)
	b.PublishedAt = toPtr(publishedAt)
	b.Status = Status(status)
	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)
	return b, nil
}

// CreateBlogPost inserts a new post. A slug collision returns ErrSlugTaken.
func (s *Store) CreateBlogPost(title, slug, content string, excerpt, coverImageURL, publishedAt *string, status Status) (BlogPost, error) {
	now := formatTime(time.Now())
	res, err := s.db.Exec(
		`INSERT INTO blog_posts (title, slug, excerpt, content, cover_image_url, status, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		title, slug, nullable(excerpt), content, nullable(coverImageURL), string(status), nullable(publishedAt), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return BlogPost{}, fmt.Errorf("blog post slug %q: %w", slug, ErrSlugTaken)
		}
		return BlogPost{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return BlogPost{}, err
	}
	return s.GetBlogPostByID(id)
}

// GetBlogPostByID returns a post regardless of status (for admin flows).
func (s *Store) GetBlogPostByID(id int64) (BlogPost, error) {
	b, err := scanBlogPost(s.db.QueryRow(`SELECT `+blogColumns+` FROM blog_posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return BlogPost{}, ErrNotFound
	}
	return b, err
}

// GetBlogPostBySlug returns a published post by slug.
func (s *Store) GetBlogPostBySlug(slug string) (BlogPost, error) {
	b, err := scanBlogPost(s.db.QueryRow(
		`SELECT `+blogColumns+` FROM blog_posts WHERE slug = ? AND status = ?`, slug, string(StatusPublished)))
	if errors.Is(err, sql.ErrNoRows) {
		return BlogPost{}, ErrNotFound
	}
	return b, err
}

// ListBlogPosts returns published posts ordered by publication date when
// set, creation date otherwise, newest first.
func (s *Store) ListBlogPosts() ([]BlogPost, error) {
	return s.queryBlogPosts(`SELECT `+blogColumns+` FROM blog_posts WHERE status = ? ORDER BY COALESCE(published_at, created_at) DESC, id DESC`, string(StatusPublished))
}

// ListAllBlogPosts returns every post regardless of status, same ordering.
func (s *Store) ListAllBlogPosts() ([]BlogPost, error) {
	return s.queryBlogPosts(`SELECT ` + blogColumns + ` FROM blog_posts ORDER BY COALESCE(published_at, created_at) DESC, id DESC`)
}

func (s *Store) queryBlogPosts(query string, args ...any) ([]BlogPost, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []BlogPost{}
	for rows.Next() {
		b, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, b)
	}
	return posts, rows.Err()
}

// UpdateBlogPost applies a partial update, same semantics as UpdateProject.
func (s *Store) UpdateBlogPost(id int64, patch BlogPostPatch) (BlogPost, error) {
	sets := []string{"updated_at = ?"}
	args := []any{formatTime(time.Now())}
	addSet := func(column string, v *string) {
		if v != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *v)
		}
	}
	addSet("title", patch.Title)
	addSet("slug", patch.Slug)
	addSet("excerpt", patch.Excerpt)
	addSet("content", patch.Content)
	addSet("cover_image_url", patch.CoverImageURL)
	addSet("status", patch.Status)
	addSet("published_at", patch.PublishedAt)

	args = append(args, id)
	res, err := s.db.Exec(`UPDATE blog_posts SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return BlogPost{}, fmt.Errorf("blog post %d: %w", id, ErrSlugTaken)
		}
		return BlogPost{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return BlogPost{}, err
	}
	if n == 0 {
		return BlogPost{}, ErrNotFound
	}
	return s.GetBlogPostByID(id)
}

// DeleteBlogPost removes a post by id.
func (s *Store) DeleteBlogPost(id int64) error {
	res, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

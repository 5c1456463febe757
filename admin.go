package siteapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// paramID parses the numeric :id route parameter.
func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// resolveStatus validates an optional caller-supplied status, defaulting to
// draft when absent.
func resolveStatus(s *string) (Status, error) {
	if s == nil {
		return StatusDraft, nil
	}
	return ParseStatus(*s)
}

// validateStatus checks a patch's status field without applying a default.
func validateStatus(s *string) error {
	if s == nil {
		return nil
	}
	_, err := ParseStatus(*s)
	return err
}

// --- Projects ---

func (a *App) handleAdminListProjects(c echo.Context) error {
	projects, err := a.store.ListAllProjects()
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, projects)
}

func (a *App) handleCreateProject(c echo.Context) error {
	var req ProjectInput
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	status, err := resolveStatus(req.Status)
	if err != nil {
		return err
	}
	project, err := a.store.CreateProject(req.Title, req.Slug, req.Summary, req.Description, req.ImageURL, req.LinkURL, status)
	if err != nil {
		return err
	}
	a.cache.Invalidate()
	return respond(c, http.StatusCreated, project)
}

func (a *App) handleUpdateProject(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var patch ProjectPatch
	if err := c.Bind(&patch); err != nil {
		return err
	}
	if err := validateStatus(patch.Status); err != nil {
		return err
	}
	project, err := a.store.UpdateProject(id, patch)
	if err != nil {
		return err
	}
	a.cache.Invalidate()
	return respond(c, http.StatusOK, project)
}

func (a *App) handleDeleteProject(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := a.store.DeleteProject(id); err != nil {
		return err
	}
	a.cache.Invalidate()
	return respondOK(c)
}

// --- Blog posts ---

func (a *App) handleAdminListBlogPosts(c echo.Context) error {
	posts, err := a.store.ListAllBlogPosts()
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, posts)
}

func (a *App) handleCreateBlogPost(c echo.Context) error {
	var req BlogPostInput
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	status, err := resolveStatus(req.Status)
	if err != nil {
		return err
	}
	post, err := a.store.CreateBlogPost(req.Title, req.Slug, req.Content, req.Excerpt, req.CoverImageURL, req.PublishedAt, status)
	if err != nil {
		return err
	}
	a.cache.Invalidate()
	return respond(c, http.StatusCreated, post)
}

func (a *App) handleUpdateBlogPost(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var patch BlogPostPatch
	if err := c.Bind(&patch); err != nil {
		return err
	}
	if err := validateStatus(patch.Status); err != nil {
		return err
	}
	post, err := a.store.UpdateBlogPost(id, patch)
	if err != nil {
		return err
	}
	a.cache.Invalidate()
	return respond(c, http.StatusOK, post)
}

func (a *App) handleDeleteBlogPost(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := a.store.DeleteBlogPost(id); err != nil {
		return err
	}
	a.cache.Invalidate()
	return respondOK(c)
}

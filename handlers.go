package siteapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleContact persists a submission, replies success, and notifies the
// operator in the background. Persistence is the source of truth; a failed
// email is logged, never surfaced to the caller.
func (a *App) handleContact(c echo.Context) error {
	if !a.limiter.Allow(c.RealIP()) {
		return errTooManyRequests
	}
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if _, err := a.store.CreateContact(ContactSubmission{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
	}); err != nil {
		return err
	}
	a.notifyAsync(ContactMessage{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
	})
	return respondOK(c)
}

func (a *App) handleListProjects(c echo.Context) error {
	projects, err := a.cache.ListProjects()
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, projects)
}

func (a *App) handleGetProject(c echo.Context) error {
	project, err := a.cache.GetProject(c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, project)
}

func (a *App) handleListBlogPosts(c echo.Context) error {
	posts, err := a.cache.ListBlogPosts()
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, posts)
}

func (a *App) handleGetBlogPost(c echo.Context) error {
	post, err := a.cache.GetBlogPost(c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

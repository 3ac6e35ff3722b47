package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/askboard/internal/domain"
	"github.com/nfrund/askboard/internal/middleware"
	"github.com/nfrund/askboard/internal/pagecache"
	"github.com/nfrund/askboard/internal/profile"
	"github.com/nfrund/askboard/internal/rendering"
	"github.com/nfrund/askboard/internal/view"
	"github.com/nfrund/askboard/web/src/templates/layouts"
	"github.com/nfrund/askboard/web/src/templates/pages"
)

// ProfileContentPath serves the cached profile form fragment.
const ProfileContentPath = profile.Route + "/content"

// ProfileService is the part of profile.Service the handler uses.
type ProfileService interface {
	Get(ctx context.Context, session *domain.Session) (*domain.Profile, error)
	Update(ctx context.Context, session *domain.Session, patch domain.ProfilePatch) profile.Result
}

// ProfileHandler serves the profile page and applies profile updates.
type ProfileHandler struct {
	service  ProfileService
	cache    *pagecache.Cache
	renderer rendering.Renderer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service ProfileService, cache *pagecache.Cache, renderer rendering.Renderer) *ProfileHandler {
	return &ProfileHandler{service: service, cache: cache, renderer: renderer}
}

// Page renders the profile page shell (GET /dashboard/profile). The form is
// loaded by htmx from ProfileContentPath while a skeleton is shown.
func (h *ProfileHandler) Page(c echo.Context) error {
	page := layouts.Page(layouts.TitleFromPath(profile.Route), view.GetFlashData(c), true, pages.ProfileShell(ProfileContentPath))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// Content renders the profile form fragment (GET /dashboard/profile/content).
// Fragments are cached per user until the route is invalidated.
func (h *ProfileHandler) Content(c echo.Context) error {
	session := middleware.SessionFrom(c)
	if session == nil {
		return middleware.RedirectToLogin(c)
	}
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	if body, ok := h.cache.Get(profile.Route, session.UserID); ok {
		return c.HTMLBlob(http.StatusOK, body)
	}
	gen := h.cache.Generation(profile.Route)

	p, err := h.service.Get(ctx, session)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Signed-in user has no profile record", "event", "profile_missing", "user_id", session.UserID)
		return h.renderer.RenderPage(c, http.StatusOK, pages.ProfileMissing())
	}
	if err != nil {
		return err
	}

	body, err := h.renderer.RenderComponent(ctx, pages.ProfileForm(session.Email, p, profile.Route))
	if err != nil {
		return err
	}
	if !h.cache.SetIfGeneration(profile.Route, session.UserID, gen, body) {
		logger.Debug("Profile fragment not cached, route invalidated during render",
			"event", "pagecache_set_skipped", "user_id", session.UserID)
	}
	return c.HTMLBlob(http.StatusOK, body)
}

// Update applies a profile patch (POST /dashboard/profile). A form field or
// JSON key that is absent leaves the stored value unchanged.
func (h *ProfileHandler) Update(c echo.Context) error {
	patch, err := bindPatch(c)
	if err != nil {
		return err
	}

	res := h.service.Update(c.Request().Context(), middleware.SessionFrom(c), patch)
	wantsJSON := isJSON(c)

	switch res.Kind {
	case profile.KindUnauthenticated:
		return middleware.RedirectToLogin(c)
	case profile.KindError:
		if wantsJSON {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "persistence_error", Message: res.Message})
		}
		view.SetFlashError(c, res.Message)
		return c.Redirect(http.StatusSeeOther, profile.Route)
	default:
		if wantsJSON {
			return c.JSON(http.StatusOK, UpdateProfileResponse{Status: "ok", Profile: NewProfileResponse(res.Profile)})
		}
		view.SetFlashSuccess(c, "Profile updated.")
		return c.Redirect(http.StatusSeeOther, profile.Route)
	}
}

// bindPatch reads the patch from a JSON body or a form. Presence, not
// emptiness, decides whether a field is part of the patch. A form field
// repeated in the body (bio=a&bio=b) contributes its first value only.
func bindPatch(c echo.Context) (domain.ProfilePatch, error) {
	if isJSON(c) {
		var req UpdateProfileRequest
		if err := c.Bind(&req); err != nil {
			return domain.ProfilePatch{}, echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
		}
		return req.Patch(), nil
	}

	if err := c.Request().ParseForm(); err != nil {
		return domain.ProfilePatch{}, echo.NewHTTPError(http.StatusBadRequest, "invalid form body")
	}
	form := c.Request().PostForm
	var patch domain.ProfilePatch
	if v, ok := form["display_name"]; ok && len(v) > 0 {
		patch.DisplayName = &v[0]
	}
	if v, ok := form["bio"]; ok && len(v) > 0 {
		patch.Bio = &v[0]
	}
	return patch, nil
}

func isJSON(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

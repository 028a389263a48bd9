package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/crucial707/bloglet/internal/middleware"
	"github.com/crucial707/bloglet/internal/models"
	"github.com/crucial707/bloglet/internal/repo"
	"github.com/go-chi/chi/v5"
)

// ==========================
// BlogHandler
// ==========================
type BlogHandler struct {
	Posts *repo.PostRepo
}

// ==========================
// Index (public listing, newest first)
// ==========================
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.ListWithAuthors(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}

	renderTemplate(w, "index.html", pageData(r, map[string]interface{}{
		"Posts": posts,
	}))
}

// ==========================
// Create Post
// ==========================

func (h *BlogHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "create.html", pageData(r, nil))
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		// The gate rejects anonymous callers before this handler runs.
		http.Redirect(w, r, "/auth/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	body := r.FormValue("body")

	if title == "" {
		renderTemplate(w, "create.html", pageData(r, map[string]interface{}{
			"Error": "Title is required.",
			"Body":  body,
		}))
		return
	}

	if _, err := h.Posts.Create(r.Context(), title, body, user.ID); err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Update Post (owner only)
// ==========================

func (h *BlogHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.fetchPost(w, r, true)
	if !ok {
		return
	}

	renderTemplate(w, "update.html", pageData(r, map[string]interface{}{
		"Post": post,
	}))
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	post, ok := h.fetchPost(w, r, true)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	body := r.FormValue("body")

	if title == "" {
		renderTemplate(w, "update.html", pageData(r, map[string]interface{}{
			"Error": "Title is required.",
			"Post":  post,
		}))
		return
	}

	// Only title and body change; created and author_id are immutable.
	if err := h.Posts.Update(r.Context(), post.ID, title, body); err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Delete Post (owner only)
// ==========================
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	post, ok := h.fetchPost(w, r, true)
	if !ok {
		return
	}

	if err := h.Posts.Delete(r.Context(), post.ID); err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// fetchPost loads the post named by the {id} route parameter and writes a
// 404 or 403 when it is missing or owned by someone else. checkAuthor is off
// for callers that only read the post, e.g. a single-post view.
func (h *BlogHandler) fetchPost(w http.ResponseWriter, r *http.Request, checkAuthor bool) (models.Post, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return models.Post{}, false
	}

	post, err := h.Posts.GetWithAuthor(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Post id %d doesn't exist.", id), http.StatusNotFound)
			return models.Post{}, false
		}
		serverError(w, r, err)
		return models.Post{}, false
	}

	if checkAuthor {
		user, ok := middleware.UserFrom(r.Context())
		if !ok || post.AuthorID != user.ID {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return models.Post{}, false
		}
	}

	return post, true
}

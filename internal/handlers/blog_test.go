package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/bloglet/internal/middleware"
	"github.com/crucial707/bloglet/internal/models"
	"github.com/crucial707/bloglet/internal/repo"
	"github.com/go-chi/chi/v5"
)

// newBlogRouter mounts the post routes the way the server does, with the
// given user pre-resolved into the request context.
func newBlogRouter(db *sql.DB, user *models.User) http.Handler {
	h := &BlogHandler{Posts: repo.NewPostRepo(db)}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if user != nil {
				req = req.WithContext(middleware.WithUser(req.Context(), user))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/", h.Index)
	r.Get("/create", h.CreateForm)
	r.Post("/create", h.Create)
	r.Get("/{id}/update", h.UpdateForm)
	r.Post("/{id}/update", h.Update)
	r.Post("/{id}/delete", h.Delete)
	return r
}

var postJoinColumns = []string{"id", "title", "body", "created", "author_id", "username"}

func TestBlogHandler_Index(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT p.id, p.title, p.body, p.created, p.author_id, u.username`).
		WillReturnRows(sqlmock.NewRows(postJoinColumns).
			AddRow(2, "Hello again", "b2", now, 1, "alice").
			AddRow(1, "Hello", "b1", now.Add(-time.Hour), 2, "bob"))

	router := newBlogRouter(db, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Index status: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Hello again") || !strings.Contains(body, "by alice") {
		t.Errorf("index missing post content: %q", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO posts \(title, body, author_id\)`).
		WithArgs("First post", "Some text", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "created", "author_id"}).
			AddRow(1, "First post", "Some text", time.Now(), 1))

	router := newBlogRouter(db, &models.User{ID: 1, Username: "alice"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/create", url.Values{"title": {"First post"}, "body": {"Some text"}}))

	if rr.Code != http.StatusFound {
		t.Fatalf("Create status: got %d, want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Errorf("Create redirect: got %q, want /", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Create_MissingTitle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	router := newBlogRouter(db, &models.User{ID: 1, Username: "alice"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/create", url.Values{"title": {""}, "body": {"Some text"}}))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Title is required.") {
		t.Errorf("missing title: status %d body %q", rr.Code, rr.Body.String())
	}
	// Nothing is inserted when validation fails.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT p.id, p.title, p.body, p.created, p.author_id, u.username`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(postJoinColumns).
			AddRow(1, "Old title", "Old body", time.Now(), 1, "alice"))
	mock.ExpectExec(`UPDATE posts`).
		WithArgs("New title", "New body", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	router := newBlogRouter(db, &models.User{ID: 1, Username: "alice"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/1/update", url.Values{"title": {"New title"}, "body": {"New body"}}))

	if rr.Code != http.StatusFound {
		t.Fatalf("Update status: got %d, want 302, body %q", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Update_NotOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT p.id, p.title, p.body, p.created, p.author_id, u.username`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(postJoinColumns).
			AddRow(1, "Bob's post", "body", time.Now(), 2, "bob"))

	router := newBlogRouter(db, &models.User{ID: 1, Username: "alice"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/1/update", url.Values{"title": {"Hijack"}, "body": {""}}))

	if rr.Code != http.StatusForbidden {
		t.Errorf("editing another user's post: got %d, want 403", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT p.id, p.title, p.body, p.created, p.author_id, u.username`).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	router := newBlogRouter(db, &models.User{ID: 1, Username: "alice"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/42/update", url.Values{"title": {"New title"}, "body": {""}}))

	if rr.Code != http.StatusNotFound || !strings.Contains(rr.Body.String(), "Post id 42 doesn't exist.") {
		t.Errorf("missing post: status %d body %q", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Update_MissingTitle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT p.id, p.title, p.body, p.created, p.author_id, u.username`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(postJoinColumns).
			AddRow(1, "Old title", "Old body", time.Now(), 1, "alice"))

	router := newBlogRouter(db, &models.User{ID: 1, Username: "alice"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/1/update", url.Values{"title": {""}, "body": {"New body"}}))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Title is required.") {
		t.Errorf("missing title: status %d body %q", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT p.id, p.title, p.body, p.created, p.author_id, u.username`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(postJoinColumns).
			AddRow(1, "Old title", "Old body", time.Now(), 1, "alice"))
	mock.ExpectExec(`DELETE FROM posts`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	router := newBlogRouter(db, &models.User{ID: 1, Username: "alice"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/1/delete", nil))

	if rr.Code != http.StatusFound {
		t.Fatalf("Delete status: got %d, want 302, body %q", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Errorf("Delete redirect: got %q, want /", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Delete_NotOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT p.id, p.title, p.body, p.created, p.author_id, u.username`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(postJoinColumns).
			AddRow(1, "Bob's post", "body", time.Now(), 2, "bob"))

	router := newBlogRouter(db, &models.User{ID: 1, Username: "alice"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/1/delete", nil))

	if rr.Code != http.StatusForbidden {
		t.Errorf("deleting another user's post: got %d, want 403", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_UpdateForm_BadID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	router := newBlogRouter(db, &models.User{ID: 1, Username: "alice"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/abc/update", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("non-numeric id: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

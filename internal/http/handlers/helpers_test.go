package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/depicts-backend/internal/http/middleware"
	"github.com/tbourn/depicts-backend/internal/repo"
	"github.com/tbourn/depicts-backend/internal/services"
)

// ---------- test DB ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func realServices(db *gorm.DB) Services {
	return Services{
		Items:     services.NewItemService(db, nil),
		Languages: services.NewLanguageService(db, repo.Languages{}),
		Users:     &services.UserService{DB: db},
		Edits:     &services.EditService{DB: db},
		Queries:   &services.QueryService{DB: db},
	}
}

// newTestRouter mounts every handler the way the production router does,
// minus the ambient middleware that does not matter here.
func newTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.WikiUser())

	r.POST("/depicts", h.CreateDepicts)
	r.GET("/depicts", h.LookupDepicts)
	r.GET("/depicts/:qid", h.GetDepicts)
	r.PUT("/depicts/:qid", h.UpdateDepicts)
	r.PUT("/depicts/:qid/alt_labels", h.ReplaceAltLabels)
	r.DELETE("/depicts/:qid", h.DeleteDepicts)

	r.POST("/artworks", h.CreateArtwork)
	r.GET("/artworks/:qid", h.GetArtwork)
	r.DELETE("/artworks/:qid", h.DeleteArtwork)
	r.GET("/artworks/:qid/edits", h.ListArtworkEdits)

	r.POST("/humans", h.CreateHuman)
	r.GET("/humans/:qid", h.GetHuman)

	r.POST("/languages", h.CreateLanguage)
	r.GET("/languages", h.ListLanguages)
	r.GET("/languages/:code", h.GetLanguage)

	r.POST("/users", h.EnsureUser)
	r.GET("/users/:username", h.GetUser)
	r.GET("/users/:username/edits", h.ListUserEdits)

	r.POST("/edits", h.RecordEdit)
	r.GET("/edits", h.ListEdits)

	r.GET("/queries", h.ListQueries)
	r.GET("/queries/:id", h.GetQuery)
	return r
}

func newRealRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := newHandlerDB(t)
	return newTestRouter(New(realServices(db), 20)), db
}

// do sends body (marshalled when not nil) and returns the recorder.
func do(r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v; body=%s", v, err, w.Body.String())
	}
	return v
}

func wantError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d; want %d; body=%s", w.Code, status, w.Body.String())
	}
	if er := decode[ErrorResponse](t, w); er.Code != code {
		t.Fatalf("code = %q; want %q", er.Code, code)
	}
}

func intPtr(v int) *int { return &v }

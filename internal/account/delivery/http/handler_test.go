package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenmart/storefront/internal/account/repository"
	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"
	catalogrepo "github.com/greenmart/storefront/internal/catalog/repository"
	"github.com/greenmart/storefront/pkg/session"
)

type fixture struct {
	router *mux.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	catalog := catalogrepo.NewGormCatalogRepository(db)
	require.NoError(t, catalog.AutoMigrate())
	users := repository.NewGormUserRepository(db)
	require.NoError(t, users.AutoMigrate())

	for _, name := range []string{"Fruits", "Vegetables"} {
		require.NoError(t, db.Create(&catalogdomain.Category{Name: name}).Error)
	}

	sessions := session.NewManager(session.NewMemoryStore(), []byte("test-secret"), time.Hour)

	router := mux.NewRouter()
	NewAccountHandler(users, catalog, sessions).RegisterRoutes(router)
	return &fixture{router: router}
}

func (f *fixture) do(t *testing.T, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type pageView struct {
	Page       string `json:"page"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Flashes []string `json:"flashes"`
}

func TestPagesCarryCategories(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		path string
		page string
	}{
		{"/", "login"},
		{"/register", "register"},
	}
	for _, tt := range tests {
		rec := f.do(t, http.MethodGet, tt.path, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var view pageView
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
		assert.Equal(t, tt.page, view.Page)
		require.Len(t, view.Categories, 2, "path %q", tt.path)
		assert.Equal(t, "Fruits", view.Categories[0].Name)
	}
}

func TestRegisterSuccessRedirectsToLogin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/register", url.Values{
		"email":    {"alice@example.com"},
		"password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = f.do(t, http.MethodGet, "/", nil, rec.Result().Cookies())
	require.Equal(t, http.StatusOK, rec.Code)

	var view pageView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, []string{"Registration successful!"}, view.Flashes)
}

func TestRegisterInvalidInputFlashesReadableMessage(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/register", url.Values{
		"email":    {"not-an-email"},
		"password": {"abc"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/register", rec.Header().Get("Location"))

	rec = f.do(t, http.MethodGet, "/register", nil, rec.Result().Cookies())
	require.Equal(t, http.StatusOK, rec.Code)

	var view pageView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	require.Len(t, view.Flashes, 1)
	assert.Equal(t, "Please enter a valid email and a password of at least 6 characters", view.Flashes[0])
	assert.NotContains(t, view.Flashes[0], "Field validation")
}

func TestRegisterDuplicateEmailFlash(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"email": {"bob@example.com"}, "password": {"secret123"}}
	rec := f.do(t, http.MethodPost, "/register", form, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = f.do(t, http.MethodPost, "/register", form, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/register", rec.Header().Get("Location"))

	rec = f.do(t, http.MethodGet, "/register", nil, rec.Result().Cookies())
	require.Equal(t, http.StatusOK, rec.Code)

	var view pageView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, []string{"Email already exists!"}, view.Flashes)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)

	// Unauthenticated: bounced to the login page.
	rec := f.do(t, http.MethodGet, "/dashboard/", nil, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = f.do(t, http.MethodPost, "/register", url.Values{
		"email":    {"carol@example.com"},
		"password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = f.do(t, http.MethodPost, "/", url.Values{
		"email":    {"carol@example.com"},
		"password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()

	rec = f.do(t, http.MethodGet, "/dashboard/", nil, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/home/", rec.Header().Get("Location"))
}

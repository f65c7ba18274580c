package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"headphone_store_server/internal/models"
	"headphone_store_server/internal/services"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func newBrandRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Brand{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := NewBrandHandler(services.NewBrandService(db), logger)

	r := gin.New()
	brands := r.Group("/brands")
	{
		brands.GET("", h.ListBrands)
		brands.GET("/:slug", h.GetBrandBySlug)
		brands.POST("/create", h.CreateBrand)
		brands.POST("/create-bulk", h.CreateBrandsBulk)
		brands.PUT("/update/:id", h.UpdateBrand)
		brands.DELETE("/delete/:id", h.DeleteBrand)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBrand_ThenFetchBySlug(t *testing.T) {
	r := newBrandRouter(t)

	w := doJSON(t, r, http.MethodPost, "/brands/create", `{"name": "Tai Nghe Đỉnh"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/brands/tai-nghe-dinh", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var out struct {
		Brand models.Brand `json:"brand"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Brand.Name != "Tai Nghe Đỉnh" {
		t.Fatalf("name = %q", out.Brand.Name)
	}
}

func TestCreateBrand_DuplicateIsBadRequest(t *testing.T) {
	r := newBrandRouter(t)

	doJSON(t, r, http.MethodPost, "/brands/create", `{"name": "Sony"}`)
	w := doJSON(t, r, http.MethodPost, "/brands/create", `{"name": "Sony"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d", w.Code)
	}
}

func TestCreateBrand_MissingNameIsBadRequest(t *testing.T) {
	r := newBrandRouter(t)

	w := doJSON(t, r, http.MethodPost, "/brands/create", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetBrandBySlug_NotFound(t *testing.T) {
	r := newBrandRouter(t)

	w := doJSON(t, r, http.MethodGet, "/brands/khong-co", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCreateBrandsBulk_ReportsPartialErrors(t *testing.T) {
	r := newBrandRouter(t)

	w := doJSON(t, r, http.MethodPost, "/brands/create-bulk",
		`{"items": [{"name": "JBL"}, {"name": "Bose"}, {"name": "JBL"}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var out struct {
		Created []models.Brand `json:"created"`
		Errors  []string       `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Created) != 2 {
		t.Fatalf("created %d brands", len(out.Created))
	}
	if len(out.Errors) != 1 {
		t.Fatalf("errors = %v", out.Errors)
	}
}

func TestUpdateBrand_UnknownIDNotFound(t *testing.T) {
	r := newBrandRouter(t)

	w := doJSON(t, r, http.MethodPut, "/brands/update/nope", `{"name": "Mới"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"petcontest_system/internal/domain"
	"petcontest_system/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

// newTestDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps all access serialized on SQLite's side.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Pet{}, &domain.ContestPhoto{}))
	return db
}

// newTestRouter wires the API exactly as cmd/server does, with caching
// disabled (nil Redis client) and uploads under a temp directory.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	uploadDir := t.TempDir()

	r := gin.New()

	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", RegisterHandler(db))
	authGroup.POST("/login", LoginHandler(db, testJWTSecret))
	authGroup.POST("/change-password", ChangePasswordHandler(db))
	authGroup.POST("/reset-password", ResetPasswordHandler(db, nil))

	r.GET("/api/pets", ListPetsHandler(db, nil))
	r.POST("/api/pets", CreatePetHandler(db, nil))
	r.GET("/api/users", ListUsersHandler(db))

	concursoGroup := r.Group("/api/concurso")
	concursoGroup.Use(middleware.JWTAuthMiddleware(testJWTSecret))
	concursoGroup.POST("/enviar", SubmitPhotoHandler(db, nil, uploadDir))
	concursoGroup.GET("/fotos", ListPhotosHandler(db, nil))
	concursoGroup.POST("/votar/:id", VotePhotoHandler(db, nil))
	concursoGroup.DELETE("/deletar/:id", DeletePhotoHandler(db, nil, uploadDir))

	return r, db, uploadDir
}

// doJSON performs a request with a JSON body and returns the recorder
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doJSONWithToken performs a bodyless request carrying a Bearer session token
func doJSONWithToken(t *testing.T, r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "response body: %s", w.Body.String())
	return out
}

// registerUser registers a user through the API and returns its ID
func registerUser(t *testing.T, r *gin.Engine, name, email, password string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", email, w.Body.String())
	body := decodeBody(t, w)
	user := body["user"].(map[string]any)
	return uint(user["id"].(float64))
}

// loginUser logs in through the API and returns the session token
func loginUser(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", email, w.Body.String())
	body := decodeBody(t, w)
	return body["token"].(string)
}

// createPet registers a pet through the API and returns its ID
func createPet(t *testing.T, r *gin.Engine, name string, ownerID uint) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/pets", gin.H{
		"nome":       name,
		"raca":       "SRD",
		"birth_date": "2020-05-01",
		"especie":    "dog",
		"owner_id":   ownerID,
	})
	require.Equal(t, http.StatusCreated, w.Code, "create pet: %s", w.Body.String())
	body := decodeBody(t, w)
	pet := body["pet"].(map[string]any)
	return uint(pet["id"].(float64))
}

// submitPhoto performs a multipart contest submission. An empty token sends
// the legacy email-only request, otherwise a Bearer header is attached.
func submitPhoto(t *testing.T, r *gin.Engine, petID, email, descricao, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if petID != "" {
		require.NoError(t, mw.WriteField("pet_id", petID))
	}
	if email != "" {
		require.NoError(t, mw.WriteField("user_email", email))
	}
	require.NoError(t, mw.WriteField("descricao", descricao))
	fw, err := mw.CreateFormFile("imagem", "foto.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not-really-a-png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/concurso/enviar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// listPhotos fetches the contest listing and returns the fotos array
func listPhotos(t *testing.T, r *gin.Engine) []map[string]any {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/concurso/fotos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	raw := body["fotos"].([]any)
	fotos := make([]map[string]any, 0, len(raw))
	for _, f := range raw {
		fotos = append(fotos, f.(map[string]any))
	}
	return fotos
}

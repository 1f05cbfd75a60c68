// AngelaMos | 2026
// contact_test.go

package contact

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/middleware"
)

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	svc := NewService(NewRepository(sqlx.NewDb(mockDB, "pgx")), nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewHandler(svc).RegisterRoutes(r, passthrough, middleware.RequireAdmin)
	})
	return r, mock
}

func call(
	h http.Handler,
	identity *middleware.Identity,
	method, path, body string,
) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSubmitContact(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery("INSERT INTO contacts").
		WithArgs("Ana", "ana@example.com", "Vocês abrem no domingo?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(1), time.Now()))

	rec := call(h, nil, http.MethodPost, "/api/contact", `{
		"name": " Ana ",
		"email": "Ana@Example.com",
		"message": "Vocês abrem no domingo?"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitContactValidation(t *testing.T) {
	h, mock := newTestRouter(t)

	rec := call(h, nil, http.MethodPost, "/api/contact",
		`{"name":"Ana","email":"not-an-email","message":"oi"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp core.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "email", resp.Error.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListContactsIsAdminOnly(t *testing.T) {
	h, mock := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized,
		call(h, nil, http.MethodGet, "/api/contact", "").Code)
	assert.Equal(t, http.StatusForbidden,
		call(h, &middleware.Identity{UserID: 2, Role: "user"}, http.MethodGet, "/api/contact", "").Code)

	mock.ExpectQuery("SELECT .* FROM contacts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "message", "created_at"}).
			AddRow(int64(1), "Ana", "ana@example.com", "oi", time.Now()))

	rec := call(h, &middleware.Identity{UserID: 1, Role: "admin"}, http.MethodGet, "/api/contact", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []MessageResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Ana", body.Data[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

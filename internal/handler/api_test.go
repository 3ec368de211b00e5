package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/NO-YA/MedBridge/internal/config"
	"github.com/NO-YA/MedBridge/internal/handler"
	"github.com/NO-YA/MedBridge/internal/password"
	"github.com/NO-YA/MedBridge/internal/repository"
	"github.com/NO-YA/MedBridge/internal/router"
	"github.com/NO-YA/MedBridge/internal/service"
)

// newTestServer wires the full stack over in-memory repositories, the same
// composition as cmd/server with STORE_DRIVER=memory.
func newTestServer() *echo.Echo {
	e := echo.New()

	todoRepo := repository.NewMemoryTodoRepository()
	userRepo := repository.NewMemoryUserRepository()
	hasher := password.New(config.SchemeBcryptSHA256, config.SchemeArgon2id)

	todoService := service.NewTodoService(todoRepo, userRepo, nil)
	userService := service.NewUserService(userRepo, hasher)
	statsService := service.NewStatsService(todoRepo, userRepo)

	router.Register(e,
		handler.NewTodoHandler(todoService),
		handler.NewUserHandler(userService),
		handler.NewStatsHandler(statsService),
	)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRootMessage(t *testing.T) {
	e := newTestServer()
	rec := do(e, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestUserAndTodoScenario(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com","password":"supersecret"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var user map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotZero(t, user["id"])
	// The credential never appears in a response.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "credential")

	aliceID := int(user["id"].(float64))
	rec = do(e, http.MethodPost, "/todos", fmt.Sprintf(`{"task":"Prendre medicament","done":false,"owner_id":%d}`, aliceID))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var todo map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	assert.Equal(t, "Prendre medicament", todo["task"])

	rec = do(e, http.MethodGet, "/todos", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var todos []map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	assert.GreaterOrEqual(t, len(todos), 1)
}

func TestGetTodoNotFound(t *testing.T) {
	e := newTestServer()
	rec := do(e, http.MethodGet, "/todos/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTodoWithUnknownOwner(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/todos", `{"task":"check blood pressure","owner_id":42}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The failed create left the collection unchanged.
	rec = do(e, http.MethodGet, "/todos", "")
	var todos []map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	assert.Empty(t, todos)
}

func TestDuplicateEmail(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com","password":"supersecret"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPost, "/users", `{"name":"Other Alice","email":"alice@example.com","password":"differentsecret"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/users", "")
	var users []map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 1)
}

func TestDeleteTodoTwice(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/todos", `{"task":"take medication"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var todo map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	path := fmt.Sprintf("/todos/%d", int(todo["id"].(float64)))

	rec = do(e, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchExplicitDoneFalse(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/todos", `{"task":"take medication","done":true}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var todo map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	path := fmt.Sprintf("/todos/%d", int(todo["id"].(float64)))

	rec = do(e, http.MethodPatch, path, `{"done":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	assert.Equal(t, false, todo["done"])
	assert.Equal(t, "take medication", todo["task"])
}

func TestReplaceTodo(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/todos", `{"task":"old task"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var todo map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	path := fmt.Sprintf("/todos/%d", int(todo["id"].(float64)))

	rec = do(e, http.MethodPut, path, `{"task":"new task","done":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	assert.Equal(t, "new task", todo["task"])
	assert.Equal(t, true, todo["done"])

	rec = do(e, http.MethodPut, "/todos/999", `{"task":"ghost","done":false}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/todos", `{"task":"one","done":true}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = do(e, http.MethodPost, "/todos", `{"task":"two"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]int64
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.EqualValues(t, 2, stats["total_todos"])
	assert.EqualValues(t, 1, stats["completed_todos"])
	assert.EqualValues(t, 1, stats["pending_todos"])
	assert.EqualValues(t, 0, stats["total_users"])
}

func TestValidation(t *testing.T) {
	e := newTestServer()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"missing task", http.MethodPost, "/todos", `{"done":false}`},
		{"task too long", http.MethodPost, "/todos", fmt.Sprintf(`{"task":%q}`, strings.Repeat("x", 201))},
		{"invalid email", http.MethodPost, "/users", `{"name":"Alice","email":"not-an-email","password":"supersecret"}`},
		{"short password", http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com","password":"short"}`},
		{"missing name", http.MethodPost, "/users", `{"email":"alice@example.com","password":"supersecret"}`},
		{"non-numeric id", http.MethodGet, "/todos/abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

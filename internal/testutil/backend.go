package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"finboard/internal/models"
)

// Backend resources served by FakeBackend.
var backendResources = []string{"categories", "earnings", "expenses", "investments", "objectives"}

// ValidOTP is the only recovery code FakeBackend accepts.
const ValidOTP = "123456"

// RecordedRequest is one call received by FakeBackend.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	Body          map[string]any
}

type backendAccount struct {
	user     models.User
	password string
	token    string
}

// FakeBackend is an in-memory stand-in for the REST backend. Items are kept
// as decoded JSON objects in insertion order; ids are assigned as numbers.
type FakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int
	accounts map[string]*backendAccount
	items    map[string][]map[string]any
	failures map[string]failure
	requests []RecordedRequest
}

type failure struct {
	status  int
	message string
}

// NewFakeBackend starts a FakeBackend and closes it when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	fb := &FakeBackend{
		accounts: make(map[string]*backendAccount),
		items:    make(map[string][]map[string]any),
		failures: make(map[string]failure),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", fb.login)
	mux.HandleFunc("POST /auth/google", fb.google)
	mux.HandleFunc("POST /auth/recover-token", fb.recoverToken)
	mux.HandleFunc("POST /auth/validate-otp", fb.validateOTP)
	mux.HandleFunc("POST /auth/change-password", fb.changePassword)
	mux.HandleFunc("POST /users/register", fb.register)
	mux.HandleFunc("GET /users/{id}", fb.authed(fb.getUser))
	for _, res := range backendResources {
		mux.HandleFunc("GET /"+res+"/user/{userId}", fb.authed(fb.list(res)))
		mux.HandleFunc("POST /"+res, fb.authed(fb.create(res)))
		mux.HandleFunc("PUT /"+res, fb.authed(fb.update(res)))
		mux.HandleFunc("DELETE /"+res+"/{id}", fb.authed(fb.remove(res)))
	}

	fb.Server = httptest.NewServer(fb.record(mux))
	t.Cleanup(fb.Server.Close)
	return fb
}

// AddUser registers an account and returns the user with its token set.
func (fb *FakeBackend) AddUser(user models.User, password string) models.User {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if user.ID == "" {
		user.ID = fb.newID()
	}
	token := fmt.Sprintf("token-%s", user.ID)
	fb.accounts[strings.ToLower(user.Email)] = &backendAccount{user: user.Profile(), password: password, token: token}
	user.Token = token
	return user
}

// Seed stores item under resource as if it had been created by userID and
// returns the assigned id.
func (fb *FakeBackend) Seed(resource string, userID models.ID, item any) models.ID {
	data, err := json.Marshal(item)
	if err != nil {
		panic(err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		panic(err)
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := fb.newID()
	obj["id"] = json.Number(id)
	obj["userId"] = userID
	if _, ok := obj["creationDate"]; !ok || obj["creationDate"] == nil {
		obj["creationDate"] = time.Now().Format("2006-01-02T15:04:05")
	}
	fb.items[resource] = append(fb.items[resource], obj)
	return id
}

// Count returns how many items resource holds.
func (fb *FakeBackend) Count(resource string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.items[resource])
}

// Fail makes every request matching "METHOD /path-prefix" answer with status.
// An empty message sends a body without a message field.
func (fb *FakeBackend) Fail(route string, status int, message string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failures[route] = failure{status: status, message: message}
}

// Requests returns a copy of every request received so far.
func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]RecordedRequest(nil), fb.requests...)
}

// LastRequest returns the most recent request, or the zero value.
func (fb *FakeBackend) LastRequest() RecordedRequest {
	reqs := fb.Requests()
	if len(reqs) == 0 {
		return RecordedRequest{}
	}
	return reqs[len(reqs)-1]
}

// newID must be called with mu held.
func (fb *FakeBackend) newID() models.ID {
	fb.nextID++
	return models.ID(fmt.Sprint(fb.nextID))
}

func (fb *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			dec := json.NewDecoder(r.Body)
			dec.UseNumber()
			_ = dec.Decode(&body)
		}
		fb.mu.Lock()
		fb.requests = append(fb.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			Body:          body,
		})
		var hit *failure
		for route, f := range fb.failures {
			method, prefix, _ := strings.Cut(route, " ")
			if method == r.Method && strings.HasPrefix(r.URL.Path, prefix) {
				hit = &f
				break
			}
		}
		fb.mu.Unlock()

		if hit != nil {
			if hit.message == "" {
				writeJSON(w, hit.status, map[string]any{})
			} else {
				writeJSON(w, hit.status, map[string]any{"message": hit.message})
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(withBody(r.Context(), body)))
	})
}

func (fb *FakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		fb.mu.Lock()
		ok := false
		for _, acc := range fb.accounts {
			if token != "" && acc.token == token {
				ok = true
				break
			}
		}
		fb.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Token inválido"})
			return
		}
		next(w, r)
	}
}

func (fb *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)

	fb.mu.Lock()
	acc, ok := fb.accounts[strings.ToLower(email)]
	fb.mu.Unlock()
	if !ok || acc.password != password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "E-mail ou senha incorretos"})
		return
	}
	user := acc.user
	user.Token = acc.token
	writeJSON(w, http.StatusOK, user)
}

func (fb *FakeBackend) google(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	credential, _ := body["token"].(string)
	if credential == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Credencial ausente"})
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, acc := range fb.accounts {
		user := acc.user
		user.Token = acc.token
		writeJSON(w, http.StatusOK, user)
		return
	}
	writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Conta Google não vinculada"})
}

func (fb *FakeBackend) register(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	email, _ := body["email"].(string)
	name, _ := body["name"].(string)
	password, _ := body["password"].(string)

	fb.mu.Lock()
	defer fb.mu.Unlock()
	if _, exists := fb.accounts[strings.ToLower(email)]; exists {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "E-mail já cadastrado"})
		return
	}
	user := models.User{ID: fb.newID(), Name: name, Email: email}
	fb.accounts[strings.ToLower(email)] = &backendAccount{user: user, password: password, token: "token-" + user.ID.String()}
	writeJSON(w, http.StatusCreated, user)
}

func (fb *FakeBackend) getUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, acc := range fb.accounts {
		if acc.user.ID.String() == id {
			writeJSON(w, http.StatusOK, acc.user)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "Usuário não encontrado"})
}

func (fb *FakeBackend) recoverToken(w http.ResponseWriter, r *http.Request) {
	email, _ := bodyFrom(r.Context())["email"].(string)
	fb.mu.Lock()
	_, ok := fb.accounts[strings.ToLower(email)]
	fb.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "E-mail não encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Código enviado"})
}

func (fb *FakeBackend) validateOTP(w http.ResponseWriter, r *http.Request) {
	otp, _ := bodyFrom(r.Context())["otp"].(string)
	if otp != ValidOTP {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Código inválido"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

func (fb *FakeBackend) changePassword(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	otp, _ := body["otp"].(string)

	fb.mu.Lock()
	defer fb.mu.Unlock()
	acc, ok := fb.accounts[strings.ToLower(email)]
	if !ok || otp != ValidOTP {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Não foi possível alterar a senha"})
		return
	}
	acc.password = password
	writeJSON(w, http.StatusOK, map[string]any{"message": "Senha alterada"})
}

func (fb *FakeBackend) list(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userId")
		fb.mu.Lock()
		defer fb.mu.Unlock()
		out := make([]map[string]any, 0)
		for _, item := range fb.items[resource] {
			if fmt.Sprint(item["userId"]) == userID {
				out = append(out, item)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (fb *FakeBackend) create(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj := bodyFrom(r.Context())
		if obj == nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Corpo inválido"})
			return
		}
		fb.mu.Lock()
		defer fb.mu.Unlock()
		obj["id"] = json.Number(fb.newID())
		obj["creationDate"] = time.Now().Format("2006-01-02T15:04:05")
		fb.items[resource] = append(fb.items[resource], obj)
		writeJSON(w, http.StatusCreated, obj)
	}
}

func (fb *FakeBackend) update(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj := bodyFrom(r.Context())
		id := fmt.Sprint(obj["id"])
		fb.mu.Lock()
		defer fb.mu.Unlock()
		for i, item := range fb.items[resource] {
			if fmt.Sprint(item["id"]) == id {
				obj["id"] = item["id"]
				if obj["creationDate"] == nil {
					obj["creationDate"] = item["creationDate"]
				}
				fb.items[resource][i] = obj
				writeJSON(w, http.StatusOK, obj)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Registro não encontrado"})
	}
}

func (fb *FakeBackend) remove(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		fb.mu.Lock()
		defer fb.mu.Unlock()
		items := fb.items[resource]
		for i, item := range items {
			if fmt.Sprint(item["id"]) == id {
				fb.items[resource] = append(items[:i:i], items[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Registro não encontrado"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

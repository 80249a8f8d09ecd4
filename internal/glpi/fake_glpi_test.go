package glpi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/mcp-cau/glpi-gateway/internal/config"
	"github.com/mcp-cau/glpi-gateway/internal/observability"
)

type fakeUser struct {
	ID    int
	Name  string
	Login string
	Email string
	TOTP  bool
	Pass  string
}

// fakeGLPI is an in-process stand-in for the GLPI REST API covering the five
// endpoints the gateway consumes.
type fakeGLPI struct {
	t *testing.T

	mu          sync.Mutex
	sessionSeq  int
	active      map[string]bool
	users       []fakeUser
	searchCalls []string

	emptyInitBody   bool
	failInitStatus  int
	failKill        bool
	rejectCreates   int
	emptyCreateBody bool
	createBodies    []map[string]any

	srv *httptest.Server
}

func newFakeGLPI(t *testing.T) *fakeGLPI {
	f := &fakeGLPI{t: t, active: make(map[string]bool)}
	mux := http.NewServeMux()
	mux.HandleFunc("/initSession", f.initSession)
	mux.HandleFunc("/getFullSession", f.getFullSession)
	mux.HandleFunc("/killSession", f.killSession)
	mux.HandleFunc("/search/User", f.searchUser)
	mux.HandleFunc("/Ticket", f.createTicket)
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeGLPI) client() *Client {
	cfg := config.GLPIConfig{
		BaseURL:               f.srv.URL,
		AppToken:              "app-tok",
		UserToken:             "svc-tok",
		EntityID:              1,
		ConnectTimeoutSeconds: 2,
		ReadTimeoutSeconds:    5,
	}
	return NewClient(cfg, zap.NewNop(), observability.NewMetrics())
}

func (f *fakeGLPI) newSession() string {
	f.sessionSeq++
	token := fmt.Sprintf("sess-%d", f.sessionSeq)
	f.active[token] = true
	return token
}

func (f *fakeGLPI) sessionActive(r *http.Request) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active[r.Header.Get("Session-Token")]
}

func (f *fakeGLPI) initSession(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failInitStatus != 0 {
		writeJSON(w, f.failInitStatus, map[string]any{"message": "init rejected"})
		return
	}

	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "user_token ") {
		if strings.TrimPrefix(auth, "user_token ") != "svc-tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "bad user token"})
			return
		}
		if f.emptyInitBody {
			writeJSON(w, http.StatusOK, map[string]any{})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"session_token": f.newSession()})
		return
	}

	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)
	for _, u := range f.users {
		if u.Login != body["login"] {
			continue
		}
		if u.TOTP && body["code"] == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Please enter your TOTP code"})
			return
		}
		if u.Pass == body["password"] {
			writeJSON(w, http.StatusOK, map[string]any{"session_token": f.newSession()})
			return
		}
	}
	writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Incorrect username or password"})
}

func (f *fakeGLPI) getFullSession(w http.ResponseWriter, r *http.Request) {
	if !f.sessionActive(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "session_token seems invalid"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": map[string]any{"glpiID": 42}})
}

func (f *fakeGLPI) killSession(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKill {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "boom"})
		return
	}
	delete(f.active, r.Header.Get("Session-Token"))
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (f *fakeGLPI) searchUser(w http.ResponseWriter, r *http.Request) {
	if !f.sessionActive(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "session_token seems invalid"})
		return
	}

	query := r.URL.Query()
	field := query.Get("criteria[0][field]")
	searchType := query.Get("criteria[0][searchtype]")
	value := strings.ToLower(query.Get("criteria[0][value]"))

	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, searchType)
	users := f.users
	f.mu.Unlock()

	var rows []map[string]any
	for _, u := range users {
		candidate := strings.ToLower(u.Login)
		if field == "5" {
			candidate = strings.ToLower(u.Email)
		}
		match := candidate == value
		if searchType == "contains" {
			match = strings.Contains(candidate, value)
		}
		if match {
			rows = append(rows, map[string]any{
				"id": u.ID, "name": u.Name, "login": u.Login, "email": u.Email,
			})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"totalcount": len(rows), "data": rows})
}

func (f *fakeGLPI) createTicket(w http.ResponseWriter, r *http.Request) {
	if !f.sessionActive(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "session_token seems invalid"})
		return
	}

	var envelope struct {
		Input map[string]any `json:"input"`
	}
	_ = json.NewDecoder(r.Body).Decode(&envelope)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.createBodies = append(f.createBodies, envelope.Input)
	if f.rejectCreates > 0 {
		f.rejectCreates--
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "actor field rejected"})
		return
	}
	if f.emptyCreateBody {
		writeJSON(w, http.StatusCreated, map[string]any{})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": 777})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/service"
	"github.com/splitledger/splitledger/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "splitledger-server-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		Port:        "8080",
		CORSOrigins: []string{"*"},
	}
	jwtManager := auth.NewJWTManager("test-secret-key-at-least-32-chars!!", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	return New(
		cfg,
		service.NewAuthService(authenticator, jwtManager, store),
		service.NewGroupService(store),
		service.NewExpenseService(store),
		service.NewSettlementService(store),
		jwtManager,
	)
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %s: %v", w.Body.String(), err)
	}
}

func registerUser(t *testing.T, srv *Server, email, name string) (userID, token string) {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":        email,
		"display_name": name,
		"password":     "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	return resp.User.ID, resp.Token
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("healthz returned %d", w.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	_, token := registerUser(t, srv, "alice@example.com", "Alice")

	t.Run("me with token", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/auth/me", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("me returned %d: %s", w.Code, w.Body.String())
		}
		var user struct {
			Email string `json:"email"`
		}
		decodeBody(t, w, &user)
		if user.Email != "alice@example.com" {
			t.Errorf("Email = %s", user.Email)
		}
	})

	t.Run("me without token", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/auth/me", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("me without token returned %d", w.Code)
		}
	})

	t.Run("duplicate registration", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":        "alice@example.com",
			"display_name": "Alice 2",
			"password":     "password123",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("duplicate register returned %d", w.Code)
		}
	})

	t.Run("login wrong password", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong-password",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("bad login returned %d", w.Code)
		}
	})

	t.Run("protected route without token", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/groups", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("groups without token returned %d", w.Code)
		}
	})
}

func TestExpenseAndSettlementFlow(t *testing.T) {
	srv := newTestServer(t)

	aliceID, aliceToken := registerUser(t, srv, "alice@example.com", "Alice")
	bobID, bobToken := registerUser(t, srv, "bob@example.com", "Bob")

	// Alice creates a group with Bob.
	w := doJSON(t, srv, http.MethodPost, "/api/groups", aliceToken, map[string]any{
		"name":     "Flat",
		"currency": "USD",
		"members":  []string{aliceID, bobID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create group returned %d: %s", w.Code, w.Body.String())
	}
	var group struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &group)

	// Alice fronts 100.00 split equally.
	w = doJSON(t, srv, http.MethodPost, "/api/expenses", aliceToken, map[string]any{
		"description":  "Groceries",
		"amount":       "100.00",
		"currency":     "USD",
		"paid_by":      aliceID,
		"split_type":   "equal",
		"participants": []string{aliceID, bobID},
		"group_id":     group.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create expense returned %d: %s", w.Code, w.Body.String())
	}
	var expense struct {
		ID     string `json:"id"`
		Splits []struct {
			Participant string `json:"participant"`
			Amount      string `json:"amount"`
			Paid        bool   `json:"paid"`
		} `json:"splits"`
	}
	decodeBody(t, w, &expense)
	if len(expense.Splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(expense.Splits))
	}
	if expense.Splits[0].Amount != "50" || expense.Splits[1].Amount != "50" {
		t.Errorf("splits = %+v, want 50/50", expense.Splits)
	}

	// Bob owes Alice 50.
	w = doJSON(t, srv, http.MethodGet, "/api/groups/"+group.ID+"/balances", bobToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("group balances returned %d: %s", w.Code, w.Body.String())
	}
	var report struct {
		Balances []struct {
			PartyA string `json:"party_a"`
			PartyB string `json:"party_b"`
			Amount string `json:"amount"`
		} `json:"balances"`
		Plan []struct {
			From   string `json:"from"`
			To     string `json:"to"`
			Amount string `json:"amount"`
		} `json:"plan"`
	}
	decodeBody(t, w, &report)
	if len(report.Balances) != 1 || report.Balances[0].Amount != "50" {
		t.Fatalf("balances = %+v, want one 50 balance", report.Balances)
	}
	if len(report.Plan) != 1 || report.Plan[0].From != bobID || report.Plan[0].To != aliceID {
		t.Errorf("plan = %+v, want bob pays alice", report.Plan)
	}

	// Bob settles the expense.
	w = doJSON(t, srv, http.MethodPost, "/api/settlements", bobToken, map[string]any{
		"paid_to":          aliceID,
		"amount":           "50.00",
		"currency":         "USD",
		"group_id":         group.ID,
		"related_expenses": []string{expense.ID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("record settlement returned %d: %s", w.Code, w.Body.String())
	}
	var settlement struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, w, &settlement)
	if settlement.Status != "verified" {
		t.Errorf("settlement status = %s, want verified", settlement.Status)
	}

	// Settling the same expense again conflicts.
	w = doJSON(t, srv, http.MethodPost, "/api/settlements", bobToken, map[string]any{
		"paid_to":          aliceID,
		"amount":           "50.00",
		"currency":         "USD",
		"group_id":         group.ID,
		"related_expenses": []string{expense.ID},
	})
	if w.Code != http.StatusConflict {
		t.Errorf("repeat settlement returned %d, want 409", w.Code)
	}

	// Balances are clear.
	w = doJSON(t, srv, http.MethodGet, "/api/groups/"+group.ID+"/balances", aliceToken, nil)
	decodeBody(t, w, &report)
	if len(report.Balances) != 0 {
		t.Errorf("balances after settlement = %+v, want none", report.Balances)
	}

	// Self settlement is a bad request.
	w = doJSON(t, srv, http.MethodPost, "/api/settlements", bobToken, map[string]any{
		"paid_to":  bobID,
		"amount":   "5.00",
		"currency": "USD",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("self settlement returned %d, want 400", w.Code)
	}

	// Alice disputes, then verifies.
	w = doJSON(t, srv, http.MethodPost, "/api/settlements/"+settlement.ID+"/dispute", aliceToken, map[string]string{
		"reason": "never received",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("dispute returned %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, http.MethodPost, "/api/settlements/"+settlement.ID+"/verify", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("verify returned %d: %s", w.Code, w.Body.String())
	}

	// Only a party may dispute.
	_, carolToken := registerUser(t, srv, "carol@example.com", "Carol")
	w = doJSON(t, srv, http.MethodPost, "/api/settlements/"+settlement.ID+"/dispute", carolToken, map[string]string{
		"reason": "not mine",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("outsider dispute returned %d, want 403", w.Code)
	}
}

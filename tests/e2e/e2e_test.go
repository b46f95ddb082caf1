//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - full sale cycle (sign-in → create product → cart → checkout → history → analytics)
//   - single-active-session: a second sign-in invalidates the first device
//   - unapproved cashiers cannot sign in until an admin approves them
//   - checkout rejections (under-tender, empty cart)

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"

	"github.com/DvineConqueror/GroceryStorePOS/internal/config"
	"github.com/DvineConqueror/GroceryStorePOS/internal/infra"
	"github.com/DvineConqueror/GroceryStorePOS/internal/pos"
	"github.com/DvineConqueror/GroceryStorePOS/internal/router"
	"github.com/DvineConqueror/GroceryStorePOS/internal/worker"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func doForm(t *testing.T, srv *httptest.Server, method, path string, fields map[string]string, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

type signInBody struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"access_token"`
	SessionToken string `json:"session_token"`
}

func signIn(t *testing.T, srv *httptest.Server, email, password string) signInBody {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/auth/signin",
		jsonBody(t, map[string]string{"email": email, "password": password}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body signInBody
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body
}

// ── Test environment ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("grocerypos_test"),
		tcPostgres.WithUsername("grocerypos"),
		tcPostgres.WithPassword("grocerypos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		WorkerPoolSize:     1,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		CashLimit:          "10000",
		LoginRateLimit:     100,
		APIRateLimit:       10000,
		MediaStoragePath:   t.TempDir(),
		ReceiptStoragePath: t.TempDir(),
		StoreName:          "E2E Grocery",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	media, err := infra.NewMediaStore(cfg.MediaStoragePath)
	require.NoError(t, err)

	// Seed an approved admin account.
	adminID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-e2e-pass"), 12)
	require.NoError(t, err)
	require.NoError(t, db.Exec(
		`INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, now(), now())`,
		adminID, "admin@e2e.test", string(hash)).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO profiles (id, full_name, role, approved, created_at, updated_at) VALUES (?, 'Admin E2E', 'admin', true, now(), now())`,
		adminID).Error)

	store := pos.NewStore()
	dispatcher := worker.NewDispatcher(rdb)

	r := router.New(cfg, db, rdb, store, media, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	admin := signIn(t, srv, "admin@e2e.test", "admin-e2e-pass")
	return &testEnv{server: srv, token: admin.AccessToken}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullSaleCycle(t *testing.T) {
	env := setupTestEnv(t)

	// Create a product through the admin surface.
	prodResp := doForm(t, env.server, "POST", "/v1/products", map[string]string{
		"name":     "Soda 500ml",
		"price":    "25.50",
		"stock":    "20",
		"category": "Beverages",
	}, env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)
	require.NotEmpty(t, prod.ID)

	// Two units in the cart.
	for i := 0; i < 2; i++ {
		resp := do(t, env.server, "POST", "/v1/cart/items",
			jsonBody(t, map[string]string{"product_id": prod.ID}), env.token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var cart struct {
		Items []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
		Total string `json:"total"`
	}
	cartResp := do(t, env.server, "GET", "/v1/cart", nil, env.token)
	require.Equal(t, http.StatusOK, cartResp.StatusCode)
	decodeJSON(t, cartResp, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Tender 100 against a 51.00 total.
	checkoutResp := do(t, env.server, "POST", "/v1/checkout",
		jsonBody(t, map[string]any{"cash_received": 100}), env.token)
	require.Equal(t, http.StatusCreated, checkoutResp.StatusCode)
	var sale struct {
		ID     string `json:"id"`
		Total  string `json:"total"`
		Change string `json:"change"`
		Status string `json:"status"`
	}
	decodeJSON(t, checkoutResp, &sale)
	assert.Equal(t, "completed", sale.Status)
	assert.Equal(t, "51", sale.Total)
	assert.Equal(t, "49", sale.Change)

	// The cart is empty again.
	cartResp = do(t, env.server, "GET", "/v1/cart", nil, env.token)
	decodeJSON(t, cartResp, &cart)
	assert.Empty(t, cart.Items)

	// History lists the sale newest-first.
	histResp := do(t, env.server, "GET", "/v1/transactions", nil, env.token)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var hist []struct {
		ID          string `json:"id"`
		CashierName string `json:"cashier_name"`
	}
	decodeJSON(t, histResp, &hist)
	require.Len(t, hist, 1)
	assert.Equal(t, sale.ID, hist[0].ID)
	assert.Equal(t, "Admin E2E", hist[0].CashierName)

	// Analytics sees it.
	sumResp := do(t, env.server, "GET", "/v1/analytics/summary?range=today", nil, env.token)
	require.Equal(t, http.StatusOK, sumResp.StatusCode)
	var summary struct {
		TransactionCount int `json:"transaction_count"`
	}
	decodeJSON(t, sumResp, &summary)
	assert.Equal(t, 1, summary.TransactionCount)
}

func TestE2E_CheckoutRejections(t *testing.T) {
	env := setupTestEnv(t)

	// Empty cart.
	resp := do(t, env.server, "POST", "/v1/checkout",
		jsonBody(t, map[string]any{"cash_received": 100}), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	prodResp := doForm(t, env.server, "POST", "/v1/products", map[string]string{
		"name": "Rice 1kg", "price": "60", "stock": "5", "category": "Others",
	}, env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	addResp := do(t, env.server, "POST", "/v1/cart/items",
		jsonBody(t, map[string]string{"product_id": prod.ID}), env.token)
	require.Equal(t, http.StatusOK, addResp.StatusCode)
	addResp.Body.Close()

	// Under-tendered.
	resp = do(t, env.server, "POST", "/v1/checkout",
		jsonBody(t, map[string]any{"cash_received": 59}), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Over the register limit.
	resp = do(t, env.server, "POST", "/v1/checkout",
		jsonBody(t, map[string]any{"cash_received": 10001}), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The cart survives every rejection.
	var cart struct {
		Items []struct{} `json:"items"`
	}
	cartResp := do(t, env.server, "GET", "/v1/cart", nil, env.token)
	decodeJSON(t, cartResp, &cart)
	assert.Len(t, cart.Items, 1)
}

func TestE2E_SingleActiveSession(t *testing.T) {
	env := setupTestEnv(t)

	first := signIn(t, env.server, "admin@e2e.test", "admin-e2e-pass")
	second := signIn(t, env.server, "admin@e2e.test", "admin-e2e-pass")
	require.NotEqual(t, first.SessionToken, second.SessionToken)

	// The first device's refresh detects the rotation and gets a 401.
	resp := do(t, env.server, "POST", "/v1/auth/refresh",
		jsonBody(t, map[string]string{"session_token": first.SessionToken}), first.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// The second device is still valid.
	resp = do(t, env.server, "POST", "/v1/auth/refresh",
		jsonBody(t, map[string]string{"session_token": second.SessionToken}), second.AccessToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Valid bool `json:"valid"`
	}
	decodeJSON(t, resp, &body)
	assert.True(t, body.Valid)
}

func TestE2E_ApprovalGate(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/auth/signup", jsonBody(t, map[string]string{
		"email": "cashier@e2e.test", "password": "cashier-pass", "full_name": "New Cashier",
	}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Unapproved: sign-in is refused.
	resp = do(t, env.server, "POST", "/v1/auth/signin", jsonBody(t, map[string]string{
		"email": "cashier@e2e.test", "password": "cashier-pass",
	}), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// The admin sees and approves the pending profile.
	pendResp := do(t, env.server, "GET", "/v1/admin/pending", nil, env.token)
	require.Equal(t, http.StatusOK, pendResp.StatusCode)
	var pending []struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
	}
	decodeJSON(t, pendResp, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, "New Cashier", pending[0].FullName)

	appResp := do(t, env.server, "POST", "/v1/admin/approve/"+pending[0].ID, nil, env.token)
	require.Equal(t, http.StatusOK, appResp.StatusCode)
	appResp.Body.Close()

	// Approved: sign-in now succeeds, with the cashier role.
	cashier := signIn(t, env.server, "cashier@e2e.test", "cashier-pass")
	assert.NotEmpty(t, cashier.SessionToken)

	// Cashiers cannot reach the admin surface.
	resp = do(t, env.server, "GET", "/v1/admin/pending", nil, cashier.AccessToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

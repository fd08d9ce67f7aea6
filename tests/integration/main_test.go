// tests/integration/main_test.go
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgenet/internal/checkout"
	"fridgenet/internal/community"
	"fridgenet/internal/eventlog"
	"fridgenet/internal/fridge"
	"fridgenet/internal/inventory"
)

type TestSuite struct {
	db     *sql.DB
	server *httptest.Server
	users  community.Service
	items  inventory.Service
}

func setupTestSuite(t *testing.T) *TestSuite {
	t.Helper()

	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		get("PGHOST", "localhost"), get("PGPORT", "5432"),
		get("PGUSER", "user"), get("PGPASSWORD", "password"), get("PGDATABASE", "testdb"))

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	if err := db.Ping(); err != nil {
		t.Skipf("skipping integration tests: could not connect to postgres: %v", err)
	}

	schema, err := os.ReadFile("../../migrations/001_init.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM fridges`)
	require.NoError(t, err)

	events := eventlog.NewLog(db)
	users := community.NewService(db)
	items := inventory.NewService(db, users, events)
	fridges := fridge.NewService(db, items, fridge.AllowAll{}, events)
	checkouts := checkout.NewService(items, users, events)

	fridgeHandler := fridge.NewHandler(fridges)
	inventoryHandler := inventory.NewHandler(items)
	checkoutHandler := checkout.NewHandler(checkouts)

	router := chi.NewRouter()
	router.Post("/load", fridgeHandler.HandleLoad)
	router.Post("/unlock", fridgeHandler.HandleUnlock)
	router.Post("/lock", fridgeHandler.HandleLock)
	router.Post("/checkout", checkoutHandler.HandleCheckout)
	router.Post("/add-item", inventoryHandler.HandleAddItem)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return &TestSuite{db: db, server: server, users: users, items: items}
}

func (ts *TestSuite) post(t *testing.T, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(ts.server.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp, decoded
}

func (ts *TestSuite) seedFridge(t *testing.T, lat, lon float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := ts.db.Exec(`INSERT INTO fridges (id, name, latitude, longitude) VALUES ($1, $2, $3, $4)`,
		id, "integration fridge", lat, lon)
	require.NoError(t, err)
	return id
}

func (ts *TestSuite) seedUser(t *testing.T) *community.User {
	t.Helper()
	user, err := ts.users.RegisterUser(context.Background(), fmt.Sprintf("%s@example.com", uuid.NewString()))
	require.NoError(t, err)
	return user
}

func TestLoadUnlockCheckoutLockFlow(t *testing.T) {
	ts := setupTestSuite(t)

	fridgeID := ts.seedFridge(t, 40.730, -73.935)
	donor := ts.seedUser(t)
	claimer := ts.seedUser(t)

	// Contribute an item.
	resp, body := ts.post(t, "/add-item", map[string]interface{}{
		"name":     "rice",
		"fridgeId": fridgeID.String(),
		"quantity": 5,
		"userId":   donor.ID.String(),
		"photo":    "https://img.example/rice.jpg",
		"category": "food",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["success"])
	itemID := body["data"].(map[string]interface{})["id"].(string)

	donorState, err := ts.users.GetUser(context.Background(), donor.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, donorState.Contributions)

	// Discover it nearby.
	resp, _ = ts.post(t, "/load", map[string]interface{}{"latitude": 40.7301, "longitude": -73.9351})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Unlock, claim one unit, lock again.
	resp, body = ts.post(t, "/unlock", map[string]interface{}{"fridgeId": fridgeID.String()})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = ts.post(t, "/checkout", map[string]interface{}{
		"userId":   claimer.ID.String(),
		"itemId":   itemID,
		"fridgeId": fridgeID.String(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	itemResult := data["itemResult"].(map[string]interface{})
	userResult := data["userResult"].(map[string]interface{})
	assert.Equal(t, float64(4), itemResult["quantity"])
	assert.Equal(t, float64(1), userResult["unlocks"])

	resp, body = ts.post(t, "/lock", map[string]interface{}{"fridgeId": fridgeID.String()})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestLoadReturnsNearbyEmptyFridge(t *testing.T) {
	ts := setupTestSuite(t)

	inRange := ts.seedFridge(t, 40.730, -73.935)
	ts.seedFridge(t, 40.900, -73.935) // far out of range

	resp, _ := ts.post(t, "/load", map[string]interface{}{"latitude": 40.730, "longitude": -73.935})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Re-decode as an array; the load endpoint returns a bare list.
	resp2, err := http.Post(ts.server.URL+"/load", "application/json",
		bytes.NewReader([]byte(`{"latitude": 40.730, "longitude": -73.935}`)))
	require.NoError(t, err)
	defer resp2.Body.Close()

	var fridges []struct {
		ID    string                   `json:"id"`
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&fridges))
	require.Len(t, fridges, 1)
	assert.Equal(t, inRange.String(), fridges[0].ID)
	assert.NotNil(t, fridges[0].Items)
	assert.Empty(t, fridges[0].Items)
}

func TestConcurrentCheckoutOnLastUnit(t *testing.T) {
	ts := setupTestSuite(t)

	fridgeID := ts.seedFridge(t, 40.730, -73.935)
	donor := ts.seedUser(t)
	claimer := ts.seedUser(t)

	item, err := ts.items.AddItem(context.Background(), inventory.AddItemParams{
		FridgeID: fridgeID,
		Name:     "last can",
		Quantity: 1,
		UserID:   donor.ID,
		PhotoURL: "https://img.example/can.jpg",
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := fmt.Sprintf(`{"userId": %q, "itemId": %q, "fridgeId": %q}`,
				claimer.ID, item.ID, fridgeID)
			resp, err := http.Post(ts.server.URL+"/checkout", "application/json",
				bytes.NewReader([]byte(payload)))
			if err == nil {
				codes[i] = resp.StatusCode
				resp.Body.Close()
			}
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusConflict}, codes)

	got, err := ts.items.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity, "quantity must never go negative")
}

func TestValidationFailures(t *testing.T) {
	ts := setupTestSuite(t)

	resp, _ := ts.post(t, "/load", map[string]interface{}{"longitude": -73.935})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = ts.post(t, "/unlock", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = ts.post(t, "/unlock", map[string]interface{}{"fridgeId": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := ts.post(t, "/add-item", map[string]interface{}{
		"name":     "no photo",
		"fridgeId": uuid.NewString(),
		"quantity": 3,
		"userId":   uuid.NewString(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, body = ts.post(t, "/checkout", map[string]interface{}{
		"userId": uuid.NewString(),
		"itemId": uuid.NewString(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestCheckoutZeroStock(t *testing.T) {
	ts := setupTestSuite(t)

	fridgeID := ts.seedFridge(t, 40.730, -73.935)
	donor := ts.seedUser(t)
	claimer := ts.seedUser(t)

	item, err := ts.items.AddItem(context.Background(), inventory.AddItemParams{
		FridgeID: fridgeID,
		Name:     "gone",
		Quantity: 1,
		UserID:   donor.ID,
		PhotoURL: "https://img.example/gone.jpg",
	})
	require.NoError(t, err)

	_, applied, err := ts.items.ClaimUnit(context.Background(), item.ID)
	require.NoError(t, err)
	require.True(t, applied)

	resp, body := ts.post(t, "/checkout", map[string]interface{}{
		"userId":   claimer.ID.String(),
		"itemId":   item.ID.String(),
		"fridgeId": fridgeID.String(),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "unavailable", body["error"])

	// No side effects: stock unchanged, no credit.
	got, err := ts.items.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	claimerState, err := ts.users.GetUser(context.Background(), claimer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, claimerState.Unlocks)
}

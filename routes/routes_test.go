package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Andyflow28/SolTech-RESTAPI/config"
)

const testAPIKey = "device-shared-key"

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.MigrateModels(db))

	cfg := &config.Config{
		DatabaseURL:              "sqlite::memory:",
		APIKey:                   testAPIKey,
		SecretKey:                "test-secret",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 30,
	}
	return Setup(cfg, db, zap.NewNop())
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, r *gin.Engine, email string) map[string]interface{} {
	t.Helper()
	w := do(t, r, "POST", "/users", map[string]interface{}{
		"email":     email,
		"username":  "user-" + email,
		"full_name": "Test User",
		"password":  "secret99",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return decode(t, w)
}

func loginToken(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := do(t, r, "POST", "/auth/login", map[string]interface{}{
		"email":    email,
		"password": "secret99",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return decode(t, w)["access_token"].(string)
}

func apiKeyHeader() map[string]string {
	return map[string]string{"X-API-Key": testAPIKey}
}

func bearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func createStation(t *testing.T, r *gin.Engine, stationID string, userID float64) {
	t.Helper()
	w := do(t, r, "POST", "/user-stations", map[string]interface{}{
		"station_id": stationID,
		"location":   "rooftop",
		"user_id":    userID,
	}, apiKeyHeader())
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestHealth(t *testing.T) {
	r := newTestServer(t)
	w := do(t, r, "GET", "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestUserRegistrationAndLogin(t *testing.T) {
	r := newTestServer(t)

	created := registerUser(t, r, "ana@example.com")
	assert.Equal(t, "ana@example.com", created["email"])
	assert.Equal(t, false, created["has_station"])
	assert.NotContains(t, created, "password")

	// Duplicate email is a conflict, not a server error
	w := do(t, r, "POST", "/users", map[string]interface{}{
		"email":     "ana@example.com",
		"username":  "other",
		"full_name": "Other",
		"password":  "secret99",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "conflict", decode(t, w)["error"])

	// Login with the right password
	token := loginToken(t, r, "ana@example.com")
	assert.NotEmpty(t, token)

	// Wrong password and unknown email answer identically
	w = do(t, r, "POST", "/auth/login", map[string]interface{}{
		"email": "ana@example.com", "password": "wrong99",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = do(t, r, "POST", "/auth/login", map[string]interface{}{
		"email": "ghost@example.com", "password": "secret99",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserValidationAggregated(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, "POST", "/users", map[string]interface{}{
		"email":     "not-an-email",
		"username":  "ab",
		"full_name": "",
		"password":  "short",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "validation_error", body["error"])
	assert.Len(t, body["fields"], 4)
}

func TestGetUser(t *testing.T) {
	r := newTestServer(t)
	created := registerUser(t, r, "ana@example.com")
	id := created["user_id"].(float64)

	w := do(t, r, "GET", fmt.Sprintf("/users/%.0f", id), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, "GET", "/users/99999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStationLifecycle(t *testing.T) {
	r := newTestServer(t)
	created := registerUser(t, r, "ana@example.com")
	userID := created["user_id"].(float64)

	// Writes need auth
	w := do(t, r, "POST", "/user-stations", map[string]interface{}{
		"station_id": "a1b2c3", "location": "rooftop", "user_id": userID,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown owner
	w = do(t, r, "POST", "/user-stations", map[string]interface{}{
		"station_id": "a1b2c3", "location": "rooftop", "user_id": 99999,
	}, apiKeyHeader())
	assert.Equal(t, http.StatusNotFound, w.Code)

	createStation(t, r, "a1b2c3", userID)

	// Duplicate station id
	w = do(t, r, "POST", "/user-stations", map[string]interface{}{
		"station_id": "a1b2c3", "location": "basement", "user_id": userID,
	}, apiKeyHeader())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "conflict", decode(t, w)["error"])

	// Owner's flag flipped
	w = do(t, r, "GET", fmt.Sprintf("/users/%.0f", userID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["has_station"])

	// Lookup and listing
	w = do(t, r, "GET", "/user-stations/a1b2c3", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, "GET", "/user-stations/deadbeef", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, "GET", fmt.Sprintf("/user-stations?user_id=%.0f", userID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)
}

func TestReadingIngestion(t *testing.T) {
	r := newTestServer(t)
	created := registerUser(t, r, "ana@example.com")
	createStation(t, r, "a1b2c3", created["user_id"].(float64))
	token := loginToken(t, r, "ana@example.com")

	// Unknown station
	w := do(t, r, "POST", "/station-data", map[string]interface{}{
		"station_id": "deadbeef", "temperature": 21.5,
	}, bearerHeader(token))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Out-of-range fields all reported, nothing persisted
	w = do(t, r, "POST", "/station-data", map[string]interface{}{
		"station_id":  "a1b2c3",
		"temperature": 999,
		"humidity":    150,
	}, bearerHeader(token))
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "validation_error", body["error"])
	assert.Len(t, body["fields"], 2)

	w = do(t, r, "GET", "/station-data", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))

	// Valid ingest with a bearer token
	w = do(t, r, "POST", "/station-data", map[string]interface{}{
		"station_id":   "a1b2c3",
		"temperature":  21.5,
		"humidity":     40.0,
		"gas_detected": false,
	}, bearerHeader(token))
	require.Equal(t, http.StatusCreated, w.Code)
	reading := decode(t, w)
	assert.NotEmpty(t, reading["timestamp"])

	// The shared API key works on the same route
	w = do(t, r, "POST", "/station-data", map[string]interface{}{
		"station_id": "a1b2c3", "pressure": 1013.25,
	}, apiKeyHeader())
	assert.Equal(t, http.StatusCreated, w.Code)
}

func seedReading(t *testing.T, r *gin.Engine, stationID string, ts time.Time) {
	t.Helper()
	w := do(t, r, "POST", "/station-data", map[string]interface{}{
		"station_id":  stationID,
		"temperature": 20.0,
		"timestamp":   ts.Format(time.RFC3339),
	}, apiKeyHeader())
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestLatestReadingsOrdering(t *testing.T) {
	r := newTestServer(t)
	created := registerUser(t, r, "ana@example.com")
	createStation(t, r, "a1b2c3", created["user_id"].(float64))

	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	seedReading(t, r, "a1b2c3", t1)
	seedReading(t, r, "a1b2c3", t3)
	seedReading(t, r, "a1b2c3", t2)

	w := do(t, r, "GET", "/station-data/latest?station_id=a1b2c3&limit=2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	readings := decodeList(t, w)
	require.Len(t, readings, 2)

	first, err := time.Parse(time.RFC3339, readings[0]["timestamp"].(string))
	require.NoError(t, err)
	second, err := time.Parse(time.RFC3339, readings[1]["timestamp"].(string))
	require.NoError(t, err)
	assert.True(t, first.Equal(t3))
	assert.True(t, second.Equal(t2))

	// Limit above the cap is rejected
	w = do(t, r, "GET", "/station-data/latest?limit=1001", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReadingByID(t *testing.T) {
	r := newTestServer(t)
	created := registerUser(t, r, "ana@example.com")
	createStation(t, r, "a1b2c3", created["user_id"].(float64))

	w := do(t, r, "POST", "/station-data", map[string]interface{}{
		"station_id": "a1b2c3", "temperature": 21.5,
	}, apiKeyHeader())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(float64)

	w = do(t, r, "GET", fmt.Sprintf("/station-data/%.0f", id), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "a1b2c3", body["station_id"])

	w = do(t, r, "GET", "/station-data/99999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode(t, w)["error"])

	// A non-numeric id that is not a reserved path segment
	w = do(t, r, "GET", "/station-data/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decode(t, w)["error"])
}

func TestCleanupOldReadings(t *testing.T) {
	r := newTestServer(t)
	created := registerUser(t, r, "ana@example.com")
	createStation(t, r, "a1b2c3", created["user_id"].(float64))

	now := time.Now().UTC()
	seedReading(t, r, "a1b2c3", now.Add(-31*24*time.Hour))
	seedReading(t, r, "a1b2c3", now.Add(-1*time.Hour))

	w := do(t, r, "DELETE", "/station-data/cleanup?days=30", nil, apiKeyHeader())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["deleted_count"])

	w = do(t, r, "DELETE", "/station-data/cleanup?days=30", nil, apiKeyHeader())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["deleted_count"])

	// Cleanup is a write; it needs auth
	w = do(t, r, "DELETE", "/station-data/cleanup?days=30", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeviceToken(t *testing.T) {
	r := newTestServer(t)
	created := registerUser(t, r, "ana@example.com")
	createStation(t, r, "a1b2c3", created["user_id"].(float64))

	// No key, wrong key
	w := do(t, r, "POST", "/token", map[string]interface{}{"device_id": "a1b2c3"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = do(t, r, "POST", "/token", map[string]interface{}{"device_id": "a1b2c3"},
		map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Right key mints a token the device can use for writes
	w = do(t, r, "POST", "/token", map[string]interface{}{"device_id": "a1b2c3"}, apiKeyHeader())
	require.Equal(t, http.StatusOK, w.Code)
	deviceToken := decode(t, w)["access_token"].(string)

	w = do(t, r, "POST", "/station-data", map[string]interface{}{
		"station_id": "a1b2c3", "uv_index": 3.2, "uv_level": "moderate",
	}, bearerHeader(deviceToken))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestExpiredAndMalformedBearerRejected(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, "POST", "/station-data", map[string]interface{}{
		"station_id": "a1b2c3",
	}, bearerHeader("not.a.token"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_token", decode(t, w)["error"])
}

func TestExportCSV(t *testing.T) {
	r := newTestServer(t)
	created := registerUser(t, r, "ana@example.com")
	createStation(t, r, "a1b2c3", created["user_id"].(float64))
	seedReading(t, r, "a1b2c3", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	w := do(t, r, "GET", "/station-data/export", nil, apiKeyHeader())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "a1b2c3")
}

package api

import (
	"encoding/json"
	"errors"
	"milk-delivery-service/internal/adapters/memory"
	"milk-delivery-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deliveryJSON struct {
	User     string `json:"user"`
	Address  string `json:"address"`
	Milk     string `json:"milk"`
	Partner  string `json:"partner"`
	Quantity string `json:"quantity"`
	Date     string `json:"date"`
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func list(t *testing.T, h http.Handler) []deliveryJSON {
	t.Helper()

	w := do(t, h, http.MethodGet, "/deliveries", "")
	require.Equal(t, http.StatusOK, w.Code)

	var out []deliveryJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestScenarioUpdateMostRecent(t *testing.T) {
	h := NewRouter(memory.NewMemoryRecordStore())

	w := do(t, h, http.MethodPost, "/deliveries", `{"user":"A","milk":"whole","quantity":2,"date":"2024-01-01"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Row added"}`, w.Body.String())

	w = do(t, h, http.MethodPost, "/deliveries", `{"user":"A","milk":"skim","quantity":1,"date":"2024-02-01"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPut, "/deliveries", `{"user":"A","quantity":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Success    bool         `json:"success"`
		Message    string       `json:"message"`
		UpdatedRow deliveryJSON `json:"updatedRow"`
		Status     int          `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "Row updated successfully", res.Message)
	assert.Equal(t, 200, res.Status)
	assert.Equal(t, deliveryJSON{User: "A", Milk: "skim", Quantity: "5", Date: "2024-02-01"}, res.UpdatedRow)

	rows := list(t, h)
	require.Len(t, rows, 2)
	assert.Equal(t, deliveryJSON{User: "A", Milk: "whole", Quantity: "2", Date: "2024-01-01"}, rows[0])
	assert.Equal(t, "5", rows[1].Quantity)
}

func TestPatchOnlyTouchesPresentFields(t *testing.T) {
	store := memory.NewMemoryRecordStore(domain.DeliveryRecord{
		User: "A", Address: "1 Main", Milk: "whole", Partner: "Green", Quantity: "2", Date: "2024-01-01",
	})
	h := NewRouter(store)

	w := do(t, h, http.MethodPatch, "/api/deliveries", `{"user":"A","targetDate":"2024-01-01","milk":"oat"}`)
	require.Equal(t, http.StatusOK, w.Code)

	rows := list(t, h)
	require.Len(t, rows, 1)
	assert.Equal(t, deliveryJSON{User: "A", Address: "1 Main", Milk: "oat", Partner: "Green", Quantity: "2", Date: "2024-01-01"}, rows[0])
}

func TestUpdateUnknownTargetDateIs404(t *testing.T) {
	h := NewRouter(memory.NewMemoryRecordStore(domain.DeliveryRecord{User: "A", Date: "2024-01-01"}))

	w := do(t, h, http.MethodPut, "/deliveries", `{"user":"A","targetDate":"2024-05-05","milk":"oat"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"No entry found for user \"A\" on date \"2024-05-05\"","status":404}`, w.Body.String())
}

func TestDeleteReturnsSnapshotAndRemovesRow(t *testing.T) {
	h := NewRouter(memory.NewMemoryRecordStore(
		domain.DeliveryRecord{User: "A", Milk: "whole", Quantity: "2", Date: "2024-01-01"},
		domain.DeliveryRecord{User: "B", Milk: "oat", Quantity: "1", Date: "2024-01-03"},
	))

	w := do(t, h, http.MethodDelete, "/deliveries", `{"user":"B"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		DeletedRow deliveryJSON `json:"deletedRow"`
		Message    string       `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Row deleted successfully", res.Message)
	assert.Equal(t, deliveryJSON{User: "B", Milk: "oat", Quantity: "1", Date: "2024-01-03"}, res.DeletedRow)

	rows := list(t, h)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].User)

	w = do(t, h, http.MethodDelete, "/deliveries", `{"user":"B"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `No entries found for user \"B\"`)
}

func TestMissingUserNeverTouchesBlankUserRow(t *testing.T) {
	seed := domain.DeliveryRecord{User: "", Milk: "whole", Quantity: "4", Date: "2024-03-01"}
	h := NewRouter(memory.NewMemoryRecordStore(seed))

	w := do(t, h, http.MethodDelete, "/deliveries", `{}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"No entries found for user \"\"","status":404}`, w.Body.String())

	w = do(t, h, http.MethodPut, "/deliveries", `{"milk":"oat"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPatch, "/deliveries", `{"user":"  ","targetDate":"2024-03-01","quantity":9}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	rows := list(t, h)
	require.Len(t, rows, 1)
	assert.Equal(t, deliveryJSON{Milk: "whole", Quantity: "4", Date: "2024-03-01"}, rows[0])
}

func TestCreateMinimalFieldsDefaultsOthers(t *testing.T) {
	h := NewRouter(memory.NewMemoryRecordStore())

	w := do(t, h, http.MethodPost, "/deliveries", `{"user":"C"}`)
	require.Equal(t, http.StatusOK, w.Code)

	rows := list(t, h)
	require.Len(t, rows, 1)
	assert.Equal(t, deliveryJSON{User: "C"}, rows[0])
}

func TestListEmptyStoreIsEmptyArray(t *testing.T) {
	h := NewRouter(memory.NewMemoryRecordStore())

	w := do(t, h, http.MethodGet, "/deliveries", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestOptionsPreflightOnAnyPath(t *testing.T) {
	h := NewRouter(memory.NewMemoryRecordStore())

	for _, path := range []string{"/deliveries", "/does/not/exist"} {
		w := do(t, h, http.MethodOptions, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Empty(t, w.Body.String(), path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET,POST,PUT,PATCH,DELETE,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestUnsupportedMethodIs405(t *testing.T) {
	h := NewRouter(memory.NewMemoryRecordStore())

	w := do(t, h, http.MethodHead, "/deliveries", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = do(t, h, "TRACE", "/deliveries", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStoreFailureIs500WithMessage(t *testing.T) {
	store := memory.NewMemoryRecordStore()
	store.ListErr = errors.New("invalid_grant: account not found")
	h := NewRouter(store)

	w := do(t, h, http.MethodGet, "/deliveries", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res["error"], "invalid_grant: account not found")
}

func TestMalformedJSONIs500(t *testing.T) {
	h := NewRouter(memory.NewMemoryRecordStore())

	w := do(t, h, http.MethodPost, "/deliveries", `{"user":`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "invalid json body")
}

func TestRequestIDHeader(t *testing.T) {
	h := NewRouter(memory.NewMemoryRecordStore())

	w := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

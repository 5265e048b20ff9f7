package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/store"
)

var errTest = errors.New("write rejected")

func newTestHandler(t *testing.T, table string) (*Handler, *echo.Echo, *mockTableStore) {
	t.Helper()
	ts := newMockTableStore()
	svc := NewService(defFor(t, table), ts, zerolog.Nop())
	return NewHandler(svc), echo.New(), ts
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}

// ── Create ──

func TestHandler_CreatePatient(t *testing.T) {
	h, e, _ := newTestHandler(t, store.TablePatients)
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(`{"name":"Alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("expected success=true: %v", body)
	}
	if body["message"] != "Patient added successfully" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	data, _ := body["data"].(map[string]interface{})
	if data["id"] != "1" || data["name"] != "Alice" {
		t.Errorf("unexpected data: %v", data)
	}
	if data["created_date"] == "" || data["created_date"] == nil {
		t.Error("created_date missing from response")
	}
}

func TestHandler_Create_PersistenceFailure(t *testing.T) {
	h, e, ts := newTestHandler(t, store.TablePatients)
	ts.writeErr = errTest

	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(`{"name":"Alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["error"] != "Failed to save patient data" {
		t.Errorf("unexpected envelope: %v", body)
	}
}

// ── List ──

func TestHandler_List(t *testing.T) {
	h, e, ts := newTestHandler(t, store.TablePatients)
	ts.data[store.TablePatients] = []store.Record{{"id": "1", "name": "Alice"}}

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	data, ok := body["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Fatalf("expected one record, got %v", body["data"])
	}
}

func TestHandler_List_EmptyTableIsArray(t *testing.T) {
	h, e, _ := newTestHandler(t, store.TablePatients)
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("empty table must serialize as [], got %s", rec.Body.String())
	}
}

// ── Update ──

func TestHandler_Update(t *testing.T) {
	h, e, ts := newTestHandler(t, store.TablePatients)
	ts.data[store.TablePatients] = []store.Record{{"id": "1", "name": "Alice"}}

	req := httptest.NewRequest(http.MethodPut, "/patients/1", strings.NewReader(`{"phone":"555-1234"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Patient updated successfully" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if got := ts.data[store.TablePatients][0]["phone"]; got != "555-1234" {
		t.Errorf("phone not persisted: %q", got)
	}
}

func TestHandler_Update_NotFound(t *testing.T) {
	h, e, _ := newTestHandler(t, store.TableAppointments)
	req := httptest.NewRequest(http.MethodPut, "/appointments/999", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Appointment not found" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestHandler_Update_InvalidID(t *testing.T) {
	h, e, _ := newTestHandler(t, store.TablePatients)
	req := httptest.NewRequest(http.MethodPut, "/patients/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// ── Delete ──

func TestHandler_Delete(t *testing.T) {
	h, e, ts := newTestHandler(t, store.TablePatients)
	ts.data[store.TablePatients] = []store.Record{{"id": "1", "name": "Alice"}}

	req := httptest.NewRequest(http.MethodDelete, "/patients/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(ts.data[store.TablePatients]) != 0 {
		t.Error("record not deleted")
	}
}

func TestHandler_Delete_NotFound(t *testing.T) {
	h, e, ts := newTestHandler(t, store.TablePatients)
	ts.data[store.TablePatients] = []store.Record{{"id": "1", "name": "Alice"}}

	req := httptest.NewRequest(http.MethodDelete, "/patients/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")
	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if len(ts.data[store.TablePatients]) != 1 {
		t.Error("table content must be unchanged after a not-found delete")
	}
}

package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestSend_SynthesizesAck(t *testing.T) {
	s := NewSender(zerolog.Nop())
	s.now = func() time.Time { return time.Unix(0, 1756717200000000000) }

	ack := s.Send("+15551234", "Your appointment is tomorrow")
	if ack.Status != "sent" {
		t.Errorf("status: got %q, want sent", ack.Status)
	}
	if ack.Phone != "+15551234" {
		t.Errorf("phone not echoed: %q", ack.Phone)
	}
	if ack.MessageID != "msg_1756717200000000000" {
		t.Errorf("unexpected message id: %q", ack.MessageID)
	}
}

func TestHandler_Notify(t *testing.T) {
	h := NewHandler(NewSender(zerolog.Nop()))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/notify",
		strings.NewReader(`{"phone":"+15551234","message":"hello"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Notify(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := map[string]interface{}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["success"] != true || body["message"] != "Notification sent successfully" {
		t.Errorf("unexpected envelope: %v", body)
	}
	wr, _ := body["whatsapp_response"].(map[string]interface{})
	if wr["status"] != "sent" || wr["phone"] != "+15551234" {
		t.Errorf("unexpected whatsapp_response: %v", wr)
	}
	if id, _ := wr["message_id"].(string); !strings.HasPrefix(id, "msg_") {
		t.Errorf("message_id must carry the msg_ prefix: %v", wr["message_id"])
	}
}

func TestHandler_Notify_MalformedBody(t *testing.T) {
	h := NewHandler(NewSender(zerolog.Nop()))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(`{"phone":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Notify(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for malformed body, got %d", rec.Code)
	}
}

package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuccessKeepsNullData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Success[any](c, http.StatusOK, nil, "User deleted successfully!")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(body["data"]) != "null" {
		t.Fatalf("expected data=null, got %s", body["data"])
	}
	if _, ok := body["error"]; ok {
		t.Fatal("success response must not carry error")
	}
	if string(body["success"]) != "true" {
		t.Fatalf("expected success=true, got %s", body["success"])
	}
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, http.StatusNotFound, "User not found", "User not found!", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var body APIResponse[any]
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Data != nil || body.Error == nil {
		t.Fatalf("unexpected envelope %+v", body)
	}
	if body.Error.Code != http.StatusNotFound || body.Error.Description != "User not found!" {
		t.Fatalf("unexpected error body %+v", body.Error)
	}
}

func TestErrorDefaultsToBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, 0, "bad", "bad", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

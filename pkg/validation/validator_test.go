package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleRequest struct {
	Name  string   `json:"name" validate:"required,notblank,max=5"`
	Email string   `json:"email" validate:"required,email"`
	Score *float64 `json:"score" validate:"required,gt=0"`
	Tags  []string `json:"tags" validate:"required,dive,min=1,max=3"`
	Inner *struct {
		City string `json:"city" validate:"required"`
	} `json:"inner" validate:"required"`
}

func decodeErr(t *testing.T, v *Validator, body string) *ValidationError {
	t.Helper()
	var req sampleRequest
	err := v.Decode([]byte(body), &req)
	if err == nil {
		t.Fatalf("expected validation error for %s", body)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return verr
}

func TestDecodeValid(t *testing.T) {
	v := New()
	var req sampleRequest
	err := v.Decode([]byte(`{"name":"ada","email":"a@b.io","score":1.5,"tags":["x"],"inner":{"city":"Oslo"}}`), &req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Name != "ada" || *req.Score != 1.5 || req.Inner.City != "Oslo" {
		t.Fatalf("unexpected decode: %+v", req)
	}
}

func TestDecodeReportsEveryField(t *testing.T) {
	verr := decodeErr(t, New(), `{"name":"   ","email":"nope","score":-1,"tags":["", "toolong"],"inner":{}}`)

	want := map[string]string{
		"name":       "must not be empty or contain only whitespace",
		"email":      "must be a valid email",
		"score":      "must be greater than 0",
		"tags[0]":    "must be at least 1 characters long",
		"tags[1]":    "must be at most 3 characters long",
		"inner.city": "is required",
	}
	for field, reason := range want {
		got, ok := verr.Reason(field)
		if !ok {
			t.Fatalf("missing violation for %s in %v", field, verr.Fields)
		}
		if got != reason {
			t.Fatalf("%s: got reason %q, want %q", field, got, reason)
		}
	}
	if len(verr.Fields) != len(want) {
		t.Fatalf("expected %d violations, got %v", len(want), verr.Fields)
	}
}

func TestDecodeMissingFields(t *testing.T) {
	verr := decodeErr(t, New(), `{}`)
	for _, field := range []string{"name", "email", "score", "tags", "inner"} {
		if reason, ok := verr.Reason(field); !ok || reason != "is required" {
			t.Fatalf("%s: got %q (present=%v)", field, reason, ok)
		}
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	v := New()

	verr := decodeErr(t, v, `{"name":`)
	if reason, _ := verr.Reason("payload"); reason != "invalid json" {
		t.Fatalf("unexpected reason %q", reason)
	}

	verr = decodeErr(t, v, `{"score":"high"}`)
	if reason, _ := verr.Reason("score"); reason != "must be a number" {
		t.Fatalf("unexpected reason %q", reason)
	}

	verr = decodeErr(t, v, "   ")
	if reason, _ := verr.Reason("payload"); reason != "is required" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Field: "age", Reason: "must be greater than 0"}}}
	if !strings.Contains(err.Error(), "age must be greater than 0") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidatorsAreIndependent(t *testing.T) {
	a, b := New(), New()
	if a.v == b.v {
		t.Fatal("expected separate validator engines")
	}
}

func TestDecodeTypeErrorKeepsOtherViolations(t *testing.T) {
	verr := decodeErr(t, New(), `{"name":"ada","email":"nope","score":"high","tags":[""],"inner":{"city":"Oslo"}}`)

	want := map[string]string{
		"score":   "must be a number",
		"email":   "must be a valid email",
		"tags[0]": "must be at least 1 characters long",
	}
	for field, reason := range want {
		if got, _ := verr.Reason(field); got != reason {
			t.Fatalf("%s: got %q, want %q (all: %v)", field, got, reason, verr.Fields)
		}
	}
	if len(verr.Fields) != len(want) {
		t.Fatalf("mistyped field must be reported once, got %v", verr.Fields)
	}
}

func TestMaxBytesCountsBytes(t *testing.T) {
	type secret struct {
		Value string `json:"value" validate:"required,maxbytes=4"`
	}
	v := New()

	var ok secret
	if err := v.Decode([]byte(`{"value":"abcd"}`), &ok); err != nil {
		t.Fatalf("4 bytes should pass: %v", err)
	}

	var tooLong secret
	err := v.Decode([]byte(`{"value":"ééé"}`), &tooLong)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if reason, _ := verr.Reason("value"); reason != "must be at most 4 bytes long" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

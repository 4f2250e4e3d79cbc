package ecode

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	e := Validation("Invalid query parameters", "userId")
	if e.Code != CodeValidation || e.Status != http.StatusBadRequest || e.Field != "userId" {
		t.Fatalf("unexpected validation error: %+v", e)
	}

	e = Validation("Invalid request body")
	if e.Field != "" {
		t.Fatalf("expected empty field, got %q", e.Field)
	}

	e = NotFound("Quest", "abc-123")
	if e.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", e.Status)
	}
	if e.Message != "Quest with id abc-123 not found" {
		t.Fatalf("unexpected message: %q", e.Message)
	}

	e = NotFound("Quest")
	if e.Message != "Quest not found" {
		t.Fatalf("unexpected message: %q", e.Message)
	}

	e = Duplicate()
	if e.Code != CodeDuplicate || e.Status != http.StatusConflict {
		t.Fatalf("unexpected duplicate error: %+v", e)
	}
	if e.Message == "" {
		t.Fatal("expected a default duplicate message")
	}

	e = Internal()
	if e.Status != http.StatusInternalServerError || e.Message != "An unexpected error occurred" {
		t.Fatalf("unexpected internal error: %+v", e)
	}
}

func TestFrom(t *testing.T) {
	orig := NotFound("User", "u-1")
	if got := From(fmt.Errorf("loading user: %w", orig)); got != orig {
		t.Fatalf("expected wrapped error to be unwrapped, got %+v", got)
	}

	got := From(errors.New("connection reset"))
	if got.Code != CodeInternal {
		t.Fatalf("expected opaque error to map to internal, got %+v", got)
	}
	if got.Message != "An unexpected error occurred" {
		t.Fatalf("internal detail must be suppressed, got %q", got.Message)
	}
}

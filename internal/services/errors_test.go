package services_test

import (
	"errors"
	"strings"
	"testing"

	"benchmatch/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrLoad, "loader", "read benchmarks", "missing column", base)
	if !errors.Is(err, services.ErrLoad) {
		t.Fatalf("expected wrapped error to match ErrLoad: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to retain cause: %v", err)
	}
	for _, want := range []string{"loader", "read benchmarks", "missing column", "boom"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error message, got %q", want, err.Error())
		}
	}
}

func TestWrapNilMarkerDefaultsToValidation(t *testing.T) {
	err := services.Wrap(nil, "matcher", "", "", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected default marker ErrValidation, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := services.Wrap(services.ErrConfiguration, "", "", "", nil)
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

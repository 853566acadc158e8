package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	t.Parallel()

	err := New(CodeValidation, "quantity must be an integer")
	if err.Code() != CodeValidation {
		t.Fatalf("unexpected code: %s", err.Code())
	}
	if err.Message() != "quantity must be an integer" {
		t.Fatalf("unexpected message: %s", err.Message())
	}
	if err.Error() != "VALIDATION_ERROR: quantity must be an integer" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := Wrap(CodeDependency, cause, "persist collection")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code: %s", err.Code())
	}
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeNotFound, nil, "order not found")
	if err.Unwrap() != nil {
		t.Fatal("expected no cause")
	}
	if err.Code() != CodeNotFound {
		t.Fatalf("unexpected code: %s", err.Code())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	t.Parallel()

	inner := New(CodeNotFound, "product not found")
	outer := fmt.Errorf("loading catalog: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code: %s", typed.Code())
	}

	if As(errors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := Wrap(CodeDependency, cause, "save cart")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code: %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %d", len(dump.Chain))
	}
}

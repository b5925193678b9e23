package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewFromRegisteredCode(t *testing.T) {
	err := New(CodeUnknownKind)

	if err.Code != "E201" {
		t.Errorf("Code = %q, want E201", err.Code)
	}
	if err.Category != CategoryModel {
		t.Errorf("Category = %q, want model", err.Category)
	}
	if err.Message == "" {
		t.Error("Message is empty")
	}
	if err.Detail == "" {
		t.Error("Detail is empty")
	}
}

func TestNewUnregisteredCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" {
		t.Errorf("Code = %q, want E999", err.Code)
	}
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q, want Unknown error", err.Message)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *CanvasError
		want string
	}{
		{
			name: "with code",
			err:  &CanvasError{Code: "E201", Message: "Unknown component kind"},
			want: "E201: Unknown component kind",
		},
		{
			name: "without code",
			err:  &CanvasError{Message: "something broke"},
			want: "something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := New(CodePersistenceFailed).Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestHasCode(t *testing.T) {
	inner := New(CodeUnknownKind)
	outer := New(CodePersistenceFailed).Wrap(inner)

	if !HasCode(outer, CodePersistenceFailed) {
		t.Error("HasCode should match the outer code")
	}
	if !HasCode(outer, CodeUnknownKind) {
		t.Error("HasCode should match a wrapped code")
	}
	if HasCode(outer, CodeGenerationAborted) {
		t.Error("HasCode matched a code not in the chain")
	}
	if HasCode(fmt.Errorf("plain"), CodeUnknownKind) {
		t.Error("HasCode matched a plain error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodePersistenceFailed) != nil {
		t.Error("FromError(nil) should be nil")
	}

	ce := New(CodeUnknownKind)
	if got := FromError(ce, CodePersistenceFailed); got != ce {
		t.Error("FromError should pass through a CanvasError unchanged")
	}

	plain := fmt.Errorf("boom")
	wrapped := FromError(plain, CodePersistenceFailed)
	if wrapped.Code != CodePersistenceFailed {
		t.Errorf("Code = %q, want %q", wrapped.Code, CodePersistenceFailed)
	}
	if !stderrors.Is(wrapped, plain) {
		t.Error("wrapped cause lost")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeGenerationAborted).
		WithDetail("Output directory /tmp/out could not be created").
		WithSuggestion("Check permissions on the output root")

	out := err.Format()
	for _, want := range []string{"E501", "Generation aborted", "Output directory", "Hint:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(CodeInstanceNotFound)
	if got := err.FormatCompact(); got != "E202: Component instance not found" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven eight nine ten", 20)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %v", lines)
	}
	for _, line := range lines {
		if len(line) > 20 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}

func TestGetTemplate(t *testing.T) {
	if _, ok := GetTemplate(CodeUnknownKind); !ok {
		t.Error("E201 should be registered")
	}
	if _, ok := GetTemplate("E000"); ok {
		t.Error("E000 should not be registered")
	}
	if len(GetAllCodes()) != len(registry) {
		t.Error("GetAllCodes length mismatch")
	}
}

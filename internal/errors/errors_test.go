package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "route not found",
			code:    CodeRouteNotFound,
			wantMsg: "Route not found",
			wantCat: CategoryRouting,
		},
		{
			name:    "transport error",
			code:    CodeTransport,
			wantMsg: "Transport failed",
			wantCat: CategoryTransport,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	got := New(CodeRouteNotFound).Error()
	want := "E100: Route not found"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New(CodeTransport).Wrap(fmt.Errorf("dial tcp: refused"))
	if !strings.HasSuffix(wrapped.Error(), ": dial tcp: refused") {
		t.Errorf("Error() = %q, want cause appended", wrapped.Error())
	}

	plain := &Error{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestIsByCode(t *testing.T) {
	err := fmt.Errorf("render post: %w", New(CodeRouteNotFound).WithDetail("/missing"))
	if !stderrors.Is(err, ErrRouteNotFound) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(New(CodeResolution), ErrRouteNotFound) {
		t.Error("different codes should not match")
	}
	if stderrors.Is(&Error{Message: "x"}, &Error{Message: "x"}) {
		t.Error("uncoded errors should not match")
	}
}

func TestWrap(t *testing.T) {
	inner := New(CodeWireDecode)
	outer := New(CodeTransport).Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should see wrapped code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeTransport) != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	e := New(CodeConfig)
	if FromError(fmt.Errorf("load: %w", e), CodeTransport) != e {
		t.Error("FromError should return the chained Error as-is")
	}

	std := stderrors.New("boom")
	result := FromError(std, CodeTransport)
	if result.Wrapped != std || result.Code != CodeTransport {
		t.Errorf("FromError() = %+v", result)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", ErrRouteNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("component Post: %w", ErrRouteNotFound), http.StatusNotFound},
		{"resolution", New(CodeResolution), http.StatusInternalServerError},
		{"plain", stderrors.New("disk full"), http.StatusInternalServerError},
		{"transport has no status", New(CodeTransport), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	formatted := New(CodeConfig).Wrap(stderrors.New("unknown store kind")).Format()

	for _, want := range []string{"E130", "Invalid configuration", "rsc.yaml", "Cause: unknown store kind"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint() = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 || codes[0] != CodeRouteNotFound {
		t.Errorf("GetAllCodes() = %v", codes)
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryRuntime,
		Message:  "Custom test error",
	})
	defer delete(registry, "E999")

	if _, ok := GetTemplate("E999"); !ok {
		t.Fatal("E999 should exist")
	}
	if New("E999").Message != "Custom test error" {
		t.Error("Message mismatch")
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("short text", 100); len(got) != 1 {
		t.Errorf("wrapText short text: got %v", got)
	}
	if got := wrapText("this is a longer text that should be wrapped", 20); len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}
	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}

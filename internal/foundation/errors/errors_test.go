package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docnav.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		file, ok := err.Context().GetString("file")
		assert.True(t, ok)
		assert.Equal(t, "docnav.yaml", file)
	})

	t.Run("Wrapped cause", func(t *testing.T) {
		cause := stderrors.New("boom")
		err := WrapError(cause, CategoryFileSystem, "read failed").Build()

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "[filesystem:error] read failed: boom", err.Error())
	})

	t.Run("Found through fmt wrapping", func(t *testing.T) {
		inner := StructureError("cycle detected").Build()
		wrapped := fmt.Errorf("walk: %w", inner)

		got, ok := AsClassified(wrapped)
		require.True(t, ok)
		assert.Same(t, inner, got)
		assert.True(t, HasCategory(wrapped, CategoryStructure))
		assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := ParseError("bad token").Build()
		withPath := base.WithContext("path", "menudata.js")

		_, has := base.Context().Get("path")
		assert.False(t, has)
		p, _ := withPath.Context().GetString("path")
		assert.Equal(t, "menudata.js", p)
		assert.ErrorIs(t, withPath, base)
	})
}

func TestRetryClassification(t *testing.T) {
	assert.False(t, ConfigError("x").Build().CanRetry())
	assert.True(t, FileSystemError("x").Build().CanRetry())
	assert.True(t, NetworkError("x").Build().CanRetry())
	assert.False(t, StructureError("x").Build().CanRetry())
	assert.True(t, InternalError("x").Build().IsFatal())
}

func TestCLIErrorAdapterExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{stderrors.New("plain"), 1},
		{ValidationError("x").Build(), 2},
		{StructureError("x").Build(), 3},
		{ParseError("x").Build(), 3},
		{NotFoundError("x").Build(), 4},
		{ConfigError("x").Build(), 7},
		{NetworkError("x").Build(), 8},
		{InternalError("x").Build(), 10},
		{FileSystemError("x").Build(), 11},
		{StorageError("x").Build(), 12},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, a.ExitCodeFor(tc.err), "%v", tc.err)
	}
}

func TestCLIErrorAdapterReport(t *testing.T) {
	var logs, out bytes.Buffer
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	a.out = &out

	code := a.Report(ConfigError("missing source").WithContext("path", "x.json").Build())

	assert.Equal(t, 7, code)
	assert.Equal(t, "Error: missing source\n", out.String())
	assert.Contains(t, logs.String(), "category=config")
	assert.Contains(t, logs.String(), "path=x.json")
}

func TestCLIErrorAdapterHidesInternalDetails(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	msg := a.FormatError(InternalError("nil pointer in renderer").Build())
	assert.Equal(t, "Internal error occurred (use -v for details)", msg)

	verbose := NewCLIErrorAdapter(true, nil)
	assert.Contains(t, verbose.FormatError(InternalError("nil pointer in renderer").Build()), "nil pointer")
}

func TestHTTPErrorAdapter(t *testing.T) {
	a := NewHTTPErrorAdapter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.Equal(t, http.StatusOK, a.StatusCodeFor(nil))
	assert.Equal(t, http.StatusNotFound, a.StatusCodeFor(NotFoundError("x").Build()))
	assert.Equal(t, http.StatusUnprocessableEntity, a.StatusCodeFor(StructureError("x").Build()))
	assert.Equal(t, http.StatusInternalServerError, a.StatusCodeFor(stderrors.New("x")))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/menu.json", nil)
	a.WriteErrorResponse(rec, req, FileSystemError("source unreadable").WithContext("path", "menu.json").Build())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"source unreadable","code":"filesystem","details":{"path":"menu.json"},"retryable":true}`, rec.Body.String())
}

func TestHTTPErrorAdapterKeepsWrapperMessage(t *testing.T) {
	a := NewHTTPErrorAdapter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	sentinel := StructureError("navigation tree failed validation").Build()
	wrapped := fmt.Errorf("menu.yaml: invalid navigation tree (1 problem)\n  /children/0: missing url: %w", sentinel)

	resp := a.FormatErrorResponse(wrapped)
	assert.Equal(t, wrapped.Error(), resp.Error)
	assert.Equal(t, string(CategoryStructure), resp.Code)

	resp = a.FormatErrorResponse(sentinel)
	assert.Equal(t, "navigation tree failed validation", resp.Error)
}

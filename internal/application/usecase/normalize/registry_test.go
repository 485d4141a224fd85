package normalize

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
)

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()

	t.Run("resolves built-in adapters", func(t *testing.T) {
		for _, name := range []string{AdapterPassthrough, AdapterCoreGL} {
			a, err := r.Resolve(name)
			if err != nil {
				t.Fatalf("unexpected error for %s: %v", name, err)
			}
			if a.Name() != name {
				t.Errorf("expected %s, got %s", name, a.Name())
			}
		}
	})

	t.Run("unknown adapter lists valid names", func(t *testing.T) {
		_, err := r.Resolve("quickbooks")
		if !errors.Is(err, domainerror.ErrUnknownAdapter) {
			t.Fatalf("expected ErrUnknownAdapter, got %v", err)
		}
		msg := err.Error()
		if !strings.Contains(msg, `unknown adapter "quickbooks"`) {
			t.Errorf("expected message to quote the bad name, got %q", msg)
		}
		if !strings.Contains(msg, "passthrough") || !strings.Contains(msg, "core_gl") {
			t.Errorf("expected message to list valid adapters, got %q", msg)
		}
	})

	t.Run("empty adapter name is a config error", func(t *testing.T) {
		_, err := r.Resolve("")
		if !errors.Is(err, domainerror.ErrMissingAdapterConfig) {
			t.Fatalf("expected ErrMissingAdapterConfig, got %v", err)
		}
		if !strings.Contains(err.Error(), "passthrough") {
			t.Errorf("expected message to list valid adapters, got %q", err.Error())
		}
	})
}

func TestRegistryNamesSorted(t *testing.T) {
	names := NewRegistry().Names()
	want := []string{AdapterCoreGL, AdapterPassthrough}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}

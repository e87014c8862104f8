package tools

import (
	"context"
	"testing"

	"github.com/user/weatherbot/internal/llmtypes"
)

type stubTool struct {
	name string
}

func (s stubTool) Name() string                       { return s.name }
func (s stubTool) Description() string                { return "stub" }
func (s stubTool) Parameters() map[string]interface{} { return map[string]interface{}{"type": "object"} }
func (s stubTool) Execute(ctx context.Context, params map[string]interface{}) llmtypes.ToolResult {
	return llmtypes.NewToolSuccess(s.name)
}

func TestDefaultRegistry_Declarations(t *testing.T) {
	registry := NewDefaultRegistry(&fakeLookup{})

	defs := registry.Declarations()
	if len(defs) != 1 {
		t.Fatalf("Expected exactly 1 declaration, got %d", len(defs))
	}
	if defs[0].Name != "get_current_weather" {
		t.Errorf("Expected get_current_weather, got %s", defs[0].Name)
	}
	if defs[0].Description == "" || defs[0].Parameters == nil {
		t.Error("Expected description and parameters to be populated")
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := NewDefaultRegistry(&fakeLookup{})

	if _, ok := registry.Get("get_current_weather"); !ok {
		t.Error("Expected weather tool to be resolvable")
	}
	if _, ok := registry.Get("get_forecast"); ok {
		t.Error("Expected unknown tool lookup to fail")
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	_, err := NewRegistry(stubTool{"a"}, stubTool{"a"})
	if err == nil {
		t.Error("Expected error for duplicate tool name")
	}
}

func TestRegistry_RegisterNil(t *testing.T) {
	registry, _ := NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Error("Expected error for nil tool")
	}
}

func TestRegistry_PreservesOrder(t *testing.T) {
	registry, err := NewRegistry(stubTool{"b"}, stubTool{"a"}, stubTool{"c"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	names := registry.Names()
	want := []string{"b", "a", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], names[i])
		}
	}

	defs := registry.Declarations()
	if defs[0].Name != "b" || defs[2].Name != "c" {
		t.Errorf("Declarations out of order: %v", defs)
	}
	if registry.Len() != 3 {
		t.Errorf("Expected 3 tools, got %d", registry.Len())
	}
}

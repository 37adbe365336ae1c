package server

import (
	"encoding/json"
	"testing"
)

var expectedTools = []string{
	"image_load",
	"image_dimensions",
	"image_sample_sort_keys",
	"image_sort_key_stats",
	"pixel_sort",
	"pixel_sort_spans",
	"pixel_sort_save_preset",
}

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	seen := make(map[string]bool)
	for _, tool := range tools {
		if seen[tool.Name] {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		seen[tool.Name] = true
	}
	for _, name := range expectedTools {
		if !seen[name] {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("properties should be a map")
			}
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s has no property", r)
				}
			}

			// Schemas must survive the trip to the client.
			if _, err := json.Marshal(tool); err != nil {
				t.Errorf("failed to marshal: %v", err)
			}
		})
	}
}

func TestToolDefinitions_SortParameters(t *testing.T) {
	params := []string{
		"preset", "direction", "sort_key", "interval_mode", "lower_threshold",
		"upper_threshold", "reverse", "jitter", "span_min", "span_max", "angle", "falloff",
	}
	selection := []string{"mask_path", "invert_mask", "region", "named_region", "feather"}

	tests := []struct {
		tool          string
		wantSelection bool
	}{
		{"pixel_sort", true},
		{"pixel_sort_spans", true},
		{"pixel_sort_save_preset", false},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			props := toolByName(t, tt.tool).InputSchema["properties"].(map[string]interface{})
			for _, p := range params {
				if _, ok := props[p]; !ok {
					t.Errorf("missing sort parameter %s", p)
				}
			}
			for _, p := range selection {
				if _, ok := props[p]; ok != tt.wantSelection {
					t.Errorf("selection parameter %s: present=%t, want %t", p, ok, tt.wantSelection)
				}
			}
		})
	}
}

func TestToolDefinitions_Enums(t *testing.T) {
	props := toolByName(t, "pixel_sort").InputSchema["properties"].(map[string]interface{})

	tests := []struct {
		param string
		want  []string
	}{
		{"direction", []string{"horizontal", "vertical"}},
		{"sort_key", []string{"brightness", "hue", "saturation", "intensity", "minimum", "red", "green", "blue"}},
		{"interval_mode", []string{"threshold", "random", "edges", "waves", "none"}},
		{"named_region", []string{
			"top-left", "top-right", "bottom-left", "bottom-right",
			"top-half", "bottom-half", "left-half", "right-half", "center",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			prop, ok := props[tt.param].(map[string]interface{})
			if !ok {
				t.Fatalf("%s property should be a map", tt.param)
			}
			enum, ok := prop["enum"].([]string)
			if !ok {
				t.Fatalf("%s should have an enum", tt.param)
			}
			if len(enum) != len(tt.want) {
				t.Fatalf("enum: got %v, want %v", enum, tt.want)
			}
			for i := range enum {
				if enum[i] != tt.want[i] {
					t.Errorf("enum[%d]: got %s, want %s", i, enum[i], tt.want[i])
				}
			}
		})
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer()
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expectedTools))
	}
}

package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_sample_color",
		"image_sample_colors_multi",
		"image_round_avatar",
		"image_combine",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
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
				t.Fatal("InputSchema missing 'properties' map")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("InputSchema missing 'required' list")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required field %q has no property schema", r)
				}
			}
		})
	}
}

func TestToolDefinitions_CombineRequired(t *testing.T) {
	var combine *Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "image_combine" {
			tool := tool
			combine = &tool
		}
	}
	if combine == nil {
		t.Fatal("image_combine not defined")
	}

	required := combine.InputSchema["required"].([]string)
	want := map[string]bool{"background_path": true, "avatar_path": true, "x": true, "y": true, "size": true}
	if len(required) != len(want) {
		t.Errorf("required: got %v", required)
	}
	for _, r := range required {
		if !want[r] {
			t.Errorf("unexpected required field %q", r)
		}
	}
}

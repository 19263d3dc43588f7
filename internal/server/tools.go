package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional file to write the result to (.png, .jpg, .jpeg or .bmp). When omitted the image is returned inline as base64 PNG.",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, detected format, color depth and whether it has an alpha channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact RGBA color at a pixel. Useful to check where an avatar landed and how it blended.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at several pixels in one call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Points to sample",
					},
				},
				"required": []string{"path", "points"},
			},
		},

		// Compositing
		{
			Name:        "image_round_avatar",
			Description: "Resize an image to a square with a Lanczos filter and cut it to the inscribed circle. Pixels outside the circle become fully transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the avatar image"),
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Side of the output square in pixels",
						"minimum":     1,
						"maximum":     maxAvatarSize,
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "size"},
			},
		},
		{
			Name: "image_combine",
			Description: "Composite a circular avatar onto a background. The avatar is placed 10 pixels up and left of (x, y), clamped at 0, " +
				"and scaled down proportionally if it would overflow the background. The result has the size of the background.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"background_path": pathProperty("Absolute path to the background image"),
					"avatar_path":     pathProperty("Absolute path to the avatar image"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Requested avatar X position in background pixels",
						"minimum":     0,
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Requested avatar Y position in background pixels",
						"minimum":     0,
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Side of the avatar square in pixels before any overflow scaling. 0 leaves the background unchanged.",
						"minimum":     0,
						"maximum":     maxAvatarSize,
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"background_path", "avatar_path", "x", "y", "size"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

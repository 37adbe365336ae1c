package server

import (
	"github.com/ironsheep/pixelsort-mcp/internal/pixelsort"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func sortKeyNames() []string {
	keys := pixelsort.SortKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return names
}

func regionProperty() map[string]interface{} {
	coord := func(desc string) map[string]interface{} {
		return map[string]interface{}{"type": "integer", "description": desc}
	}
	return map[string]interface{}{
		"type":        "object",
		"description": "Rectangular region; (x1,y1) inclusive, (x2,y2) exclusive",
		"properties": map[string]interface{}{
			"x1": coord("Left edge X coordinate (0-based)"),
			"y1": coord("Top edge Y coordinate (0-based)"),
			"x2": coord("Right edge X coordinate (exclusive)"),
			"y2": coord("Bottom edge Y coordinate (exclusive)"),
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

var namedRegions = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

// sortParamProperties describes the sort parameters shared by the sorting
// tools. Every one is optional.
func sortParamProperties() map[string]interface{} {
	return map[string]interface{}{
		"preset": map[string]interface{}{
			"type":        "string",
			"description": "Path to a TOML preset; other parameters override its values",
		},
		"direction": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"horizontal", "vertical"},
			"description": "Sort rows (horizontal) or columns (vertical). Default horizontal",
		},
		"sort_key": map[string]interface{}{
			"type":        "string",
			"enum":        sortKeyNames(),
			"description": "Colour metric pixels are ordered by. Default brightness",
		},
		"interval_mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"threshold", "random", "edges", "waves", "none"},
			"description": "How each line is split into spans. Default threshold",
		},
		"lower_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Threshold mode lower bound on the 0-255 scale. Default 64",
		},
		"upper_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Threshold mode upper bound on the 0-255 scale. Default 204",
		},
		"reverse": map[string]interface{}{
			"type":        "boolean",
			"description": "Sort each span in descending order",
		},
		"jitter": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum random displacement after sorting (0-100)",
		},
		"span_min": map[string]interface{}{
			"type":        "integer",
			"description": "Drop spans shorter than this (1-10000). Default 1",
		},
		"span_max": map[string]interface{}{
			"type":        "integer",
			"description": "Split spans longer than this; 0 is unlimited",
		},
		"angle": map[string]interface{}{
			"type":        "integer",
			"description": "Rotate the sort axis by this many degrees (horizontal only)",
		},
		"falloff": map[string]interface{}{
			"type":        "integer",
			"description": "Percent chance each span is left unsorted (0-100)",
		},
	}
}

// selectionProperties describes the optional selection sources. At most one
// of mask_path, region and named_region may be given.
func selectionProperties() map[string]interface{} {
	return map[string]interface{}{
		"mask_path": map[string]interface{}{
			"type":        "string",
			"description": "Grayscale mask the size of the image; white is sorted, black untouched, gray blended",
		},
		"invert_mask": map[string]interface{}{
			"type":        "boolean",
			"description": "Sort where the mask is dark instead of light",
		},
		"region": regionProperty(),
		"named_region": map[string]interface{}{
			"type":        "string",
			"enum":        namedRegions,
			"description": "Restrict sorting to a named part of the image",
		},
		"feather": map[string]interface{}{
			"type":        "integer",
			"description": "Soft edge width in pixels for region selections. Default 0",
		},
	}
}

func mergeProperties(sets ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has transparency. Supports PNG, JPEG, GIF, BMP, TIFF and WebP.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file, and the size of the rotated frame an angled sort works in.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"angle": map[string]interface{}{
						"type":        "integer",
						"description": "Sort angle in degrees. Default 0",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},

		// Threshold Helpers
		{
			Name:        "image_sample_sort_keys",
			Description: "Evaluate every sort key at one or more pixels. Threshold values are on the same 0-255 scale as lower_threshold and upper_threshold.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Pixels to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_sort_key_stats",
			Description: "Summarize how a sort key is distributed over an image or region, and what share of pixels a threshold range would select. Use this to choose thresholds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"sort_key": map[string]interface{}{
						"type":        "string",
						"enum":        sortKeyNames(),
						"description": "Sort key to analyze. Default brightness",
					},
					"region": regionProperty(),
					"named_region": map[string]interface{}{
						"type": "string",
						"enum": namedRegions,
					},
					"lower_threshold": map[string]interface{}{"type": "integer", "default": 64},
					"upper_threshold": map[string]interface{}{"type": "integer", "default": 204},
				},
				"required": []string{"path"},
			},
		},

		// Sorting
		{
			Name:        "pixel_sort",
			Description: "Pixel-sort an image. Each row or column is split into spans and the pixels in each span are sorted by a colour metric. Returns the result as base64 PNG, or saves it when output_path is given. Results are deterministic.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(
					map[string]interface{}{
						"path": pathProperty(),
						"output_path": map[string]interface{}{
							"type":        "string",
							"description": "Save the result here (.png, .jpg or .bmp) instead of returning it",
						},
						"preview_scale": map[string]interface{}{
							"type":        "number",
							"description": "Scale factor for the returned image. Default 1.0",
							"default":     1.0,
						},
					},
					sortParamProperties(),
					selectionProperties(),
				),
				"required": []string{"path"},
			},
		},
		{
			Name:        "pixel_sort_spans",
			Description: "Show the spans one row or column is split into under the given parameters, without returning an image. For angled sorts the index is a row of the rotated frame.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(
					map[string]interface{}{
						"path": pathProperty(),
						"index": map[string]interface{}{
							"type":        "integer",
							"description": "Row (horizontal) or column (vertical) number",
						},
					},
					sortParamProperties(),
					selectionProperties(),
				),
				"required": []string{"path", "index"},
			},
		},
		{
			Name:        "pixel_sort_save_preset",
			Description: "Write sort parameters to a TOML preset file that pixel_sort and the CLI can load.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(
					map[string]interface{}{
						"output_path": map[string]interface{}{
							"type":        "string",
							"description": "Path of the preset file to write",
						},
					},
					sortParamProperties(),
				),
				"required": []string{"output_path"},
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

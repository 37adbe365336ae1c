package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixelsort-mcp/internal/config"
	imgtools "github.com/ironsheep/pixelsort-mcp/internal/imaging"
	"github.com/ironsheep/pixelsort-mcp/internal/pixelsort"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "pixel_sort").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool done", "tool", params.Name, "elapsed", time.Since(start).Round(time.Millisecond))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Resolves sort parameters from preset, overrides and defaults
//  3. Loads images and masks from cache as needed
//  4. Calls the imaging or pixelsort function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Threshold Helpers
	case "image_sample_sort_keys":
		return s.handleImageSampleSortKeys(args)
	case "image_sort_key_stats":
		return s.handleImageSortKeyStats(args)

	// Sorting
	case "pixel_sort":
		return s.handlePixelSort(args)
	case "pixel_sort_spans":
		return s.handlePixelSortSpans(args)
	case "pixel_sort_save_preset":
		return s.handlePixelSortSavePreset(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imgtools.LoadImageInfo(s.cache, a.Path)
}

type imageDimensionsArgs struct {
	Path  string `json:"path"`
	Angle int    `json:"angle"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageDimensionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imgtools.GetDimensions(s.cache, a.Path, a.Angle)
}

// === Threshold Helper Handlers ===

type imageSampleSortKeysArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleSortKeys(args json.RawMessage) (interface{}, error) {
	var a imageSampleSortKeysArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Points) == 0 {
		return nil, fmt.Errorf("at least one point is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imgtools.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imgtools.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	samples, err := imgtools.SampleSortKeysMulti(img, points)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"samples": samples}, nil
}

type imageSortKeyStatsArgs struct {
	Path           string            `json:"path"`
	SortKey        pixelsort.SortKey `json:"sort_key"`
	Region         *imgtools.Region  `json:"region,omitempty"`
	NamedRegion    string            `json:"named_region,omitempty"`
	LowerThreshold *int              `json:"lower_threshold,omitempty"`
	UpperThreshold *int              `json:"upper_threshold,omitempty"`
}

func (s *Server) handleImageSortKeyStats(args json.RawMessage) (interface{}, error) {
	var a imageSortKeyStatsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	region := a.Region
	if region == nil && a.NamedRegion != "" {
		r, err := imgtools.NamedRegion(img.Bounds(), a.NamedRegion)
		if err != nil {
			return nil, err
		}
		region = &r
	}

	defaults := pixelsort.DefaultParameters()
	lower, upper := defaults.LowerThreshold, defaults.UpperThreshold
	if a.LowerThreshold != nil {
		lower = *a.LowerThreshold
	}
	if a.UpperThreshold != nil {
		upper = *a.UpperThreshold
	}
	return imgtools.SortKeyStats(img, a.SortKey, region, lower, upper)
}

// === Sorting Handlers ===

// sortParamArgs holds the sort parameters a tool call may set. Fields left
// out keep the preset's value, or the default when no preset is given.
type sortParamArgs struct {
	Preset         string                  `json:"preset,omitempty"`
	Direction      *pixelsort.Direction    `json:"direction,omitempty"`
	SortKey        *pixelsort.SortKey      `json:"sort_key,omitempty"`
	IntervalMode   *pixelsort.IntervalMode `json:"interval_mode,omitempty"`
	LowerThreshold *int                    `json:"lower_threshold,omitempty"`
	UpperThreshold *int                    `json:"upper_threshold,omitempty"`
	Reverse        *bool                   `json:"reverse,omitempty"`
	Jitter         *int                    `json:"jitter,omitempty"`
	SpanMin        *int                    `json:"span_min,omitempty"`
	SpanMax        *int                    `json:"span_max,omitempty"`
	Angle          *int                    `json:"angle,omitempty"`
	Falloff        *int                    `json:"falloff,omitempty"`
}

// resolve layers the overrides over the preset (or defaults) and clamps.
func (a sortParamArgs) resolve() (pixelsort.Parameters, error) {
	p := pixelsort.DefaultParameters()
	if a.Preset != "" {
		preset, err := config.LoadPreset(a.Preset)
		if err != nil {
			return pixelsort.Parameters{}, err
		}
		p = preset
	}

	if a.Direction != nil {
		p.Direction = *a.Direction
	}
	if a.SortKey != nil {
		p.SortKey = *a.SortKey
	}
	if a.IntervalMode != nil {
		p.IntervalMode = *a.IntervalMode
	}
	setInt(&p.LowerThreshold, a.LowerThreshold)
	setInt(&p.UpperThreshold, a.UpperThreshold)
	if a.Reverse != nil {
		p.Reverse = *a.Reverse
	}
	setInt(&p.Jitter, a.Jitter)
	setInt(&p.SpanMin, a.SpanMin)
	setInt(&p.SpanMax, a.SpanMax)
	setInt(&p.Angle, a.Angle)
	setInt(&p.Falloff, a.Falloff)

	return p.Clamp(), nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

type pixelSortArgs struct {
	Path string `json:"path"`
	sortParamArgs
	imgtools.SelectionOptions
	OutputPath   string  `json:"output_path,omitempty"`
	PreviewScale float64 `json:"preview_scale,omitempty"`
}

// PixelSortResult is returned by the pixel_sort tool.
type PixelSortResult struct {
	Width      int                    `json:"width"`
	Height     int                    `json:"height"`
	Parameters pixelsort.Parameters   `json:"parameters"`
	Selection  string                 `json:"selection"`
	OutputPath string                 `json:"output_path,omitempty"`
	Image      *imgtools.EncodedImage `json:"image,omitempty"`
	ElapsedMS  int64                  `json:"elapsed_ms"`
}

func (s *Server) handlePixelSort(args json.RawMessage) (interface{}, error) {
	var a pixelSortArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	params, err := a.resolve()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	mask, selection, err := a.Mask(s.cache, bounds)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out := imaging.Clone(img)
	out.Rect = bounds
	s.engine.RunBlocks(out, mask, params, s.settings.BlockSize)
	elapsed := time.Since(start)
	s.logger.Info("sorted", "path", a.Path, "width", bounds.Dx(), "height", bounds.Dy(),
		"mode", params.IntervalMode, "key", params.SortKey, "elapsed", elapsed.Round(time.Millisecond))

	result := &PixelSortResult{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Parameters: params,
		Selection:  selection,
		ElapsedMS:  elapsed.Milliseconds(),
	}

	if a.OutputPath != "" {
		if err := imgtools.SaveImage(a.OutputPath, out); err != nil {
			return nil, err
		}
		s.cache.Evict(a.OutputPath)
		result.OutputPath = a.OutputPath
		return result, nil
	}

	encoded, err := imgtools.EncodePNG(out, a.PreviewScale)
	if err != nil {
		return nil, err
	}
	result.Image = encoded
	return result, nil
}

type pixelSortSpansArgs struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
	sortParamArgs
	imgtools.SelectionOptions
}

func (s *Server) handlePixelSortSpans(args json.RawMessage) (interface{}, error) {
	var a pixelSortSpansArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	params, err := a.resolve()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	mask, _, err := a.Mask(s.cache, img.Bounds())
	if err != nil {
		return nil, err
	}

	report, ok := s.engine.InspectLine(img, mask, params, a.Index)
	if !ok {
		return nil, fmt.Errorf("line %d does not exist for %s sorting of this image", a.Index, params.Direction)
	}
	return map[string]interface{}{
		"parameters": params,
		"line":       report,
	}, nil
}

type pixelSortSavePresetArgs struct {
	OutputPath string `json:"output_path"`
	sortParamArgs
}

func (s *Server) handlePixelSortSavePreset(args json.RawMessage) (interface{}, error) {
	var a pixelSortSavePresetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, fmt.Errorf("output_path is required")
	}
	params, err := a.resolve()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := config.EncodePreset(&buf, params); err != nil {
		return nil, err
	}
	if err := os.WriteFile(a.OutputPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write preset: %w", err)
	}
	return map[string]interface{}{
		"output_path": a.OutputPath,
		"parameters":  params,
		"preset":      buf.String(),
	}, nil
}

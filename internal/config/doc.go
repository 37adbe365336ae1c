// Package config loads sort presets and process settings.
//
// Presets are small TOML files holding a pixelsort.Parameters value:
//
//	direction = "horizontal"
//	sort_key = "hue"
//	interval_mode = "threshold"
//	lower_threshold = 40
//	upper_threshold = 220
//	span_max = 120
//	angle = 30
//
// Any key left out keeps its default. Settings come from the environment
// (PIXELSORT_MCP_LOG_LEVEL, PIXELSORT_MCP_BLOCK_SIZE).
package config

// Package server implements the MCP (Model Context Protocol) server for pixel sorting.
//
// This package provides a JSON-RPC 2.0 server that exposes the pixel sort
// engine and its threshold helpers through the MCP protocol, so an MCP client
// can inspect an image, choose parameters and render sorted results.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height, and the rotated frame size for an angle
//
// Threshold Helpers:
//   - image_sample_sort_keys: Evaluate every sort key at given pixels
//   - image_sort_key_stats: Distribution of one sort key and threshold coverage
//
// Sorting:
//   - pixel_sort: Sort an image, returning base64 PNG or saving to a file
//   - pixel_sort_spans: Show the spans of one row or column
//   - pixel_sort_save_preset: Write parameters to a TOML preset
//
// Sort parameters may come from a preset file, per-call arguments or both;
// arguments win. Every parameter set is clamped before use, so out-of-range
// values never fail a call.
//
// # Image Caching
//
// Source images and masks are cached by path for the lifetime of the server.
// Saving a result evicts its path so a later load sees the new file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client through the pixelsort-mcp
// command:
//
//	srv := server.New(logger, config.LoadSettings(), version)
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal("server stopped", "err", err)
//	}
package server

// Package server implements the MCP (Model Context Protocol) server for
// avatar compositing.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout (one per line)
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Compositing:
//   - image_round_avatar: Resize an image to a square and cut it to a circle
//   - image_combine: Place a round avatar on a background
//
// Inspection:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//
// Compositing tools return the produced image inline as base64 PNG, or write
// it to output_path when one is given.
//
// # Image Caching
//
// Inspection tools share an in-memory cache keyed by path. Compositing tools
// always decode their inputs from disk, and writing to output_path evicts
// that path from the cache.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32700: the request line is not valid JSON
//   - -32601: unknown method
//   - -32602: tools/call params cannot be decoded
//   - -32000: the tool failed; data carries the Go error string
package server

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/avatar-compositor-mcp/internal/imaging"
)

// maxAvatarSize caps the avatar side accepted over MCP so a single call
// cannot allocate an arbitrarily large buffer.
const maxAvatarSize = 8192

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_combine").
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
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	if s.debug {
		log.Printf("tools/call %s %s", params.Name, string(params.Arguments))
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tools/call %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Inspection
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)

	// Compositing
	case "image_round_avatar":
		return s.handleImageRoundAvatar(args)
	case "image_combine":
		return s.handleImageCombine(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return errors.New("missing arguments")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Inspection Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

// === Compositing Handlers ===

// point is image.Point with JSON field names.
type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func toPoint(p image.Point) point {
	return point{X: p.X, Y: p.Y}
}

// ImageOutput is a produced image, either inline or written to disk.
type ImageOutput struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
}

// emit writes img to outputPath, or encodes it inline when outputPath is
// empty. A written file is evicted from the cache so later inspection
// calls see the new contents.
func (s *Server) emit(img image.Image, outputPath string) (ImageOutput, error) {
	b := img.Bounds()
	if outputPath != "" {
		if err := imaging.Save(outputPath, img); err != nil {
			return ImageOutput{}, err
		}
		s.cache.Evict(outputPath)
		return ImageOutput{Width: b.Dx(), Height: b.Dy(), OutputPath: outputPath}, nil
	}

	enc, err := imaging.EncodeResult(img)
	if err != nil {
		return ImageOutput{}, err
	}
	return ImageOutput{
		Width:       enc.Width,
		Height:      enc.Height,
		ImageBase64: enc.ImageBase64,
		MimeType:    enc.MimeType,
	}, nil
}

type imageRoundAvatarArgs struct {
	Path       string `json:"path"`
	Size       int    `json:"size"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageRoundAvatar(args json.RawMessage) (interface{}, error) {
	var a imageRoundAvatarArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Size < 1 || a.Size > maxAvatarSize {
		return nil, fmt.Errorf("size must be between 1 and %d, got %d", maxAvatarSize, a.Size)
	}

	avatar, err := imaging.Open(a.Path)
	if err != nil {
		return nil, err
	}
	return s.emit(imaging.RoundAvatar(avatar, a.Size), a.OutputPath)
}

type imageCombineArgs struct {
	BackgroundPath string `json:"background_path"`
	AvatarPath     string `json:"avatar_path"`
	X              uint32 `json:"x"`
	Y              uint32 `json:"y"`
	Size           uint32 `json:"size"`
	OutputPath     string `json:"output_path"`
}

// CombineResult is the result of the image_combine tool.
type CombineResult struct {
	ImageOutput

	// Anchor is the adjusted top-left corner of the avatar.
	Anchor point `json:"anchor"`

	// AvatarSize is the size the avatar was drawn at.
	AvatarSize point `json:"avatar_size"`

	// Scale is 1 unless the avatar overflowed the background.
	Scale float64 `json:"scale"`

	Overflow bool `json:"overflow"`
	Skipped  bool `json:"skipped"`
}

func (s *Server) handleImageCombine(args json.RawMessage) (interface{}, error) {
	var a imageCombineArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.BackgroundPath == "" {
		return nil, errors.New("background_path is required")
	}
	if a.AvatarPath == "" {
		return nil, errors.New("avatar_path is required")
	}
	if a.Size > maxAvatarSize {
		return nil, fmt.Errorf("size must be at most %d, got %d", maxAvatarSize, a.Size)
	}

	out, plan, err := imaging.CombineImagesWithOptions(a.BackgroundPath, a.AvatarPath, a.X, a.Y, a.Size, s.opts)
	if err != nil {
		return nil, err
	}

	emitted, err := s.emit(out, a.OutputPath)
	if err != nil {
		return nil, err
	}

	return &CombineResult{
		ImageOutput: emitted,
		Anchor:      toPoint(plan.Anchor),
		AvatarSize:  toPoint(plan.Size),
		Scale:       plan.Scale,
		Overflow:    plan.Overflow,
		Skipped:     plan.Skipped,
	}, nil
}

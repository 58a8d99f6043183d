package cmd

import (
	"context"
	"fmt"

	"github.com/chibidesk/chibi/internal/ipc"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

// mcpServer wraps the MCP server with a daemon client.
type mcpServer struct {
	client *ipc.Client
	mcp    *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	Socket    string
}

// newMCPServer creates and configures an MCP server with all chibi tools.
// It fails fast when no daemon is answering on the socket.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	client := ipc.NewClient(cfg.Socket)
	if err := client.Ping(); err != nil {
		return nil, err
	}

	s := &mcpServer{
		client: client,
	}

	s.mcp = mcpserver.NewMCPServer(
		"chibi",
		"1.0.0",
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("spawn",
			mcp.WithDescription("Spawn a desktop sprite from a PNG or GIF image. Returns the new sprite including its ID."),
			mcp.WithString("image", mcp.Required(), mcp.Description("Absolute path to the image file")),
			mcp.WithNumber("x", mcp.Description("Spawn position X (default 100)")),
			mcp.WithNumber("y", mcp.Description("Spawn position Y (default 100)")),
			mcp.WithNumber("size", mcp.Description("Sprite size in pixels, 50-1000 (default 200)")),
			mcp.WithString("layer", mcp.Description("'bottom' (desktop level, default) or 'overlay' (above all windows)")),
			mcp.WithBoolean("click_through", mcp.Description("Smart hide: sprite vanishes on hover so clicks reach the desktop")),
			mcp.WithBoolean("drag", mcp.Description("Start with drag mode enabled")),
		),
		s.handleSpawn,
	)

	s.mcp.AddTool(
		mcp.NewTool("despawn",
			mcp.WithDescription("Remove a sprite by ID."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Sprite instance ID (from spawn or list)")),
		),
		s.handleDespawn,
	)

	s.mcp.AddTool(
		mcp.NewTool("list",
			mcp.WithDescription("List live sprites with their IDs, images, layers, flags, and positions."),
		),
		s.handleList,
	)

	s.mcp.AddTool(
		mcp.NewTool("toggle",
			mcp.WithDescription("Flip a sprite's click-through or drag flag."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Sprite instance ID")),
			mcp.WithString("flag", mcp.Required(), mcp.Description("'click-through' or 'drag'")),
		),
		s.handleToggle,
	)

	s.mcp.AddTool(
		mcp.NewTool("move",
			mcp.WithDescription("Move a sprite to absolute screen coordinates."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Sprite instance ID")),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("Target X coordinate")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Target Y coordinate")),
		),
		s.handleMove,
	)

	s.mcp.AddTool(
		mcp.NewTool("save",
			mcp.WithDescription("Persist the current sprite set to the config directory."),
		),
		s.handleSave,
	)

	s.mcp.AddTool(
		mcp.NewTool("restore",
			mcp.WithDescription("Spawn the sprites recorded in the saved configuration."),
		),
		s.handleRestore,
	)
}

// responseToText serializes a daemon response to YAML for the MCP reply.
func responseToText(resp *ipc.Response) string {
	b, err := yaml.Marshal(resp)
	if err != nil {
		return fmt.Sprintf("ok: %v", resp.OK)
	}
	return string(b)
}

// call runs one daemon request and wraps the result for MCP.
func (s *mcpServer) call(req ipc.Request) (*mcp.CallToolResult, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(responseToText(resp)), nil
}

func (s *mcpServer) handleSpawn(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	image := StringParam(params, "image", "")
	if image == "" {
		return mcp.NewToolResultError("image is required"), nil
	}
	return s.call(ipc.Request{
		Op:           ipc.OpSpawn,
		Image:        image,
		X:            IntParam(params, "x", 100),
		Y:            IntParam(params, "y", 100),
		Size:         IntParam(params, "size", 0),
		Layer:        StringParam(params, "layer", ""),
		ClickThrough: BoolParam(params, "click_through", false),
		Drag:         BoolParam(params, "drag", false),
	})
}

func (s *mcpServer) handleDespawn(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	return s.call(ipc.Request{Op: ipc.OpDespawn, ID: StringParam(params, "id", "")})
}

func (s *mcpServer) handleList(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.call(ipc.Request{Op: ipc.OpList})
}

func (s *mcpServer) handleToggle(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	return s.call(ipc.Request{
		Op:   ipc.OpToggle,
		ID:   StringParam(params, "id", ""),
		Flag: StringParam(params, "flag", ""),
	})
}

func (s *mcpServer) handleMove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	return s.call(ipc.Request{
		Op: ipc.OpMove,
		ID: StringParam(params, "id", ""),
		X:  IntParam(params, "x", 0),
		Y:  IntParam(params, "y", 0),
	})
}

func (s *mcpServer) handleSave(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.call(ipc.Request{Op: ipc.OpSave})
}

func (s *mcpServer) handleRestore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.call(ipc.Request{Op: ipc.OpRestore})
}

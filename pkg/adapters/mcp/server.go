package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Service is the validation surface exposed as MCP tools.
type Service interface {
	Collections(ctx context.Context) ([]string, error)
	ValidateMedia(ctx context.Context, check domain.MediaCheck) error
	ValidateFields(ctx context.Context, check domain.FieldCheck) error
	GetFields(ctx context.Context, q domain.FieldQuery) ([]domain.FieldValue, error)
}

// CheckResult reports the outcome of a validation tool.
// Validation failures are results, not tool errors.
type CheckResult struct {
	Valid   bool     `json:"valid" jsonschema_description:"True when the check passed"`
	Kind    string   `json:"kind,omitempty" jsonschema_description:"Failure kind: type, schema, media_type or value"`
	Message string   `json:"message,omitempty" jsonschema_description:"Human readable failure"`
	Fields  []string `json:"fields,omitempty" jsonschema_description:"Fields involved in the failure"`
}

// FieldsResult is the output of get_fields.
type FieldsResult struct {
	CheckResult
	Values []domain.FieldValue `json:"values,omitempty" jsonschema_description:"Values in request order"`
}

// Server exposes a Service as an MCP Server.
type Server struct {
	svc       Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(svc Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		svc:       svc,
		logger:    logger,
		mcpServer: server.NewMCPServer("conform-mcp", conform.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_collections
	s.mcpServer.AddTool(mcp.NewTool("list_collections",
		mcp.WithDescription("List the names of the loaded dataset collections."),
	), s.handleListCollections)

	// TOOL: validate_media
	mediaTool := mcp.NewTool("validate_media",
		mcp.WithDescription("Check that a collection, or one of its samples, holds image or video media. Without media_type only checks that the collection exists."),
		mcp.WithString("collection", mcp.Required(), mcp.Description("Collection name")),
		mcp.WithString("media_type", mcp.Description("Expected media: image or video")),
		mcp.WithString("sample_id", mcp.Description("Check a single sample instead of the collection")),
		mcp.WithOutputSchema[CheckResult](),
	)
	s.mcpServer.AddTool(mediaTool, mcp.NewStructuredToolHandler(s.handleValidateMedia))

	// TOOL: validate_label_fields
	fieldsTool := mcp.NewTool("validate_label_fields",
		mcp.WithDescription("Check that declared label fields resolve to allowed types. Prefix frame-level fields of video collections with 'frames.'."),
		mcp.WithString("collection", mcp.Required(), mcp.Description("Collection name")),
		mcp.WithString("fields", mcp.Required(), mcp.Description("Comma-separated field names")),
		mcp.WithString("allowed", mcp.Required(), mcp.Description("Comma-separated allowed types, e.g. Detections,Polylines")),
		mcp.WithBoolean("same_type", mcp.Description("Require all fields of a group to share one type")),
		mcp.WithOutputSchema[CheckResult](),
	)
	s.mcpServer.AddTool(fieldsTool, mcp.NewStructuredToolHandler(s.handleValidateFields))

	// TOOL: get_fields
	getTool := mcp.NewTool("get_fields",
		mcp.WithDescription("Read sample field values, optionally checking their types and rejecting nulls."),
		mcp.WithString("collection", mcp.Required(), mcp.Description("Collection name")),
		mcp.WithString("sample_id", mcp.Required(), mcp.Description("Sample ID")),
		mcp.WithString("fields", mcp.Required(), mcp.Description("Comma-separated field names")),
		mcp.WithString("allowed", mcp.Description("Comma-separated allowed runtime types")),
		mcp.WithBoolean("same_type", mcp.Description("Require all values to share one type")),
		mcp.WithBoolean("disallow_none", mcp.Description("Reject null values")),
		mcp.WithOutputSchema[FieldsResult](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetFields))
}

func (s *Server) handleListCollections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.svc.Collections(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleValidateMedia(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CheckResult, error) {
	check := domain.MediaCheck{
		Collection: stringArg(args, "collection"),
		SampleID:   stringArg(args, "sample_id"),
	}
	if raw := stringArg(args, "media_type"); raw != "" {
		media, err := domain.ParseMediaType(raw)
		if err != nil {
			return CheckResult{}, err
		}
		check.MediaType = media
	}

	return s.result(s.svc.ValidateMedia(ctx, check))
}

func (s *Server) handleValidateFields(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CheckResult, error) {
	return s.result(s.svc.ValidateFields(ctx, domain.FieldCheck{
		Collection: stringArg(args, "collection"),
		Fields:     listArg(args, "fields"),
		Allowed:    listArg(args, "allowed"),
		SameType:   boolArg(args, "same_type"),
	}))
}

func (s *Server) handleGetFields(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (FieldsResult, error) {
	values, err := s.svc.GetFields(ctx, domain.FieldQuery{
		Collection:   stringArg(args, "collection"),
		SampleID:     stringArg(args, "sample_id"),
		Fields:       listArg(args, "fields"),
		Allowed:      listArg(args, "allowed"),
		SameType:     boolArg(args, "same_type"),
		DisallowNone: boolArg(args, "disallow_none"),
	})

	check, err := s.result(err)
	if err != nil {
		return FieldsResult{}, err
	}
	return FieldsResult{CheckResult: check, Values: values}, nil
}

// result turns validation failures into a CheckResult and passes other errors through.
func (s *Server) result(err error) (CheckResult, error) {
	if err == nil {
		return CheckResult{Valid: true}, nil
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return CheckResult{
			Kind:    verr.KindName(),
			Message: verr.Message,
			Fields:  verr.Fields,
		}, nil
	}

	s.logger.Warn("MCP tool failed", "err", err)
	return CheckResult{}, err
}

func (s *Server) registerResources() {
	// EXPOSE: conform://collections
	s.mcpServer.AddResource(mcp.NewResource("conform://collections", "Loaded Collections",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.svc.Collections(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list collections: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "conform://collections",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

func boolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

// listArg accepts a comma-separated string or a JSON array of strings.
func listArg(args map[string]interface{}, key string) []string {
	var out []string
	switch v := args[key].(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	case []interface{}:
		for _, item := range v {
			if str, ok := item.(string); ok && strings.TrimSpace(str) != "" {
				out = append(out, strings.TrimSpace(str))
			}
		}
	}
	return out
}

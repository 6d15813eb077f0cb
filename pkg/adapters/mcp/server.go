package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/deriv"
	"github.com/aretw0/deriv/internal/presentation/graph"
	"github.com/aretw0/deriv/pkg/domain"
	"github.com/aretw0/deriv/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GrammarURI is the resource holding the Mermaid diagram of the parser.
const GrammarURI = "deriv://grammar"

// Engine defines the interface required by the MCP server.
type Engine interface {
	Parse(ctx context.Context, text string) (domain.Polynomial, error)
	Derive(ctx context.Context, text string) (*domain.Derivation, error)
}

// ExpressionArgs are the arguments of both tools.
type ExpressionArgs struct {
	Expression string `json:"expression"`
	Format     string `json:"format,omitempty"`
}

// DifferentiateResult aligns with the HTTP DerivationResponse.
type DifferentiateResult struct {
	Expression string            `json:"expression" jsonschema_description:"The expression as received"`
	Terms      domain.Polynomial `json:"terms" jsonschema_description:"Parsed terms of the expression"`
	Derivative domain.Polynomial `json:"derivative" jsonschema_description:"Terms of the derivative, by descending exponent"`
	Format     string            `json:"format" jsonschema_description:"Rendering format of result"`
	Result     string            `json:"result" jsonschema_description:"The rendered derivative"`
}

// ParseResult is the output of the parse tool.
type ParseResult struct {
	Expression string            `json:"expression" jsonschema_description:"The expression as received"`
	Key        string            `json:"key" jsonschema_description:"Canonical rendering of the parsed polynomial"`
	Terms      domain.Polynomial `json:"terms" jsonschema_description:"Parsed terms"`
}

// Server wraps the deriv Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("deriv-mcp", strings.TrimSpace(deriv.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	differentiateTool := mcp.NewTool("differentiate",
		mcp.WithDescription("Differentiate a one-variable polynomial such as \"3x^2 + 2x^1 + 1\". Every term is <coefficient>[x^<exponent>] and terms are joined by + or -."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("The polynomial to differentiate")),
		mcp.WithString("format", mcp.Description("Rendering of the result: text (default) or latex"), mcp.Enum("text", "latex")),
		mcp.WithOutputSchema[DifferentiateResult](),
	)
	s.mcpServer.AddTool(differentiateTool, mcp.NewStructuredToolHandler(s.handleDifferentiate))

	parseTool := mcp.NewTool("parse",
		mcp.WithDescription("Parse a polynomial into (coefficient, exponent) terms without differentiating it."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("The polynomial to parse")),
		mcp.WithOutputSchema[ParseResult](),
	)
	s.mcpServer.AddTool(parseTool, mcp.NewStructuredToolHandler(s.handleParse))
}

func (s *Server) handleDifferentiate(ctx context.Context, request mcp.CallToolRequest, args ExpressionArgs) (DifferentiateResult, error) {
	clean, err := runner.SanitizeInput(args.Expression)
	if err != nil {
		s.logger.Warn("MCP differentiate: input rejected", "err", err, "size", len(args.Expression))
		return DifferentiateResult{}, fmt.Errorf("input rejected: %w", err)
	}

	d, err := s.engine.Derive(ctx, clean)
	if err != nil {
		return DifferentiateResult{}, err
	}

	res := DifferentiateResult{
		Expression: d.Expression,
		Terms:      d.Terms,
		Derivative: d.Derivative,
		Format:     string(runner.FormatText),
		Result:     d.Text,
	}
	if args.Format == string(runner.FormatLaTeX) {
		res.Format = args.Format
		res.Result = deriv.RenderLaTeX(d.Derivative)
	}
	return res, nil
}

func (s *Server) handleParse(ctx context.Context, request mcp.CallToolRequest, args ExpressionArgs) (ParseResult, error) {
	clean, err := runner.SanitizeInput(args.Expression)
	if err != nil {
		s.logger.Warn("MCP parse: input rejected", "err", err, "size", len(args.Expression))
		return ParseResult{}, fmt.Errorf("input rejected: %w", err)
	}

	poly, err := s.engine.Parse(ctx, clean)
	if err != nil {
		return ParseResult{}, err
	}
	return ParseResult{
		Expression: clean,
		Key:        deriv.Render(poly),
		Terms:      poly,
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GrammarURI, "Parser State Machine",
		mcp.WithResourceDescription("Mermaid flowchart of the polynomial parser"),
		mcp.WithMIMEType("text/vnd.mermaid"),
	), s.handleGrammar)
}

func (s *Server) handleGrammar(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GrammarURI,
			MIMEType: "text/vnd.mermaid",
			Text:     graph.GenerateMermaid(deriv.Transitions(), nil),
		},
	}, nil
}

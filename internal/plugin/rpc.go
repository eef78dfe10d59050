package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-rename/internal/renamer"
)

// JSON-RPC methods.
const (
	MethodRun  = "run"
	MethodInfo = "info"
)

// RunFunc performs a rename batch for the "run" method.
type RunFunc func(ctx context.Context, params RunParams) (*renamer.Summary, error)

// Server answers a single JSON-RPC request per invocation, the way looper
// drives plugin binaries.
type Server struct {
	Version string
	Run     RunFunc
	// DryRun forces dry-run mode whatever the request asks for.
	DryRun bool
	// Logger receives request diagnostics. It must not write to the
	// response stream. Nil discards output.
	Logger *log.Logger
}

// Serve reads one request from r and writes one response to w. The
// returned error is the response's error, or the batch failure of a
// "run" that completed with failed files, so callers can set an exit code.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	var resp Response
	var runErr error

	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		resp = errorResponse(nil, CodeParseError, "Parse error: "+err.Error())
	} else {
		var req Request
		if err := json.Unmarshal(raw, &req); err != nil {
			resp = errorResponse(nil, CodeInvalidRequest, "Invalid Request: "+err.Error())
		} else {
			resp, runErr = s.Handle(ctx, req)
		}
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	return runErr
}

// Handle dispatches a decoded request.
func (s *Server) Handle(ctx context.Context, req Request) (Response, error) {
	s.logger().Debug("Handling request", "method", req.Method)

	if req.JSONRPC != "2.0" {
		return errorResponse(req.ID, CodeInvalidRequest, fmt.Sprintf("Invalid Request: unsupported jsonrpc version %q", req.JSONRPC)), nil
	}
	if req.Method == "" {
		return errorResponse(req.ID, CodeInvalidRequest, "Invalid Request: missing method"), nil
	}

	switch req.Method {
	case MethodRun:
		return s.handleRun(ctx, req)
	case MethodInfo:
		return resultResponse(req.ID, s.info()), nil
	default:
		return errorResponse(req.ID, CodeMethodNotFound, "Method not found: "+req.Method), nil
	}
}

func (s *Server) handleRun(ctx context.Context, req Request) (Response, error) {
	params, err := decodeRunParams(req.Params)
	if err != nil {
		var pe *ParamsError
		if errors.As(err, &pe) {
			return errorResponse(req.ID, CodeInvalidParams, "Invalid params: "+pe.Error()), nil
		}
		return errorResponse(req.ID, CodeInternalError, err.Error()), nil
	}

	if s.Run == nil {
		return errorResponse(req.ID, CodeInternalError, "run is not available"), nil
	}

	params.DryRun = params.DryRun || s.DryRun
	summary, err := s.Run(ctx, params)
	if err != nil {
		code := CodeInternalError
		if errors.Is(err, renamer.ErrInvalidTarget) {
			code = CodeInvalidParams
		}
		return errorResponse(req.ID, code, err.Error()), nil
	}

	result := NewRunResult(summary, params.DryRun)
	return resultResponse(req.ID, result), summary.Err()
}

func (s *Server) info() Info {
	version := s.Version
	if version == "" {
		version = "dev"
	}
	return Info{
		Name:    PluginName,
		Version: version,
		Methods: append([]string(nil), Methods...),
		Features: map[string]bool{
			"dry_run":       true,
			"title_pattern": true,
		},
	}
}

func (s *Server) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// NewRunResult converts a batch summary into its wire form.
func NewRunResult(summary *renamer.Summary, dryRun bool) RunResult {
	result := RunResult{
		Success: true,
		DryRun:  dryRun,
		Files:   []FileResult{},
	}
	if summary == nil {
		result.Message = "nothing to do"
		return result
	}

	result.Renamed = summary.Renamed
	result.Skipped = summary.Skipped
	result.Failed = summary.Failed
	for _, r := range summary.Results {
		fr := FileResult{
			Path:   r.Path,
			Target: r.Target,
			Status: r.Status.String(),
			Reason: string(r.Reason),
		}
		if r.Err != nil {
			fr.Error = r.Err.Error()
		}
		result.Files = append(result.Files, fr)
	}

	if err := summary.Err(); err != nil {
		result.Success = false
		result.Message = err.Error()
	} else {
		result.Message = fmt.Sprintf("%d renamed, %d skipped", summary.Renamed, summary.Skipped)
	}
	return result
}

func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}

func resultResponse(id json.RawMessage, result any) Response {
	return Response{
		JSONRPC: "2.0",
		ID:      normalizeID(id),
		Result:  result,
	}
}

func errorResponse(id json.RawMessage, code int, message string) Response {
	return Response{
		JSONRPC: "2.0",
		ID:      normalizeID(id),
		Error: &ResponseError{
			Code:    code,
			Message: message,
		},
	}
}

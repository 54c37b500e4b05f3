package tools

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/pkg/metricskey"
	"github.com/effective-security/xdb/pkg/flake"
	"github.com/effective-security/xlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finmcp", "tools")

var tracer = otel.Tracer("github.com/effective-security/finmcp/tools")

// RawCaller is implemented by tools that produce JSON output
type RawCaller interface {
	CallRaw(context.Context, string) (json.RawMessage, error)
}

// ErrorInfo is the failure of a tool call
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the envelope of a tool call, exactly one of Output or Error is set.
type Result struct {
	ID     string          `json:"id"`
	Tool   string          `json:"tool"`
	Output json.RawMessage `json:"output,omitempty"`
	Error  *ErrorInfo      `json:"error,omitempty"`
}

// Failed returns true if the call failed
func (r *Result) Failed() bool {
	return r.Error != nil
}

// Registry maps tool names to tools, names are case insensitive.
type Registry struct {
	lock     sync.RWMutex
	tools    map[string]ITool
	callback Callback
}

// NewRegistry returns an empty registry, callback may be nil
func NewRegistry(callback Callback) *Registry {
	return &Registry{
		tools:    make(map[string]ITool),
		callback: callback,
	}
}

// Register adds the tools, names must be unique
func (r *Registry) Register(list ...ITool) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, tool := range list {
		name := strings.TrimSpace(tool.Name())
		if name == "" {
			return errors.New("tool name is required")
		}
		// use lowercase for the key
		key := strings.ToLower(name)
		if _, ok := r.tools[key]; ok {
			return errors.Errorf("tool already registered: %s", name)
		}
		r.tools[key] = tool
	}
	return nil
}

// Get returns the tool by name
func (r *Registry) Get(name string) (ITool, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	tool, ok := r.tools[strings.ToLower(strings.TrimSpace(name))]
	return tool, ok
}

// List returns the tools sorted by name
func (r *Registry) List() []ITool {
	r.lock.RLock()
	list := make([]ITool, 0, len(r.tools))
	for _, tool := range r.tools {
		list = append(list, tool)
	}
	r.lock.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Names returns the sorted tool names
func (r *Registry) Names() []string {
	list := r.List()
	names := make([]string, len(list))
	for i, tool := range list {
		names[i] = tool.Name()
	}
	return names
}

// Dispatch calls the tool with the raw arguments. Failures are
// reported in the envelope, Dispatch never returns a nil Result.
func (r *Registry) Dispatch(ctx context.Context, name string, args string) *Result {
	res := &Result{
		ID:   strconv.FormatUint(flake.DefaultIDGenerator.NextID(), 10),
		Tool: name,
	}

	ctx, span := tracer.Start(ctx, "tool.dispatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.call_id", res.ID),
	)

	tool, ok := r.Get(name)
	if !ok {
		metricskey.StatsToolCallsNotFound.IncrCounter(1, name)
		if r.callback != nil {
			r.callback.OnToolNotFound(ctx, name)
		}
		available := strings.Join(r.Names(), ", ")
		logger.ContextKV(ctx, xlog.WARNING,
			"status", "tool_not_found",
			"tool_name", name,
			"available_tools", available,
		)
		res.Error = &ErrorInfo{
			Code:    CodeToolNotFound,
			Message: "tool `" + name + "` not found, available tools: " + available,
		}
		span.SetStatus(codes.Error, CodeToolNotFound)
		return res
	}
	res.Tool = tool.Name()

	if r.callback != nil {
		r.callback.OnToolStart(ctx, tool, args)
	}

	started := time.Now()
	out, err := call(ctx, tool, args)
	metricskey.PerfToolCall.MeasureSince(started, tool.Name())

	if err != nil {
		code := ErrorCode(err)
		metricskey.StatsToolCallsFailed.IncrCounter(1, tool.Name(), code)
		if r.callback != nil {
			r.callback.OnToolError(ctx, tool, args, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
		res.Error = &ErrorInfo{Code: code, Message: err.Error()}
		return res
	}

	metricskey.StatsToolCallsSucceeded.IncrCounter(1, tool.Name())
	if r.callback != nil {
		r.callback.OnToolEnd(ctx, tool, args, string(out))
	}
	span.SetStatus(codes.Ok, "")
	res.Output = out
	return res
}

func call(ctx context.Context, tool ITool, args string) (json.RawMessage, error) {
	if rc, ok := tool.(RawCaller); ok {
		return rc.CallRaw(ctx, args)
	}
	out, err := tool.Call(ctx, args)
	if err != nil {
		return nil, err
	}
	if json.Valid([]byte(out)) {
		return json.RawMessage(out), nil
	}
	js, err := json.Marshal(out)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return js, nil
}

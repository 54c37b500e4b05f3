package callbacks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/effective-security/finmcp/tools"
)

var TimeNowFn = time.Now

// ToolStats are the call counters of a tool
type ToolStats struct {
	Tool      string `json:"tool"`
	Calls     uint32 `json:"calls"`
	Succeeded uint32 `json:"succeeded"`
	Failed    uint32 `json:"failed"`
}

// Stats is a snapshot of the Journal counters
type Stats struct {
	Tools    []ToolStats `json:"tools"`
	NotFound uint32      `json:"notFound"`
}

// Journal counts the tool calls and keeps the last entries of the
// call log in memory.
type Journal struct {
	lock     sync.Mutex
	mode     Mode
	limit    int
	entries  []string
	tools    map[string]*ToolStats
	notFound uint32
}

// NewJournal returns a journal keeping up to limit entries
func NewJournal(mode Mode, limit int) *Journal {
	if limit <= 0 {
		limit = 100
	}
	return &Journal{
		mode:  mode,
		limit: limit,
		tools: make(map[string]*ToolStats),
	}
}

// Stats returns the counters sorted by tool name
func (l *Journal) Stats() Stats {
	l.lock.Lock()
	defer l.lock.Unlock()

	s := Stats{
		Tools:    make([]ToolStats, 0, len(l.tools)),
		NotFound: l.notFound,
	}
	for _, ts := range l.tools {
		s.Tools = append(s.Tools, *ts)
	}
	sort.Slice(s.Tools, func(i, j int) bool {
		return s.Tools[i].Tool < s.Tools[j].Tool
	})
	return s
}

// Entries returns the retained entries, oldest first
func (l *Journal) Entries() []string {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]string(nil), l.entries...)
}

func (l *Journal) OnToolStart(ctx context.Context, tool tools.ITool, input string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.stats(tool.Name()).Calls++
	if l.mode == ModeVerbose {
		l.print(tool.Name(), "*** Tool Start ***", "Input:", input)
	} else {
		l.print(tool.Name(), "*** Tool Start ***")
	}
}

func (l *Journal) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.stats(tool.Name()).Succeeded++
	if l.mode == ModeVerbose {
		l.print(tool.Name(), "*** Tool End ***", "Output:", output)
	} else {
		l.print(tool.Name(), "*** Tool End ***")
	}
}

func (l *Journal) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.stats(tool.Name()).Failed++
	l.print(tool.Name(), "*** Tool Error ***", err.Error())
}

func (l *Journal) OnToolNotFound(ctx context.Context, tool string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.notFound++
	l.print(tool, "*** Tool Not Found ***")
}

// stats must be called under the lock
func (l *Journal) stats(name string) *ToolStats {
	ts := l.tools[name]
	if ts == nil {
		ts = &ToolStats{Tool: name}
		l.tools[name] = ts
	}
	return ts
}

// print appends the entry in the following format:
// timestamp entry entry
// It must be called under the lock.
func (l *Journal) print(entries ...string) {
	ts := TimeNowFn().Format("2006-01-02 15:04:05")
	line := ts + " " + strings.Join(entries, " ")

	if len(l.entries) >= l.limit {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, line)
}

package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// PrettyHandler writes each record as an indented JSON object. Attributes
// under WithGroup nest as objects. Meant for reading logs by eye while
// debugging a session, not for throughput.
type PrettyHandler struct {
	out       io.Writer
	mu        *sync.Mutex
	level     slog.Leveler
	addSource bool

	attrs  []scopedAttr
	groups []string
}

// scopedAttr remembers which groups were open when the attr was added.
type scopedAttr struct {
	groups []string
	attr   slog.Attr
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{out: w, mu: &sync.Mutex{}, level: slog.LevelInfo}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		h.addSource = opts.AddSource
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	entry := map[string]any{
		"time":  when.Format(time.RFC3339Nano),
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	if h.addSource && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if f.File != "" {
			entry["source"] = filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
		}
	}

	for _, sa := range h.attrs {
		putAttr(groupMap(entry, sa.groups), sa.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		putAttr(groupMap(entry, h.groups), a)
		return true
	})

	b, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		b, _ = json.Marshal(map[string]string{"time": entry["time"].(string), "level": r.Level.String(), "msg": r.Message, "error": err.Error()})
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(append(b, '\n'))
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]scopedAttr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, scopedAttr{groups: h.groups, attr: a})
	}
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

// groupMap walks (and creates) the nested object for a group path.
func groupMap(root map[string]any, groups []string) map[string]any {
	dst := root
	for _, g := range groups {
		child, ok := dst[g].(map[string]any)
		if !ok {
			child = map[string]any{}
			dst[g] = child
		}
		dst = child
	}
	return dst
}

func putAttr(dst map[string]any, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		group := v.Group()
		if len(group) == 0 {
			return
		}
		child := dst
		if a.Key != "" {
			child = map[string]any{}
			dst[a.Key] = child
		}
		for _, ga := range group {
			putAttr(child, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}

	switch v.Kind() {
	case slog.KindString:
		dst[a.Key] = v.String()
	case slog.KindInt64:
		dst[a.Key] = v.Int64()
	case slog.KindUint64:
		dst[a.Key] = v.Uint64()
	case slog.KindFloat64:
		dst[a.Key] = v.Float64()
	case slog.KindBool:
		dst[a.Key] = v.Bool()
	case slog.KindDuration:
		dst[a.Key] = v.Duration().String()
	case slog.KindTime:
		dst[a.Key] = v.Time().Format(time.RFC3339Nano)
	default:
		dst[a.Key] = v.Any()
	}
}

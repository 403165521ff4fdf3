// Package normalize converts raw Socorro payloads into the bounded summary
// views defined in core. Every function here is pure: no I/O, no shared
// state, and missing optional data degrades to omitted fields or
// placeholders rather than errors.
package normalize

import (
	"strconv"

	"github.com/crashtools/socorro-cli/core"
)

// unknownFunction is the placeholder for frames with no usable symbol.
const unknownFunction = "???"

// crashingThreadExtractors are the alternate locations of the crashing
// thread index, in priority order. The first one that yields a value wins.
var crashingThreadExtractors = []func(*core.RawCrashRecord) *int{
	func(r *core.RawCrashRecord) *int { return r.CrashingThread },
	func(r *core.RawCrashRecord) *int {
		if r.CrashInfo == nil {
			return nil
		}
		return r.CrashInfo.CrashingThread
	},
	func(r *core.RawCrashRecord) *int {
		if r.JSONDump == nil {
			return nil
		}
		return r.JSONDump.CrashingThread
	},
}

// Crash converts a raw crash record into a CrashSummary.
//
// When allThreads is set, every thread appears in the summary, truncated to
// depth frames, with the crashing thread (if one could be identified)
// flagged. Otherwise only the crashing thread is kept; if no crashing
// thread could be identified, the first thread stands in as the display
// thread without being flagged, and a record with no threads at all yields
// an empty thread list.
func Crash(raw *core.RawCrashRecord, depth int, allThreads bool) *core.CrashSummary {
	if depth < 0 {
		depth = 0
	}

	crashingIdx := findCrashingThread(raw)
	threads := threadSource(raw)

	var selected []core.ThreadSummary
	if allThreads {
		selected = make([]core.ThreadSummary, 0, len(threads))
		for i, t := range threads {
			selected = append(selected, summarizeThread(t, i, depth, crashingIdx != nil && *crashingIdx == i))
		}
	} else if idx, ok := displayThread(threads, crashingIdx); ok {
		selected = []core.ThreadSummary{
			summarizeThread(threads[idx], idx, depth, crashingIdx != nil && *crashingIdx == idx),
		}
	}

	info := crashInfo(raw)
	summary := &core.CrashSummary{
		CrashID:        raw.UUID,
		Signature:      raw.Signature,
		MozCrashReason: raw.MozCrashReason,
		AbortMessage:   raw.AbortMessage,
		Product:        raw.Product,
		Version:        raw.Version,
		Channel:        raw.ReleaseChannel,
		OSName:         raw.OSName,
		OSVersion:      raw.OSVersion,
		AndroidModel:   raw.AndroidModel,
		AndroidVersion: raw.AndroidVersion,
		AllThreads:     allThreads,
		Threads:        selected,
	}
	if raw.Build != nil {
		build := string(*raw.Build)
		summary.BuildID = &build
	}
	if info != nil {
		summary.Reason = info.Type
		summary.Address = info.Address
	}
	return summary
}

// findCrashingThread tries each alternate field location in priority order.
func findCrashingThread(raw *core.RawCrashRecord) *int {
	for _, extract := range crashingThreadExtractors {
		if idx := extract(raw); idx != nil {
			return idx
		}
	}
	return nil
}

// threadSource returns the record's thread list, falling back to the
// json_dump copy when the top-level list is absent.
func threadSource(raw *core.RawCrashRecord) []core.RawThread {
	if raw.Threads != nil {
		return raw.Threads
	}
	if raw.JSONDump != nil {
		return raw.JSONDump.Threads
	}
	return nil
}

// crashInfo returns the crash_info sub-object, falling back to the
// json_dump copy.
func crashInfo(raw *core.RawCrashRecord) *core.RawCrashInfo {
	if raw.CrashInfo != nil {
		return raw.CrashInfo
	}
	if raw.JSONDump != nil {
		return raw.JSONDump.CrashInfo
	}
	return nil
}

// displayThread picks the thread index to show in single-thread mode.
// An identified index that is out of range counts as unidentified.
func displayThread(threads []core.RawThread, crashingIdx *int) (int, bool) {
	if crashingIdx != nil && *crashingIdx >= 0 && *crashingIdx < len(threads) {
		return *crashingIdx, true
	}
	if len(threads) > 0 {
		return 0, true
	}
	return 0, false
}

// summarizeThread truncates a thread to depth frames and labels it. A depth
// of zero keeps the thread entry with an empty frame list.
func summarizeThread(t core.RawThread, index, depth int, crashing bool) core.ThreadSummary {
	n := depth
	if n > len(t.Frames) {
		n = len(t.Frames)
	}
	frames := make([]core.StackFrame, 0, n)
	for _, f := range t.Frames[:n] {
		frames = append(frames, core.StackFrame{
			Index:    f.Frame,
			Function: frameFunction(f),
			File:     f.File,
			Line:     f.Line,
		})
	}
	return core.ThreadSummary{
		Index:    index,
		Name:     threadLabel(t, index),
		Crashing: crashing,
		Frames:   frames,
	}
}

// frameFunction builds the display name for a frame: the symbol when known,
// else offset and module, else a placeholder.
func frameFunction(f core.RawStackFrame) string {
	if f.Function != nil {
		return *f.Function
	}
	var name string
	if f.Offset != nil {
		name = *f.Offset
	}
	if f.Module != nil {
		if name != "" {
			name += " "
		}
		name += "(" + *f.Module + ")"
	}
	if name == "" {
		return unknownFunction
	}
	return name
}

// threadLabel returns the source-supplied thread name or a synthetic
// positional label.
func threadLabel(t core.RawThread, index int) string {
	if t.ThreadName != nil && *t.ThreadName != "" {
		return *t.ThreadName
	}
	return "thread " + strconv.Itoa(index)
}

package common

// FileLifecycle represents a lifecycle of a file being processed.
type FileLifecycle struct {
	OnStart func(offset1, offset2 int64)
	OnChunk func(bytes int64)
	OnEnd   func()
}

// ProgressFunc creates a FileLifecycle for a file path, its total size, and
// the start/end byte offsets of the range being processed (end is -1 for
// "to the end of the file"). lifecycle.MakeDefaultLifecycle and
// lifecycle.MakeProgressBars are the two implementations.
type ProgressFunc func(filePath string, size, start, end int64) FileLifecycle

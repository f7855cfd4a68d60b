package stream

import (
	"go.uber.org/zap"

	"github.com/streambook/streambook/pkg/notebook"
)

// Dispatcher feeds inbound chunks to a materialization session. It has
// two states: idle (no session) and streaming. Protocol anomalies —
// deltas while idle, unknown chunk types, duplicate end signals — are
// logged and ignored; only data-integrity failures from the notebook
// propagate to the caller.
type Dispatcher struct {
	editor  *notebook.Editor
	session *Session
	logger  *zap.Logger
}

func NewDispatcher(editor *notebook.Editor, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{editor: editor, logger: logger}
}

// Streaming reports whether a session is active.
func (d *Dispatcher) Streaming() bool {
	return d.session != nil
}

// Session returns the active session, or nil while idle.
func (d *Dispatcher) Session() *Session {
	return d.session
}

// OnChunk processes one chunk to completion. A text-start while
// already streaming finishes the current session and starts a fresh
// one; the cells materialized so far are kept.
func (d *Dispatcher) OnChunk(chunk Chunk) error {
	switch chunk.Type {
	case ChunkTextStart:
		if d.session != nil {
			d.logger.Warn("text-start while streaming, restarting session",
				zap.String("id", chunk.ID))
			d.session.Finish()
		}
		d.session = NewSession(d.editor, d.logger)

	case ChunkTextDelta:
		if d.session == nil {
			d.logger.Error("text-delta while idle, dropping",
				zap.String("id", chunk.ID))
			return nil
		}
		return d.session.Append(chunk.Delta)

	case ChunkTextEnd, ChunkFinish:
		if d.session == nil {
			d.logger.Warn("stream end while idle", zap.String("type", string(chunk.Type)))
			return nil
		}
		d.session.Finish()
		d.session = nil

	default:
		d.logger.Warn("unrecognized chunk type", zap.String("type", string(chunk.Type)))
	}

	return nil
}

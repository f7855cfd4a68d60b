package stream

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// ChunkType enumerates the inbound streaming protocol events.
type ChunkType string

const (
	ChunkTextStart ChunkType = "text-start"
	ChunkTextDelta ChunkType = "text-delta"
	ChunkTextEnd   ChunkType = "text-end"
	ChunkFinish    ChunkType = "finish"
)

// Chunk is one increment of a live assistant response.
type Chunk struct {
	Type  ChunkType `json:"type"`
	ID    string    `json:"id,omitempty"`
	Delta string    `json:"delta,omitempty"`
}

// Decoder reads a JSON-lines chunk stream.
type Decoder struct {
	dec *json.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Decode returns the next chunk, or io.EOF when the stream is drained.
func (d *Decoder) Decode() (Chunk, error) {
	var chunk Chunk
	if err := d.dec.Decode(&chunk); err != nil {
		if err == io.EOF {
			return chunk, io.EOF
		}
		return chunk, errors.Wrap(err, "failed to decode chunk")
	}
	return chunk, nil
}

package store

import (
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/compound/internal/model"
)

// Encode serializes a sequence as a flat JSON list of step records.
func Encode(seq model.Sequence) ([]byte, error) {
	if seq == nil {
		seq = model.Sequence{}
	}
	return json.Marshal(seq)
}

// Decode restores a sequence verbatim. No shape validation happens here.
func Decode(data []byte) (model.Sequence, error) {
	var seq model.Sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("decoding steps: %w", err)
	}
	return seq, nil
}

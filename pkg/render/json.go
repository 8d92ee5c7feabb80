package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/round"
)

// WriteJSON encodes a round as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(r *round.Round, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a round to a JSON file at path.
func ExportJSON(r *round.Round, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(r, f)
}

// ReadJSON decodes a round written by [WriteJSON] and validates it.
//
// Malformed JSON is an INVALID_FORMAT error; a well-formed round that breaks
// a ladder invariant is INVALID_ROUND. ReadJSON does not close rd.
func ReadJSON(rd io.Reader) (*round.Round, error) {
	var r round.Round
	dec := json.NewDecoder(rd)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode round")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// ReadJSONFile reads a round from the JSON file at path.
func ReadJSONFile(path string) (*round.Round, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

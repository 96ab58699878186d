// Package source reads the pipeline's raw inputs: newline-delimited JSON
// files for properties and neighborhoods, and a SQLite table for Wikipedia
// page summaries.
package source

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineerr"
)

// RawRecord is one source row that has not yet been validated into a typed
// model. Malformed rows are carried as RawRecord so Bronze can quarantine
// them without losing the original JSON text.
type RawRecord struct {
	SourceFile string
	RowIndex   int64
	Raw        json.RawMessage
}

// ReadJSONLines streams a newline-delimited JSON file, calling fn for every
// line. A line that fails to parse as JSON is still delivered as a RawRecord
// with Raw set to the original bytes; fn is responsible for routing it to
// quarantine. ReadJSONLines also accepts a single JSON array document and
// streams its elements, since both shapes appear across the source set.
func ReadJSONLines(path string, fn func(RawRecord) error) error {
	f, err := os.Open(path)
	if err != nil {
		return pipelineerr.Source("read_json_lines", fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()

	br := bufio.NewReader(f)
	first, err := br.Peek(1)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return pipelineerr.Source("read_json_lines", fmt.Errorf("peek %s: %w", path, err))
	}

	if first[0] == '[' {
		return readJSONArray(path, br, fn)
	}
	return readJSONLines(path, br, fn)
}

func readJSONLines(path string, br *bufio.Reader, fn func(RawRecord) error) error {
	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var idx int64
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		if err := fn(RawRecord{SourceFile: path, RowIndex: idx, Raw: cp}); err != nil {
			return err
		}
		idx++
	}
	if err := scanner.Err(); err != nil {
		return pipelineerr.Source("read_json_lines", fmt.Errorf("scan %s: %w", path, err))
	}
	return nil
}

func readJSONArray(path string, r *bufio.Reader, fn func(RawRecord) error) error {
	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil { // consume '['
		return pipelineerr.Source("read_json_array", fmt.Errorf("%s: %w", path, err))
	}
	var idx int64
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return pipelineerr.Source("read_json_array", fmt.Errorf("%s: %w", path, err))
		}
		if err := fn(RawRecord{SourceFile: path, RowIndex: idx, Raw: raw}); err != nil {
			return err
		}
		idx++
	}
	return nil
}

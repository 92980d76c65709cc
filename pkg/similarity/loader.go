package similarity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSource reads a JSON array of case records from disk.
type FileSource struct {
	Path string
}

func (f FileSource) LoadCases(ctx context.Context) ([]CaseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Clean(f.Path))
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer file.Close()
	return DecodeCases(file)
}

func DecodeCases(r io.Reader) ([]CaseRecord, error) {
	var records []CaseRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	if records == nil {
		records = []CaseRecord{}
	}
	return records, nil
}

package kb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Load reads and validates a knowledge record from a JSON file. The record
// is validated once here rather than defensively at every use site.
func Load(path string) (*KnowledgeRecord, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("knowledge path required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge record: %w", err)
	}
	var record KnowledgeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode knowledge record: %w", err)
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("validate knowledge record: %w", err)
	}
	return &record, nil
}

// Validate checks the few fields the corpus cannot do without. Optional
// sections are allowed to be absent; the corpus builder omits their docs.
func (r *KnowledgeRecord) Validate() error {
	if r == nil {
		return errors.New("nil knowledge record")
	}
	if strings.TrimSpace(r.Brand.Name) == "" {
		return errors.New("brand name required")
	}
	if len(r.Hours) == 0 {
		return errors.New("at least one hours entry required")
	}
	for i, row := range r.Hours {
		if strings.TrimSpace(row.Days) == "" {
			return fmt.Errorf("hours entry %d missing days", i)
		}
	}
	return nil
}

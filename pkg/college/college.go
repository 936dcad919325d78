/*
Package college serves the prepopulated college list.

College records are opaque pass-through objects keyed by "id": they are
loaded once from a static JSON file, never normalized beyond an id existence
check, and never mutated by requests.
*/
package college

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// ErrNotFound means no college carries the requested id.
var ErrNotFound = errors.New("college not found")

// Record is an opaque college object passed through verbatim.
type Record map[string]any

// ID returns the record's string id, empty when absent or not a string.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Store is the immutable college list, safe for concurrent readers.
type Store struct {
	records []Record
	byID    map[string]int
}

// NewStore builds a store over the given records in order. Records without
// a string id stay listed but are unreachable by Get.
func NewStore(records []Record) *Store {
	s := &Store{
		records: records,
		byID:    make(map[string]int, len(records)),
	}
	for i, rec := range records {
		id := rec.ID()
		if id == "" {
			continue
		}
		if _, dup := s.byID[id]; dup {
			continue
		}
		s.byID[id] = i
	}
	return s
}

// Load reads the colleges JSON file. Any failure is logged once and
// degrades to an empty store; the endpoints then serve empty lists and
// not-found instead of failing.
func Load(path string) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("Failed to read colleges file %s: %v. Serving empty college list.", path, err)
		return NewStore(nil)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Errorf("Failed to parse colleges file %s: %v. Serving empty college list.", path, err)
		return NewStore(nil)
	}
	log.Infof("Loaded %d college records from %s", len(records), path)
	return NewStore(records)
}

// All returns every college in file order; never nil.
func (s *Store) All() []Record {
	if s == nil || s.records == nil {
		return []Record{}
	}
	return s.records
}

// Len returns the number of loaded colleges.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Get returns the college with exactly the given id.
func (s *Store) Get(id string) (Record, error) {
	if s == nil {
		return nil, ErrNotFound
	}
	idx, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.records[idx], nil
}

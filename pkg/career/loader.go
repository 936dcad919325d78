package career

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/shawnasapp/careerserve/internal/utils"
)

// snapshotVersion guards against loading snapshots written by an
// incompatible compiler.
const snapshotVersion = 1

// snapshot is the compiled prepop format: the raw records msgpack-encoded
// behind a small versioned header. Compiling keeps the deploy artifact
// smaller and the load faster than parsing the source JSON.
type snapshot struct {
	Version int         `msgpack:"version"`
	Count   int         `msgpack:"count"`
	Records []rawRecord `msgpack:"records"`
}

// LoadRecords reads a prepopulated careers file, either the source JSON
// array or a compiled .bin snapshot (picked by extension), normalizes the
// raw records and drops the unusable ones.
func LoadRecords(path string) ([]Record, error) {
	var raws []rawRecord
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin":
		raws, err = readSnapshot(path)
	case ".json":
		raws, err = readJSON(path)
	default:
		err = fmt.Errorf("unsupported careers file format: %s", path)
	}
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		rec, ok := raw.normalize()
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		log.Warnf("Dropped %d career records without a usable title from %s", dropped, path)
	}
	return records, nil
}

// LoadStore loads records and builds the store. Any load failure is logged
// once and degrades to a permanently empty store; callers serve "no data"
// responses instead of crashing.
func LoadStore(path string, opts Options) *Store {
	records, err := LoadRecords(path)
	if err != nil {
		log.Errorf("Failed to load career data from %s: %v. Serving empty results.", path, err)
		return NewStore(nil, opts)
	}
	log.Infof("Loaded %d career records from %s", len(records), path)
	return NewStore(records, opts)
}

func readJSON(path string) ([]rawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read careers file: %w", err)
	}
	var raws []rawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse careers file %s: %w", path, err)
	}
	return raws, nil
}

func readSnapshot(path string) ([]rawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("snapshot %s has version %d, want %d", path, snap.Version, snapshotVersion)
	}
	if snap.Count != len(snap.Records) {
		return nil, fmt.Errorf("snapshot %s header count %d does not match %d records", path, snap.Count, len(snap.Records))
	}
	return snap.Records, nil
}

// CompileSnapshot reads a source JSON careers file and writes the compiled
// msgpack snapshot. It returns the number of records written.
func CompileSnapshot(jsonPath, binPath string) (int, error) {
	raws, err := readJSON(jsonPath)
	if err != nil {
		return 0, err
	}
	data, err := msgpack.Marshal(snapshot{
		Version: snapshotVersion,
		Count:   len(raws),
		Records: raws,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := utils.EnsureDir(filepath.Dir(binPath)); err != nil {
		return 0, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(binPath, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write snapshot %s: %w", binPath, err)
	}
	return len(raws), nil
}

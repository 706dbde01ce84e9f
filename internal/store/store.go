// Package store persists pipeline artifacts as JSON files under a data
// directory. Object keys keep the run's language order on both write and
// read so reports are stable across save/load round trips.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/duyhunghd6/polycode-cli/internal/types"
)

// Artifact file names inside the data directory.
const (
	TranslationsFile = "translated_prompts.json"
	OutputsFile      = "llm_output.json"
	ExtractedFile    = "extracted_code.json"
	AnalysisFile     = "analysis.json"
	ReportFile       = "analysis_report.txt"
	ChartsFile       = "charts.html"
	CodeDir          = "python_files"
)

// Store manages the data directory holding run artifacts.
type Store struct {
	DataDir string
}

// New creates a store rooted at dataDir.
func New(dataDir string) *Store {
	return &Store{DataDir: dataDir}
}

// SaveTextMap writes a LanguageCode → text (or null) mapping, with keys in
// the given order.
func (s *Store) SaveTextMap(name string, order []string, m map[string]*string) error {
	return s.writeOrdered(name, order, func(key string) (any, bool) {
		v, ok := m[key]
		return v, ok
	})
}

// LoadTextMap reads a LanguageCode → text (or null) mapping along with its
// key order.
func (s *Store) LoadTextMap(name string) ([]string, map[string]*string, error) {
	m := make(map[string]*string)
	order, err := s.readOrdered(name, func(key string, dec *json.Decoder) error {
		var v *string
		if err := dec.Decode(&v); err != nil {
			return err
		}
		m[key] = v
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return order, m, nil
}

// SaveAnalysis writes the per-language analysis records, with keys in the
// given order.
func (s *Store) SaveAnalysis(order []string, records map[string]*types.AnalysisRecord) error {
	return s.writeOrdered(AnalysisFile, order, func(key string) (any, bool) {
		rec, ok := records[key]
		return rec, ok
	})
}

// LoadAnalysis reads the per-language analysis records along with their key
// order.
func (s *Store) LoadAnalysis() ([]string, map[string]*types.AnalysisRecord, error) {
	records := make(map[string]*types.AnalysisRecord)
	order, err := s.readOrdered(AnalysisFile, func(key string, dec *json.Decoder) error {
		var rec types.AnalysisRecord
		if err := dec.Decode(&rec); err != nil {
			return err
		}
		records[key] = &rec
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return order, records, nil
}

// SaveReport writes the textual summary report.
func (s *Store) SaveReport(text string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.path(ReportFile), []byte(text), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// SaveCharts renders the chart dashboard into the data directory.
func (s *Store) SaveCharts(render func(w io.Writer) error) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	f, err := os.Create(s.path(ChartsFile))
	if err != nil {
		return fmt.Errorf("create charts file: %w", err)
	}
	defer f.Close()
	if err := render(f); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}

// SaveCodeFiles exports each language's extracted code as an individual
// .py file with a provenance header. Languages without code are skipped.
// prompts may be nil. Returns the written paths in language order.
func (s *Store) SaveCodeFiles(order []string, code, prompts map[string]*string) ([]string, error) {
	dir := s.path(CodeDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create code dir: %w", err)
	}

	var written []string
	for _, lang := range order {
		c := code[lang]
		if c == nil || *c == "" {
			continue
		}
		prompt := "unknown"
		if p := prompts[lang]; p != nil {
			prompt = *p
		}
		header := fmt.Sprintf("# Python code generated for language: %s\n# Original prompt: %s\n\n", lang, prompt)
		path := filepath.Join(dir, lang+"_code.py")
		if err := os.WriteFile(path, []byte(header+*c), 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Exists returns true if the named artifact exists.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

func (s *Store) writeOrdered(name string, order []string, value func(key string) (any, bool)) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	first := true
	for _, key := range order {
		v, ok := value(key)
		if !ok {
			continue
		}
		if !first {
			buf.WriteString(",\n")
		}
		first = false

		keyData, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("marshal key %q: %w", key, err)
		}
		valData, err := json.MarshalIndent(v, "  ", "  ")
		if err != nil {
			return fmt.Errorf("marshal value for %q: %w", key, err)
		}
		buf.WriteString("  ")
		buf.Write(keyData)
		buf.WriteString(": ")
		buf.Write(valData)
	}
	buf.WriteString("\n}\n")

	if err := os.WriteFile(s.path(name), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// readOrdered decodes a JSON object token by token so key order survives.
func (s *Store) readOrdered(name string, decodeValue func(key string, dec *json.Decoder) error) ([]string, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("read %s: expected object, got %v", name, tok)
	}

	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read %s key: %w", name, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("read %s: non-string key %v", name, keyTok)
		}
		if err := decodeValue(key, dec); err != nil {
			return nil, fmt.Errorf("decode %s[%q]: %w", name, key, err)
		}
		order = append(order, key)
	}
	return order, nil
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(s.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.DataDir, name)
}

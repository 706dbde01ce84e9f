package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/duyhunghd6/polycode-cli/internal/types"
)

func strptr(s string) *string { return &s }

func TestTextMapRoundTripKeepsOrder(t *testing.T) {
	s := New(t.TempDir())
	// deliberately not alphabetical
	order := []string{"zh-CN", "en", "ar"}
	m := map[string]*string{
		"zh-CN": strptr("你好"),
		"en":    strptr("hello"),
		"ar":    nil,
	}

	if err := s.SaveTextMap(TranslationsFile, order, m); err != nil {
		t.Fatalf("SaveTextMap: %v", err)
	}

	gotOrder, gotMap, err := s.LoadTextMap(TranslationsFile)
	if err != nil {
		t.Fatalf("LoadTextMap: %v", err)
	}
	if !reflect.DeepEqual(gotOrder, order) {
		t.Errorf("order = %v, want %v", gotOrder, order)
	}
	if gotMap["ar"] != nil {
		t.Errorf("ar = %v, want nil", *gotMap["ar"])
	}
	if gotMap["en"] == nil || *gotMap["en"] != "hello" {
		t.Errorf("en = %v", gotMap["en"])
	}
	if gotMap["zh-CN"] == nil || *gotMap["zh-CN"] != "你好" {
		t.Errorf("zh-CN = %v", gotMap["zh-CN"])
	}
}

func TestSaveTextMapSkipsAbsentKeys(t *testing.T) {
	s := New(t.TempDir())
	order := []string{"en", "fr"}
	m := map[string]*string{"en": strptr("hello")}

	if err := s.SaveTextMap(OutputsFile, order, m); err != nil {
		t.Fatalf("SaveTextMap: %v", err)
	}
	gotOrder, _, err := s.LoadTextMap(OutputsFile)
	if err != nil {
		t.Fatalf("LoadTextMap: %v", err)
	}
	if !reflect.DeepEqual(gotOrder, []string{"en"}) {
		t.Errorf("order = %v, want [en]", gotOrder)
	}
}

func TestAnalysisRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	order := []string{"ru", "en"}
	records := map[string]*types.AnalysisRecord{
		"ru": {Language: "ru", HasCode: true, Error: "syntax error at line 1, column 3"},
		"en": {
			Language:   "en",
			HasCode:    true,
			Statistics: &types.Statistics{FunctionCount: 1, NumericLiteralCount: 2},
			Elements: &types.Elements{
				Functions: []types.FunctionElement{
					{Name: "add", Args: []string{"a", "b"}, Decorators: []string{}, HasReturn: true},
				},
			},
		},
	}

	if err := s.SaveAnalysis(order, records); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	gotOrder, gotRecs, err := s.LoadAnalysis()
	if err != nil {
		t.Fatalf("LoadAnalysis: %v", err)
	}
	if !reflect.DeepEqual(gotOrder, order) {
		t.Errorf("order = %v, want %v", gotOrder, order)
	}
	if !reflect.DeepEqual(gotRecs["ru"], records["ru"]) {
		t.Errorf("ru = %+v, want %+v", gotRecs["ru"], records["ru"])
	}
	en := gotRecs["en"]
	if en == nil || en.Statistics == nil || en.Statistics.FunctionCount != 1 {
		t.Fatalf("en = %+v", en)
	}
	if len(en.Elements.Functions) != 1 || en.Elements.Functions[0].Name != "add" {
		t.Errorf("en functions = %+v", en.Elements.Functions)
	}
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.SaveReport("summary text\n"); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, ReportFile))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(data) != "summary text\n" {
		t.Errorf("report = %q", data)
	}
	if !s.Exists(ReportFile) {
		t.Error("Exists(ReportFile) = false")
	}
}

func TestSaveCodeFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	order := []string{"en", "fr", "de"}
	code := map[string]*string{
		"en": strptr("print(1)"),
		"fr": nil,
		"de": strptr(""),
	}
	prompts := map[string]*string{"en": strptr("write code")}

	written, err := s.SaveCodeFiles(order, code, prompts)
	if err != nil {
		t.Fatalf("SaveCodeFiles: %v", err)
	}
	if len(written) != 1 {
		t.Fatalf("written = %v, want one file", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, CodeDir, "en_code.py"))
	if err != nil {
		t.Fatalf("read code file: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "# Python code generated for language: en\n# Original prompt: write code\n\n") {
		t.Errorf("header = %q", text)
	}
	if !strings.HasSuffix(text, "print(1)") {
		t.Errorf("body = %q", text)
	}

	for _, lang := range []string{"fr", "de"} {
		if _, err := os.Stat(filepath.Join(dir, CodeDir, lang+"_code.py")); !os.IsNotExist(err) {
			t.Errorf("%s_code.py written for language without code", lang)
		}
	}
}

func TestSaveCodeFilesUnknownPrompt(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	_, err := s.SaveCodeFiles([]string{"ja"}, map[string]*string{"ja": strptr("x = 1")}, nil)
	if err != nil {
		t.Fatalf("SaveCodeFiles: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, CodeDir, "ja_code.py"))
	if err != nil {
		t.Fatalf("read code file: %v", err)
	}
	if !strings.Contains(string(data), "# Original prompt: unknown\n") {
		t.Errorf("header = %q", data)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := New(t.TempDir())
	if _, _, err := s.LoadTextMap(TranslationsFile); err == nil {
		t.Fatal("LoadTextMap succeeded on missing file")
	}
	if s.Exists(TranslationsFile) {
		t.Error("Exists = true for missing file")
	}
}

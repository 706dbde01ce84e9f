// Package pipeline is the top-level orchestrator: translate → generate →
// extract → analyze → summarize. Failures are isolated per language; nothing
// in a single language's processing can abort the run.
package pipeline

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/duyhunghd6/polycode-cli/internal/analyze"
	"github.com/duyhunghd6/polycode-cli/internal/extract"
	"github.com/duyhunghd6/polycode-cli/internal/llm"
	"github.com/duyhunghd6/polycode-cli/internal/report"
	"github.com/duyhunghd6/polycode-cli/internal/store"
	"github.com/duyhunghd6/polycode-cli/internal/translate"
	"github.com/duyhunghd6/polycode-cli/internal/types"
	"github.com/duyhunghd6/polycode-cli/internal/util"
)

// Engine wires the collaborators and core stages together.
type Engine struct {
	translator *translate.Client
	llm        *llm.Client
	analyzer   *analyze.Analyzer
	store      *store.Store
}

// Config holds engine configuration.
type Config struct {
	DataDir string
	Model   string
	BaseURL string
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	dataDir := os.Getenv("POLYCODE_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	return Config{DataDir: dataDir}
}

// NewEngine creates a new pipeline engine.
func NewEngine(cfg Config) *Engine {
	client := llm.NewClient()
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}
	if cfg.Model != "" {
		client.Model = cfg.Model
	}
	return &Engine{
		translator: translate.NewClient(),
		llm:        client,
		analyzer:   analyze.New(),
		store:      store.New(cfg.DataDir),
	}
}

// TranslateResult holds the result of the translation stage.
type TranslateResult struct {
	Total      int    `json:"total"`
	Translated int    `json:"translated"`
	DataDir    string `json:"data_dir"`
}

// Translate renders the base prompt into every target language and persists
// the mapping. A language whose translation fails is stored as null.
func (e *Engine) Translate(prompt string) (*TranslateResult, error) {
	prompt = util.NormalizeText(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("empty prompt")
	}

	log.Printf("[engine] translating prompt into %d languages", len(translate.TopLanguages))
	order := translate.Codes()
	prompts := e.translator.TranslateAll(prompt)

	if err := e.store.SaveTextMap(store.TranslationsFile, order, prompts); err != nil {
		return nil, fmt.Errorf("save translations: %w", err)
	}

	return &TranslateResult{
		Total:      len(order),
		Translated: countPresent(order, prompts),
		DataDir:    e.store.DataDir,
	}, nil
}

// GenerateResult holds the result of the generation stage.
type GenerateResult struct {
	Total     int    `json:"total"`
	Generated int    `json:"generated"`
	DataDir   string `json:"data_dir"`
}

// Generate queries the inference endpoint once per translated prompt and
// persists the raw responses. A null prompt short-circuits to a null
// response; a failed request is logged and stored as null.
func (e *Engine) Generate() (*GenerateResult, error) {
	order, prompts, err := e.store.LoadTextMap(store.TranslationsFile)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	outputs := e.generateOutputs(order, prompts)

	if err := e.store.SaveTextMap(store.OutputsFile, order, outputs); err != nil {
		return nil, fmt.Errorf("save outputs: %w", err)
	}

	return &GenerateResult{
		Total:     len(order),
		Generated: countPresent(order, outputs),
		DataDir:   e.store.DataDir,
	}, nil
}

func (e *Engine) generateOutputs(order []string, prompts map[string]*string) map[string]*string {
	outputs := make(map[string]*string, len(order))
	for _, lang := range order {
		prompt := prompts[lang]
		if prompt == nil {
			outputs[lang] = nil
			continue
		}
		log.Printf("[engine] querying model for %s", lang)
		response, err := e.llm.Generate(*prompt, false)
		if err != nil {
			log.Printf("[engine] generation failed for %s: %v", lang, err)
			outputs[lang] = nil
			continue
		}
		outputs[lang] = &response
	}
	return outputs
}

// RunResult holds the result of the analysis stage or a full run.
type RunResult struct {
	Total      int    `json:"total"`
	WithCode   int    `json:"with_code"`
	WithErrors int    `json:"with_errors"`
	Retries    int    `json:"retries"`
	DataDir    string `json:"data_dir"`
}

// Analyze extracts and structurally analyzes the persisted raw responses.
// This stage is fully offline: no retry generation is possible, so an empty
// extraction is accepted as final.
func (e *Engine) Analyze() (*RunResult, error) {
	order, outputs, err := e.store.LoadTextMap(store.OutputsFile)
	if err != nil {
		return nil, fmt.Errorf("load outputs: %w", err)
	}

	var prompts map[string]*string
	if e.store.Exists(store.TranslationsFile) {
		_, prompts, err = e.store.LoadTextMap(store.TranslationsFile)
		if err != nil {
			log.Printf("[engine] translations unavailable for code headers: %v", err)
		}
	}

	return e.analyzeOutputs(order, outputs, prompts, nil)
}

// Run executes the full pipeline for one prompt. The extraction stage may
// issue exactly one stricter regeneration per language whose first response
// yields no code.
func (e *Engine) Run(prompt string) (*RunResult, error) {
	prompt = util.NormalizeText(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("empty prompt")
	}

	log.Printf("[engine] translating prompt into %d languages", len(translate.TopLanguages))
	order := translate.Codes()
	prompts := e.translator.TranslateAll(prompt)
	if err := e.store.SaveTextMap(store.TranslationsFile, order, prompts); err != nil {
		return nil, fmt.Errorf("save translations: %w", err)
	}

	outputs := e.generateOutputs(order, prompts)
	if err := e.store.SaveTextMap(store.OutputsFile, order, outputs); err != nil {
		return nil, fmt.Errorf("save outputs: %w", err)
	}

	retries := 0
	regenerate := func(lang string) (string, bool) {
		prompt := prompts[lang]
		if prompt == nil {
			return "", false
		}
		log.Printf("[engine] empty extraction for %s, retrying with strict instruction", lang)
		response, err := e.llm.Generate(*prompt, true)
		if err != nil {
			log.Printf("[engine] retry failed for %s: %v", lang, err)
			return "", false
		}
		retries++
		outputs[lang] = &response
		return response, true
	}

	result, err := e.analyzeOutputs(order, outputs, prompts, regenerate)
	if err != nil {
		return nil, err
	}
	result.Retries = retries

	// retries replaced some raw responses
	if retries > 0 {
		if err := e.store.SaveTextMap(store.OutputsFile, order, outputs); err != nil {
			return nil, fmt.Errorf("save outputs: %w", err)
		}
	}
	return result, nil
}

// analyzeOutputs runs extraction and structural analysis per language,
// persists every artifact, and reduces the records into a summary.
// regenerate, when non-nil, is invoked at most once per language after an
// empty extraction; its response goes through the extraction ladder once
// more, and a second empty result is accepted as final.
func (e *Engine) analyzeOutputs(
	order []string,
	outputs map[string]*string,
	prompts map[string]*string,
	regenerate func(lang string) (string, bool),
) (*RunResult, error) {
	extracted := make(map[string]*string, len(order))
	records := make(map[string]*types.AnalysisRecord, len(order))

	for _, lang := range order {
		raw := outputs[lang]
		if raw == nil {
			// no response requested or obtained: straight to no-code
			extracted[lang] = nil
			records[lang] = &types.AnalysisRecord{Language: lang}
			continue
		}

		code := extract.Extract(*raw)
		if code == "" && regenerate != nil {
			if response, ok := regenerate(lang); ok {
				code = extract.Extract(response)
			}
		}

		if code == "" {
			extracted[lang] = nil
		} else {
			c := code
			extracted[lang] = &c
		}
		records[lang] = e.safeAnalyze(code, lang)
	}

	if err := e.store.SaveTextMap(store.ExtractedFile, order, extracted); err != nil {
		return nil, fmt.Errorf("save extracted code: %w", err)
	}
	if _, err := e.store.SaveCodeFiles(order, extracted, prompts); err != nil {
		log.Printf("[engine] code file export failed: %v", err)
	}
	if err := e.store.SaveAnalysis(order, records); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}

	summary := report.Summarize(order, records)
	if err := e.store.SaveReport(report.Render(summary)); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	if err := e.store.SaveCharts(func(w io.Writer) error {
		return report.WriteCharts(summary, w)
	}); err != nil {
		log.Printf("[engine] chart rendering failed: %v", err)
	}

	return &RunResult{
		Total:      summary.Total,
		WithCode:   summary.WithCode,
		WithErrors: summary.WithErrors,
		DataDir:    e.store.DataDir,
	}, nil
}

// safeAnalyze isolates a single language's analysis: an unexpected panic is
// captured into that language's record and the run continues.
func (e *Engine) safeAnalyze(code, lang string) (rec *types.AnalysisRecord) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[engine] analysis failed unexpectedly for %s: %v", lang, r)
			rec = &types.AnalysisRecord{
				Language: lang,
				HasCode:  code != "",
				Error:    fmt.Sprintf("unexpected failure: %v", r),
			}
		}
	}()
	return e.analyzer.Analyze(code, lang)
}

// Report re-renders the summary report and charts from the persisted
// analysis and returns the report text.
func (e *Engine) Report() (string, error) {
	order, records, err := e.store.LoadAnalysis()
	if err != nil {
		return "", fmt.Errorf("load analysis: %w", err)
	}

	summary := report.Summarize(order, records)
	text := report.Render(summary)

	if err := e.store.SaveReport(text); err != nil {
		return "", err
	}
	if err := e.store.SaveCharts(func(w io.Writer) error {
		return report.WriteCharts(summary, w)
	}); err != nil {
		log.Printf("[engine] chart rendering failed: %v", err)
	}
	return text, nil
}

func countPresent(order []string, m map[string]*string) int {
	n := 0
	for _, key := range order {
		if m[key] != nil {
			n++
		}
	}
	return n
}

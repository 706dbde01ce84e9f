package types

// Statistics holds aggregate node counts for one parsed response.
// All counters are recomputed from scratch on every parse.
type Statistics struct {
	FunctionCount       int `json:"function_count"`
	ClassCount          int `json:"class_count"`
	ImportCount         int `json:"import_count"`
	VariableCount       int `json:"variable_count"`
	FunctionCallCount   int `json:"function_call_count"`
	LoopCount           int `json:"loop_count"`
	ConditionalCount    int `json:"conditional_count"`
	StringLiteralCount  int `json:"string_literal_count"`
	NumericLiteralCount int `json:"numeric_literal_count"`
}

// FunctionElement describes a function definition.
type FunctionElement struct {
	Name       string   `json:"name"`
	Args       []string `json:"args"`
	Decorators []string `json:"decorators"`
	HasReturn  bool     `json:"has_return"`
}

// MethodElement describes a method inside a class body.
type MethodElement struct {
	Name      string   `json:"name"`
	Args      []string `json:"args"`
	HasReturn bool     `json:"has_return"`
}

// ClassElement describes a class definition.
type ClassElement struct {
	Name    string          `json:"name"`
	Bases   []string        `json:"bases"`
	Methods []MethodElement `json:"methods"`
}

// ImportElement describes one imported name. A plain "import x" has only
// Module set; "from x import y as z" sets Module, Name, and Alias.
type ImportElement struct {
	Module string `json:"module"`
	Name   string `json:"name,omitempty"`
	Alias  string `json:"alias,omitempty"`
}

// VariableElement describes a variable binding and the inferred kind of its
// assigned value.
type VariableElement struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CallElement describes a call expression.
type CallElement struct {
	Name          string `json:"name"`
	ArgsCount     int    `json:"args_count"`
	KeywordsCount int    `json:"keywords_count"`
}

// LoopElement describes a for or while loop.
type LoopElement struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
}

// ConditionalElement describes a conditional and a best-effort rendering of
// its test expression.
type ConditionalElement struct {
	Type string `json:"type"`
	Test string `json:"test"`
}

// Elements holds the ordered descriptor lists extracted from one parse.
type Elements struct {
	Functions    []FunctionElement    `json:"functions"`
	Classes      []ClassElement       `json:"classes"`
	Imports      []ImportElement      `json:"imports"`
	Variables    []VariableElement    `json:"variables"`
	Calls        []CallElement        `json:"function_calls"`
	Loops        []LoopElement        `json:"loops"`
	Conditionals []ConditionalElement `json:"conditionals"`
}

// AnalysisRecord is the per-language outcome of structural analysis. Exactly
// one of three states holds:
//
//   - no code:     HasCode == false
//   - parse error: HasCode == true, Error != "", RawCode carries the code
//     that failed to parse
//   - parsed:      HasCode == true, Error == "", Statistics and Elements set
type AnalysisRecord struct {
	Language   string      `json:"language"`
	HasCode    bool        `json:"has_code"`
	Error      string      `json:"error,omitempty"`
	Statistics *Statistics `json:"statistics,omitempty"`
	Elements   *Elements   `json:"elements,omitempty"`
	RawCode    string      `json:"raw_code,omitempty"`
}

// Parsed reports whether the record carries a successful parse.
func (r *AnalysisRecord) Parsed() bool {
	return r.HasCode && r.Error == ""
}

// LanguageSummary is the per-language block of a summary report.
type LanguageSummary struct {
	Language      string   `json:"language"`
	HasCode       bool     `json:"has_code"`
	Error         string   `json:"error,omitempty"`
	Functions     int      `json:"functions"`
	Classes       int      `json:"classes"`
	Imports       int      `json:"imports"`
	Variables     int      `json:"variables"`
	FunctionCalls int      `json:"function_calls"`
	Loops         int      `json:"loops"`
	FunctionNames []string `json:"function_names,omitempty"`
	ClassNames    []string `json:"class_names,omitempty"`
}

// SummaryReport aggregates the analysis records of one run. It is always
// derived from the record mapping, never mutated independently.
type SummaryReport struct {
	Total      int               `json:"total"`
	WithCode   int               `json:"with_code"`
	WithErrors int               `json:"with_errors"`
	Languages  []LanguageSummary `json:"languages"`
}

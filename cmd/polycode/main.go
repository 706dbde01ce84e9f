package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/duyhunghd6/polycode-cli/internal/config"
	"github.com/duyhunghd6/polycode-cli/internal/pipeline"
)

var version = "0.1.0-dev"

func main() {
	// Load global config from ~/.polycode/config.yaml first
	if _, err := config.Load(); err != nil {
		log.Printf("warning: config load: %v", err)
	}
	// Then load local .env (overrides YAML since env vars take precedence)
	_ = godotenv.Load()

	rootCmd := buildRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// buildRootCmd creates the root cobra command with all subcommands.
func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "polycode",
		Short: "🌐 Multilingual prompt-to-code robustness pipeline",
		Long: `Polycode measures how well an LLM writes Python code when the same
prompt is machine-translated into many natural languages. It translates a
base prompt, queries the inference endpoint per language, extracts code from
the noisy responses, structurally analyzes it with tree-sitter, and
aggregates everything into a cross-language report and chart dashboard.`,
		Version: version,
	}

	// Shared flags
	var dataDir string
	var model string
	var baseURL string
	var jsonOutput bool

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory for run artifacts (default: ./data)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Model name (default: from config)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Inference endpoint base URL (default: from config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	buildConfig := func() pipeline.Config {
		cfg := pipeline.DefaultConfig()
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		cfg.Model = model
		cfg.BaseURL = baseURL
		return cfg
	}

	printResult := func(result any, human func()) error {
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		human()
		return nil
	}

	// --- run command ---
	runCmd := &cobra.Command{
		Use:   "run <prompt>",
		Short: "Run the full pipeline for a prompt",
		Long:  "Translate the prompt, generate code per language, extract, analyze, and report.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			engine := pipeline.NewEngine(buildConfig())

			fmt.Println("🌐 Running multilingual code pipeline...")
			start := time.Now()

			result, err := engine.Run(prompt)
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			elapsed := time.Since(start)
			return printResult(result, func() {
				fmt.Printf("\n✅ Analyzed %d languages in %s\n", result.Total, elapsed.Round(time.Millisecond))
				fmt.Printf("   With code: %d\n", result.WithCode)
				fmt.Printf("   Errors:    %d\n", result.WithErrors)
				if result.Retries > 0 {
					fmt.Printf("   Retries:   %d\n", result.Retries)
				}
				fmt.Printf("   Artifacts: %s\n", result.DataDir)
			})
		},
	}
	rootCmd.AddCommand(runCmd)

	// --- translate command ---
	translateCmd := &cobra.Command{
		Use:   "translate <prompt>",
		Short: "Translate the base prompt into all target languages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			engine := pipeline.NewEngine(buildConfig())

			result, err := engine.Translate(prompt)
			if err != nil {
				return fmt.Errorf("translation failed: %w", err)
			}
			return printResult(result, func() {
				fmt.Printf("✅ Translated %d/%d languages → %s\n", result.Translated, result.Total, result.DataDir)
			})
		},
	}
	rootCmd.AddCommand(translateCmd)

	// --- generate command ---
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code for each saved translated prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := pipeline.NewEngine(buildConfig())

			result, err := engine.Generate()
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}
			return printResult(result, func() {
				fmt.Printf("✅ Generated %d/%d responses → %s\n", result.Generated, result.Total, result.DataDir)
			})
		},
	}
	rootCmd.AddCommand(generateCmd)

	// --- analyze command ---
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Extract and structurally analyze the saved LLM responses",
		Long:  "Offline stage: reads llm_output.json, extracts code, parses it, and writes the analysis, report, and charts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := pipeline.NewEngine(buildConfig())

			result, err := engine.Analyze()
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			return printResult(result, func() {
				fmt.Printf("✅ Analyzed %d languages (%d with code, %d errors) → %s\n",
					result.Total, result.WithCode, result.WithErrors, result.DataDir)
			})
		},
	}
	rootCmd.AddCommand(analyzeCmd)

	// --- report command ---
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Re-render the summary report and charts from the saved analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := pipeline.NewEngine(buildConfig())

			text, err := engine.Report()
			if err != nil {
				return fmt.Errorf("report failed: %w", err)
			}
			fmt.Println(text)
			return nil
		},
	}
	rootCmd.AddCommand(reportCmd)

	// --- completion command ---
	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for polycode.

To load completions:

Bash:
  $ source <(polycode completion bash)

Zsh:
  $ polycode completion zsh > "${fpath[1]}/_polycode"

Fish:
  $ polycode completion fish | source
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	rootCmd.AddCommand(completionCmd)

	return rootCmd
}

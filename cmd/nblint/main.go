package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/config"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/engine"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/extengine"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	vlog "github.com/chater-marzougui/kaggle-lint-sub001/internal/log"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/notebook"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/output"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/report"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/rule"

	// Import all rule packages so their init() functions register rules.
	_ "github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/captypos"
	_ "github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/duplicatefunc"
	_ "github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/emptycells"
	_ "github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/importissue"
	_ "github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/indentation"
	_ "github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/missingreturn"
	_ "github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/redefinedbuiltin"
	_ "github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/unclosedbracket"
	_ "github.com/chater-marzougui/kaggle-lint-sub001/internal/rules/undefinedvars"
)

// serviceURLEnv names the environment variable holding the lint service
// address, loadable from a .env file.
const serviceURLEnv = "NBLINT_SERVICE_URL"

func main() {
	os.Exit(run())
}

const usageText = `Usage: nblint <command> [flags] [files...]

Commands:
  check     Lint notebooks and Python files
  init      Generate a default .nblint.yml config file
  rules     List registered rules
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'nblint <command> --help' for more information on a command.
`

func run() int {
	// Handle no arguments: print usage, exit 0.
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	first := os.Args[1]

	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	// Dispatch to subcommand.
	switch first {
	case "check":
		return runCheck(os.Args[2:])
	case "init":
		return runInit(os.Args[2:])
	case "rules":
		return runRules(os.Args[2:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "nblint: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("nblint %s\n", version)
}

// runCheck implements the "check" subcommand: lint notebooks.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var (
		configPath  string
		format      string
		minSeverity string
		engineName  string
		serviceURL  string
		envFile     string
		noColor     bool
		quiet       bool
		verbose     bool
	)

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&format, "format", "f", "text", "Output format: text, json, html")
	fs.StringVarP(&minSeverity, "min-severity", "s", "", "Minimum severity to report: error, warning, info")
	fs.StringVar(&engineName, "engine", "", "Engine to use: heuristic, service")
	fs.StringVar(&serviceURL, "service-url", "", "Lint service base URL (service engine)")
	fs.StringVar(&envFile, "env-file", ".env", "Path to a .env file with service settings")
	fs.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Show config, files, and rules on stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nblint check [flags] <files...>\n\n"+
			"Lint Jupyter notebooks (.ipynb) and Python files for style and\n"+
			"correctness issues. Cells are analyzed in order; names defined in\n"+
			"earlier cells are known to later ones.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	// --quiet suppresses verbose
	if quiet {
		verbose = false
	}

	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return 2
	}

	// Optional: service settings may live in a .env file.
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "nblint: loading %s: %v\n", envFile, err)
		return 2
	}

	opts := checkOpts{
		configPath:  configPath,
		format:      format,
		minSeverity: minSeverity,
		engineName:  engineName,
		serviceURL:  serviceURL,
		noColor:     noColor,
		quiet:       quiet,
		verbose:     verbose,
	}
	return checkFiles(files, opts)
}

type checkOpts struct {
	configPath  string
	format      string
	minSeverity string
	engineName  string
	serviceURL  string
	noColor     bool
	quiet       bool
	verbose     bool
}

// checkFiles lints the given notebook paths and returns the exit code.
func checkFiles(fileArgs []string, opts checkOpts) int {
	logger := &vlog.Logger{Enabled: opts.verbose, W: os.Stderr}

	cfg, cfgPath, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nblint: %v\n", err)
		return 2
	}
	if cfgPath != "" {
		logger.Printf("config: %s", cfgPath)
	}

	engineName := cfg.Engine.Name
	if opts.engineName != "" {
		engineName = opts.engineName
	}
	minSeverity := cfg.MinSeverity
	if opts.minSeverity != "" {
		minSeverity = opts.minSeverity
	}

	var svc *extengine.Client
	if engineName == config.EngineService {
		url := resolveServiceURL(opts.serviceURL, cfg)
		if url == "" {
			fmt.Fprintf(os.Stderr, "nblint: engine %q selected but no service URL configured\n", engineName)
			return 2
		}
		svc = extengine.New(url, logger)
	}

	var all []lint.Diagnostic
	checked := 0
	hadErrors := false
	for _, path := range fileArgs {
		if config.Ignored(cfg, path) {
			logger.Printf("ignored: %s", path)
			continue
		}
		cells, err := notebook.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "nblint: %v\n", err)
			hadErrors = true
			continue
		}
		checked++

		var diags []lint.Diagnostic
		if svc != nil {
			diags, err = svc.LintNotebook(context.Background(), cells)
			if err != nil {
				fmt.Fprintf(os.Stderr, "nblint: %s: %v\n", path, err)
				hadErrors = true
				continue
			}
		} else {
			eng := buildEngine(cfg, path, logger)
			diags = eng.LintNotebook(cells)
		}

		for i := range diags {
			diags[i].File = path
		}
		all = append(all, diags...)
	}

	all = report.FilterBySeverity(all, lint.Severity(minSeverity))

	if hadErrors && len(all) == 0 {
		return 2
	}
	if !opts.quiet && len(all) > 0 {
		if code := formatDiagnostics(all, opts.format, opts.noColor); code != 0 {
			return code
		}
	}
	logger.Printf("checked %d files, %d issues found", checked, len(all))

	if len(all) > 0 {
		return 1
	}
	return 0
}

// buildEngine assembles the heuristic engine for one notebook, honoring the
// effective per-path rule configuration. Rules are cloned so per-notebook
// settings never leak into the shared registry.
func buildEngine(cfg *config.Config, path string, logger *vlog.Logger) *engine.Engine {
	effective := config.Effective(cfg, path)
	eng := engine.New(logger)
	for _, r := range rule.All() {
		rc, configured := effective[r.ID()]
		if configured && !rc.Enabled {
			continue
		}
		c := rule.Clone(r)
		if configured && rc.Settings != nil {
			if cc, ok := c.(rule.Configurable); ok {
				if err := cc.ApplySettings(rc.Settings); err != nil {
					logger.Printf("rule %s: bad settings: %v", r.ID(), err)
				}
			}
		}
		eng.Register(c)
	}
	return eng
}

// resolveServiceURL picks the lint service address: flag, then config, then
// environment.
func resolveServiceURL(flagURL string, cfg *config.Config) string {
	if flagURL != "" {
		return flagURL
	}
	if cfg.Engine.ServiceURL != "" {
		return cfg.Engine.ServiceURL
	}
	return os.Getenv(serviceURLEnv)
}

// formatDiagnostics writes diagnostics to stdout using the specified format.
// Returns a non-zero exit code on write error, or 0 on success.
func formatDiagnostics(diags []lint.Diagnostic, format string, noColor bool) int {
	var formatter output.Formatter
	switch format {
	case "json":
		formatter = &output.JSONFormatter{}
	case "html":
		formatter = &output.HTMLFormatter{}
	default:
		formatter = &output.TextFormatter{Color: !noColor}
	}
	if err := formatter.Format(os.Stdout, diags); err != nil {
		fmt.Fprintf(os.Stderr, "nblint: error writing output: %v\n", err)
		return 2
	}
	return 0
}

// runInit implements the "init" subcommand: generate .nblint.yml.
func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nblint init\n\n"+
			"Generate a default .nblint.yml config file in the current directory.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "nblint: init takes no arguments\n")
		return 2
	}

	const configFile = ".nblint.yml"

	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(os.Stderr, "nblint: %s already exists\n", configFile)
		return 2
	}

	cfg := config.DumpDefaults()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nblint: marshalling config: %v\n", err)
		return 2
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "nblint: writing %s: %v\n", configFile, err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "nblint: created %s\n", configFile)
	return 0
}

// runRules implements the "rules" subcommand: list registered rules.
func runRules(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nblint rules\n\n"+
			"List all registered rules with their IDs.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	for _, r := range rule.All() {
		fmt.Printf("%-6s %s\n", r.ID(), r.Name())
	}
	return 0
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory. It returns the
// merged config, the path that was loaded (empty if defaults only), and
// any error.
func loadConfig(configPath string) (*config.Config, string, error) {
	defaults := config.Defaults()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, "", err
		}
		return config.Merge(defaults, loaded), configPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return config.Merge(defaults, nil), "", nil
	}

	discovered, err := config.Discover(cwd)
	if err != nil || discovered == "" {
		return config.Merge(defaults, nil), "", nil
	}

	loaded, err := config.Load(discovered)
	if err != nil {
		return nil, "", err
	}

	return config.Merge(defaults, loaded), discovered, nil
}

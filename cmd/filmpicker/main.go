package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"filmpicker/internal/cache"
	"filmpicker/internal/config"
	"filmpicker/internal/debug"
	"filmpicker/internal/films"
	"filmpicker/internal/graphql"
	"filmpicker/internal/ui"
	"filmpicker/internal/ui/theme"
)

const cacheOpenTimeout = 5 * time.Second

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	versionFlag := flag.Bool("version", false, "Print version information and exit")
	endpointFlag := flag.String("endpoint", config.GetString(config.KeyEndpoint), "GraphQL endpoint URL")
	debugFlag := flag.Bool("debug", false, "Write a debug log to ~/.filmpicker/debug.log")
	themeFlag := flag.String("theme", config.GetString(config.KeyTheme), "Color theme ("+strings.Join(theme.Available(), ", ")+")")
	outputFormatFlag := flag.String("output-format", config.GetString(config.KeyOutputFormat), "Result list markdown style (rich, light, plain)")
	cachePathFlag := flag.String("cache-path", config.GetString(config.KeyCachePath), "SQLite response cache file (empty disables caching)")
	noColorFlag := flag.Bool("no-color", false, "Disable colors")
	setupFlag := flag.Bool("setup", false, "Choose endpoint, theme and cache file interactively, then exit")
	flag.Parse()

	if *versionFlag {
		printVersion(os.Stdout)
		os.Exit(0)
	}
	if *setupFlag {
		if err := runSetup(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Configuration saved.")
		os.Exit(0)
	}

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})

	runtime := computeRuntimeOptions(runtimeFlags{
		endpoint:     endpointFlag,
		debug:        debugFlag,
		theme:        themeFlag,
		outputFormat: outputFormatFlag,
		cachePath:    cachePathFlag,
		noColor:      noColorFlag,
	}, visited)

	if err := run(runtime, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(runtime runtimeOptions, stdout, stderr io.Writer) error {
	if err := debug.Init(runtime.debug); err != nil {
		fmt.Fprintf(stderr, "Warning: debug log unavailable: %v\n", err)
	} else if debug.Enabled() {
		if path, err := debug.Path(); err == nil {
			fmt.Fprintf(stderr, "Debug log: %s\n", path)
		}
	}
	defer debug.Close()

	if runtime.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if runtime.theme != "" && !theme.SetTheme(runtime.theme) {
		fmt.Fprintf(stderr, "Warning: unknown theme %q, using %s\n", runtime.theme, theme.CurrentName())
	}

	catalog, closeCatalog, err := buildCatalog(runtime)
	if err != nil {
		return err
	}
	defer closeCatalog()

	appCfg := ui.Config{
		Catalog:  catalog,
		Endpoint: runtime.endpoint,
		Version:  Version,
		Picker: ui.PickerOptions{
			MinLength:      runtime.minLength,
			Debounce:       runtime.debounce,
			Throttle:       runtime.throttle,
			RequestTimeout: runtime.timeout,
			OutputFormat:   runtime.outputFormat,
		},
		SaveTheme: config.SaveTheme,
	}

	started := time.Now()
	final, err := runProgram(appCfg, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
	if err != nil {
		return err
	}
	if app, ok := final.(*ui.App); ok {
		printExitSummary(stdout, summaryFromApp(app, Version, started))
	}
	return nil
}

// buildCatalog creates the one GraphQL client and film service the picker
// uses for its lifetime, wrapped in the response cache when configured.
func buildCatalog(runtime runtimeOptions) (films.Catalog, func(), error) {
	client := graphql.NewClient(runtime.endpoint,
		graphql.WithTimeout(runtime.timeout),
		graphql.WithUserAgent("filmpicker/"+Version),
	)
	opts := films.SearchOptions{
		Pattern:   runtime.pattern,
		Limit:     runtime.limit,
		Collation: runtime.collation,
	}
	service := films.NewService(client, opts)
	if runtime.cachePath == "" {
		return service, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpenTimeout)
	defer cancel()
	store, err := cache.Open(ctx, runtime.cachePath, runtime.cacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	if n, err := store.Purge(ctx); err != nil {
		debug.Logf("cache purge: %v", err)
	} else if n > 0 {
		debug.Logf("cache purge: removed %d expired entries", n)
	}

	namespace := cacheNamespace(runtime.endpoint, service.Options())
	return films.NewCached(service, store, namespace), func() { _ = store.Close() }, nil
}

// cacheNamespace keeps entries from different endpoints or search shapes
// apart inside one cache file.
func cacheNamespace(endpoint string, opts films.SearchOptions) string {
	return fmt.Sprintf("%s|%s|%d|%s", endpoint, opts.Pattern, opts.Limit, opts.Collation)
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) (tea.Model, error) {
	app, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return nil, fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run UI: %w", err)
	}
	return final, nil
}

type runtimeFlags struct {
	endpoint     *string
	debug        *bool
	theme        *string
	outputFormat *string
	cachePath    *string
	noColor      *bool
}

type runtimeOptions struct {
	endpoint     string
	timeout      time.Duration
	debug        bool
	theme        string
	outputFormat string
	cachePath    string
	cacheTTL     time.Duration
	noColor      bool

	minLength int
	limit     int
	pattern   string
	collation films.Collation
	debounce  time.Duration
	throttle  time.Duration
}

func computeRuntimeOptions(flags runtimeFlags, visited map[string]struct{}) runtimeOptions {
	opts := runtimeOptions{
		endpoint:     strings.TrimSpace(config.GetString(config.KeyEndpoint)),
		timeout:      config.GetDuration(config.KeyTimeout),
		theme:        strings.TrimSpace(config.GetString(config.KeyTheme)),
		outputFormat: strings.TrimSpace(config.GetString(config.KeyOutputFormat)),
		cachePath:    strings.TrimSpace(config.GetString(config.KeyCachePath)),
		cacheTTL:     config.GetDuration(config.KeyCacheTTL),
		minLength:    config.GetInt(config.KeySearchMinLength),
		limit:        config.GetInt(config.KeySearchLimit),
		pattern:      config.GetString(config.KeySearchPattern),
		debounce:     config.GetDuration(config.KeySearchDebounce),
		throttle:     config.GetDuration(config.KeySearchThrottle),
	}

	collation, err := films.ParseCollation(config.GetString(config.KeySearchCollation))
	if err != nil {
		debug.Logf("config: %v, using %s", err, films.CollationBackend)
		collation = films.CollationBackend
	}
	opts.collation = collation

	if flagWasExplicitlySet("endpoint", visited) {
		opts.endpoint = strings.TrimSpace(*flags.endpoint)
	}
	if flagWasExplicitlySet("debug", visited) {
		opts.debug = *flags.debug
	}
	if flagWasExplicitlySet("theme", visited) {
		opts.theme = strings.TrimSpace(*flags.theme)
	}
	if flagWasExplicitlySet("output-format", visited) {
		opts.outputFormat = strings.TrimSpace(*flags.outputFormat)
	}
	if flagWasExplicitlySet("cache-path", visited) {
		opts.cachePath = strings.TrimSpace(*flags.cachePath)
	}
	if flagWasExplicitlySet("no-color", visited) {
		opts.noColor = *flags.noColor
	}
	if opts.endpoint == "" {
		opts.endpoint = config.DefaultEndpoint
	}
	return opts
}

func flagWasExplicitlySet(name string, visited map[string]struct{}) bool {
	if _, ok := visited[name]; ok {
		return true
	}
	f := flag.CommandLine.Lookup(name)
	if f == nil {
		return false
	}
	return f.Value.String() != f.DefValue
}

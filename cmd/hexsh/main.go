package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hexshell/internal/console"
	"hexshell/internal/display"
	"hexshell/internal/golden"
	"hexshell/internal/logger"
	"hexshell/internal/output"
	"hexshell/internal/script"
	"hexshell/internal/settings"
	"hexshell/internal/testutils"
	"hexshell/internal/version"
	"hexshell/internal/width"
)

var (
	logLevel   string
	logFile    string
	configFile string
	testMode   bool
	overrides  []string
	detailed   bool
	expect     bool
	record     bool
	quiet      bool
	colorMode  string
)

var rootCmd = &cobra.Command{
	Use:   "hexsh",
	Short: "hexsh - console that shows integers in hexadecimal",
	Long: `hexsh is an interactive console for inspecting values. Integers are displayed in
hexadecimal (with the decimal form at the top level), generators are previewed without
being consumed, and self-referencing containers are shown safely.`,
	RunE:          runShell, // Default behavior is to run the interactive shell
	SilenceUsage:  true,
	SilenceErrors: true,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive console",
	RunE:  runShell,
}

var runCmd = &cobra.Command{
	Use:   "run <file.hex>",
	Short: "Execute a .hex script file",
	Long: `Execute a .hex script without entering interactive mode. Script output is written
exactly as print receives it; only the interactive console converts values.

With --expect the output is compared against the script's .expected file and a diff is
shown on mismatch. --record writes that file instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

var evalCmd = &cobra.Command{
	Use:   "eval <expr>...",
	Short: "Evaluate expressions and display them as the console would",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEval,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "List display settings and their effective values",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		p := newPrinter()
		if detailed {
			p.Println(version.Detailed())
			return
		}
		p.Println(version.String())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: warn]")
	flags.StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	flags.StringVar(&configFile, "config", "", "Read settings from this file [default: $XDG_CONFIG_HOME/hexsh/config.yaml]")
	flags.BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")
	flags.StringArrayVar(&overrides, "set", nil, "Override a setting (key=value, repeatable)")
	flags.StringVar(&colorMode, "color", "auto", "Style messages (auto|always|never)")
	versionCmd.Flags().BoolVar(&detailed, "detailed", false, "Show build details")
	runCmd.Flags().BoolVar(&expect, "expect", false, "Compare output with the script's .expected file")
	runCmd.Flags().BoolVar(&record, "record", false, "Record output as the script's .expected file")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not report PASS or Recorded")
	runCmd.MarkFlagsMutuallyExclusive("expect", "record")

	for _, name := range []string{"log-level", "log-file", "config", "test-mode"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			logger.Fatal("Error binding flag", "flag", name, "error", err)
		}
	}

	rootCmd.AddCommand(shellCmd, runCmd, evalCmd, settingsCmd, versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(viper.GetString("log-level"), viper.GetString("log-file"), viper.GetBool("test-mode")); err != nil {
		logger.Fatal("Error configuring logger", "error", err)
	}
}

// newStore builds the settings store: defaults, .env, config file, then --set overrides.
func newStore() (*settings.Store, error) {
	store, err := settings.NewDefault()
	if err != nil {
		return nil, err
	}
	if !testMode {
		if err := store.LoadDotEnv(".env"); err != nil {
			return nil, err
		}
	}

	path := viper.GetString("config")
	if path == "" && !testMode {
		path = settings.DefaultConfigFile()
	}
	if path != "" {
		if err := store.LoadConfigFile(path); err != nil {
			return nil, err
		}
		if err := checkRequires(store.Requires()); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := applyOverrides(store, overrides); err != nil {
		return nil, err
	}
	warnAdjusted(newPrinter(output.WithWriter(os.Stderr), output.WithPrefix("hexsh: ")), store)
	return store, nil
}

// checkRequires fails when the config declares a version constraint this build does not meet.
func checkRequires(constraint string) error {
	if constraint == "" {
		return nil
	}
	ok, err := version.Satisfies(constraint)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("config requires hexsh %s, this is v%s", constraint, version.Version)
	}
	return nil
}

func warnAdjusted(p *output.Printer, store *settings.Store) {
	for _, a := range store.Adjustments() {
		p.Warning(fmt.Sprintf("%s = %d is out of range, using %d", a.Key, a.Raw, a.Value))
	}
}

func applyOverrides(store *settings.Store, pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("--set expects key=value, got %q", pair)
		}
		if err := store.Set(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	return nil
}

// newPrinter builds a message printer honoring --color. Unknown color modes mean auto.
func newPrinter(opts ...output.Option) *output.Printer {
	if testMode {
		return output.NewPrinter(append(opts, output.TestMode())...)
	}
	switch colorMode {
	case "always":
		opts = append(opts, output.WithMode(output.ModeStyled))
	case "never":
		opts = append(opts, output.PlainText())
	}
	return output.NewPrinter(opts...)
}

func statusPrinter(opts ...output.Option) *output.Printer {
	if quiet {
		opts = append(opts, output.Silent())
	}
	return newPrinter(opts...)
}

func nextID() string {
	return testutils.GenerateID(testMode)
}

func newConsole(store *settings.Store) *console.Console {
	est := width.New(func() int { return store.GetInt(settings.PrettyPrintWidth) })
	return console.New(store,
		console.WithPrinter(newPrinter(output.WithWidth(est.Current()))),
		console.WithEstimator(est),
		console.WithIDGenerator(nextID),
	)
}

func historyFile() string {
	if testMode {
		return ""
	}
	path, err := xdg.StateFile("hexsh/history")
	if err != nil {
		logger.Debug("History disabled", "error", err)
		return ""
	}
	return path
}

func runShell(_ *cobra.Command, _ []string) error {
	logger.Info("Starting hexsh", "version", version.Version)

	store, err := newStore()
	if err != nil {
		return err
	}
	c := newConsole(store)
	defer c.Close()

	rl, err := console.NewReadline(store, historyFile())
	if err != nil {
		return fmt.Errorf("start line editor: %w", err)
	}
	defer rl.Close()

	p := newPrinter()
	p.Println(version.String() + " - integers in hexadecimal")
	p.Info("Type '\\help' for commands or '\\exit' to quit.")

	return c.Run(rl)
}

func runScript(_ *cobra.Command, args []string) error {
	path := args[0]
	logger.Info("Running script", "version", version.Version, "script", path)

	store, err := newStore()
	if err != nil {
		return err
	}

	captured := output.NewCaptureBuffer()
	var w io.Writer = os.Stdout
	if expect || record {
		w = captured
	}
	r := script.New(store, w,
		display.WithDetector(console.Detector()),
		display.WithIDGenerator(nextID),
	)
	if err := r.RunFile(path); err != nil {
		return err
	}

	expectedPath := golden.ExpectedPath(path)
	switch {
	case record:
		if err := golden.Record(expectedPath, captured.String()); err != nil {
			return err
		}
		statusPrinter().Success("Recorded " + expectedPath)
	case expect:
		result, err := golden.Check(expectedPath, captured.String())
		if err != nil {
			return err
		}
		if !result.Equal() {
			result.Report(os.Stdout)
			return fmt.Errorf("%s: %w", path, golden.ErrMismatch)
		}
		statusPrinter().Success("PASS " + path)
	}
	return nil
}

func runEval(_ *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	c := newConsole(store)
	defer c.Close()

	for _, expr := range args {
		if err := c.Execute(expr); err != nil {
			return fmt.Errorf("%s: %w", expr, err)
		}
	}
	return nil
}

func runSettings(_ *cobra.Command, _ []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	p := newPrinter()
	for _, def := range store.Settings() {
		v, err := store.Get(def.Key)
		if err != nil {
			return err
		}
		p.Setting(def.Key, v, def.Description)
	}
	return nil
}

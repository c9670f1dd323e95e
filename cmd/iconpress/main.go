package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tberndt/iconpress"
	"github.com/tberndt/iconpress/utils"
)

const helpBanner = `
┬┌─┐┌─┐┌┐┌┌─┐┬─┐┌─┐┌─┐┌─┐
││  │ ││││├─┘├┬┘├┤ └─┐└─┐
┴└─┘└─┘┘└┘┴  ┴└─└─┘└─┘└─┘

Press SVG icon masters into png, jpg and ico variants.
`

// Version indicates the current build version.
var Version = "dev"

var (
	cfgFile   string
	logLevel  string
	iconsRoot string
	headless  bool
)

var rootCmd = &cobra.Command{
	Use:   "iconpress",
	Short: "Convert SVG icon masters into a matrix of raster variants",
	Long: helpBanner + `
Each icon lives in its own folder under the icons root as an SVG master with
an XML mirror. A run converts every folder that is not yet recorded in the
conversion ledger; dropping a .updatesvg or .updatexml marker file into an
already-converted folder forces its regeneration.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single conversion pass over the icons root",
	RunE:  runPass,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("iconpress %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&iconsRoot, "icons", "", "icons root directory (default: discovered next to the executable)")
	runCmd.Flags().BoolVar(&headless, "headless", false, "never pause for operator acknowledgment")
	rootCmd.AddCommand(runCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPass(cmd *cobra.Command, args []string) error {
	cfg, err := iconpress.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if iconsRoot != "" {
		cfg.IconsRoot = iconsRoot
	}
	if headless {
		cfg.Headless = true
	}
	if cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}

	logger := newLogger(cfg.LogLevel)

	root := cfg.IconsRoot
	if root == "" {
		if root, err = iconpress.FindIconsRoot(); err != nil {
			return err
		}
	}
	logger.Info("icon conversion started", "root", root)

	ledger := iconpress.LoadLedger(root, logger)

	var confirm iconpress.Confirmer
	if cfg.Headless {
		confirm = iconpress.AutoConfirmer{Log: logger}
	} else {
		confirm = &iconpress.StdinConfirmer{In: os.Stdin, Out: os.Stderr}
	}

	gen := iconpress.NewGenerator(iconpress.SVGRenderer{}, logger)
	gen.Sizes = cfg.Sizes
	gen.Quality = cfg.Quality

	proc := iconpress.NewProcessor(ledger, gen, confirm, logger)
	runner := iconpress.NewRunner(root, proc, logger)

	var spinner *utils.Spinner
	if cfg.Headless {
		spinnerText := fmt.Sprintf("%s %s",
			utils.DecorateText("iconpress", utils.StatusMessage),
			utils.DecorateText("is pressing icon variants...", utils.DefaultMessage))
		spinner = utils.NewSpinner(os.Stderr, spinnerText, time.Millisecond*200, true)
		spinner.Start()
	}

	now := time.Now()
	report, err := runner.Run()
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nSuccessful: %s, Failed: %s\n",
		utils.DecorateText(strconv.Itoa(report.Succeeded), utils.SuccessMessage),
		utils.DecorateText(strconv.Itoa(report.Failed), utils.ErrorMessage))
	fmt.Fprintf(os.Stderr, "Execution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	if total := report.Succeeded + report.Failed; total == 0 {
		return fmt.Errorf("no icon folders found under %s", root)
	} else if !report.OK() {
		return fmt.Errorf("%d of %d folders failed", report.Failed, total)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

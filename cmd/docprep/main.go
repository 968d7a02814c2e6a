package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/docprep/internal/app"
	"github.com/quantmind-br/docprep/internal/config"
	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/tui"
	"github.com/quantmind-br/docprep/internal/utils"
	"github.com/quantmind-br/docprep/pkg/version"
)

var (
	cfgFile string
	verbose bool
	quiet   bool

	// Dependencies for testing
	newApp    = defaultNewApp
	runEditor = tui.Run
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "docprep",
	Short: "Locate and materialize documentation sources of catalog entities",
	Long: `docprep resolves the documentation source directory of catalog entities.

Entities name the file they were defined in (backstage.io/managed-by-location)
and where their docs live relative to it (backstage.io/techdocs-ref). Remote
repositories are checked out once into a local cache and reused afterwards.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.docprep/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Hide progress bars")
	rootCmd.PersistentFlags().String("cache-dir", "", "Checkout cache root")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (pretty or json)")
	rootCmd.PersistentFlags().Duration("git-timeout", 0, "Timeout for a single checkout")

	_ = viper.BindPFlag("cache.directory", rootCmd.PersistentFlags().Lookup("cache-dir"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("git.timeout", rootCmd.PersistentFlags().Lookup("git-timeout"))

	prepareCmd.Flags().Bool("require-existing", false, "Fail when the documentation directory does not exist")
	prepareCmd.Flags().IntP("concurrency", "j", 0, "Number of entities prepared concurrently")
	_ = viper.BindPFlag("prepare.require_existing", prepareCmd.Flags().Lookup("require-existing"))
	_ = viper.BindPFlag("concurrency.workers", prepareCmd.Flags().Lookup("concurrency"))

	docsCmd.Flags().Bool("markdown", false, "Convert the page to Markdown")
	docsCmd.Flags().String("api-origin", "", "Documentation storage origin")
	_ = viper.BindPFlag("storage.api_origin", docsCmd.Flags().Lookup("api-origin"))

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configEditCmd.Flags().Bool("accessible", false, "Use the screen-reader friendly form mode")

	cacheCmd.AddCommand(cacheListCmd, cacheInfoCmd, cacheClearCmd)
	configCmd.AddCommand(configInitCmd, configEditCmd)
	rootCmd.AddCommand(prepareCmd, resolveCmd, docsCmd, cacheCmd, configCmd, doctorCmd, versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func defaultNewApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var progress io.Writer
	if !quiet && !verbose {
		progress = cmd.ErrOrStderr()
	}

	return app.New(app.Options{
		Config:   cfg,
		Verbose:  verbose,
		Progress: progress,
	})
}

var prepareCmd = &cobra.Command{
	Use:   "prepare <catalog-file>...",
	Short: "Prepare the documentation directories of catalog entities",
	Long: `Loads every entity from the given catalog files and prints one line per
entity: the entity reference and its documentation directory, tab separated.
Entities read from a local file without a managed-by annotation are treated
as defined in that file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.PrepareFiles(ctx, args)
		if err != nil {
			return err
		}
		return printResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results)
	},
}

// printResults writes successes to out and failures to errOut. It returns an
// error when at least one entity failed.
func printResults(out, errOut io.Writer, results []domain.PrepareResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(errOut, "%s\terror: %v\n", r.EntityRef, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", r.EntityRef, r.Dir)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d entities failed", failed, len(results))
	}
	return nil
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <protocol:location>",
	Short: "Resolve a location reference to a local directory",
	Example: `  docprep resolve file:/repo/catalog-info.yaml
  docprep resolve github:https://github.com/org/repo/blob/main/catalog-info.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		dir, err := a.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs <kind>/<namespace>/<name> [path]",
	Short: "Print a rendered documentation page from the storage service",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := domain.ParseEntityName(args[0])
		if err != nil {
			return err
		}
		path := ""
		if len(args) == 2 {
			path = args[1]
		}
		markdown, _ := cmd.Flags().GetBool("markdown")

		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		doc, err := a.FetchDocs(ctx, name, path, markdown)
		if err != nil {
			return fmt.Errorf("fetch docs from %s: %w", a.StorageOrigin(), err)
		}
		if markdown {
			fmt.Fprintln(cmd.OutOrStdout(), doc.Markdown)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), doc.HTML)
		}
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the checkout cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached checkouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.Checkouts(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "No checkouts under %s\n", a.CacheRoot())
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "URL\tREF\tCOMMIT\tFETCHED\tDIRECTORY")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.URL, r.Ref, shortCommit(r.Commit), r.FetchedAt.Format(time.RFC3339), r.Key)
		}
		return w.Flush()
	},
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info <url>[@ref]",
	Short: "Show the cached checkout of a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Directory: %s\n", rec.Key)
		fmt.Fprintf(out, "URL:       %s\n", rec.URL)
		fmt.Fprintf(out, "Ref:       %s\n", rec.Ref)
		if rec.Commit != "" {
			fmt.Fprintf(out, "Commit:    %s\n", rec.Commit)
		}
		if rec.Method != "" {
			fmt.Fprintf(out, "Method:    %s\n", rec.Method)
		}
		if !rec.FetchedAt.IsZero() {
			fmt.Fprintf(out, "Fetched:   %s\n", rec.FetchedAt.Format(time.RFC3339))
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached checkout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ClearCheckouts(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Cleared %s\n", a.CacheRoot())
		return nil
	},
}

func shortCommit(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.ConfigFilePath()
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Save(config.Default(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path := cfgFile
		if path == "" {
			path = config.ConfigFilePath()
		}
		accessible, _ := cmd.Flags().GetBool("accessible")
		return runEditor(tui.Options{
			Config:     cfg,
			Path:       path,
			Accessible: accessible,
			SaveFunc: func(c *config.Config) error {
				return config.Save(c, path)
			},
		})
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and environment",
	Long:  "Verifies that the configuration loads, the cache is writable and the storage service answers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking environment...")
		allPassed := true

		fmt.Fprint(out, "  Config file: ")
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			return nil
		}
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(out, "OK (%s)\n", used)
		} else {
			fmt.Fprintln(out, "OK (defaults)")
		}

		fmt.Fprint(out, "  Cache directory: ")
		cacheDir := utils.ExpandPath(cfg.Cache.Directory)
		if checkWritable(cacheDir) {
			fmt.Fprintf(out, "OK (%s)\n", cacheDir)
		} else {
			fmt.Fprintf(out, "FAILED (%s is not writable)\n", cacheDir)
			allPassed = false
		}

		fmt.Fprint(out, "  Storage service: ")
		if checkReachable(cfg.Storage.APIOrigin) {
			fmt.Fprintf(out, "OK (%s)\n", cfg.Storage.APIOrigin)
		} else {
			fmt.Fprintf(out, "WARN (%s unreachable, docs command will fail)\n", cfg.Storage.APIOrigin)
		}

		fmt.Fprintln(out)
		if allPassed {
			fmt.Fprintln(out, "All critical checks passed!")
		} else {
			fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkWritable creates dir when needed and probes it with a temp file
func checkWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".docprep-write-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

func checkReachable(origin string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, strings.TrimRight(origin, "/")+"/", nil)
	if err != nil {
		return false
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}

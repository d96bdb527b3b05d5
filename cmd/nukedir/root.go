package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/nukedir/pkg/nukedir/config"
	"github.com/jamesainslie/nukedir/pkg/nukedir/executor"
	"github.com/jamesainslie/nukedir/pkg/nukedir/exitcode"
	"github.com/jamesainslie/nukedir/pkg/nukedir/fstype"
	"github.com/jamesainslie/nukedir/pkg/nukedir/logging"
	"github.com/jamesainslie/nukedir/pkg/nukedir/output"
	"github.com/jamesainslie/nukedir/pkg/nukedir/scratch"
	"github.com/jamesainslie/nukedir/pkg/nukedir/validate"
)

const programName = "nukedir"

// rawArgv supplies the unparsed argument list for last-flag-wins
// resolution; tests substitute it alongside cobra's SetArgs.
var rawArgv = func() []string { return os.Args[1:] }

var rootCmd = &cobra.Command{
	Use:   "nukedir [options] dirname [dirname ...]",
	Short: "Erase huge directory trees fast by mirroring an empty directory over them with rsync",
	Long: `Nukedir deletes very large directory trees faster than rm -rf by letting
rsync mirror an always-empty scratch directory over each target. Rsync's
delete pass removes entries far more efficiently than a recursive unlink,
especially for millions of small files, and nukedir picks the delete flavor
that matches the target's filesystem.

Dry-run is the default; nothing is deleted until --notdryrun is given.

Examples:
  nukedir /srv/cache/old          # Show what would be removed
  nukedir -N /srv/cache/old       # Actually remove it
  nukedir -Nq -i 3 /var/tmp/junk  # Quiet, idle I/O priority
  nukedir -N -T 2h /data/expired  # Give rsync at most two hours per target`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runNuke,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.BoolP("dryrun", "n", true, "simulate only; report what would be removed (default)")
	flags.BoolP("notdryrun", "N", false, "actually delete")
	flags.BoolP("verbose", "v", true, "informational output (default)")
	flags.BoolP("quiet", "q", false, "errors only")
	flags.IntP("ionice", "i", config.DefaultIONice, "I/O priority level 0-3 (0 = no adjustment)")
	flags.StringP("timeout", "T", "", "per-target time limit for rsync (e.g. 2m, 4h)")
	flags.BoolP("wait-for-rsync", "w", false, "wait until no other rsync is running before starting")
	flags.BoolP("rsync-verbose", "r", false, "pass -v through to rsync")
	flags.BoolP("version", "V", false, "print version and exit")

	_ = viper.BindPFlag("ionice", flags.Lookup("ionice"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("wait_for_rsync", flags.Lookup("wait-for-rsync"))
	_ = viper.BindPFlag("rsync_verbose", flags.Lookup("rsync-verbose"))
}

// initConfig wires the config file and environment into the global viper.
func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(config.ConfigDir())

	viper.SetEnvPrefix("NUKEDIR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	// Missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

// Execute runs the root command and maps the outcome to a process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return exitcode.Success
	}

	rep := output.NewReporter(os.Stderr, programName, false)
	rep.Errorf("%v", err)
	return exitcode.FromError(err)
}

// runNuke is the whole pipeline: build the immutable run config, validate,
// then validate/strategize/execute each target in argv order.
func runNuke(cmd *cobra.Command, args []string) error {
	if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", programName, version)
		return nil
	}

	// The paired toggles resolve last-flag-wins over the raw argv; cobra
	// only reports final values, not ordering.
	modes := resolveModes(rawArgv())

	timeoutStr := viper.GetString("timeout")
	if strings.HasPrefix(timeoutStr, "-") {
		return exitcode.Errorf(exitcode.MissingArgument, "option --timeout requires an argument")
	}
	timeout, err := config.ParseTimeout(timeoutStr)
	if err != nil {
		return exitcode.Wrap(exitcode.Fatal, err)
	}

	cfg := &config.RunConfig{
		DryRun:       modes.DryRun,
		Verbose:      modes.Verbose,
		IONice:       viper.GetInt("ionice"),
		Timeout:      timeout,
		WaitForRsync: viper.GetBool("wait_for_rsync"),
		RsyncVerbose: viper.GetBool("rsync_verbose"),
		Targets:      normalizeTargets(args),
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrNoTargets) {
			_ = cmd.Usage()
		}
		return exitcode.Wrap(exitcode.Fatal, err)
	}

	logging.Init(cfg.Verbose, !cfg.Verbose)
	rep := output.NewReporter(os.Stderr, programName, !cfg.Verbose)

	settings := config.FromViper(viper.GetViper())
	rsyncPath, err := exec.LookPath(settings.RsyncPath)
	if err != nil {
		return exitcode.Errorf(exitcode.Fatal, "required tool %q not found on PATH", settings.RsyncPath)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sdir, err := scratch.Create(settings.ScratchParent)
	if err != nil {
		return exitcode.Wrap(exitcode.Fatal, err)
	}
	defer func() {
		if rerr := sdir.Remove(); rerr != nil {
			rep.Warnf("%v", rerr)
		}
	}()

	if cfg.DryRun {
		rep.Infof("dry-run mode: nothing will be deleted (use -N to delete)")
	}

	ex := executor.New(executor.Options{
		RsyncPath:    rsyncPath,
		Scratch:      sdir.Path,
		DryRun:       cfg.DryRun,
		RsyncVerbose: cfg.RsyncVerbose,
		IONice:       cfg.IONice,
		Timeout:      cfg.Timeout,
		WaitForRsync: cfg.WaitForRsync,
		PollInterval: time.Duration(settings.PollInterval) * time.Second,
	}, rep)

	for _, raw := range cfg.Targets {
		if ctx.Err() != nil {
			return exitcode.Wrap(exitcode.Fatal, ctx.Err())
		}

		path, err := validate.Target(raw)
		if err != nil {
			if validate.Fatal(err) {
				return exitcode.Wrap(exitcode.Fatal, err)
			}
			// Soft failure: likely a typo among several targets.
			rep.Errorf("skipping %s: %v", strings.TrimSuffix(raw, "/"), err)
			continue
		}

		label, err := fstype.Detect(path)
		if err != nil {
			rep.Warnf("cannot detect filesystem for %s, using defaults: %v", path, err)
			label = "unknown"
		}
		strat := fstype.StrategyFor(label)
		rep.Infof("%s: filesystem %s, delete mode %s", path, label, strat.DeleteFlag)

		if err := ex.Nuke(ctx, path, strat); err != nil {
			return exitcode.Wrap(exitcode.Fatal, err)
		}
	}

	return nil
}

// normalizeTargets appends a trailing separator to each raw target before
// resolution, matching how the paths are later handed to rsync.
func normalizeTargets(args []string) []string {
	targets := make([]string, 0, len(args))
	for _, a := range args {
		if !strings.HasSuffix(a, string(os.PathSeparator)) {
			a += string(os.PathSeparator)
		}
		targets = append(targets, a)
	}
	return targets
}

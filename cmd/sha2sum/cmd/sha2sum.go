package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sha2sum.org/sha2sum/config"
	apperrors "sha2sum.org/sha2sum/errors"
	"sha2sum.org/sha2sum/logging"
)

// options carries the state of one command tree, so tests can build as
// many independent trees as they need.
type options struct {
	cfgFile   string
	checkFile string

	v               *viper.Viper
	usingConfigFile bool
	cfg             *config.Config
}

// NewRootCmd builds the sha2sum command with its flags and subcommands.
func NewRootCmd() *cobra.Command {
	opts := &options{
		v: viper.New(),
	}

	rootCmd := &cobra.Command{
		Use:   "sha2sum [FILE]...",
		Short: "Print or check SHA-256 checksums",
		Long: `Print or check SHA-256 (256-bit) checksums.

With no FILE, or when FILE is -, read standard input.
Each output line is "<digest> <name>". With --check, read a list of such
lines and report "<name>: OK" or "<name>: FAILED" for every entry.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.initConfig(); err != nil {
				return err
			}
			opts.initLogger()
			opts.logBasicInfo()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("check") {
				return runCheck(cmd, opts, args)
			}
			return runHash(cmd, opts, args)
		},
	}

	pflags := rootCmd.PersistentFlags()
	pflags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./"+config.DefaultConfigFilename+")")
	pflags.String("log_dir", "", "directory for log files, console only when empty, \""+config.LogDirDefault+"\" for the application data directory")
	pflags.String("log_level", config.DefaultLogLevel, "level of logs (trace, debug, info, warn, error, fatal, panic)")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.checkFile, "check", "c", "", "read checksums from FILE (- for standard input) and check them")
	flags.Int("chunk_size", config.DefaultChunkSize, "bytes handed to the engine per update")
	flags.Int("workers", 0, "number of files hashed concurrently, 0 for one per CPU")
	flags.Bool("keep_going", false, "keep going after a file cannot be read")

	opts.v.BindPFlag("log.log_dir", pflags.Lookup("log_dir"))
	opts.v.BindPFlag("log.log_level", pflags.Lookup("log_level"))
	opts.v.BindPFlag("hash.chunk_size", flags.Lookup("chunk_size"))
	opts.v.BindPFlag("hash.workers", flags.Lookup("workers"))
	opts.v.BindPFlag("hash.keep_going", flags.Lookup("keep_going"))

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.New(apperrors.ErrUsage, err)
	})

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the command line and exits with the code mapped from its error.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		logging.VPrint(logging.ERROR, "fail on RootCmd.Execute", logging.LogFormat{"err": err})
		fmt.Fprintf(os.Stderr, "%s: %v\n", rootCmd.Name(), err)
		if apperrors.Code(err) == apperrors.ErrUsage {
			fmt.Fprintf(os.Stderr, "Try '%s --help' for more information.\n", rootCmd.Name())
		}
	}
	os.Exit(apperrors.ExitCode(err))
}

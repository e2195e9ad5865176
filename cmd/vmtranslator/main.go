// Command vmtranslator translates VM scripts into Hack assembly.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/core"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "vmtranslator",
	Short: "Translate stack-machine VM scripts into Hack assembly",
	Long: `vmtranslator reads a .vm script, one VM command per line, and writes
the equivalent Hack assembly next to it with an .asm extension.

Supported commands are add, sub, push and pop over the local, argument,
this, that, temp, constant, pointer and static segments. Translation is all
or nothing: no output is written when any line fails.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel, logJSON)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level: debug, info, trace, warn or error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false,
		"log as JSON instead of text")
}

func setupLogging(level string, json bool) error {
	var l slog.Level

	switch strings.ToLower(level) {
	case "trace":
		l = core.LevelTrace
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return errors.Errorf("unknown log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: l}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red("error: "+err.Error()))
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

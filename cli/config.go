package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type config struct {
	DBPath      string
	Monitor     bool
	MonitorPort int
	OpenBrowser bool
	LogLevel    string
}

// bindDemoFlags declares the flags of the demo command. Defaults come from
// the environment, so they must be bound after the .env file is loaded.
func bindDemoFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("db", envString("BEHAVE_DB", ""),
		"Record results into the SQLite file <db>.sqlite3.")
	flags.Bool("monitor", envBool("BEHAVE_MONITOR", false),
		"Serve a live monitor of the run.")
	flags.Int("monitor-port", envInt("BEHAVE_MONITOR_PORT", 0),
		"Port of the monitor. 0 picks a random port.")
	flags.Bool("open", envBool("BEHAVE_OPEN_BROWSER", false),
		"Open the monitor in the default browser.")
	flags.String("log-level", envString("BEHAVE_LOG_LEVEL", "warn"),
		"Log level: debug, info, warn or error.")
}

func configFromFlags(cmd *cobra.Command) (config, error) {
	flags := cmd.Flags()
	c := config{}

	var err error
	if c.DBPath, err = flags.GetString("db"); err != nil {
		return c, err
	}

	if c.Monitor, err = flags.GetBool("monitor"); err != nil {
		return c, err
	}

	if c.MonitorPort, err = flags.GetInt("monitor-port"); err != nil {
		return c, err
	}

	if c.OpenBrowser, err = flags.GetBool("open"); err != nil {
		return c, err
	}

	if c.LogLevel, err = flags.GetString("log-level"); err != nil {
		return c, err
	}

	return c, nil
}

func envString(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}

	return fallback
}

func envBool(name string, fallback bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q: %v\n", name, v, err)
		return fallback
	}

	return b
}

func envInt(name string, fallback int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q: %v\n", name, v, err)
		return fallback
	}

	return i
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

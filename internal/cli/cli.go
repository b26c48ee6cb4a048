package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/plugrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("plugrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
plugrid - a pluggable service registry.

Usage:
  plugrid [options] [MANAGER [SERVICE]]

Arguments:
  MANAGER
    Name of the extension point to inspect. Omit to list everything.
  SERVICE
    Name of the service to search for within MANAGER.

Options:
`)
		flagSet.PrintDefaults()
	}

	workspaceFlag := flagSet.String("workspace", "", "Path to the workspace .hcl file or directory.")
	wFlag := flagSet.String("w", "", "Path to the workspace .hcl file or directory (shorthand).")
	managerFlag := flagSet.String("manager", "", "Extension point to inspect.")
	serviceFlag := flagSet.String("service", "", "Service name to search for.")
	configFlag := flagSet.String("config", "", "Restrict the search to the config with this label.")
	projectFlag := flagSet.Bool("project", false, "Also consult the active project config (PLUGRID_ACTIVE_PROJECT).")
	localFlag := flagSet.Bool("local", false, "Disable the global fallback scan.")
	probeFlag := flagSet.String("probe", "", "Probe this URL with the found transport service.")
	reporterFlag := flagSet.String("reporter", "console", "Reporter service used for output.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	workspace := *workspaceFlag
	if workspace == "" {
		workspace = *wFlag
	}

	manager := *managerFlag
	service := *serviceFlag
	if manager == "" && flagSet.NArg() > 0 {
		manager = flagSet.Arg(0)
	}
	if service == "" && flagSet.NArg() > 1 {
		service = flagSet.Arg(1)
	}
	if service == "" && (*probeFlag != "" || *configFlag != "" || *localFlag || *projectFlag) {
		return nil, false, &ExitError{Code: 2, Message: "search options require a SERVICE argument"}
	}
	if service != "" && manager == "" {
		return nil, false, &ExitError{Code: 2, Message: "a SERVICE argument requires a MANAGER"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		WorkspacePath: workspace,
		Manager:       manager,
		Service:       service,
		ConfigLabel:   *configFlag,
		SearchProject: *projectFlag,
		LocalOnly:     *localFlag,
		ProbeURL:      *probeFlag,
		Reporter:      *reporterFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}

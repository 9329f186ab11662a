// Package command implements the pushover command-line tool.
package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	pushover "github.com/peteraglen/pushover-go-client"
	"github.com/peteraglen/pushover-go-client/internal/config"
	"github.com/peteraglen/pushover-go-client/internal/logging"
)

const defaultOperationTimeout = 30 * time.Second

// Sender is the part of [pushover.Client] the commands use.
type Sender interface {
	SendMessage(context.Context, pushover.Message) (*pushover.Response, error)
	SendAttachmentMessage(context.Context, pushover.AttachmentMessage) (*pushover.Response, error)
}

type Dependencies struct {
	// Sender is built from the configuration when nil.
	Sender Sender
	// Config is loaded from --config and the environment when nil.
	Config           *config.Config
	OperationTimeout time.Duration
	Output           io.Writer
	LogOutput        io.Writer
}

type app struct {
	deps       Dependencies
	configPath string

	cfg    *config.Config
	logger zerolog.Logger
	sender Sender
}

func NewRootCommand(dependencies Dependencies) *cobra.Command {
	a := &app{deps: dependencies, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "pushover",
		Short:         "Send notifications through the Pushover API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is ./pushover.yaml or ~/.config/pushover/pushover.yaml)")

	root.AddCommand(buildSendCommand(a))
	root.AddCommand(buildSoundsCommand(a))

	return root
}

// initialize loads the configuration, sets up logging and creates the
// client. Only commands that talk to the API call it.
func (a *app) initialize(_ *cobra.Command, _ []string) error {
	cfg := a.deps.Config
	if cfg == nil {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	a.cfg = cfg

	logOutput := a.deps.LogOutput
	if logOutput == nil {
		logOutput = io.Discard
	}
	a.logger = logging.New(cfg.Logging, logOutput)

	a.sender = a.deps.Sender
	if a.sender == nil {
		client := pushover.New(
			pushover.WithEndpoint(cfg.Pushover.Endpoint),
			pushover.WithTimeout(cfg.Pushover.Timeout),
			pushover.WithRequestLogger(logging.NewRequestLogger(a.logger)),
		)
		if err := client.Connect(); err != nil {
			return fmt.Errorf("failed to create pushover client: %w", err)
		}
		a.sender = client
	}

	return nil
}

func (a *app) output() io.Writer {
	if a.deps.Output == nil {
		return io.Discard
	}
	return a.deps.Output
}

func (a *app) operationTimeout() time.Duration {
	if a.deps.OperationTimeout <= 0 {
		return defaultOperationTimeout
	}
	return a.deps.OperationTimeout
}

func buildSoundsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sounds",
		Short: "List the notification sounds",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, sound := range pushover.Sounds() {
				if _, err := fmt.Fprintln(a.output(), sound); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

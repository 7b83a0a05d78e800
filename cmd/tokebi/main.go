// Command tokebi is a development tool for smoke-testing a Tokebi backend
// from the shell: it builds a client from TOKEBI_* environment variables (or
// a config file), sends events through the real pipeline and flushes before
// exiting.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	tokebi "github.com/tokebi-analytics/tokebi-go"
	"github.com/tokebi-analytics/tokebi-go/adapters"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tokebi",
		Short: "Tokebi analytics command-line client",
		Long:  "Sends analytics events to a Tokebi backend using the Go SDK pipeline.",
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML config file (env vars take precedence)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newTrackCommand(opts))
	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newSessionCommand(opts))

	return cmd
}

func newTrackCommand(opts *rootOptions) *cobra.Command {
	var attrs []string

	cmd := &cobra.Command{
		Use:   "track <event-name>",
		Short: "Record a single event and flush it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(opts)
			if err != nil {
				return err
			}

			attributes, err := parseAttrs(attrs)
			if err != nil {
				return err
			}
			if err := client.RecordEvent(args[0], attributes); err != nil {
				return err
			}
			return client.Shutdown()
		},
	}

	cmd.Flags().StringArrayVarP(&attrs, "attr", "a", nil, "event attribute as key=value (repeatable)")
	return cmd
}

func newRegisterCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register the configured game and print the canonical game id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := buildClient(opts)
			if err != nil {
				return err
			}
			defer client.Shutdown()

			client.RegisterGame()

			// Registration is asynchronous; poll briefly for the result.
			deadline := time.Now().Add(10 * time.Second)
			for time.Now().Before(deadline) {
				if id := client.GameID(); id != "" && id != cfg.GameID {
					fmt.Println(id)
					return nil
				}
				time.Sleep(100 * time.Millisecond)
			}
			return fmt.Errorf("registration did not complete, still using configured game id %q", client.GameID())
		},
	}
}

func newSessionCommand(opts *rootOptions) *cobra.Command {
	var attrs []string

	cmd := &cobra.Command{
		Use:   "session <event-name>...",
		Short: "Record events wrapped in a session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(opts)
			if err != nil {
				return err
			}

			attributes, err := parseAttrs(attrs)
			if err != nil {
				return err
			}
			if !client.StartSession(attributes) {
				return fmt.Errorf("failed to start session")
			}
			for _, name := range args {
				if err := client.RecordEvent(name, nil); err != nil {
					return err
				}
			}
			client.EndSession()
			return client.Shutdown()
		},
	}

	cmd.Flags().StringArrayVarP(&attrs, "attr", "a", nil, "session attribute as key=value (repeatable)")
	return cmd
}

func buildClient(opts *rootOptions) (*tokebi.Client, tokebi.Config, error) {
	var cfg tokebi.Config
	var err error
	if opts.configFile != "" {
		cfg, err = tokebi.ConfigFromFile(opts.configFile)
	} else {
		cfg, err = tokebi.ConfigFromEnv()
	}
	if err != nil {
		return nil, cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}

	if opts.verbose {
		cfg.Adapters.LoggerAdapter = adapters.NewPrintLoggerAdapter(adapters.LogLevelDebug)
	}

	client := tokebi.NewClient(cfg)
	if err := client.Init(); err != nil {
		return nil, cfg, err
	}
	return client, cfg, nil
}

func parseAttrs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attrs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid attribute %q: expected key=value", pair)
		}
		attrs[key] = value
	}
	return attrs, nil
}

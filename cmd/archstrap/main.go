package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/coreos/go-systemd/v22/activation"
	"github.com/coreos/go-systemd/v22/journal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/osbuild/archstrap/internal/api"
	"github.com/osbuild/archstrap/internal/blueprint"
	"github.com/osbuild/archstrap/internal/common"
	"github.com/osbuild/archstrap/internal/install"
	"github.com/osbuild/archstrap/internal/script"
)

const defaultConfigFile = "/etc/archstrap/archstrap.toml"

var (
	configFile string
	config     *archstrapConfig

	outputFile string
	listenAddr string
)

var rootCmd = &cobra.Command{
	Use:           "archstrap",
	Short:         "compile Arch Linux installation blueprints into install scripts",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = parseConfig(configFile)
		if err != nil {
			return fmt.Errorf("could not load config file '%s': %v", configFile, err)
		}
		level, err := logrus.ParseLevel(config.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level '%s': %v", config.LogLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

var composeCmd = &cobra.Command{
	Use:   "compose BLUEPRINT",
	Short: "compile a blueprint file into an installation script",
	Long: "Compile a blueprint (TOML, JSON or YAML, picked by file extension) into\n" +
		"a two-stage unattended installation script. The script is printed to\n" +
		"stdout unless -o is given.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bp, err := blueprint.DecodeFile(args[0])
		if err != nil {
			return err
		}

		var diag install.Diagnostics
		plan, planErr := install.NewPlan(bp, config.ZoneinfoDir, &diag)
		for _, w := range diag.Warnings() {
			logrus.Warn(w.String())
		}
		if planErr != nil {
			return planErr
		}

		text, err := script.Compile(plan)
		if err != nil {
			return err
		}

		if outputFile == "" || outputFile == "-" {
			fmt.Print(text)
			return nil
		}
		// the output is a script, make it executable right away
		return os.WriteFile(outputFile, []byte(text), 0755)
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "print an annotated sample blueprint",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(blueprint.Sample())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the compiler as an HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.AddHook(&common.BuildHook{})
		if journal.Enabled() {
			logrus.AddHook(&common.JournalHook{})
			logrus.SetOutput(io.Discard)
		}
		logrus.Infof("archstrap %s built %s (%s)", common.BuildCommit, common.BuildTime, common.BuildGoVersion)

		logrus.Info("archstrap configuration:")
		encoder := toml.NewEncoder(logrus.StandardLogger().WriterLevel(logrus.InfoLevel))
		if err := encoder.Encode(config); err != nil {
			return fmt.Errorf("could not print config: %v", err)
		}

		server := api.NewServer(config.ZoneinfoDir)
		srv := &http.Server{Handler: server.Handler()}

		listeners, err := activation.Listeners()
		if err != nil {
			return fmt.Errorf("could not get activated sockets: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		serveErr := make(chan error, 1)
		switch len(listeners) {
		case 0:
			srv.Addr = config.ListenAddress
			if listenAddr != "" {
				srv.Addr = listenAddr
			}
			logrus.Infof("listening on %s", srv.Addr)
			go func() { serveErr <- srv.ListenAndServe() }()
		case 1:
			logrus.Info("listening on systemd activated socket")
			go func() { serveErr <- srv.Serve(listeners[0]) }()
		default:
			return fmt.Errorf("unexpected number of activated sockets (%d), expected 1", len(listeners))
		}

		select {
		case err := <-serveErr:
			return err
		case <-ctx.Done():
		}

		logrus.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile, "archstrap configuration file")
	composeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the script to this file instead of stdout")
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on, overrides the config file")
	rootCmd.AddCommand(composeCmd, sampleCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

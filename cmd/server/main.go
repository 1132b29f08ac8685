package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/formgate/formgate/internal/config"
	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/server"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var logger *logging.Logger

func initLogger(cfg *config.Config) {
	logConfig := &logging.LogConfig{
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}

	if err := logging.InitLogger(logConfig); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger = logging.GetGlobalLogger()
}

var rootCmd = &cobra.Command{
	Use:   "formgate",
	Short: "formgate - contact form submission gateway",
	Long: `formgate accepts contact form submissions, filters out abusive and
automated traffic, and relays legitimate messages to the site operator
over SMTP.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the submission gateway",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		initLogger(cfg)
		defer logger.Close()

		if err := cfg.Validate(); err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}

		logger.Info("Starting server in %s mode on port %s", cfg.Environment, cfg.Port)

		srv := server.NewServer(cfg)
		srv.Init()

		if err := srv.Start(); err != nil {
			logger.Error("Server exited: %v", err)
			os.Exit(1)
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and probe external dependencies",
	Long: `Check loads the configuration, validates it, and probes the SMTP host
so misconfiguration is caught before going live.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("❌ Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		if err := cfg.Validate(); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Configuration is valid")

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Resolving SMTP host..."
		s.Start()

		if _, err := net.LookupHost(cfg.SMTPHost); err != nil {
			s.Stop()
			fmt.Printf("❌ Could not resolve SMTP host %s: %v\n", cfg.SMTPHost, err)
			os.Exit(1)
		}

		s.Suffix = " Connecting to SMTP host..."
		addr := net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort))
		conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
		s.Stop()
		if err != nil {
			fmt.Printf("❌ Could not connect to %s: %v\n", addr, err)
			os.Exit(1)
		}
		conn.Close()

		fmt.Printf("✅ SMTP host %s is reachable\n", addr)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

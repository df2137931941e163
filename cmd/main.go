package main

import (
	"os"

	"clinic-records/cmd/bootstrap"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-records",
		Short: "Clinic records API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default roles and the GP specialization",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Seed()
		},
	}
}

func runServer() error {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Errorf("Failed to initialize application: %v", err)
		return err
	}

	app.Run()
	return nil
}

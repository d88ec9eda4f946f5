// Command pending runs the immigration life simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "pending",
		Short: "Pending - a life in the immigration system",
		Long: `Pending simulates years of a life lived inside the US immigration
system: visas that expire, applications that crawl, deadlines that loom,
and the choices squeezed in between.`,
	}

	rootCmd.PersistentFlags().String("catalog", "content/catalog.yaml", "Path to the content catalog")
	rootCmd.PersistentFlags().String("db", "pending.db", "Path to the save database")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newValidateCmd(),
		newSavesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pending version %s\n", version)
		},
	}
}

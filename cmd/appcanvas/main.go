package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┌─┐┌─┐┌─┐┌┐┌┬  ┬┌─┐┌─┐
  ├─┤├─┘├─┘│  ├─┤│││└┐┌┘├─┤└─┐
  ┴ ┴┴  ┴  └─┘┴ ┴┘└┘ └┘ ┴ ┴└─┘
`

func main() {
	// Local overrides for DSNs and tokens; missing file is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "appcanvas",
		Short: "The no-code mobile storefront builder",
		Long: `Appcanvas turns a merchant's visual page composition into a
running mobile app.

  • Component palette with per-kind property schemas
  • Template library with save/load over HTTP
  • Live configuration endpoint for instant device preview
  • React Native project generation from any saved page`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		generateCmd(),
		previewCmd(),
		kindsCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the appcanvas ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}

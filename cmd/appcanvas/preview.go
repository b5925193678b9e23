package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/appcanvas-dev/appcanvas/internal/config"
	"github.com/appcanvas-dev/appcanvas/pkg/preview"
)

func previewCmd() *cobra.Command {
	var (
		serverURL string
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "preview <appKey>",
		Short: "Follow an app's live configuration in the terminal",
		Long: `Poll the builder server and print the composed page every time
it changes, the way a preview device would render it.

Examples:
  appcanvas preview shop-1
  appcanvas preview shop-1 --server http://builder.internal:8080
  appcanvas preview shop-1 --interval 500ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(args[0], serverURL, interval)
		},
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", "", "Builder server URL (default local server from appcanvas.json)")
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Polling interval (default from appcanvas.json)")

	return cmd
}

func runPreview(appKey, serverURL string, interval time.Duration) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if serverURL == "" {
		serverURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if interval == 0 {
		interval = cfg.PollInterval()
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	printBanner()
	fmt.Println("  preview")
	fmt.Println()
	info("app:      %s", appKey)
	info("server:   %s", serverURL)
	info("interval: %s", interval)
	fmt.Println()

	opts := []preview.Option{
		preview.WithInterval(interval),
		preview.WithLogger(log),
		preview.OnFrame(printFrame),
	}
	opts = append(opts, terminalRenderers()...)

	client := preview.NewClient(serverURL, appKey, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client.Run(ctx)
	return nil
}

func printFrame(f preview.Frame) {
	switch f.State {
	case preview.StateFailed:
		warn("%s", f.Banner)
		return
	case preview.StateReady:
		if len(f.Blocks) == 0 && f.Banner != "" {
			info("%s", f.Banner)
			return
		}
	}

	fmt.Printf("┌── %s %s\n", f.PageName, strings.Repeat("─", 40-min(40, len(f.PageName))))
	for _, block := range f.Blocks {
		fmt.Printf("│ %s\n", block.Content)
	}
	fmt.Println("└" + strings.Repeat("─", 44))
}

// terminalRenderers gives each palette kind a one-line text rendering.
// Unregistered kinds fall back to the client's visible placeholder.
func terminalRenderers() []preview.Option {
	line := func(format string, keys ...string) preview.Renderer {
		return preview.RendererFunc(func(inst preview.Instance) (string, error) {
			args := make([]any, 0, len(keys))
			for _, k := range keys {
				args = append(args, inst.Params[k])
			}
			return fmt.Sprintf(format, args...), nil
		})
	}

	renderers := map[string]preview.Renderer{
		"announcement-bar":    line("▔▔ %v ▔▔", "text"),
		"banner":              line("█ BANNER: %v", "title"),
		"image-slider":        line("◄ images %v ►", "images"),
		"text-block":          line("%v", "content"),
		"button-row":          line("[ %v ]", "primaryLabel"),
		"product-grid":        line("▦ %v (%v columns)", "title", "columns"),
		"featured-collection": line("★ %v", "title"),
		"countdown":           line("⏱ %v", "title"),
		"video":               line("▶ %v", "url"),
		"spacer":              line("· %v px ·", "height"),
	}

	opts := make([]preview.Option, 0, len(renderers))
	for kindID, r := range renderers {
		opts = append(opts, preview.WithRenderer(kindID, r))
	}
	return opts
}

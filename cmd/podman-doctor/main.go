// ABOUTME: Diagnostic CLI that probes engines and verifies connectivity
// ABOUTME: Reports detection results and renders connection failures fully

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/Mr-Sunglasses/podman-py/client"
	"github.com/Mr-Sunglasses/podman-py/internal/config"
	"github.com/Mr-Sunglasses/podman-py/internal/logger"
	"github.com/Mr-Sunglasses/podman-py/internal/runtime"
	"github.com/Mr-Sunglasses/podman-py/internal/xdg"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	configPath := flag.String("config", filepath.Join(xdg.ConfigHome(), "config.yaml"), "path to config file")
	envFile := flag.String("env-file", "", "load environment variables from this file before probing")
	uri := flag.String("uri", "", "service URI to check (overrides config and environment)")
	timeout := flag.Duration("timeout", 10*time.Second, "connection attempt timeout")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger.SetVerbose(*verbose)

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintln(os.Stderr, failStyle.Render(fmt.Sprintf("cannot load env file: %v", err)))
			os.Exit(1)
		}
	}

	fmt.Println(titleStyle.Render("Engine detection"))
	for _, engine := range runtime.DetectAll() {
		line := "  " + engine.String()
		switch engine.Status {
		case "available":
			fmt.Println(okStyle.Render(line))
		case "cli-only":
			fmt.Println(warnStyle.Render(line))
		default:
			fmt.Println(failStyle.Render(line))
		}
	}

	target := *uri
	if target == "" {
		if cfg, err := config.Load(*configPath); err == nil {
			target = cfg.ResolveURI()
		} else if !os.IsNotExist(err) {
			logger.Warn("config load failed: %v", err)
		}
	}
	target = client.ResolveURI(target)

	fmt.Println()
	fmt.Println(titleStyle.Render("Connectivity"))
	fmt.Printf("  trying %s\n", target)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, err := client.New(ctx, target, client.Options{Timeout: *timeout})
	if err != nil {
		// ConnectionError already carries the host, environment, and cause.
		fmt.Println(failStyle.Render("  " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(okStyle.Render(fmt.Sprintf("  service at %s answers", conn.URI())))
}

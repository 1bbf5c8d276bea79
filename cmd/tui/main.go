// Binary tui is a small menu for editing the paper config and launching the paper host.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tickbot-go/internal/config"
	"tickbot-go/internal/strategy"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	reader := bufio.NewReader(os.Stdin)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	for {
		fmt.Println("\n=== Tickbot Control ===")
		fmt.Println("1) Show configuration summary")
		fmt.Println("2) Edit products")
		fmt.Println("3) Edit telemetry and feed")
		fmt.Println("4) Save config")
		fmt.Println("5) Launch paper host")
		fmt.Println("6) Reload config from disk")
		fmt.Println("0) Exit")
		fmt.Print("Select option: ")

		input, _ := reader.ReadString('\n')
		choice := strings.TrimSpace(input)

		switch choice {
		case "1":
			printSummary(cfg)
		case "2":
			editProducts(reader, cfg)
		case "3":
			editRuntime(reader, cfg)
		case "4":
			if err := saveConfig(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
			} else {
				fmt.Println("config saved")
			}
		case "5":
			launchPaper(reader)
		case "6":
			reloaded, err := loadConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			} else {
				cfg = reloaded
				fmt.Println("config reloaded")
			}
		case "0":
			return
		default:
			fmt.Println("unknown option")
		}
	}
}

func printSummary(cfg *config.Config) {
	fmt.Println("\n--- Configuration Summary ---")
	fmt.Printf("Log level: %s | metrics: %s\n", cfg.App.LogLevel, orNone(cfg.App.MetricsAddr))
	fmt.Printf("Telemetry line budget: %d bytes\n", cfg.Telemetry.MaxLogLength)
	fmt.Printf("Conversions per tick: %d\n", cfg.Trader.Conversions)
	for _, p := range cfg.Products {
		fair := p.FairValue.Mode
		if fair == strategy.ModeFixed {
			fair += " " + p.FairValue.Price
		}
		fmt.Printf("  %-20s limit %3d  fair %s\n", p.Symbol, p.Limit, orNone(fair))
	}
	fmt.Printf("Feed: %s %s (interval %dms, max %d ticks)\n", cfg.Feed.Provider, cfg.Feed.Path, cfg.Feed.IntervalMs, cfg.Feed.MaxTicks)
	fmt.Printf("Fills file: %s\n", orNone(cfg.Paper.FillsPath))
}

func editProducts(reader *bufio.Reader, cfg *config.Config) {
	fmt.Println("\n--- Edit Products ---")
	for i := range cfg.Products {
		p := &cfg.Products[i]
		fmt.Printf("%s\n", p.Symbol)
		p.Limit = promptInt(reader, "  Position limit", p.Limit)
		p.FairValue.Mode = promptString(reader, "  Fair value mode (fixed/mid/none)", p.FairValue.Mode)
		if strings.EqualFold(p.FairValue.Mode, strategy.ModeFixed) {
			p.FairValue.Price = promptString(reader, "  Fair price", p.FairValue.Price)
		}
		if _, err := strategy.BuildFairValue(p.FairValue.Mode, p.FairValue.Price); err != nil {
			fmt.Printf("  invalid fair value (%v), falling back to none\n", err)
			p.FairValue = config.FairValue{Mode: strategy.ModeNone}
		}
	}
}

func editRuntime(reader *bufio.Reader, cfg *config.Config) {
	fmt.Println("\n--- Edit Telemetry / Feed ---")
	cfg.Telemetry.MaxLogLength = promptInt(reader, "Max telemetry line (bytes)", cfg.Telemetry.MaxLogLength)
	cfg.Trader.Conversions = promptInt(reader, "Conversions per tick", cfg.Trader.Conversions)
	cfg.Feed.Provider = promptString(reader, "Feed provider (stub/file)", cfg.Feed.Provider)
	cfg.Feed.Path = promptString(reader, "Feed file", cfg.Feed.Path)
	cfg.Feed.IntervalMs = promptInt(reader, "Tick interval (ms)", cfg.Feed.IntervalMs)
	cfg.Feed.MaxTicks = promptInt(reader, "Max ticks (0 = unbounded)", cfg.Feed.MaxTicks)
}

func launchPaper(reader *bufio.Reader) {
	fmt.Println("Launching paper host (Ctrl+C to stop)...")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", "run", "./cmd/paper")
	cmd.Env = append(os.Environ(), "TICKBOT_CONFIG="+locateConfig())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start host: %v\n", err)
		return
	}

	go func() {
		_ = cmd.Wait()
		cancel()
	}()

	fmt.Print("\nPress ENTER to stop the host and return to menu...")
	_, _ = reader.ReadString('\n')
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	fmt.Printf("%s [%d]: ", label, current)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	val, err := strconv.Atoi(line)
	if err != nil {
		fmt.Printf("invalid number, keeping %d\n", current)
		return current
	}
	return val
}

func promptString(reader *bufio.Reader, label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	line, _ := reader.ReadString('\n')
	if line = strings.TrimSpace(line); line == "" {
		return current
	}
	return line
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(locateConfig())
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func saveConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return config.Save(locateConfig(), cfg)
}

func locateConfig() string {
	if path := os.Getenv("TICKBOT_CONFIG"); path != "" {
		return path
	}
	return filepath.Clean(defaultConfigPath)
}

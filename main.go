package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"dinegrip/internal/catalog"
	"dinegrip/internal/config"
	"dinegrip/internal/controller"
	"dinegrip/internal/domain"
	"dinegrip/internal/eventbus"
	"dinegrip/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath string
	var catalogPath string
	flag.StringVar(&configPath, "config", ".dinegrip.toml", "Path to the configuration file")
	flag.StringVar(&catalogPath, "catalog", "", "Path to a TOML catalog file (overrides config)")
	flag.Parse()

	cfg := config.LoadOrCreate(configPath)
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}

	// Set up logging. The TUI owns the terminal, so logs go to a file.
	logger, err := newLogger(cfg.LogPath)
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New(logger)
	defer bus.Close()

	// Pick the catalog source
	var src catalog.Source
	if cfg.CatalogPath != "" {
		src = catalog.NewFileSource(cfg.CatalogPath)
		logger.Info("using catalog file", zap.String("path", cfg.CatalogPath))
	} else {
		src = catalog.NewStaticSource(catalog.DefaultCatalog())
		logger.Info("using built-in catalog")
	}

	// Create the reactive controller
	ctrl := controller.New(src, bus, controller.Options{
		Debounce: cfg.Debounce(),
		Logger:   logger,
	})
	ctrl.Start(ctx)

	// Create UI model
	uiModel := ui.NewModel(ctrl, cfg)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward domain events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn("event channel full, dropping event", zap.String("event", string(e.Type())))
		}
	}
	for _, t := range []domain.EventType{
		eventbus.EventCatalogLoaded,
		eventbus.EventCatalogLoadFailed,
		eventbus.EventQueryChanged,
		eventbus.EventScopeChanged,
		eventbus.EventResultsUpdated,
	} {
		bus.Subscribe(t, forward)
	}
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Start the initial catalog load
	ctrl.Load(ctx)

	// Run the UI
	logger.Info("starting UI")
	if _, err := p.Run(); err != nil {
		logger.Error("error running program", zap.Error(err))
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	logger.Info("UI exited normally")

	// Cleanup
	close(eventChan)
	cancel()
	ctrl.Wait()
}

// newLogger builds a file-backed zap logger.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		path = "dinegrip.log"
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contactsearch/internal/contacts"
	"contactsearch/internal/eventbus"
	"contactsearch/internal/platform"
	"contactsearch/internal/store"
	"contactsearch/internal/ui"
)

// uiEvents are forwarded from the bus to the running program
var uiEvents = []eventbus.EventType{
	eventbus.EventToastRequested,
	eventbus.EventNavigationRequested,
	eventbus.EventError,
	eventbus.EventRecordCreated,
	eventbus.EventRecordUpdated,
	eventbus.EventRecordDeleted,
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New(eventbus.WithLogger(logger.Named("bus")))
	defer bus.Close()

	st, err := openStore(bus)
	if err != nil {
		return err
	}
	defer st.Close()

	if seedPath != "" {
		if err := applySeed(ctx, st, seedPath); err != nil {
			return err
		}
	}

	comp, err := contacts.New(ctx, st, st,
		platform.NewNavigator(bus, st, logger.Named("navigator")),
		platform.NewToaster(bus),
		contacts.WithLogger(logger.Named("contacts")),
		contacts.WithCacheSize(cfg.Query.CacheSize),
	)
	if err != nil {
		return err
	}

	uiModel := ui.NewModel(ctx, comp, st, cfg, logger.Named("ui"))
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Forward events to the UI in background
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn("event channel full, dropping event", zap.String("event", string(e.Type())))
		}
	}
	unsubscribe := make([]func(), 0, len(uiEvents))
	for _, et := range uiEvents {
		unsubscribe = append(unsubscribe, bus.Subscribe(et, forwardEvent))
	}
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	logger.Info("starting UI")
	_, runErr := p.Run()

	// Cleanup
	for _, u := range unsubscribe {
		u()
	}
	bus.Close()
	close(eventChan)

	if runErr != nil && ctx.Err() == nil {
		logger.Error("error running program", zap.Error(runErr))
		return fmt.Errorf("error running program: %w", runErr)
	}
	logger.Info("UI exited normally")
	return nil
}

// applySeed loads a seed file into st
func applySeed(ctx context.Context, st store.Store, path string) error {
	seed, err := store.LoadSeedFile(path)
	if err != nil {
		return err
	}
	contactCount, caseCount, err := seed.Apply(ctx, st)
	if err != nil {
		return err
	}
	logger.Info("seed applied",
		zap.String("file", path),
		zap.Int("contacts", contactCount),
		zap.Int("cases", caseCount))
	return nil
}

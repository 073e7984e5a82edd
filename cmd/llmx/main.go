// Package main runs llmx, a terminal assistant that answers questions
// about the local Linux system and acts on it through tools.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/credential"
	"github.com/Cyclone1070/llmx/internal/logging"
	"github.com/Cyclone1070/llmx/internal/provider"
	"github.com/Cyclone1070/llmx/internal/provider/gemini"
	"github.com/Cyclone1070/llmx/internal/provider/openai"
	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/command"
	"github.com/Cyclone1070/llmx/internal/tool/filesystem"
	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/tool/script"
	"github.com/Cyclone1070/llmx/internal/tool/service/executor"
	"github.com/Cyclone1070/llmx/internal/tool/service/fs"
	"github.com/Cyclone1070/llmx/internal/tool/service/path"
	"github.com/Cyclone1070/llmx/internal/tool/sysinfo"
	"github.com/Cyclone1070/llmx/internal/ui"
	uiservices "github.com/Cyclone1070/llmx/internal/ui/services"
	"github.com/charmbracelet/bubbles/spinner"
)

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config  *config.Config
	UI      ui.UserInterface
	Logger  *logging.Logger
	Creds   *credential.Store
	Factory provider.BackendFactory
	// Tools builds the tool set around the session's approval policy.
	Tools func(cfg *config.Config, approvals *policy.Service) ([]tool.Tool, error)
}

func createRealUI() ui.UserInterface {
	channels := ui.NewUIChannels()
	renderer := uiservices.NewGlamourRenderer()
	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}
	return ui.NewUI(channels, renderer, spinnerFactory)
}

// connectBackend picks the wire protocol of the provider.
func connectBackend(ctx context.Context, info config.ProviderInfo, apiKey string) (provider.Backend, error) {
	switch info.Backend {
	case config.BackendGemini:
		return gemini.Connect(ctx, info, apiKey)
	case config.BackendOpenAI:
		return openai.Connect(ctx, info, apiKey)
	}
	return nil, fmt.Errorf("provider %s has unsupported backend %q", info.Name, info.Backend)
}

func createTools(cfg *config.Config, approvals *policy.Service) ([]tool.Tool, error) {
	paths, err := path.NewOSExpander()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	osFS := fs.NewOSFileSystem()
	commandExecutor := executor.NewOSCommandExecutor(cfg)

	var tools []tool.Tool
	tools = append(tools, filesystem.NewService(osFS, paths, commandExecutor, cfg).Tools()...)
	tools = append(tools, sysinfo.NewService(commandExecutor, osFS, cfg).Tools()...)
	tools = append(tools, command.NewService(commandExecutor, approvals, cfg).Tools()...)
	tools = append(tools, script.NewService(osFS, paths, commandExecutor, approvals, cfg).Tools()...)
	return tools, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "aviso: configuracao invalida: %v\n", err)
		fmt.Fprintf(os.Stderr, "usando configuracao padrao.\n")
		cfg = config.DefaultConfig()
	}

	level, _ := config.ParseLogLevel(cfg.Logging.Level)
	logger, err := logging.New(logging.Options{
		Dir:     cfg.Logging.Dir,
		Level:   level,
		Journal: cfg.Logging.Journal,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "aviso: log desativado: %v\n", err)
		logger = logging.Discard()
	}
	defer logger.Close()

	keyPath, err := credential.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro: %v\n", err)
		os.Exit(1)
	}

	deps := Dependencies{
		Config:  cfg,
		UI:      createRealUI(),
		Logger:  logger,
		Creds:   credential.NewStore(keyPath, os.Getenv),
		Factory: connectBackend,
		Tools:   createTools,
	}

	// The UI owns the lifecycle: Ctrl+C and /sair end the program, so no
	// signal handling is installed here.
	if err := runInteractive(context.Background(), deps); err != nil {
		fmt.Fprintf(os.Stderr, "erro na interface: %v\n", err)
		os.Exit(1)
	}
}

func runInteractive(ctx context.Context, deps Dependencies) error {
	userInterface := deps.UI

	appCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	appReady := make(chan *app, 1)

	// Goroutine #1: initialise, then read questions
	wg.Add(1)
	go func() {
		defer wg.Done()

		select {
		case <-userInterface.Ready():
		case <-appCtx.Done():
			return
		}

		a, err := newApp(appCtx, deps)
		if err != nil {
			deps.Logger.Error(err, "initialise")
			userInterface.WriteNotice(fmt.Sprintf("erro ao inicializar: %v", err))
			userInterface.WriteNotice(fmt.Sprintf("log salvo em: %s", deps.Logger.Path()))
			close(appReady)
			return // UI keeps running so the user can read the error
		}
		appReady <- a
		close(appReady)

		for {
			input, err := userInterface.ReadInput(appCtx)
			if err != nil {
				return
			}
			a.ask(appCtx, input)
		}
	}()

	// Goroutine #2: slash commands
	wg.Add(1)
	go func() {
		defer wg.Done()

		var a *app
		select {
		case a = <-appReady:
		case <-appCtx.Done():
			return
		}
		if a == nil {
			return
		}

		for {
			select {
			case <-appCtx.Done():
				return
			case cmd := <-userInterface.Commands():
				a.handleCommand(appCtx, cmd)
			}
		}
	}()

	err := userInterface.Start()

	cancel()
	wg.Wait()
	return err
}

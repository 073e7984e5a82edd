package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/credential"
	"github.com/Cyclone1070/llmx/internal/logging"
	"github.com/Cyclone1070/llmx/internal/prompt"
	"github.com/Cyclone1070/llmx/internal/provider"
	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/ui"
	"github.com/Cyclone1070/llmx/internal/workflow/loop"
	"github.com/Cyclone1070/llmx/internal/workflow/toolmanager"
)

// app connects the UI to the agent loop and answers slash commands.
type app struct {
	ui        ui.UserInterface
	client    *provider.Client
	creds     *credential.Store
	approvals *policy.Service
	loop      *loop.Loop
	logger    *logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

func newApp(ctx context.Context, deps Dependencies) (*app, error) {
	if err := deps.Creds.Load(); err != nil {
		return nil, fmt.Errorf("load api keys: %w", err)
	}

	approvals := policy.NewService(deps.UI)
	tools, err := deps.Tools(deps.Config, approvals)
	if err != nil {
		return nil, err
	}
	manager, err := toolmanager.NewToolManager(deps.Logger, tools...)
	if err != nil {
		return nil, err
	}

	session := provider.NewSession(deps.Config.Model)
	client := provider.NewClient(deps.Config, session, deps.Creds, deps.Factory, prompt.Persona, deps.Logger)
	client.SetNotifier(deps.UI.WriteNotice)

	a := &app{
		ui:        deps.UI,
		client:    client,
		creds:     deps.Creds,
		approvals: approvals,
		loop:      loop.NewLoop(client, prompt.NewRouter(), manager, deps.Logger, deps.UI.Events(), deps.Config.Agent),
		logger:    deps.Logger,
	}

	a.ui.SetModel(client.Model())
	if err := client.ReloadCredentials(ctx); err != nil {
		deps.Logger.Error(err, "connect")
		a.ui.WriteNotice(fmt.Sprintf("sem conexao: %v", err))
		a.ui.WriteNotice("verifique suas chaves com /key <provider> <key>")
	} else {
		a.ui.WriteNotice(fmt.Sprintf("conectado (%s)", client.Model()))
	}
	return a, nil
}

// ask answers one question. Esc cancels it through handleCommand.
func (a *app) ask(ctx context.Context, input string) {
	msgCtx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.cancel = nil
		a.mu.Unlock()
		cancel()
	}()

	a.ui.WriteMessage(a.loop.Handle(msgCtx, input))
}

func (a *app) handleCommand(ctx context.Context, cmd ui.UICommand) {
	switch cmd.Type {
	case ui.CommandCancel:
		a.mu.Lock()
		if a.cancel != nil {
			a.cancel()
		}
		a.mu.Unlock()

	case ui.CommandClear:
		a.client.Reset()
		a.approvals.Reset()
		a.ui.WriteNotice(fmt.Sprintf("historico limpo (%s)", a.client.Model()))

	case ui.CommandListModels:
		a.ui.WriteModelList(config.AllModels())

	case ui.CommandSwitchModel:
		model := cmd.Args["model"]
		if err := a.client.SetModel(ctx, model); err != nil {
			a.logger.Error(err, "switch model")
			a.ui.WriteNotice(fmt.Sprintf("erro ao trocar modelo: %v", err))
			return
		}
		a.ui.SetModel(model)
		a.ui.WriteNotice(fmt.Sprintf("modelo alterado para %s", model))

	case ui.CommandSaveKey:
		a.saveKey(ctx, cmd.Args["provider"], cmd.Args["key"])

	case ui.CommandListKeys:
		a.ui.WriteMessage(formatKeys(a.creds.Masked()))
	}
}

func (a *app) saveKey(ctx context.Context, providerName, key string) {
	saved, err := a.creds.Save(providerName, key)
	if err != nil {
		a.ui.WriteNotice(fmt.Sprintf("erro ao salvar chave: %v", err))
		return
	}
	if !saved {
		a.ui.WriteNotice("chave ja existe")
		return
	}
	a.ui.WriteNotice(fmt.Sprintf("chave do %s salva com sucesso!", providerName))

	if err := a.client.ReloadCredentials(ctx); err != nil {
		a.logger.Error(err, "reload credentials")
		a.ui.WriteNotice(fmt.Sprintf("sem conexao: %v", err))
	}
}

func formatKeys(keys []credential.MaskedKey) string {
	if len(keys) == 0 {
		return "nenhuma chave salva. use /key <provider> <key>"
	}

	var sb strings.Builder
	sb.WriteString("**Chaves de API**\n")
	current := ""
	for _, k := range keys {
		if k.Provider != current {
			current = k.Provider
			sb.WriteString(fmt.Sprintf("\n%s\n\n", current))
		}
		sb.WriteString(fmt.Sprintf("%d. `%s`\n", k.Index+1, k.Masked))
	}
	return sb.String()
}

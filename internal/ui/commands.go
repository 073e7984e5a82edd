package ui

import (
	"fmt"
	"strings"
)

const helpText = `**Comandos disponiveis**

- /model: escolher o modelo
- /key <provider> <key>: adicionar uma API key
- /keys: listar as API keys salvas
- /limpar (/clear, /cls): apagar o historico da conversa
- /ajuda (/help, /?): mostrar esta ajuda
- /sair (/exit, /quit, /q): sair

Esc cancela a pergunta em andamento.`

// isExit reports whether input ends the session. Bare words are accepted
// for compatibility with older versions.
func isExit(input string) bool {
	switch strings.ToLower(input) {
	case "/exit", "/quit", "/sair", "/q", "sair", "exit", "quit", "q":
		return true
	}
	return false
}

// commandResult is what a slash command produces inside the UI: an
// optional application command and an optional local notice.
type commandResult struct {
	command *UICommand
	notice  string
	help    bool
}

func parseCommand(input string) commandResult {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return commandResult{}
	}

	switch strings.ToLower(parts[0]) {
	case "/clear", "/limpar", "/cls":
		return commandResult{command: &UICommand{Type: CommandClear}}
	case "/help", "/ajuda", "/?":
		return commandResult{help: true}
	case "/model", "/models", "/modelo":
		return commandResult{command: &UICommand{Type: CommandListModels}}
	case "/keys":
		return commandResult{command: &UICommand{Type: CommandListKeys}}
	case "/key":
		if len(parts) != 3 {
			return commandResult{notice: "uso: /key <provider> <key>"}
		}
		return commandResult{command: &UICommand{
			Type: CommandSaveKey,
			Args: map[string]string{"provider": strings.ToLower(parts[1]), "key": parts[2]},
		}}
	}
	return commandResult{notice: fmt.Sprintf("comando desconhecido: %s. use /ajuda", parts[0])}
}

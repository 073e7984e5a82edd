package prompt

import "strings"

// Category is the coarse class used when no action is detected.
type Category string

const (
	CategoryFilesystem Category = "filesystem"
	CategorySystemInfo Category = "system_info"
	CategoryCommands   Category = "commands"
	CategoryScripts    Category = "scripts"
	CategoryGeneral    Category = "general"
)

type keywordList struct {
	category Category
	keywords []string
}

// priorityKeywords win outright, checked in this order.
var priorityKeywords = []keywordList{
	{CategoryCommands, []string{
		"compactar", "compacte", "rar", "zip", "tar",
		"extrair", "extraia", "extract", "unrar", "unzip", "descompactar", "descompacte",
		"copiar", "copie", "mover", "mova",
		"instalar", "instale", "deletar", "delete", "remover", "remova",
		"renomear", "renomeie", "criar pasta", "crie pasta", "crie a pasta",
		"atualize", "atualizar", "apt install", "apt update", "apt upgrade",
	}},
	{CategoryScripts, []string{
		"criar script", "crie script", "crie um script",
		"automatize", "automatizar", "automacao", "automação",
	}},
	{CategoryFilesystem, []string{
		"caminho do", "onde esta o", "onde está o", "qual o caminho",
	}},
}

// categoryKeywords are scored by match count. Ties go to the earlier
// category.
var categoryKeywords = []keywordList{
	{CategoryFilesystem, []string{
		"listar", "lista", "ls", "pasta", "diretorio", "diretório", "folder",
		"arquivos", "files", "tamanho", "size", "buscar",
		"encontrar", "find", "procurar", "search", "ler", "read", "conteudo",
		"conteúdo", "abrir", "visualizar", "mostrar", "ver", "caminho", "path",
		"onde esta", "onde está", "executavel", "executável", "which",
	}},
	{CategorySystemInfo, []string{
		"disco", "disk", "espaco", "espaço", "storage", "memoria", "memória",
		"ram", "memory", "cpu", "processador", "processo", "processos",
		"process", "pacote", "pacotes", "package", "instalado",
		"sistema", "system", "info", "informacao", "informação", "uptime",
		"kernel", "versao", "versão",
	}},
	{CategoryCommands, []string{
		"executar", "execute", "rodar", "run",
		"compactar", "compacte", "compress", "zip", "rar", "tar", "descompactar",
		"extract", "copiar", "copie", "copy", "cp", "mover", "mova", "move", "mv",
		"renomear", "renomeie", "rename", "deletar", "delete", "rm", "remover",
		"instalar", "instale", "install", "desinstalar", "uninstall",
		"atualizar", "atualize", "update", "upgrade", "apt",
		"criar pasta", "crie pasta", "mkdir",
	}},
	{CategoryScripts, []string{
		"script", "scripts", "bash", "shell", "automacao", "automação",
		"automatizar", "automatize", "automate", "cron", "cronjob", "agendar", "schedule",
		"criar script", "create script", "escrever script", "write script",
		"limpeza automatica", "limpeza automática",
	}},
}

var categoryPrompts = map[Category]string{
	CategoryFilesystem: filesystemPrompt,
	CategorySystemInfo: systemInfoPrompt,
	CategoryCommands:   commandsPrompt,
	CategoryScripts:    scriptsPrompt,
	CategoryGeneral:    generalPrompt,
}

// Classify assigns message to exactly one category.
func Classify(message string) Category {
	lower := strings.ToLower(message)

	for _, p := range priorityKeywords {
		if containsAny(lower, p.keywords) {
			return p.category
		}
	}

	best, bestScore := CategoryGeneral, 0
	for _, c := range categoryKeywords {
		score := 0
		for _, k := range c.keywords {
			if strings.Contains(lower, k) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = c.category, score
		}
	}
	return best
}

// PromptFor returns the full-capability prompt of a category.
func PromptFor(c Category) string {
	if p, ok := categoryPrompts[c]; ok {
		return p
	}
	return generalPrompt
}

// Package policy decides which tool calls need the user's confirmation
// and blocks commands that are destructive beyond repair.
package policy

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Cyclone1070/llmx/internal/tool"
)

// Decision is the user's answer to a confirmation request.
type Decision string

const (
	DecisionAllow       Decision = "allow"
	DecisionDeny        Decision = "deny"
	DecisionAllowAlways Decision = "allow_always"
)

// Verdict is the outcome of the static policy check.
type Verdict string

const (
	VerdictAllow Verdict = "allow"
	VerdictAsk   Verdict = "ask"
)

// Kind selects how a confirmation request is shown.
type Kind string

const (
	KindExec Kind = "exec"
	KindEdit Kind = "edit"
	KindInfo Kind = "info"
)

// Request describes an operation waiting for confirmation.
type Request struct {
	Tool    tool.ID
	Kind    Kind
	Title   string
	Command string // exec
	Path    string // edit
	Content string // edit, script body when known
}

// Confirmer asks the user about a Request. It is implemented by the
// terminal UI.
type Confirmer interface {
	Confirm(ctx context.Context, req Request) (Decision, error)
}

// ErrInvalidDecision is returned when a Confirmer answers with an unknown
// decision.
var ErrInvalidDecision = errors.New("invalid permission decision")

// DefaultSafeCommands never need confirmation when run through
// run_command without shell operators.
var DefaultSafeCommands = []string{
	"ls", "dir", "pwd", "cd",
	"cat", "head", "tail", "less", "more",
	"grep", "find", "locate", "which", "whereis",
	"echo", "printf",
	"df", "du", "free", "top", "htop", "ps",
	"uname", "hostname", "whoami", "id",
	"date", "cal", "uptime",
	"file", "stat", "wc",
}

// Destructive patterns refused before confirmation is even asked.
var (
	CommandDenyPatterns = []string{"rm -rf /", "rm -rf /*", ":(){", "mkfs", "dd if="}
	SudoDenyPatterns    = []string{"rm -rf /", "rm -rf /*", ":(){", "mkfs.", "dd if=/dev/zero", "chmod -R 777 /"}
)

// shellOperators turn a safe root into an arbitrary pipeline.
var shellOperators = []string{";", "&", "|", ">", "<", "`", "$(", "\n"}

// mutatingFlags make an otherwise read-only root delete or run things.
var mutatingFlags = map[string][]string{
	"find": {"-delete", "-exec", "-execdir", "-ok", "-okdir", "-fprint", "-fprintf", "-fls"},
}

// Service holds the session allow-lists and asks the Confirmer when the
// static rules are not enough.
type Service struct {
	confirmer Confirmer
	safe      []string

	mu              sync.RWMutex // Protects the session maps
	sessionTools    map[tool.ID]bool
	sessionCommands map[string]bool
}

// NewService creates a policy Service. safe defaults to DefaultSafeCommands
// when empty.
func NewService(confirmer Confirmer, safe ...string) *Service {
	if confirmer == nil {
		panic("confirmer is required")
	}
	if len(safe) == 0 {
		safe = DefaultSafeCommands
	}
	return &Service{
		confirmer:       confirmer,
		safe:            safe,
		sessionTools:    make(map[tool.ID]bool),
		sessionCommands: make(map[string]bool),
	}
}

// Decide applies the static rules. Read-only tools are always allowed.
// run_command is allowed when its root command is safe or was approved
// for the session and the line carries no shell operators or mutating
// flags such as find -delete. Every other
// executor or script tool asks unless it was approved for the session.
// run_sudo_command always asks.
func (s *Service) Decide(id tool.ID, command string) Verdict {
	switch id.Group() {
	case tool.GroupFilesystem, tool.GroupSystemInfo:
		return VerdictAllow
	}
	if id == tool.RunSudoCommand {
		return VerdictAsk
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sessionTools[id] {
		return VerdictAllow
	}
	if id == tool.RunCommand && !hasShellOperator(command) {
		root := RootCommand(command)
		if root != "" && !hasMutatingFlag(root, command) && (s.sessionCommands[root] || slices.Contains(s.safe, root)) {
			return VerdictAllow
		}
	}
	return VerdictAsk
}

// Authorize runs Decide and, when needed, the Confirmer. It returns
// whether the operation may proceed. Allow-always records the root command
// (run_command) or the tool (script tools) for the rest of the session;
// for sudo it only allows this one call.
func (s *Service) Authorize(ctx context.Context, req Request) (bool, error) {
	if s.Decide(req.Tool, req.Command) == VerdictAllow {
		return true, nil
	}
	if req.Title == "" {
		req = Describe(req)
	}

	decision, err := s.confirmer.Confirm(ctx, req)
	if err != nil {
		return false, fmt.Errorf("failed to get user permission: %w", err)
	}

	switch decision {
	case DecisionAllow:
		return true, nil
	case DecisionDeny:
		return false, nil
	case DecisionAllowAlways:
		s.remember(req)
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrInvalidDecision, decision)
	}
}

func (s *Service) remember(req Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Tool {
	case tool.RunSudoCommand:
	case tool.RunCommand:
		if root := RootCommand(req.Command); root != "" {
			s.sessionCommands[root] = true
		}
	default:
		s.sessionTools[req.Tool] = true
	}
}

// Reset forgets every session approval.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.sessionTools)
	clear(s.sessionCommands)
}

// Describe fills in the Kind and Title a confirmation prompt shows.
func Describe(req Request) Request {
	switch req.Tool {
	case tool.RunCommand:
		req.Kind, req.Title = KindExec, "[!] Executar Comando"
	case tool.RunSudoCommand:
		req.Kind, req.Title = KindExec, "[!] Comando com Sudo"
	case tool.CreateScript:
		req.Kind, req.Title = KindEdit, "[!] Criar Script"
	case tool.RunScript:
		req.Kind, req.Title = KindEdit, "[!] Executar Script"
	default:
		req.Kind, req.Title = KindInfo, "[!] "+req.Tool.String()
	}
	return req
}

// RootCommand returns the program name of a command line, ignoring a
// leading sudo and any directory part.
func RootCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) > 0 && fields[0] == "sudo" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return ""
	}
	return filepath.Base(fields[0])
}

// Blocked returns the first pattern found in command, or "".
func Blocked(command string, patterns []string) string {
	for _, p := range patterns {
		if strings.Contains(command, p) {
			return p
		}
	}
	return ""
}

func hasMutatingFlag(root, command string) bool {
	flags, ok := mutatingFlags[root]
	if !ok {
		return false
	}
	for _, field := range strings.Fields(command) {
		if slices.Contains(flags, field) {
			return true
		}
	}
	return false
}

func hasShellOperator(command string) bool {
	for _, op := range shellOperators {
		if strings.Contains(command, op) {
			return true
		}
	}
	return false
}

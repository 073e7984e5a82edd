package command

import (
	"context"
	"time"

	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/tool/service/executor"
)

// shellRunner runs a command line through the shell.
type shellRunner interface {
	Shell(ctx context.Context, script string, timeout time.Duration) (*executor.Result, error)
}

// authorizer asks for confirmation when the policy requires it.
type authorizer interface {
	Authorize(ctx context.Context, req policy.Request) (bool, error)
}

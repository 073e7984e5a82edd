package fs

import "fmt"

// WriteOp names the step of an atomic write that failed.
type WriteOp string

const (
	OpCreateTemp WriteOp = "criar arquivo temporario"
	OpWrite      WriteOp = "gravar"
	OpRename     WriteOp = "renomear"
	OpChmod      WriteOp = "ajustar permissoes de"
)

// WriteError is returned by WriteFileAtomic. The message ends up in the
// tool result, so it is in Portuguese.
type WriteError struct {
	Op    WriteOp
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("nao foi possivel %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }

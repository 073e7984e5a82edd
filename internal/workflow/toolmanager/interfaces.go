package toolmanager

// toolLogger records tool invocations.
type toolLogger interface {
	ToolCall(name string, args map[string]any, result string)
	Error(err error, where string)
}

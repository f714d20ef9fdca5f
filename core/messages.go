package core

var (
	ChangesSavedMessage = "changes saved"
	NothingToUndo       = "already at oldest change"
	NothingToRedo       = "already at newest change"
	CopiedMessage       = "copied to clipboard"
	CutMessage          = "cut to clipboard"
)

func (e *editor) DispatchMessage(args ...string) {
	if len(args) == 0 {
		return
	}
	id := args[0]
	value := id
	if len(args) > 1 {
		value = args[1]
	}
	select {
	case e.updateSignal <- MessageSignal{id, value}:
	default:
		e.logger.Warn().Str("message", value).Msg("channel is full, unable to send message signal")
	}
}

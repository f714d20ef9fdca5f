package core

type Signal any

// CopySignal reports text written to the clipboard by a copy or cut.
type CopySignal struct {
	text string
	cut  bool
}

func (c CopySignal) Value() (text string, cut bool) {
	return c.text, c.cut
}

type UndoSignal struct{}

func (u UndoSignal) Value() {}

type RedoSignal struct{}

func (r RedoSignal) Value() {}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	id = m.id
	message = m.value

	return id, message
}

// SaveSignal asks the host to persist a document. The editor never writes
// files itself.
type SaveSignal struct {
	id      DocID
	path    string
	content string
}

func (s SaveSignal) Value() (id DocID, path, content string) {
	return s.id, s.path, s.content
}

type QuitSignal struct{}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

func (e *editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default: // Ignore if the channel is full
		e.logger.Debug().Msgf("channel is full, dropping %T", signal)
	}
}

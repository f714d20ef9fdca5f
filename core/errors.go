package core

import (
	"errors"
)

var (
	ErrClipboardWrite  = errors.New("cannot write to clipboard")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrUnknownDocument = errors.New("unknown document")
	ErrNoChangesToSave = errors.New("no changes to save")
	ErrDocumentOpen    = errors.New("document already open")
)

type ErrorId int

const (
	ErrClipboardWriteId ErrorId = iota
	ErrUnknownDocumentId
	ErrNoChangesToSaveId
	ErrFailedToSaveId
)

type Error struct {
	id  ErrorId
	err error
}

func (e Error) Error() string {
	if e.err == nil {
		return "unknown error"
	}
	return e.err.Error()
}

func (e Error) Unwrap() error { return e.err }

func (e *editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		e.logger.Warn().Err(err).Msg("channel is full, unable to send error signal")
	}
}

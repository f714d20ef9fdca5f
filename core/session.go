package core

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DocID identifies an open document: its cleaned path, or a random id for
// scratch documents that have no file yet.
type DocID string

// Document is a buffer plus everything the editor keeps for it.
type Document struct {
	ID DocID
	// Path is empty for scratch documents.
	Path   string
	Buffer Buffer
	State  *WidgetState

	dirty bool
}

// Dirty reports whether the buffer has unsaved edits.
func (d *Document) Dirty() bool { return d.dirty }

// IsScratch reports whether the document has no backing file.
func (d *Document) IsScratch() bool { return d.Path == "" }

// Name returns a short label for the document.
func (d *Document) Name() string {
	if d.IsScratch() {
		return "[scratch]"
	}
	return filepath.Base(d.Path)
}

// Session is the set of open documents and which one is shown. It owns every
// document's Buffer and WidgetState; nothing is shared between documents.
type Session struct {
	cfg     Config
	docs    map[DocID]*Document
	order   []DocID
	current DocID
	logger  zerolog.Logger
}

func NewSession(cfg Config) *Session {
	return &Session{
		cfg:    cfg,
		docs:   make(map[DocID]*Document),
		logger: log.Logger,
	}
}

// SetLogger replaces the global zerolog logger used by default.
func (s *Session) SetLogger(logger zerolog.Logger) { s.logger = logger }

// Open adds a document read from path and makes it current. Opening a path
// that is already open just switches to it and keeps its edits.
func (s *Session) Open(path string, content []byte) *Document {
	id := DocID(filepath.Clean(path))
	if doc, ok := s.docs[id]; ok {
		s.current = id
		return doc
	}

	doc := &Document{
		ID:     id,
		Path:   string(id),
		Buffer: NewBufferFromBytes(content),
		State:  NewWidgetState(s.cfg),
	}
	s.add(doc)
	s.logger.Debug().Str("doc", string(id)).Int("chars", doc.Buffer.Len()).Msg("document opened")
	return doc
}

// OpenScratch adds an unnamed document holding text and makes it current.
func (s *Session) OpenScratch(text string) *Document {
	doc := &Document{
		ID:     DocID(uuid.NewString()),
		Buffer: NewBuffer(text),
		State:  NewWidgetState(s.cfg),
	}
	s.add(doc)
	s.logger.Debug().Str("doc", string(doc.ID)).Msg("scratch document opened")
	return doc
}

func (s *Session) add(doc *Document) {
	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	s.current = doc.ID
}

// Get returns the document with id.
func (s *Session) Get(id DocID) (*Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	return doc, nil
}

// Current returns the shown document, or nil when none is open.
func (s *Session) Current() *Document {
	return s.docs[s.current]
}

func (s *Session) SetCurrent(id DocID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	s.current = id
	return nil
}

// Documents returns the open documents in the order they were opened.
func (s *Session) Documents() []*Document {
	docs := make([]*Document, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, s.docs[id])
	}
	return docs
}

// Next switches to the document after the current one, wrapping around.
func (s *Session) Next() *Document {
	if len(s.order) == 0 {
		return nil
	}
	i := s.indexOf(s.current)
	s.current = s.order[(i+1)%len(s.order)]
	return s.Current()
}

func (s *Session) indexOf(id DocID) int {
	for i, other := range s.order {
		if other == id {
			return i
		}
	}
	return -1
}

// Close drops a document and its history. If it was current, the document
// opened before it (or else the first one) becomes current.
func (s *Session) Close(id DocID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	i := s.indexOf(id)
	delete(s.docs, id)
	s.order = append(s.order[:i], s.order[i+1:]...)

	if s.current == id {
		s.current = ""
		if len(s.order) > 0 {
			s.current = s.order[max(0, i-1)]
		}
	}
	s.logger.Debug().Str("doc", string(id)).Msg("document closed")
	return nil
}

// Reset closes every document.
func (s *Session) Reset() {
	s.docs = make(map[DocID]*Document)
	s.order = nil
	s.current = ""
}

// Reload replaces a document's text with content from disk. Its history
// is cleared and it is no longer dirty.
func (s *Session) Reload(id DocID, content []byte) error {
	doc, err := s.Get(id)
	if err != nil {
		return err
	}
	doc.Buffer.ReplaceWith(string(content))
	doc.State.Selection = doc.State.Selection.Clamp(doc.Buffer.Len())
	doc.State.History.Clear()
	doc.dirty = false
	return nil
}

// Apply records the outcome of a frame for a document.
func (s *Session) Apply(id DocID, resp Response) error {
	doc, err := s.Get(id)
	if err != nil {
		return err
	}
	if resp.Changed {
		doc.dirty = true
	}
	return nil
}

// MarkSaved records that content was written for a document. Hosts call it
// only after the write succeeded, so a failed write leaves the document
// dirty. The dirty flag is kept when the buffer no longer matches content,
// which happens when edits land between the save request and the write.
func (s *Session) MarkSaved(id DocID, content string) error {
	doc, err := s.Get(id)
	if err != nil {
		return err
	}
	if doc.Buffer.String() != content {
		s.logger.Debug().Str("doc", string(id)).Msg("document edited while saving, still dirty")
		return nil
	}
	doc.dirty = false
	return nil
}

// SetPath gives a scratch document a file. The document keeps its state but
// is re-keyed by the new path.
func (s *Session) SetPath(id DocID, path string) (*Document, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	newID := DocID(filepath.Clean(path))
	if newID == id {
		return doc, nil
	}
	if _, taken := s.docs[newID]; taken {
		return nil, fmt.Errorf("%w: %s", ErrDocumentOpen, path)
	}

	delete(s.docs, id)
	doc.ID = newID
	doc.Path = string(newID)
	s.docs[newID] = doc
	s.order[s.indexOf(id)] = newID
	if s.current == id {
		s.current = newID
	}
	return doc, nil
}

// Dirty returns the ids of documents with unsaved edits, in open order.
func (s *Session) Dirty() []DocID {
	var ids []DocID
	for _, id := range s.order {
		if s.docs[id].dirty {
			ids = append(ids, id)
		}
	}
	return ids
}

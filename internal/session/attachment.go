package session

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/leafwise/florabot/internal/domain"
)

// PendingAttachment is the single image the user has attached but not yet
// sent: the raw payload for transmission plus a preview file for display.
type PendingAttachment struct {
	Data     []byte
	MIMEType string
	Name     string
	Preview  *Preview
}

// DataURI returns the display-ready encoding embedded into the user message
// at send time.
func (a *PendingAttachment) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", a.MIMEType, base64.StdEncoding.EncodeToString(a.Data))
}

// Preview is the finalizable display resource of a pending attachment: a
// temporary file owned exclusively by the Attachments manager.
type Preview struct {
	path     string
	released bool
}

func (p *Preview) Path() string {
	return p.path
}

// Release removes the preview file. Safe to call more than once; the file
// is removed exactly once.
func (p *Preview) Release() error {
	if p.released {
		return nil
	}
	p.released = true
	return os.Remove(p.path)
}

func (p *Preview) Released() bool {
	return p.released
}

// Attachments owns the lifecycle of at most one pending attachment,
// independent of conversation state. Every replacement or clear releases
// the previous preview before the new state is visible.
type Attachments struct {
	dir     string
	current *PendingAttachment
}

// NewAttachments creates a manager writing preview files under dir, or the
// system temp directory when dir is empty.
func NewAttachments(dir string) *Attachments {
	return &Attachments{dir: dir}
}

// Attach validates and stores a new pending attachment, replacing any
// existing one. Non-image MIME types are rejected before any state changes.
func (a *Attachments) Attach(data []byte, mimeType, name string) (*PendingAttachment, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}

	a.Clear()

	preview, err := a.writePreview(data)
	if err != nil {
		return nil, fmt.Errorf("write preview: %w", err)
	}
	a.current = &PendingAttachment{
		Data:     data,
		MIMEType: mimeType,
		Name:     name,
		Preview:  preview,
	}
	return a.current, nil
}

// Clear releases the current preview and drops the pending attachment.
// Idempotent; a no-op when nothing is pending.
func (a *Attachments) Clear() {
	if a.current == nil {
		return
	}
	_ = a.current.Preview.Release()
	a.current = nil
}

// Current returns the pending attachment without side effects, or nil.
func (a *Attachments) Current() *PendingAttachment {
	return a.current
}

func (a *Attachments) writePreview(data []byte) (*Preview, error) {
	f, err := os.CreateTemp(a.dir, "flora-preview-*")
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	return &Preview{path: f.Name()}, nil
}

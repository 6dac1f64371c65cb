// Package manifest provides the ongoing/completed/aborted session snapshot
// collaborator described narrowly by the core's output contract. It is not
// part of the core: the core never writes files, it only hands the
// collaborator enough information (resolved context, per-item applied
// variations) to persist a snapshot incrementally.
package manifest

import (
	"fmt"
	"os"

	"github.com/madstone-tech/loko/internal/core/entities"
	"github.com/madstone-tech/loko/internal/core/usecases"
)

// Status is the manifest's top-level state, one of exactly three values.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
)

// ItemRecord is one emitted RenderedItem as persisted in the manifest.
type ItemRecord struct {
	Prompt     string                               `json:"prompt"`
	Negative   string                                `json:"negative,omitempty"`
	Seed       int64                                 `json:"seed"`
	Parameters map[string]any                        `json:"parameters,omitempty"`
	Applied    map[string]entities.AppliedVariation `json:"applied,omitempty"`
}

// Snapshot is the on-disk manifest shape: a status field plus the items
// emitted so far and any warnings collected during resolution. The core
// never manages Status directly; this collaborator owns the transitions.
type Snapshot struct {
	Status     Status              `json:"status"`
	Style      string              `json:"style,omitempty"`
	Provenance map[string]string   `json:"provenance,omitempty"`
	Items      []ItemRecord        `json:"items"`
	Warnings   []entities.Warning  `json:"warnings,omitempty"`
}

// NewOngoing creates a fresh snapshot in the ongoing state from a resolved
// context, before any items have been emitted.
func NewOngoing(ctx *entities.ResolvedContext) *Snapshot {
	return &Snapshot{
		Status:     StatusOngoing,
		Style:      ctx.Style,
		Provenance: ctx.Provenance,
		Items:      nil,
	}
}

// Append records one more emitted item. Only valid while the snapshot is
// ongoing.
func (s *Snapshot) Append(item entities.RenderedItem) {
	if s.Status != StatusOngoing {
		panic(fmt.Sprintf("manifest: cannot append to a %s snapshot", s.Status))
	}
	s.Items = append(s.Items, ItemRecord{
		Prompt:     item.Prompt,
		Negative:   item.Negative,
		Seed:       item.Seed,
		Parameters: item.Parameters,
		Applied:    item.Applied,
	})
}

// AddWarning records one non-fatal diagnostic collected by the core.
func (s *Snapshot) AddWarning(w entities.Warning) {
	s.Warnings = append(s.Warnings, w)
}

// Complete transitions ongoing -> completed on normal termination. Any
// other starting state is forbidden and panics.
func (s *Snapshot) Complete() {
	if s.Status != StatusOngoing {
		panic(fmt.Sprintf("manifest: cannot complete a %s snapshot", s.Status))
	}
	s.Status = StatusCompleted
}

// Abort transitions ongoing -> aborted on interruption. Any other starting
// state is forbidden and panics.
func (s *Snapshot) Abort() {
	if s.Status != StatusOngoing {
		panic(fmt.Sprintf("manifest: cannot abort a %s snapshot", s.Status))
	}
	s.Status = StatusAborted
}

// Writer persists Snapshot values to a path on disk via an OutputEncoder,
// defaulting to JSON unless useTOON is set.
type Writer struct {
	encoder usecases.OutputEncoder
	useTOON bool
}

// NewWriter creates a manifest writer backed by encoder.
func NewWriter(encoder usecases.OutputEncoder, useTOON bool) *Writer {
	return &Writer{encoder: encoder, useTOON: useTOON}
}

// Write encodes snapshot and writes it to path, overwriting any existing
// file. This is how the collaborator persists incremental progress without
// re-invoking the core.
func (w *Writer) Write(path string, snapshot *Snapshot) error {
	var data []byte
	var err error
	if w.useTOON {
		data, err = w.encoder.EncodeTOON(snapshot)
	} else {
		data, err = w.encoder.EncodeJSON(snapshot)
	}
	if err != nil {
		return fmt.Errorf("encoding manifest snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a previously written JSON snapshot from path, e.g. to resume
// reporting after a restart. TOON round-tripping is not supported (the
// encoder's TOON decoder is JSON-only passthrough).
func (w *Writer) Read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snapshot Snapshot
	if err := w.encoder.DecodeJSON(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decoding manifest snapshot: %w", err)
	}
	return &snapshot, nil
}

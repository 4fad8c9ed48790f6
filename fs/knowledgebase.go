// Package fs writes harvested items to the local filesystem.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/kbharvest"
)

// Compile-time interface verification.
var _ kbharvest.ItemStore = (*KnowledgeBaseStore)(nil)

// KnowledgeBaseStore writes the knowledge-base JSON document with atomic
// update semantics. Items are staged in memory and written on Commit to
// path.tmp, which then replaces path.
type KnowledgeBaseStore struct {
	path   string
	teamID string
	items  []*kbharvest.Item
}

// NewKnowledgeBaseStore creates a store writing to path for teamID.
func NewKnowledgeBaseStore(path, teamID string) *KnowledgeBaseStore {
	return &KnowledgeBaseStore{
		path:   path,
		teamID: teamID,
		items:  []*kbharvest.Item{},
	}
}

func (s *KnowledgeBaseStore) tempPath() string {
	return s.path + ".tmp"
}

// Save stages item. Items are written in the order they were saved.
func (s *KnowledgeBaseStore) Save(ctx context.Context, item *kbharvest.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	s.items = append(s.items, item)
	return nil
}

// Commit writes all staged items. A run without items still produces a
// document with an empty items array.
func (s *KnowledgeBaseStore) Commit() error {
	data, err := MarshalKnowledgeBase(&kbharvest.KnowledgeBase{TeamID: s.teamID, Items: s.items})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(s.tempPath(), data, 0644); err != nil {
		return fmt.Errorf("write knowledge base: %w", err)
	}
	if err := os.Rename(s.tempPath(), s.path); err != nil {
		_ = os.Remove(s.tempPath())
		return fmt.Errorf("replace knowledge base: %w", err)
	}
	return nil
}

// Abort discards staged items and any partially written file.
func (s *KnowledgeBaseStore) Abort() error {
	s.items = []*kbharvest.Item{}
	if err := os.Remove(s.tempPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MarshalKnowledgeBase encodes kb as UTF-8 JSON indented by two spaces.
// Non-ASCII text and HTML characters are written literally.
func MarshalKnowledgeBase(kb *kbharvest.KnowledgeBase) ([]byte, error) {
	if kb.Items == nil {
		kb = &kbharvest.KnowledgeBase{TeamID: kb.TeamID, Items: []*kbharvest.Item{}}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(kb); err != nil {
		return nil, kbharvest.Errorf(kbharvest.EINTERNAL, "encode knowledge base: %v", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

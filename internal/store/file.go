package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File stores each slot as its own JSON document next to base. The default
// slot lives at base itself; slot "x" of farm.json lives at farm-x.json.
type File struct {
	base string
	path string
}

// NewFile returns the store for slot of base. An empty slot means DefaultSlot.
func NewFile(base, slot string) *File {
	if slot == "" {
		slot = DefaultSlot
	}
	return &File{base: base, path: slotPath(base, slot)}
}

func slotPath(base, slot string) string {
	if slot == DefaultSlot {
		return base
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "-" + slot + ext
}

func (f *File) ReadSave(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read save %s: %w", f.path, err)
	}
	return data, nil
}

// WriteSave replaces the file atomically, so a crash mid-write keeps the
// previous save intact.
func (f *File) WriteSave(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "save-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}

	cleanup = false
	return nil
}

// DeleteSave removes the slot's file. Deleting a missing slot is not an error.
func (f *File) DeleteSave(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete save %s: %w", f.path, err)
	}
	return nil
}

// Slots lists the saves sharing this file's base name, most recent first.
func (f *File) Slots(ctx context.Context) ([]SlotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ext := filepath.Ext(f.base)
	prefix := strings.TrimSuffix(f.base, ext) + "-"
	matches, err := filepath.Glob(strings.TrimSuffix(f.base, ext) + "-*" + ext)
	if err != nil {
		return nil, fmt.Errorf("list save slots: %w", err)
	}
	candidates := append([]string{f.base}, matches...)

	var out []SlotInfo
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		slot := DefaultSlot
		if path != f.base {
			slot = strings.TrimSuffix(strings.TrimPrefix(path, prefix), ext)
		}
		out = append(out, SlotInfo{Slot: slot, SavedAt: info.ModTime(), Size: int(info.Size())})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

func (f *File) Close() error {
	return nil
}

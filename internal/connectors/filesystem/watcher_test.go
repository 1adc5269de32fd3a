package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

func waitForChange(t *testing.T, changes <-chan domain.FileChange) domain.FileChange {
	t.Helper()
	select {
	case change, ok := <-changes:
		require.True(t, ok, "channel closed before an event arrived")
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for file change event")
		return domain.FileChange{}
	}
}

// ==== Watch ====

func TestWatcher_Watch(t *testing.T) {
	t.Run("reports created csv files", func(t *testing.T) {
		dir := t.TempDir()
		w := New(dir)
		defer w.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		path := filepath.Join(dir, "buildings.csv")
		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(path, []byte("Address\n1 Elm St\n"), 0o644)
		}()

		change := waitForChange(t, changes)
		assert.Equal(t, domain.ChangeCreated, change.Type)
		assert.Equal(t, path, change.Path)
	})

	t.Run("root below a dot-directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), ".seedmerge", "inbox")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		w := New(dir)
		defer w.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		path := filepath.Join(dir, "a.csv")
		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(path, []byte("Address\n1 Elm St\n"), 0o644)
		}()

		change := waitForChange(t, changes)
		assert.Equal(t, domain.ChangeCreated, change.Type)
		assert.Equal(t, path, change.Path)
	})

	t.Run("reports modifications", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "buildings.csv")
		require.NoError(t, os.WriteFile(path, []byte("Address\n"), 0o644))

		w := New(dir)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(path, []byte("Address\n1 Elm St\n"), 0o644)
		}()

		change := waitForChange(t, changes)
		assert.Equal(t, domain.ChangeUpdated, change.Type)
		assert.Equal(t, path, change.Path)
	})

	t.Run("reports deletions", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "old.csv")
		require.NoError(t, os.WriteFile(path, []byte("Address\n"), 0o644))

		w := New(dir)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.Remove(path)
		}()

		change := waitForChange(t, changes)
		assert.Equal(t, domain.ChangeDeleted, change.Type)
		assert.Equal(t, path, change.Path)
	})

	t.Run("ignores unsupported files", func(t *testing.T) {
		dir := t.TempDir()
		w := New(dir)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
			_ = os.WriteFile(filepath.Join(dir, "later.csv"), []byte("x"), 0o644)
		}()

		change := waitForChange(t, changes)
		assert.Equal(t, filepath.Join(dir, "later.csv"), change.Path)
	})

	t.Run("watches new subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		w := New(dir)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		sub := filepath.Join(dir, "2024")
		require.NoError(t, os.Mkdir(sub, 0o755))
		time.Sleep(100 * time.Millisecond)

		path := filepath.Join(sub, "audit.csv")
		require.NoError(t, os.WriteFile(path, []byte("Address\n"), 0o644))

		change := waitForChange(t, changes)
		assert.Equal(t, path, change.Path)
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		w := New("/non/existent/path")

		changes, err := w.Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("returns error when root is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.csv")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := New(path).Watch(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		w := New(t.TempDir())
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-changes:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
	})

	t.Run("returns error when closed", func(t *testing.T) {
		w := New(t.TempDir())
		require.NoError(t, w.Close())

		changes, err := w.Watch(context.Background())

		assert.ErrorIs(t, err, ErrWatcherClosed)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "closed")
	})

	t.Run("accepts file URIs", func(t *testing.T) {
		dir := t.TempDir()
		w := New("file://" + dir)

		assert.Equal(t, dir, w.Root())
	})
}

// ==== Close ====

func TestWatcher_Close(t *testing.T) {
	t.Run("close without watch succeeds", func(t *testing.T) {
		assert.NoError(t, New("/tmp/none").Close())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		w := New(t.TempDir())
		_, err := w.Watch(context.Background())
		require.NoError(t, err)

		assert.NoError(t, w.Close())
		assert.NoError(t, w.Close())
	})
}

// ==== handleFsEvent ====

func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name           string
		file           string
		create         bool
		dir            bool
		op             fsnotify.Op
		expectedChange bool
		expectedType   domain.ChangeType
	}{
		{name: "create", file: "a.csv", create: true, op: fsnotify.Create, expectedChange: true, expectedType: domain.ChangeCreated},
		{name: "write", file: "a.csv", create: true, op: fsnotify.Write, expectedChange: true, expectedType: domain.ChangeUpdated},
		{name: "write with chmod", file: "a.csv", create: true, op: fsnotify.Write | fsnotify.Chmod, expectedChange: true, expectedType: domain.ChangeUpdated},
		{name: "remove", file: "gone.csv", op: fsnotify.Remove, expectedChange: true, expectedType: domain.ChangeDeleted},
		{name: "rename", file: "moved.csv", op: fsnotify.Rename, expectedChange: true, expectedType: domain.ChangeDeleted},
		{name: "tsv create", file: "a.tsv", create: true, op: fsnotify.Create, expectedChange: true, expectedType: domain.ChangeCreated},
		{name: "chmod only", file: "a.csv", create: true, op: fsnotify.Chmod},
		{name: "create vanished before stat", file: "flash.csv", op: fsnotify.Create},
		{name: "directory", file: "reports.csv", dir: true, op: fsnotify.Create},
		{name: "hidden create", file: ".draft.csv", create: true, op: fsnotify.Create},
		{name: "hidden remove", file: ".draft.csv", op: fsnotify.Remove},
		{name: "unsupported extension", file: "notes.txt", create: true, op: fsnotify.Create},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			switch {
			case tt.dir:
				require.NoError(t, os.Mkdir(path, 0o755))
			case tt.create:
				require.NoError(t, os.WriteFile(path, []byte("Address\n"), 0o644))
			}

			change := New(dir).handleFsEvent(fsnotify.Event{Name: path, Op: tt.op})

			if !tt.expectedChange {
				assert.Nil(t, change)
				return
			}
			require.NotNil(t, change)
			assert.Equal(t, tt.expectedType, change.Type)
			assert.Equal(t, path, change.Path)
		})
	}

	t.Run("dot-directory above root is not hidden", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), ".seedmerge", "inbox")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		path := filepath.Join(dir, "a.csv")
		require.NoError(t, os.WriteFile(path, []byte("Address\n"), 0o644))

		change := New(dir).handleFsEvent(fsnotify.Event{Name: path, Op: fsnotify.Create})

		require.NotNil(t, change)
		assert.Equal(t, domain.ChangeCreated, change.Type)
	})

	t.Run("dot-directory below root is hidden", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), ".seedmerge")
		hidden := filepath.Join(root, ".cache")
		require.NoError(t, os.MkdirAll(hidden, 0o755))
		path := filepath.Join(hidden, "a.csv")
		require.NoError(t, os.WriteFile(path, []byte("Address\n"), 0o644))

		assert.Nil(t, New(root).handleFsEvent(fsnotify.Event{Name: path, Op: fsnotify.Create}))
	})

	t.Run("custom filter", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		w := NewWithFilter(dir, nil)
		change := w.handleFsEvent(fsnotify.Event{Name: path, Op: fsnotify.Create})

		require.NotNil(t, change)
		assert.Equal(t, domain.ChangeCreated, change.Type)
	})
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{".hidden", true},
		{"path/to/.hidden.csv", true},
		{"/path/.git/config", true},
		{"/a/.b/.c/file", true},
		{"file.csv", false},
		{"/root/visible/file.csv", false},
		{".", false},
		{"..", false},
		{"path/../file", false},
		{"", false},
		{"file.hidden", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isHidden(tt.path))
		})
	}
}

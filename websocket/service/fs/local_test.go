package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, p string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func names(listing *DirectoryListing) []string {
	out := make([]string, 0, len(listing.Files))
	for _, f := range listing.Files {
		out = append(out, f.Name)
	}
	return out
}

func TestLocalFileSystem(t *testing.T) {
	// 创建临时测试目录
	tmpDir := t.TempDir()
	fs := NewLocalFileSystem(nil)

	t.Run("List sorts directories first then by folded name", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "sorted")
		writeFile(t, filepath.Join(dir, "b.txt"), "bb")
		writeFile(t, filepath.Join(dir, "A.txt"), "a")
		writeFile(t, filepath.Join(dir, "c.txt"), "")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "zeta"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "Alpha"), 0o755))

		listing, err := fs.List(dir)
		require.NoError(t, err)

		assert.Equal(t, []string{"Alpha", "zeta", "A.txt", "b.txt", "c.txt"}, names(listing))
		assert.Equal(t, dir, listing.Path)

		seenFile := false
		for _, entry := range listing.Files {
			if !entry.IsDir {
				seenFile = true
			}
			assert.False(t, seenFile && entry.IsDir, "directory %s listed after a file", entry.Name)
			assert.Equal(t, filepath.Join(dir, entry.Name), entry.Path)
			assert.NotEmpty(t, entry.Modified)
		}
		assert.Equal(t, uint64(2), listing.Files[3].Size)
	})

	t.Run("List canonicalizes the queried path", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "canon")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

		listing, err := fs.List(filepath.Join(dir, "sub", "..") + string(filepath.Separator))
		require.NoError(t, err)
		assert.Equal(t, dir, listing.Path)
		assert.Equal(t, []string{"sub"}, names(listing))
	})

	t.Run("List empty directory", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "empty")
		require.NoError(t, os.Mkdir(dir, 0o755))

		listing, err := fs.List(dir)
		require.NoError(t, err)
		assert.NotNil(t, listing.Files)
		assert.Empty(t, listing.Files)
	})

	t.Run("List missing path", func(t *testing.T) {
		_, err := fs.List(filepath.Join(tmpDir, "missing"))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "path does not exist")

		_, err = fs.List("")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List regular file", func(t *testing.T) {
		file := filepath.Join(tmpDir, "plain.txt")
		writeFile(t, file, "x")

		_, err := fs.List(file)
		assert.ErrorIs(t, err, ErrNotADirectory)
		assert.Equal(t, KindNotADirectory, KindOf(err))

		_, err = fs.List(filepath.Join(file, "below"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CreateDirectory is idempotent", func(t *testing.T) {
		nested := filepath.Join(tmpDir, "a", "b", "c")

		assert.NoError(t, fs.CreateDirectory(nested))
		assert.NoError(t, fs.CreateDirectory(nested))

		info, err := os.Stat(nested)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("CreateDirectory over a file", func(t *testing.T) {
		file := filepath.Join(tmpDir, "occupied")
		writeFile(t, file, "x")

		err := fs.CreateDirectory(file)
		assert.ErrorIs(t, err, ErrIO)
	})

	t.Run("Delete file", func(t *testing.T) {
		file := filepath.Join(tmpDir, "todelete.txt")
		writeFile(t, file, "to be deleted")

		require.NoError(t, fs.Delete(file, DeleteOptions{}))

		_, err := os.Stat(file)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Delete directory tree", func(t *testing.T) {
		parent := filepath.Join(tmpDir, "deltree")
		dir := filepath.Join(parent, "victim")
		writeFile(t, filepath.Join(dir, "one.txt"), "1")
		writeFile(t, filepath.Join(dir, "nested", "two.txt"), "2")
		writeFile(t, filepath.Join(parent, "keep.txt"), "k")

		require.NoError(t, fs.Delete(dir, DeleteOptions{}))

		listing, err := fs.List(parent)
		require.NoError(t, err)
		assert.Equal(t, []string{"keep.txt"}, names(listing))
	})

	t.Run("Delete directory tree collecting errors", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "collect")
		writeFile(t, filepath.Join(dir, "one.txt"), "1")
		writeFile(t, filepath.Join(dir, "nested", "two.txt"), "2")

		require.NoError(t, fs.Delete(dir, DeleteOptions{CollectErrors: true}))

		_, err := os.Stat(dir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Delete keeps symlink targets", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need privileges on windows")
		}
		target := filepath.Join(tmpDir, "linktarget")
		writeFile(t, filepath.Join(target, "precious.txt"), "p")
		link := filepath.Join(tmpDir, "link")
		require.NoError(t, os.Symlink(target, link))

		require.NoError(t, fs.Delete(link, DeleteOptions{}))

		_, err := os.Lstat(link)
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(target, "precious.txt"))
		assert.NoError(t, err)
	})

	t.Run("Delete missing path", func(t *testing.T) {
		err := fs.Delete(filepath.Join(tmpDir, "nothing"), DeleteOptions{})
		assert.ErrorIs(t, err, ErrIO)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Copy", func(t *testing.T) {
		src := filepath.Join(tmpDir, "source.txt")
		dest := filepath.Join(tmpDir, "dest.txt")
		writeFile(t, src, "test content")

		require.NoError(t, fs.Copy(src, dest))

		srcInfo, err := os.Stat(src)
		require.NoError(t, err)
		destInfo, err := os.Stat(dest)
		require.NoError(t, err)
		assert.Equal(t, srcInfo.Size(), destInfo.Size())

		content, err := os.ReadFile(src)
		require.NoError(t, err)
		assert.Equal(t, "test content", string(content))
	})

	t.Run("Copy overwrites destination", func(t *testing.T) {
		src := filepath.Join(tmpDir, "short.txt")
		dest := filepath.Join(tmpDir, "long.txt")
		writeFile(t, src, "new")
		writeFile(t, dest, strings.Repeat("old", 100))

		require.NoError(t, fs.Copy(src, dest))

		content, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("Copy rejects directories and missing sources", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "copydir")
		require.NoError(t, os.MkdirAll(dir, 0o755))

		err := fs.Copy(dir, filepath.Join(tmpDir, "copydir2"))
		assert.ErrorIs(t, err, ErrIO)
		assert.Contains(t, err.Error(), "source is a directory")

		err = fs.Copy(filepath.Join(tmpDir, "ghost"), filepath.Join(tmpDir, "ghost2"))
		assert.ErrorIs(t, err, ErrIO)
	})

	t.Run("Copy onto itself keeps the source", func(t *testing.T) {
		src := filepath.Join(tmpDir, "self.txt")
		writeFile(t, src, "keep me")

		err := fs.Copy(src, src)
		assert.ErrorIs(t, err, ErrIO)

		content, err := os.ReadFile(src)
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(content))
	})

	t.Run("Move", func(t *testing.T) {
		src := filepath.Join(tmpDir, "tomove.txt")
		destDir := filepath.Join(tmpDir, "movedir")
		dest := filepath.Join(destDir, "moved.txt")
		writeFile(t, src, "move test")
		require.NoError(t, os.MkdirAll(destDir, 0o755))

		require.NoError(t, fs.Move(src, dest))

		_, err := os.Stat(src)
		assert.True(t, os.IsNotExist(err))
		content, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "move test", string(content))
	})

	t.Run("Move missing source", func(t *testing.T) {
		err := fs.Move(filepath.Join(tmpDir, "ghost"), filepath.Join(tmpDir, "ghost2"))
		assert.ErrorIs(t, err, ErrIO)
	})

	t.Run("Rename", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "x")
		oldPath := filepath.Join(dir, "old.txt")
		writeFile(t, oldPath, "rename test")

		require.NoError(t, fs.Rename(oldPath, "new.txt"))

		_, err := os.Stat(oldPath)
		assert.True(t, os.IsNotExist(err))
		content, err := os.ReadFile(filepath.Join(dir, "new.txt"))
		require.NoError(t, err)
		assert.Equal(t, "rename test", string(content))
	})

	t.Run("Rename root", func(t *testing.T) {
		root := string(filepath.Separator)
		if runtime.GOOS == "windows" {
			root = filepath.VolumeName(tmpDir) + `\`
		}

		err := fs.Rename(root, "anything")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("Rename rejects names with separators", func(t *testing.T) {
		oldPath := filepath.Join(tmpDir, "stay.txt")
		writeFile(t, oldPath, "s")

		for _, name := range []string{"", ".", "..", "sub" + string(filepath.Separator) + "x"} {
			err := fs.Rename(oldPath, name)
			assert.ErrorIs(t, err, ErrInvalidPath, "name %q", name)
		}

		_, err := os.Stat(oldPath)
		assert.NoError(t, err)
	})
}

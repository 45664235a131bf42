package filestorage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadedFile builds a real *multipart.FileHeader whose Open() serves the
// given content, the same way gin hands uploads to the storage layer.
func uploadedFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func savedFiles(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestSaveFileWithPathWritesIntoSubdirectory(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(uploadedFile(t, "photo.png", "png-bytes"), "avatars")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/avatars/"), "url %q should live under the subdirectory", url)

	entries := savedFiles(t, filepath.Join(dir, "avatars"))
	require.Len(t, entries, 1)
	assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))
}

func TestDeleteFileRemovesSavedFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(uploadedFile(t, "photo.png", "png-bytes"), "avatars")
	require.NoError(t, err)

	entries := savedFiles(t, filepath.Join(dir, "avatars"))
	require.Len(t, entries, 1)

	require.NoError(t, storage.DeleteFile(url))

	_, err = os.Stat(filepath.Join(dir, "avatars", entries[0].Name()))
	assert.True(t, os.IsNotExist(err), "file should be gone after DeleteFile")
}

func TestDeleteFileResolvesFullBaseURL(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(uploadedFile(t, "resume.pdf", "%PDF-1.4"), "resumes")
	require.NoError(t, err)

	entries := savedFiles(t, filepath.Join(dir, "resumes"))
	require.Len(t, entries, 1)

	require.NoError(t, storage.DeleteFile(url))

	_, err = os.Stat(filepath.Join(dir, "resumes", entries[0].Name()))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteFileWithoutBaseURL(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(uploadedFile(t, "logo.png", "png-bytes"), "logos")
	require.NoError(t, err)

	entries := savedFiles(t, filepath.Join(dir, "logos"))
	require.Len(t, entries, 1)

	require.NoError(t, storage.DeleteFile(url))

	_, err = os.Stat(filepath.Join(dir, "logos", entries[0].Name()))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteFileMissingIsNotAnError(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.NoError(t, storage.DeleteFile("/uploads/avatars/gone.png"))
	assert.NoError(t, storage.DeleteFile(""))
}

func TestDeleteFileRejectsTraversal(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.Error(t, storage.DeleteFile("/uploads/../../etc/passwd"))
	assert.Error(t, storage.DeleteFile("/uploads/"))
}

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskUploadRoundTrip(t *testing.T) {
	d := NewDisk(t.TempDir(), "http://localhost/uploads/")

	url, err := d.Upload("form_uploads/1/abc-resume.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/uploads/form_uploads/1/abc-resume.pdf", url)

	data, err := os.ReadFile(filepath.Join(d.Root, "form_uploads", "1", "abc-resume.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	require.NoError(t, d.Remove("form_uploads/1/abc-resume.pdf"))
	_, err = os.Stat(filepath.Join(d.Root, "form_uploads", "1", "abc-resume.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskRejectsEscapingPaths(t *testing.T) {
	d := NewDisk(t.TempDir(), "http://localhost/uploads")

	_, err := d.Upload("../outside", strings.NewReader("x"))
	assert.Error(t, err)

	_, err = d.Upload("a/../../../etc/passwd", strings.NewReader("x"))
	assert.Error(t, err)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePDF writes a PDF with one page per content stream. Every page
// uses the Helvetica base font as /F1. It returns the file path.
func writePDF(t *testing.T, dir, name string, streams ...string) string {
	t.Helper()

	kids := make([]string, len(streams))
	for i := range streams {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(streams)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for i, content := range streams {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// writeTextPDF writes a single-page PDF that shows text on one line.
func writeTextPDF(t *testing.T, dir, name, text string) string {
	t.Helper()
	return writePDF(t, dir, name, fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func requireExtractionError(t *testing.T, err error, path string) {
	t.Helper()
	require.Error(t, err)
	var ee *ExtractionError
	require.True(t, errors.As(err, &ee), "want *ExtractionError, got %T: %v", err, err)
	assert.Equal(t, path, ee.Path)
	assert.Contains(t, err.Error(), path)
}

func TestPlainTextExtractor(t *testing.T) {
	dir := t.TempDir()

	t.Run("extracts text layer", func(t *testing.T) {
		path := writeTextPDF(t, dir, "hello.pdf", "Introduction Hello World")
		got, err := NewPlainTextExtractor().Extract(path)
		require.NoError(t, err)
		assert.Contains(t, got, "Introduction Hello World")
	})

	t.Run("line moves and page breaks separate words", func(t *testing.T) {
		path := writePDF(t, dir, "lines.pdf",
			"BT /F1 12 Tf 72 712 Td (Introduction) Tj 0 -14 Td (This is intro.) Tj 0 -14 Td (Methods) Tj T* (More text) Tj ET",
			"BT /F1 12 Tf 1 0 0 1 72 700 Tm [(Ker) 20 (ning) -300 (gap)] TJ 1 0 0 1 300 700 Tm (same row) Tj 1 0 0 1 72 680 Tm (next row) Tj ET",
		)
		got, err := NewPlainTextExtractor().Extract(path)
		require.NoError(t, err)
		assert.Equal(t, "Introduction\nThis is intro.\nMethods\nMore text\nKerning gap same row\nnext row", got)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "missing.pdf")
		got, err := NewPlainTextExtractor().Extract(path)
		requireExtractionError(t, err, path)
		assert.Empty(t, got)
	})

	t.Run("not a PDF", func(t *testing.T) {
		path := writeFile(t, dir, "notes.pdf", "this is plain text, not a PDF")
		got, err := NewPlainTextExtractor().Extract(path)
		requireExtractionError(t, err, path)
		assert.Empty(t, got)
	})

	t.Run("truncated PDF", func(t *testing.T) {
		path := writeFile(t, dir, "truncated.pdf", "%PDF-1.4\n1 0 obj\n<< /Type /Catalog")
		_, err := NewPlainTextExtractor().Extract(path)
		requireExtractionError(t, err, path)
	})
}

// fakeExtractor returns canned text and records the paths it was asked for.
type fakeExtractor struct {
	output string
	err    error
	calls  []string
}

func (f *fakeExtractor) Extract(pdfPath string) (string, error) {
	f.calls = append(f.calls, pdfPath)
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func TestValidatingExtractor(t *testing.T) {
	dir := t.TempDir()
	pdfPath := writeFile(t, dir, "paper.pdf", "%PDF-1.4")

	tests := []struct {
		name      string
		path      string
		validate  func(string) error
		wantText  string
		wantErr   bool
		wantCalls int
	}{
		{
			name:      "valid file is passed through",
			path:      pdfPath,
			validate:  func(string) error { return nil },
			wantText:  "body text",
			wantCalls: 1,
		},
		{
			name:     "validation failure stops extraction",
			path:     pdfPath,
			validate: func(string) error { return errors.New("xref table corrupt") },
			wantErr:  true,
		},
		{
			name: "unreadable file is rejected before validation",
			path: filepath.Join(dir, "absent.pdf"),
			validate: func(string) error {
				t.Error("validate must not run for a missing file")
				return nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &fakeExtractor{output: "body text"}
			v := NewValidatingExtractor(inner)
			v.validate = tt.validate

			got, err := v.Extract(tt.path)
			if tt.wantErr {
				requireExtractionError(t, err, tt.path)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantText, got)
			assert.Len(t, inner.calls, tt.wantCalls)
		})
	}
}

func TestValidatingExtractor_RejectsGarbage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "garbage.pdf", strings.Repeat("not a pdf ", 50))
	inner := &fakeExtractor{output: "unused"}

	_, err := NewValidatingExtractor(inner).Extract(path)

	requireExtractionError(t, err, path)
	assert.Empty(t, inner.calls)
}

// fakeRuntime implements container.Runtime for testing.
type fakeRuntime struct {
	imageErr error
	runErr   error
	output   string
	gotArgs  []string
	gotInput string
}

func (f *fakeRuntime) Name() string { return "docker" }
func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(string) error { return f.imageErr }

func (f *fakeRuntime) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.gotArgs = args
	data, _ := io.ReadAll(stdin)
	f.gotInput = string(data)
	if f.runErr != nil {
		return f.runErr
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestNewContainerExtractor(t *testing.T) {
	_, err := NewContainerExtractor(&fakeRuntime{imageErr: errors.New("no such image")}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext image not available in docker")

	c, err := NewContainerExtractor(&fakeRuntime{}, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPdftotextImage, c.image)
}

func TestContainerExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	pdfPath := writeFile(t, dir, "paper.pdf", "%PDF-1.4 bytes")

	t.Run("pipes PDF through pdftotext", func(t *testing.T) {
		rt := &fakeRuntime{output: "Introduction\fpage two"}
		c, err := NewContainerExtractor(rt, "poppler:24")
		require.NoError(t, err)

		got, err := c.Extract(pdfPath)
		require.NoError(t, err)
		assert.Equal(t, "Introduction\fpage two", got)
		assert.Equal(t, "%PDF-1.4 bytes", rt.gotInput)
		assert.Equal(t, []string{"-enc", "UTF-8", "-", "-"}, rt.gotArgs)
	})

	t.Run("container failure", func(t *testing.T) {
		c, err := NewContainerExtractor(&fakeRuntime{runErr: errors.New("exit status 1")}, "")
		require.NoError(t, err)
		_, err = c.Extract(pdfPath)
		requireExtractionError(t, err, pdfPath)
	})

	t.Run("missing file", func(t *testing.T) {
		c, err := NewContainerExtractor(&fakeRuntime{}, "")
		require.NoError(t, err)
		missing := filepath.Join(dir, "missing.pdf")
		_, err = c.Extract(missing)
		requireExtractionError(t, err, missing)
	})
}

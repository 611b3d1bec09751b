// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/paper-prep/internal/container"
)

// DefaultPdftotextImage is the image whose entrypoint is poppler's pdftotext.
const DefaultPdftotextImage = "pdftotext:latest"

// pdftotextArgs reads the PDF from stdin and writes UTF-8 text to stdout.
var pdftotextArgs = []string{"-enc", "UTF-8", "-", "-"}

// ContainerExtractor pipes PDFs through pdftotext running in a container.
// It covers files the pure-Go reader cannot decode. It depends on a
// container.Runtime (docker or podman) injected at construction time.
type ContainerExtractor struct {
	runtime container.Runtime
	image   string
}

// NewContainerExtractor creates an extractor that runs image on rt. It
// verifies that the image exists locally before returning.
func NewContainerExtractor(rt container.Runtime, image string) (*ContainerExtractor, error) {
	if image == "" {
		image = DefaultPdftotextImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerExtractor{runtime: rt, image: image}, nil
}

// Extract implements Extractor.
func (c *ContainerExtractor) Extract(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", extractionError(pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(c.image, pdftotextArgs, f, &out); err != nil {
		return "", extractionError(pdfPath, err)
	}
	return out.String(), nil
}

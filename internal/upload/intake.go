// Package upload stages incoming multipart files before they are
// normalized and committed.
package upload

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"contacts-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// FileField is the multipart field the intake reads.
const FileField = "avatar"

const stagedFileKey = "staged_file"

// StagedFile describes one accepted upload sitting in the temp directory.
// It is owned by the intake until handed to the avatar service, which
// either renames it away or leaves it behind on failure.
type StagedFile struct {
	TempPath         string
	OriginalFilename string
	MIMEType         string
}

// Intake accepts a single file per request, filters on the declared
// content type and writes the stream into its temp directory.
type Intake struct {
	tempDir string
}

func NewIntake(tempDir string) *Intake {
	return &Intake{tempDir: tempDir}
}

// Stage writes the file part to the temp directory under its original
// filename. A part whose declared content type does not contain "image"
// is filtered: Stage returns (nil, nil) and nothing is written. Identical
// original filenames race, last writer wins.
func (i *Intake) Stage(fh *multipart.FileHeader) (*StagedFile, error) {
	declared := fh.Header.Get("Content-Type")
	if !strings.Contains(declared, "image") {
		return nil, nil
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dstPath := filepath.Join(i.tempDir, filepath.Base(fh.Filename))
	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return nil, err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	return &StagedFile{
		TempPath:         dstPath,
		OriginalFilename: fh.Filename,
		MIMEType:         declared,
	}, nil
}

// Middleware stages the request's avatar file, if any, and attaches the
// descriptor to the context. A request without a file, with a filtered
// content type, or with a staging failure proceeds with no descriptor;
// handlers that require a file treat the absence as their own error.
func Middleware(intake *Intake, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile(FileField)
		if err != nil {
			c.Next()
			return
		}

		staged, err := intake.Stage(fh)
		if err != nil {
			if l != nil {
				l.Errorf("staging upload %q: %s", fh.Filename, err)
			}
			c.Next()
			return
		}
		if staged != nil {
			c.Set(stagedFileKey, staged)
		}
		c.Next()
	}
}

// FromContext returns the staged file attached by Middleware, or nil.
func FromContext(c *gin.Context) *StagedFile {
	value, ok := c.Get(stagedFileKey)
	if !ok {
		return nil
	}
	staged, ok := value.(*StagedFile)
	if !ok {
		return nil
	}
	return staged
}

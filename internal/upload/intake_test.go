package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func runIntake(t *testing.T, intake *Intake, body *bytes.Buffer, contentType string) *StagedFile {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()

	var staged *StagedFile
	engine.POST("/upload", Middleware(intake, nil), func(c *gin.Context) {
		staged = FromContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	engine.ServeHTTP(httptest.NewRecorder(), req)

	return staged
}

func TestIntakeStagesImage(t *testing.T) {
	tempDir := t.TempDir()
	intake := NewIntake(tempDir)

	body, contentType := multipartBody(t, FileField, "photo.jpg", "image/jpeg", []byte("jpeg bytes"))
	staged := runIntake(t, intake, body, contentType)

	require.NotNil(t, staged)
	assert.Equal(t, "photo.jpg", staged.OriginalFilename)
	assert.Equal(t, "image/jpeg", staged.MIMEType)
	assert.Equal(t, filepath.Join(tempDir, "photo.jpg"), staged.TempPath)

	data, err := os.ReadFile(staged.TempPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestIntakeFiltersNonImage(t *testing.T) {
	tempDir := t.TempDir()
	intake := NewIntake(tempDir)

	body, contentType := multipartBody(t, FileField, "notes.txt", "text/plain", []byte("hello"))
	staged := runIntake(t, intake, body, contentType)

	assert.Nil(t, staged)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a filtered file is never written")
}

func TestIntakeNoFile(t *testing.T) {
	intake := NewIntake(t.TempDir())

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	staged := runIntake(t, intake, body, writer.FormDataContentType())
	assert.Nil(t, staged)
}

func TestIntakeLastWriterWins(t *testing.T) {
	tempDir := t.TempDir()
	intake := NewIntake(tempDir)

	body, contentType := multipartBody(t, FileField, "same.jpg", "image/jpeg", []byte("first"))
	require.NotNil(t, runIntake(t, intake, body, contentType))

	body, contentType = multipartBody(t, FileField, "same.jpg", "image/jpeg", []byte("second"))
	staged := runIntake(t, intake, body, contentType)
	require.NotNil(t, staged)

	data, err := os.ReadFile(staged.TempPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

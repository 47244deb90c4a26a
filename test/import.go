package test

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestdataDir is the path of the testdata directory relative to
// the controller test packages.
const TestdataDir = "../../../testdata"

// LoadTestFile loads a CSV file from the importer testdata as multipart form upload
//
// File contents are returned as a buffer and a map for the HTTP request headers
func LoadTestFile(t *testing.T, filePath string) (*bytes.Buffer, map[string]string) {
	file, err := os.Open(path.Join(TestdataDir, "importer", filePath))
	require.Nil(t, err)
	defer file.Close()

	return Upload(t, path.Base(filePath), file)
}

// Upload returns the contents as multipart form with a single file field.
func Upload(t *testing.T, name string, contents io.Reader) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", name)
	require.Nil(t, err)

	_, err = io.Copy(w, contents)
	require.Nil(t, err)
	require.Nil(t, mw.Close())

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}

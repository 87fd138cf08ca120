package cart

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned for an archive without any ROM inside.
var ErrEmptyArchive = errors.New("archive contains no files")

// LoadFile reads a ROM from disk, unpacking .zip, .gz and .7z containers.
// Any other extension is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading ROM file: %w", err)
	}
	return Unpack(filepath.Ext(filename), data)
}

// Unpack decodes data according to the container extension ext.
func Unpack(ext string, data []byte) ([]byte, error) {
	var (
		decoder io.ReadCloser
		err     error
	)
	switch strings.ToLower(ext) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		decoder, err = openZip(data)
	case ".7z":
		decoder, err = open7z(data)
	default:
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s archive: %w", ext, err)
	}
	defer decoder.Close()

	out, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s archive: %w", ext, err)
	}
	return out, nil
}

func openZip(data []byte) (io.ReadCloser, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			return f.Open()
		}
	}
	return nil, ErrEmptyArchive
}

func open7z(data []byte) (io.ReadCloser, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			return f.Open()
		}
	}
	return nil, ErrEmptyArchive
}

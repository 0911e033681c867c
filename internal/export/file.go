// Package export writes generated meshes and noise textures to disk.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt is appended to compressed output files.
const CompressedExt = ".zst"

// WriteFile creates path, creating its directory as needed, and streams the
// output of write into it. With compress set the stream is zstd encoded and
// CompressedExt is appended to the name. A failed write removes the partial
// file. The final path is returned.
func WriteFile(path string, compress bool, write func(w io.Writer) error) (string, error) {
	path = Path(path, compress)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	if err := writeTo(f, compress, write); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Path returns the name WriteFile uses for path.
func Path(path string, compress bool) string {
	if compress && !strings.HasSuffix(path, CompressedExt) {
		return path + CompressedExt
	}
	return path
}

func writeTo(f *os.File, compress bool, write func(w io.Writer) error) error {
	var enc *zstd.Encoder
	var dst io.Writer = f
	if compress {
		var err error
		enc, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		dst = enc
	}

	bw := bufio.NewWriterSize(dst, 256*1024)
	err := write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if enc != nil {
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens a file written by WriteFile, decompressing it when its name
// ends in CompressedExt.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, CompressedExt) {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &decoder{dec: dec, f: f}, nil
}

type decoder struct {
	dec *zstd.Decoder
	f   *os.File
}

func (d *decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }

func (d *decoder) Close() error {
	d.dec.Close()
	return d.f.Close()
}

package digest

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// ChunkSize is how much data is read at a time when digesting a file.
const ChunkSize = 8 * 1024

// Func computes the content digest of the file at path. The pipeline takes
// the function rather than calling File directly so tests can substitute one.
type Func func(path string) (string, error)

// File streams the file through an xxhash-64 state in fixed-size chunks and
// returns the digest as fixed-width hex. The hash state is fresh per call.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "open file for reading: %q", path)
	}
	defer f.Close()

	h := xxhash.New()
	buf := make([]byte, ChunkSize)

	for {
		n, err := f.Read(buf)
		if n > 0 {
			// xxhash.Digest.Write never returns an error
			_, _ = h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrapf(err, "read file: %q", path)
		}
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

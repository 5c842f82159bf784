package resolver

import (
	"bytes"
	"io"
	"os"
)

const chunkSize = 8 * 1024

// CompareFiles does a byte-by-byte comparison of two files, reading
// matching-size chunks in lockstep. It returns true only when both files
// reach end of input together with every chunk equal. An open or read
// failure is reported and counts as not equal; it never aborts the run.
func CompareFiles(pathA string, pathB string) bool {
	fa, err := os.Open(pathA)
	if err != nil {
		log.WithError(err).Errorf("Unable to open file %q for reading", pathA)
		return false
	}
	defer fa.Close()

	fb, err := os.Open(pathB)
	if err != nil {
		log.WithError(err).Errorf("Unable to open file %q for reading", pathB)
		return false
	}
	defer fb.Close()

	bufA := make([]byte, chunkSize)
	bufB := make([]byte, chunkSize)

	for {
		na, errA := io.ReadFull(fa, bufA)
		if errA != nil && errA != io.EOF && errA != io.ErrUnexpectedEOF {
			log.WithError(errA).Errorf("Read error on file %q", pathA)
			return false
		}

		nb, errB := io.ReadFull(fb, bufB)
		if errB != nil && errB != io.EOF && errB != io.ErrUnexpectedEOF {
			log.WithError(errB).Errorf("Read error on file %q", pathB)
			return false
		}

		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false
		}

		aDone := errA == io.EOF || errA == io.ErrUnexpectedEOF
		bDone := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if aDone || bDone {
			return aDone && bDone
		}
	}
}

package hashutil

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"

	"sha2sum.org/sha2sum/config"
	"sha2sum.org/sha2sum/crypto/sha256"
	apperrors "sha2sum.org/sha2sum/errors"
	"sha2sum.org/sha2sum/logging"
)

// HashReader hashes everything r yields, reading chunkSize bytes at a time.
// A non-positive chunkSize falls back to config.DefaultChunkSize.
func HashReader(r io.Reader, chunkSize int) (sha256.Digest, error) {
	return HashReaderContext(context.Background(), r, chunkSize)
}

// HashReaderContext is HashReader that stops between chunks once ctx is done.
func HashReaderContext(ctx context.Context, r io.Reader, chunkSize int) (sha256.Digest, error) {
	if chunkSize <= 0 {
		chunkSize = config.DefaultChunkSize
	}

	e := sha256.New()
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return sha256.Digest{}, err
		}
		n, err := r.Read(buf)
		if n > 0 {
			e.Update(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return sha256.Digest{}, apperrors.New(apperrors.ErrReadFile, err)
		}
	}
	return e.Digest(), nil
}

// HashFile hashes the file at path.
func HashFile(path string, chunkSize int) (sha256.Digest, error) {
	return hashFileContext(context.Background(), path, chunkSize)
}

func hashFileContext(ctx context.Context, path string, chunkSize int) (sha256.Digest, error) {
	logging.CPrint(logging.DEBUG, "hashing file", logging.LogFormat{"file": path})

	f, err := os.Open(path)
	if err != nil {
		return sha256.Digest{}, errors.Wrapf(apperrors.New(apperrors.ErrOpenFile, err), "open %s", path)
	}
	defer f.Close()

	d, err := HashReaderContext(ctx, f, chunkSize)
	if err != nil {
		return sha256.Digest{}, errors.Wrapf(err, "hash %s", path)
	}
	return d, nil
}

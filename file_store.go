package licensekey

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"
)

// fileStore implements RevocationStore as an append-only file.
//
// Record format in revoked.dat:
//
//	[8]byte: seed (uint64 big-endian)
//	[8]byte: revocation time (unix nanos, int64 big-endian)
type fileStore struct {
	file *os.File
	mu   sync.Mutex
}

const (
	revokedFileName   = "revoked.dat"
	revokedRecordSize = 8 + 8 // seed + ts
)

// OpenFileStore creates or opens a file-based revocation store in dir.
func OpenFileStore(dir string) (RevocationStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	path := filepath.Join(dir, revokedFileName)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open revocation file: %w", err)
	}
	return &fileStore{file: f}, nil
}

// Add appends a revocation record and syncs it to disk.
func (s *fileStore) Add(seed uint64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := syscall.Flock(int(s.file.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("lock revocation file: %w", err)
	}
	defer syscall.Flock(int(s.file.Fd()), syscall.LOCK_UN)

	var buf [revokedRecordSize]byte
	binary.BigEndian.PutUint64(buf[0:8], seed)
	binary.BigEndian.PutUint64(buf[8:16], uint64(at.UnixNano()))

	n, err := s.file.Write(buf[:])
	if err != nil {
		return fmt.Errorf("write revocation: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("incomplete write: %d of %d bytes", n, len(buf))
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync revocation file: %w", err)
	}
	return nil
}

// List reads every record and returns the distinct seeds in file order.
func (s *fileStore) List() ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := syscall.Flock(int(s.file.Fd()), syscall.LOCK_SH); err != nil {
		return nil, fmt.Errorf("lock revocation file: %w", err)
	}
	defer syscall.Flock(int(s.file.Fd()), syscall.LOCK_UN)

	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek revocation file: %w", err)
	}

	reader := bufio.NewReader(s.file)
	seen := make(map[uint64]struct{})
	var seeds []uint64
	for {
		var buf [revokedRecordSize]byte
		if _, err := io.ReadFull(reader, buf[:]); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("truncated revocation record after %d seeds", len(seeds))
			}
			return nil, fmt.Errorf("read revocation: %w", err)
		}
		seed := binary.BigEndian.Uint64(buf[0:8])
		if _, dup := seen[seed]; dup {
			continue
		}
		seen[seed] = struct{}{}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// Close closes the revocation file.
func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close revocation file: %w", err)
	}
	return nil
}

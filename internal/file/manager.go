package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Manager reads and writes the fixed-size blocks of the table files in one
// database directory. Files are created lazily on first use and grown one
// block at a time by Append.
type Manager struct {
	dir       string
	blockSize int

	mu    sync.Mutex
	files map[string]*os.File
}

// NewManager creates a manager rooted at dir, creating the directory if
// needed.
func NewManager(dir string, blockSize int) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	return &Manager{
		dir:       dir,
		blockSize: blockSize,
		files:     make(map[string]*os.File),
	}, nil
}

// BlockSize returns the size in bytes of every block.
func (m *Manager) BlockSize() int {
	return m.blockSize
}

// Read fills p with the contents of blk.
func (m *Manager) Read(blk BlockID, p *Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if blk.Number() < 0 {
		return fmt.Errorf("read %v: negative block number", blk)
	}
	f, err := m.open(blk.Filename())
	if err != nil {
		return err
	}
	if _, err := f.ReadAt(p.Contents(), int64(blk.Number())*int64(m.blockSize)); err != nil {
		return fmt.Errorf("read %v: %w", blk, err)
	}
	return nil
}

// Write stores the contents of p at blk.
func (m *Manager) Write(blk BlockID, p *Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if blk.Number() < 0 {
		return fmt.Errorf("write %v: negative block number", blk)
	}
	f, err := m.open(blk.Filename())
	if err != nil {
		return err
	}
	if _, err := f.WriteAt(p.Contents(), int64(blk.Number())*int64(m.blockSize)); err != nil {
		return fmt.Errorf("write %v: %w", blk, err)
	}
	return nil
}

// Append adds a zeroed block to the end of the file and returns its ID.
func (m *Manager) Append(filename string) (BlockID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.blockCount(filename)
	if err != nil {
		return BlockID{}, err
	}
	blk := NewBlockID(filename, n)

	f, err := m.open(filename)
	if err != nil {
		return BlockID{}, err
	}
	empty := make([]byte, m.blockSize)
	if _, err := f.WriteAt(empty, int64(blk.Number())*int64(m.blockSize)); err != nil {
		return BlockID{}, fmt.Errorf("append %v: %w", blk, err)
	}
	return blk, nil
}

// BlockCount returns the number of blocks currently in the file. A file
// that does not exist yet has zero blocks.
func (m *Manager) BlockCount(filename string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blockCount(filename)
}

// Remove closes and deletes a table file.
func (m *Manager) Remove(filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.files[filename]; ok {
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", filename, err)
		}
		delete(m.files, filename)
	}
	if err := os.Remove(filepath.Join(m.dir, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", filename, err)
	}
	return nil
}

// Close closes every file the manager has opened.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, f := range m.files {
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", name, err)
		}
		delete(m.files, name)
	}
	return nil
}

func (m *Manager) blockCount(filename string) (int, error) {
	f, err := m.open(filename)
	if err != nil {
		return 0, err
	}
	fi, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", filename, err)
	}
	return int(fi.Size() / int64(m.blockSize)), nil
}

// open returns the file with the given name, opening or creating it on
// first use. Callers must hold m.mu.
func (m *Manager) open(filename string) (*os.File, error) {
	if f, ok := m.files[filename]; ok {
		return f, nil
	}
	f, err := os.OpenFile(filepath.Join(m.dir, filename), os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	m.files[filename] = f
	return f, nil
}

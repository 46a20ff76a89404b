package filter

import (
	"strings"

	"github.com/YusovID/lcov-branch-filter/internal/source"
	"github.com/stretchr/testify/mock"
)

type OpenerMock struct {
	mock.Mock
}

func (m *OpenerMock) Open(path string) (source.File, error) {
	args := m.Called(path)
	f, _ := args.Get(0).(source.File)
	return f, args.Error(1)
}

type memFile struct {
	*strings.Reader
	closed bool
}

func newMemFile(content string) *memFile {
	return &memFile{Reader: strings.NewReader(content)}
}

func (f *memFile) Close() error {
	f.closed = true
	return nil
}

// Package clipboard copies assembled documents to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported reports a platform without a usable clipboard utility.
var ErrUnsupported = errors.New("system clipboard is not available")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	writeAll    func(string) error
	unsupported bool
}

// NewService constructs a clipboard service backed by the system clipboard.
func NewService() *Service {
	return &Service{writeAll: clipboard.WriteAll, unsupported: clipboard.Unsupported}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if service.unsupported {
		return ErrUnsupported
	}
	if writeError := service.writeAll(text); writeError != nil {
		return fmt.Errorf("copy document to clipboard: %w", writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)

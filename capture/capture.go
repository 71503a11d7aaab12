// Package capture models camera access as a scoped resource: a stream is
// acquired, frames are captured as JPEG data URIs, and the stream is always
// released when the scope ends.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrPermissionDenied is returned by a Device when the user refused
	// camera access. Callers may retry.
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrReleased         = errors.New("capture scope already released")
)

// Device opens video streams.
type Device interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream yields frames until closed.
type Stream interface {
	Frame(ctx context.Context) (image.Image, error)
	Close() error
}

// Scope holds one open stream.
type Scope struct {
	mu       sync.Mutex
	stream   Stream
	quality  int
	released bool
	logger   *zap.Logger
}

// Acquire opens a stream on d.
func Acquire(ctx context.Context, d Device, logger *zap.Logger) (*Scope, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	stream, err := d.Open(ctx)
	if err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			logger.Warn("camera access refused")
		}
		return nil, fmt.Errorf("open camera: %w", err)
	}
	return &Scope{stream: stream, quality: 85, logger: logger}, nil
}

// Capture grabs one frame and returns it as a JPEG data URI.
func (s *Scope) Capture(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return "", ErrReleased
	}
	frame, err := s.stream.Frame(ctx)
	if err != nil {
		return "", fmt.Errorf("read frame: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: s.quality}); err != nil {
		return "", fmt.Errorf("encode frame: %w", err)
	}
	return DataURI("image/jpeg", buf.Bytes()), nil
}

// Release closes the stream. It is safe to call more than once.
func (s *Scope) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	if err := s.stream.Close(); err != nil {
		s.logger.Warn("failed to close camera stream", zap.Error(err))
		return err
	}
	return nil
}

// With acquires a scope, runs fn and releases the stream on every path.
func With(ctx context.Context, d Device, logger *zap.Logger, fn func(*Scope) error) (err error) {
	scope, err := Acquire(ctx, d, logger)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := scope.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn(scope)
}

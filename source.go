// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Source is the borrowed byte buffer a Bitstream reads from. It is either a
// memory-mapped file (read mode) or a plain byte slice (NewBytes, or a
// buffer produced by Encode). Ownership rule: the Source must outlive every
// Bitstream built over it, matching the teacher's File.data/Close() contract.
type Source struct {
	data []byte
	mm   mmap.MMap
	f    *os.File
}

// NewSource wraps an in-memory buffer. The caller retains ownership; Close
// is a no-op.
func NewSource(data []byte) *Source {
	return &Source{data: data}
}

// OpenSource memory-maps the file at path for read-only access.
func OpenSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindIoError, Offset: -1, Message: err.Error(), Cause: err}
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, &Error{Kind: KindIoError, Offset: -1, Message: err.Error(), Cause: err}
	}
	return &Source{data: mm, mm: mm, f: f}, nil
}

// Bytes returns the full underlying buffer. Callers must not retain it past
// Close.
func (s *Source) Bytes() []byte { return s.data }

// Len returns the buffer length.
func (s *Source) Len() int { return len(s.data) }

// Close unmaps the file, if one is open. Safe to call on an in-memory
// Source.
func (s *Source) Close() error {
	if s.mm != nil {
		if err := s.mm.Unmap(); err != nil {
			return err
		}
		s.mm = nil
	}
	if s.f != nil {
		err := s.f.Close()
		s.f = nil
		return err
	}
	return nil
}

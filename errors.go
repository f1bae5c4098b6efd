// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package harness

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("harness: invalid config")
)

// Stage names the step of a frame that failed.
type Stage uint8

// Frame stages in execution order.
const (
	StageRebuild Stage = iota
	StageAcquire
	StageEncode
	StageDraw
	StageSubmit
	StagePresent
)

func (s Stage) String() string {
	switch s {
	case StageRebuild:
		return "rebuild swapchain"
	case StageAcquire:
		return "acquire frame"
	case StageEncode:
		return "encode"
	case StageDraw:
		return "draw"
	case StageSubmit:
		return "submit"
	case StagePresent:
		return "present"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// FrameError is returned by the driver when a frame cannot be produced.
// Use errors.Is with the gpu package sentinels to classify the cause.
type FrameError struct {
	// Frame is the number of frames completed before the failure.
	Frame uint64
	Stage Stage
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("harness: frame %d: %s: %v", e.Frame, e.Stage, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

package effects

import (
	"errors"
	"fmt"
)

var ErrPhaseOrder = errors.New("bloom phase out of order")

// Phase is the step a frame is waiting for.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCapturing
	PhaseBlurring
	PhaseCompositing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCapturing:
		return "capturing"
	case PhaseBlurring:
		return "blurring"
	case PhaseCompositing:
		return "compositing"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// FrameSequencer enforces capture, end capture, blur, composite, once each per frame.
type FrameSequencer struct {
	phase  Phase
	frames uint64
}

func (s *FrameSequencer) Phase() Phase {
	return s.phase
}

// Frames counts completed frames.
func (s *FrameSequencer) Frames() uint64 {
	return s.frames
}

func (s *FrameSequencer) BeginCapture() error {
	return s.advance("begin capture", PhaseIdle, PhaseCapturing)
}

func (s *FrameSequencer) EndCapture() error {
	return s.advance("end capture", PhaseCapturing, PhaseBlurring)
}

func (s *FrameSequencer) Blur() error {
	return s.advance("blur", PhaseBlurring, PhaseCompositing)
}

func (s *FrameSequencer) Composite() error {
	if err := s.advance("composite", PhaseCompositing, PhaseIdle); err != nil {
		return err
	}
	s.frames++
	return nil
}

// Abort drops a partially run frame.
func (s *FrameSequencer) Abort() {
	s.phase = PhaseIdle
}

func (s *FrameSequencer) advance(op string, from, to Phase) error {
	if s.phase != from {
		return fmt.Errorf("%w: %s while %s", ErrPhaseOrder, op, s.phase)
	}
	s.phase = to
	return nil
}

package effects

// PingPong names one of the two blur targets.
type PingPong int

const (
	PingPongA PingPong = iota
	PingPongB
)

func (p PingPong) Other() PingPong {
	return 1 - p
}

func (p PingPong) String() string {
	if p == PingPongA {
		return "A"
	}
	return "B"
}

// pingPongFor maps the horizontal flag to the target it writes.
func pingPongFor(horizontal bool) PingPong {
	if horizontal {
		return PingPongB
	}
	return PingPongA
}

type BlurSource int

const (
	// the bright output of the capture target
	SourceCapture BlurSource = iota
	SourcePingPongA
	SourcePingPongB
)

func sourceOf(p PingPong) BlurSource {
	if p == PingPongA {
		return SourcePingPongA
	}
	return SourcePingPongB
}

// BlurStep is one pass of the separable blur.
type BlurStep struct {
	Horizontal bool
	Source     BlurSource
	Target     PingPong
}

// BlurSchedule lists the n passes. The first pass is horizontal, writes B and
// reads the capture; each later pass reads what the previous one wrote.
func BlurSchedule(n int) []BlurStep {
	if n <= 0 {
		return nil
	}
	steps := make([]BlurStep, n)
	horizontal := true
	for i := range steps {
		target := pingPongFor(horizontal)
		source := SourceCapture
		if i > 0 {
			source = sourceOf(target.Other())
		}
		steps[i] = BlurStep{Horizontal: horizontal, Source: source, Target: target}
		horizontal = !horizontal
	}
	return steps
}

// Terminal returns the target written by the last of n passes when the first
// pass writes initial. n < 1 returns initial.
func Terminal(n int, initial PingPong) PingPong {
	if n < 1 || (n-1)%2 == 0 {
		return initial
	}
	return initial.Other()
}

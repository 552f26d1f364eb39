// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelPlan is the layout of an output frame built from the inputs.
type ChannelPlan struct {
	// Channels is the sum of the input channel counts.
	Channels int
	// Offsets holds the first output channel of every input, in input order.
	Offsets []int
	// SampleRate shared by every input.
	SampleRate int
	// Frames of the longest input.
	Frames int64
}

// PlanChannels lays out the output channels in input order and checks the
// inputs can be packed together.
func PlanChannels(inputs []Info) (ChannelPlan, error) {
	if len(inputs) == 0 {
		return ChannelPlan{}, configErr(ErrTooFewFiles)
	}

	plan := ChannelPlan{
		Offsets:    make([]int, len(inputs)),
		SampleRate: inputs[0].SampleRate,
	}

	for i, in := range inputs {
		plan.Offsets[i] = plan.Channels
		plan.Channels += in.Channels
		plan.Frames = max(plan.Frames, in.Frames)
	}

	if plan.Channels > MaxChannels {
		return ChannelPlan{}, configErr(fmt.Errorf("%w (%d requested)", ErrTooManyChannels, plan.Channels))
	}

	for _, in := range inputs[1:] {
		if in.SampleRate != plan.SampleRate {
			return ChannelPlan{}, configErr(fmt.Errorf("%w: %d and %d", ErrSampleRateMismatch, plan.SampleRate, in.SampleRate))
		}
	}

	return plan, nil
}

// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelPicker reduces an interleaved Source to a single channel. The other
// channels are dropped, never mixed in.
type ChannelPicker struct {
	src     Source
	channel int
	tmp     []int
}

// NewChannelPicker returns a mono view of channel (0 is left) of src.
func NewChannelPicker(src Source, channel int) (*ChannelPicker, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, ErrNoChannels
	}
	if channel < 0 || channel >= channels {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidChannel, channel, channels)
	}

	return &ChannelPicker{
		src:     src,
		channel: channel,
		tmp:     make([]int, 4096),
	}, nil
}

// NewLeftChannel is NewChannelPicker for the first channel.
func NewLeftChannel(src Source) (*ChannelPicker, error) {
	return NewChannelPicker(src, 0)
}

func (p *ChannelPicker) SampleRate() int { return p.src.SampleRate() }
func (p *ChannelPicker) Channels() int   { return 1 }
func (p *ChannelPicker) BitDepth() int   { return p.src.BitDepth() }
func (p *ChannelPicker) Close() error    { return p.src.Close() }

func (p *ChannelPicker) ReadSamples(dst []int) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	channels := p.src.Channels()
	if channels == 1 {
		return p.src.ReadSamples(dst)
	}

	samplesNeeded := len(dst) * channels

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(p.tmp) < samplesNeeded {
		p.tmp = make([]int, samplesNeeded)
	}
	p.tmp = p.tmp[:samplesNeeded]

	n, err := p.src.ReadSamples(p.tmp)
	if n == 0 {
		return 0, err
	}

	// A trailing partial frame still carries its first channel.
	frames := (n + channels - 1 - p.channel) / channels
	for f := range frames {
		dst[f] = p.tmp[f*channels+p.channel]
	}

	return frames, err
}

// SPDX-License-Identifier: EPL-2.0

package audpack

import (
	"fmt"
	"io"

	"github.com/ik5/audpack/audio"
)

// WriteSummary prints the description of one stream:
//
//	in.wav
//	    {
//	    format: WAV (Microsoft)
//	    sample rate: 44100
//	    channels: 2
//	    length: 1.000000 seconds (44100 samples)
//	    sample data: Signed 16 bit data
//	    }
func WriteSummary(w io.Writer, path string, info audio.Info) error {
	seconds := 0.0
	if info.SampleRate > 0 {
		seconds = float64(info.Frames) / float64(info.SampleRate)
	}

	_, err := fmt.Fprintf(w, "%s\n"+
		"    {\n"+
		"    format: %s\n"+
		"    sample rate: %d\n"+
		"    channels: %d\n"+
		"    length: %f seconds (%d samples)\n"+
		"    sample data: %s\n"+
		"    }\n\n",
		path, info.Kind, info.SampleRate, info.Channels, seconds, info.Frames, info.Encoding)

	return err
}

func writeSummaries(w io.Writer, inputs []audio.Input, output string, out audio.Info) error {
	if _, err := io.WriteString(w, "INPUT:\n"); err != nil {
		return err
	}
	for _, in := range inputs {
		if err := WriteSummary(w, in.Path, in.Source.Info()); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "\nOUTPUT:\n"); err != nil {
		return err
	}
	if err := WriteSummary(w, output, out); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")

	return err
}

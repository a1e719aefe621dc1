// Package decode provides shell commands driving the local Parser.
package decode

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/sbus.go/pkg/cli/sh"
	"github.com/robotalks/sbus.go/pkg/sbus"
)

var (
	// FeedCmd feeds raw bytes to the parser.
	FeedCmd = ishell.Cmd{
		Name:    "feed",
		Aliases: []string{"f"},
		Help:    "HEX...",
		Func: func(c *ishell.Context) {
			data, err := sh.ParseHex(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			s := sh.ShellFrom(c)
			res := s.Feed(data)
			text := fmt.Sprintf("%d bytes, %d frames, %s", res.Bytes, res.Frames, res.State)
			for _, msg := range res.Errors {
				text += "\n" + msg
			}
			s.Print(c, &res, text)
		},
	}

	// FrameCmd encodes channel values into a valid frame and feeds it.
	FrameCmd = ishell.Cmd{
		Name: "frame",
		Help: "RAW...",
		Func: func(c *ishell.Context) {
			values, err := sh.ParseRaw(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if len(values) > sbus.PayloadChannels {
				c.Err(fmt.Errorf("at most %d channels fit in a frame", sbus.PayloadChannels))
				return
			}
			s := sh.ShellFrom(c)
			f := sbus.NewFrame(values, 0)
			res := s.Feed(f[:])
			s.Print(c, &res, sh.FormatFrame(&f))
		},
	}

	// ChannelsCmd prints decoded raw channels.
	ChannelsCmd = ishell.Cmd{
		Name:    "channels",
		Aliases: []string{"ch"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			values := s.Parser.Channels().Values()
			s.Print(c, values, sh.FormatValues(values[:]))
		},
	}

	// ScaledCmd prints decoded channels in the scaled range.
	ScaledCmd = ishell.Cmd{
		Name:    "scaled",
		Aliases: []string{"sc"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			values := sbus.ScaleAll(s.Parser.Channels().Values())
			s.Print(c, values, sh.FormatValues(values[:]))
		},
	}

	// ScaleCmd scales raw values without touching the parser.
	ScaleCmd = ishell.Cmd{
		Name: "scale",
		Help: "RAW...",
		Func: func(c *ishell.Context) {
			values, err := sh.ParseRaw(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			for n, v := range values {
				values[n] = sbus.Scale(v)
			}
			sh.ShellFrom(c).Print(c, values, sh.FormatValues(values))
		},
	}

	// StatsCmd prints parser counters.
	StatsCmd = ishell.Cmd{
		Name: "stats",
		Help: "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			stats := s.Parser.Stats()
			s.Print(c, &stats, fmt.Sprintf("%s: %d bytes (%d discarded), %d frames, %d bad, %d timeouts, %d buffered",
				s.Parser.State(), stats.Bytes, stats.Discarded, stats.Frames, stats.BadFrames, stats.Timeouts, s.Parser.Buffered()))
		},
	}

	// TimeoutCmd simulates a frame timeout.
	TimeoutCmd = ishell.Cmd{
		Name: "timeout",
		Help: "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			pr := s.Parser.Timeout()
			text := pr.State.String()
			if pr.Err != nil {
				text = pr.Err.Error() + ", " + text
			}
			s.Print(c, map[string]string{"state": pr.State.String()}, text)
		},
	}

	// ResetCmd resets the parser.
	ResetCmd = ishell.Cmd{
		Name: "reset",
		Help: "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			s.Parser.Reset()
			s.Print(c, map[string]string{"state": s.Parser.State().String()}, "OK")
		},
	}
)

func init() {
	sh.AddCmds(
		&FeedCmd,
		&FrameCmd,
		&ChannelsCmd,
		&ScaledCmd,
		&ScaleCmd,
		&StatsCmd,
		&TimeoutCmd,
		&ResetCmd,
	)
}

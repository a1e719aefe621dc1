package sh

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/sbus.go/pkg/sbus"
)

// Shell provides ishell backed interactive shell over a local Parser.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Parser sbus.Parser
}

// FeedResult summarizes the bytes fed in one command.
type FeedResult struct {
	Bytes  int      `json:"bytes"`
	Frames int      `json:"frames"`
	Errors []string `json:"errors,omitempty"`
	State  string   `json:"state"`
}

const (
	shellKey = "$shell"
	prompt   = "sbus > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New() *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Shell:       ishell.New(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Feed runs data through the parser.
func (s *Shell) Feed(data []byte) FeedResult {
	res := FeedResult{Bytes: len(data)}
	for _, b := range data {
		pr := s.Parser.Parse(b)
		if pr.Err != nil {
			res.Errors = append(res.Errors, pr.Err.Error())
		} else if pr.Updated() {
			res.Frames++
		}
	}
	res.State = s.Parser.State().String()
	return res
}

// Print writes v as JSON with -json, otherwise the text form.
func (s *Shell) Print(c *ishell.Context, v interface{}, text string) {
	if s.OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Println(text)
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// ParseHex parses bytes in hex. Each argument may hold several bytes,
// separated by ',' or ':' or concatenated, with optional 0x prefix.
func ParseHex(args []string) ([]byte, error) {
	var data []byte
	for _, arg := range args {
		for _, tok := range strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ':'
		}) {
			tok = strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
			if len(tok)%2 != 0 {
				tok = "0" + tok
			}
			b, err := hex.DecodeString(tok)
			if err != nil {
				return nil, fmt.Errorf("invalid hex %q: %w", tok, err)
			}
			data = append(data, b...)
		}
	}
	return data, nil
}

// ParseRaw parses raw channel magnitudes, decimal or 0x prefixed hex.
func ParseRaw(args []string) ([]uint16, error) {
	values := make([]uint16, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid channel value %q: %w", arg, err)
		}
		values = append(values, uint16(v))
	}
	return values, nil
}

// FormatValues prints values as index:value pairs.
func FormatValues(values []uint16) string {
	items := make([]string, len(values))
	for n, v := range values {
		items[n] = fmt.Sprintf("%d:%d", n, v)
	}
	return strings.Join(items, " ")
}

// FormatFrame prints a frame in hex.
func FormatFrame(f *sbus.Frame) string {
	items := make([]string, len(f))
	for n, b := range f {
		items[n] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(items, " ")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New().Run(flag.Args()...)
}

package cmds

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/go-delve/jdwp/pkg/config"
	"github.com/go-delve/jdwp/pkg/dump"
	"github.com/go-delve/jdwp/pkg/jdwp"
	"github.com/go-delve/jdwp/pkg/logflags"
	"github.com/go-delve/jdwp/pkg/terminal"
	"github.com/go-delve/jdwp/pkg/version"
)

var (
	// log is whether to log debug statements.
	log bool
	// logOutput is a comma separated list of components that should produce debug output.
	logOutput string
	// logDest is the file path or file descriptor where logs should go.
	logDest string
	// color is the color mode, overriding the configuration file.
	color string
	// idSizes are the identifier widths given on the command line.
	idSizes idSizesFlag

	// packetID is the transaction id of encoded commands.
	packetID uint32
	// requestFile is a YAML file holding the request to encode.
	requestFile string
	// verbose makes version print the build information.
	verbose bool

	// rootCommand is the root of the command tree.
	rootCommand *cobra.Command

	conf *config.Config
)

const jdwpdumpCommandLongDesc = `jdwpdump encodes and decodes Java Debug Wire Protocol packets.

It builds command packets from a textual description of the request, decodes
reply and event packets, and prints captured JDWP sessions packet by packet,
matching every reply with the command it answers.

jdwpdump never connects to a virtual machine.`

// New returns an initialized command tree.
func New() *cobra.Command {
	// Config setup and load.
	var err error
	conf, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	idSizes = idSizesFlag{}

	// Main jdwpdump root command.
	rootCommand = &cobra.Command{
		Use:           "jdwpdump",
		Short:         "jdwpdump is a codec for the Java Debug Wire Protocol.",
		Long:          jdwpdumpCommandLongDesc,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logflags.Setup(log, logOutput, logDest)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logflags.Close()
		},
	}
	rootCommand.SetOut(terminal.ColorableStdout())

	rootCommand.PersistentFlags().BoolVarP(&log, "log", "", false, "Enable logging.")
	rootCommand.PersistentFlags().StringVarP(&logOutput, "log-output", "", "", `Comma separated list of components that should produce debug output (see 'jdwpdump help log')`)
	rootCommand.PersistentFlags().StringVarP(&logDest, "log-dest", "", "", "Writes logs to the specified file or file descriptor (see 'jdwpdump help log').")
	rootCommand.PersistentFlags().StringVar(&color, "color", "", "Colorize output: auto, always or never (default from the configuration file).")
	rootCommand.PersistentFlags().Var(&idSizes, "id-sizes", "Identifier widths, one width or field,method,object,reftype,frame.")

	// 'commands' subcommand.
	commandsCommand := &cobra.Command{
		Use:   "commands [prefix]",
		Short: "Lists the protocol commands.",
		Long: `Lists every command of the catalog whose qualified name starts with prefix,
with its command set and command number. An alias defined in the
configuration file lists the command it stands for.`,
		Args: cobra.MaximumNArgs(1),
		RunE: commandsCmd,
	}
	rootCommand.AddCommand(commandsCommand)

	// 'encode' subcommand.
	encodeCommand := &cobra.Command{
		Use:   "encode <Set.Command> [key=value ...]",
		Short: "Encodes a command packet.",
		Long: `Encodes a command packet and prints it as hex.

The request is described by key=value arguments, where keys are the lower
case field names of the request and values are YAML, or by a YAML document
passed with --file. Run 'jdwpdump repl' and 'help <Set.Command>' to list the
keys of a request.

Example:

	jdwpdump encode --id-sizes 8 ThreadReference.Frames thread=0x1c startframe=0 length=-1
`,
		Args: cobra.MinimumNArgs(1),
		RunE: encodeCmd,
	}
	encodeCommand.Flags().Uint32Var(&packetID, "id", 1, "Transaction id of the packet.")
	encodeCommand.Flags().StringVarP(&requestFile, "file", "f", "", "YAML file describing the request.")
	rootCommand.AddCommand(encodeCommand)

	// 'decode' subcommand.
	decodeCommand := &cobra.Command{
		Use:   "decode [Set.Command] <file|->",
		Short: "Decodes one packet.",
		Long: `Decodes one packet read from file, or stdin if file is '-'.

The packet can be raw bytes or hex text. A reply packet needs the name of the
command it answers, command and event packets carry their own.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: decodeCmd,
	}
	rootCommand.AddCommand(decodeCommand)

	// 'dump' subcommand.
	dumpCommand := &cobra.Command{
		Use:   "dump <capture|->",
		Short: "Prints a captured session.",
		Long: `Prints every packet of a captured session.

A capture is the concatenation of the packets exchanged on a connection in
both directions, optionally preceded by the JDWP handshake. Replies are
matched with their commands by transaction id, the identifier widths are
taken from the VirtualMachine.IDSizes exchange and code locations are printed
with the class and method names seen earlier in the capture.`,
		Args: cobra.ExactArgs(1),
		RunE: dumpCmd,
	}
	rootCommand.AddCommand(dumpCommand)

	// 'repl' subcommand.
	replCommand := &cobra.Command{
		Use:   "repl",
		Short: "Starts an interactive encoder.",
		Long: `Starts an interactive encoder.

Every line is a protocol command followed by key=value arguments, or one of
the builtin commands. Type 'help' at the prompt for the list.`,
		Args: cobra.NoArgs,
		RunE: replCmd,
	}
	rootCommand.AddCommand(replCommand)

	// 'version' subcommand.
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Prints version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jdwpdump\n%s\n", version.JdwpdumpVersion)
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Build Details: %s\n", version.BuildInfo())
			}
		},
	}
	versionCommand.Flags().BoolVarP(&verbose, "verbose", "v", false, "print verbose version info")
	rootCommand.AddCommand(versionCommand)

	rootCommand.AddCommand(&cobra.Command{
		Use:   "log",
		Short: "Help about logging flags.",
		Long: `Logging can be enabled by specifying the --log flag and using the
--log-output flag to select which components should produce logs.

The argument of --log-output must be a comma separated list of component
names selected from this list:

	codec	Log decoding failures and identifier size negotiation (default)
	wire	Log every framed packet, truncated to 120 bytes
	dump	Log capture processing, unmatched replies and replayed ids

Additionally --log-dest can be used to specify where the logs should be
written.
If the argument is a number it will be interpreted as a file descriptor,
otherwise as a file path.
`,
	})

	return rootCommand
}

func colorEnabled() bool {
	mode := conf.GetColor()
	if color != "" {
		mode = color
	}
	return terminal.ShouldColor(mode, nil)
}

func resolveCommand(name string) (jdwp.Command, error) {
	if cmd, ok := jdwp.LookupCommand(name); ok {
		return cmd, nil
	}
	for target, aliases := range conf.Aliases {
		for _, alias := range aliases {
			if alias != name {
				continue
			}
			if cmd, ok := jdwp.LookupCommand(target); ok {
				return cmd, nil
			}
		}
	}
	return jdwp.Command{}, fmt.Errorf("%w: %q", jdwp.ErrUnknownCommand, name)
}

func commandsCmd(cmd *cobra.Command, args []string) error {
	var names []string
	if len(args) == 0 {
		names = jdwp.CommandsWithPrefix("")
	} else if c, err := resolveCommand(args[0]); err == nil && c.Name() != args[0] {
		names = []string{c.Name()}
	} else {
		names = jdwp.CommandsWithPrefix(args[0])
	}
	if len(names) == 0 {
		return fmt.Errorf("no command starts with %q", args[0])
	}
	aliases := map[string][]string{}
	for target, v := range conf.Aliases {
		aliases[target] = append(aliases[target], v...)
	}

	w := new(tabwriter.Writer)
	w.Init(cmd.OutOrStdout(), 0, 8, 1, ' ', 0)
	for _, name := range names {
		c, _ := jdwp.LookupCommand(name)
		fmt.Fprintf(w, "%s\t%d/%d", name, c.Set, c.ID)
		if a := aliases[name]; len(a) > 0 {
			sort.Strings(a)
			fmt.Fprintf(w, "\t(alias: %s)", strings.Join(a, " | "))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func encodeCmd(cmd *cobra.Command, args []string) error {
	c, err := resolveCommand(args[0])
	if err != nil {
		return err
	}
	codec, err := newCodec(idSizes.resolve(conf))
	if err != nil {
		return err
	}
	var req jdwp.Request
	if requestFile != "" {
		if len(args) > 1 {
			return errors.New("key=value arguments can not be used with --file")
		}
		doc, err := os.ReadFile(requestFile)
		if err != nil {
			return err
		}
		if req, err = jdwp.NewRequest(c); err != nil {
			return err
		}
		if err := terminal.UnmarshalRequest(doc, req); err != nil {
			return fmt.Errorf("%s: %v", requestFile, err)
		}
	} else if req, err = terminal.NewRequest(c, args[1:]); err != nil {
		return err
	}
	b, err := codec.EncodeCommand(packetID, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%x\n", b)
	return nil
}

func decodeCmd(cmd *cobra.Command, args []string) error {
	b, err := readPacket(cmd.InOrStdin(), args[len(args)-1])
	if err != nil {
		return err
	}
	codec, err := newCodec(idSizes.resolve(conf))
	if err != nil {
		return err
	}
	p, err := jdwp.ParsePacket(b)
	if err != nil {
		return err
	}

	var out interface{}
	switch {
	case p.IsReply():
		if len(args) != 2 {
			return errors.New("the name of the command is needed to decode a reply")
		}
		c, err := resolveCommand(args[0])
		if err != nil {
			return err
		}
		if out, err = codec.DecodeReplyFor(c, b); err != nil {
			return err
		}
	default:
		_, req, err := codec.DecodeRequest(b)
		if err != nil {
			return err
		}
		out = req
		fmt.Fprintf(cmd.OutOrStdout(), "%v\n", p.Command)
	}
	y, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(y)
	return err
}

// readPacket reads a packet from path, or stdin if path is "-". Text made
// only of hex digits and white space is decoded.
func readPacket(stdin io.Reader, path string) ([]byte, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	text := strings.Join(strings.Fields(string(b)), "")
	if text != "" && isHex(text) {
		return hex.DecodeString(text)
	}
	return b, nil
}

func isHex(s string) bool {
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return len(s)%2 == 0
}

func dumpCmd(cmd *cobra.Command, args []string) error {
	var rd io.Reader
	if args[0] == "-" {
		rd = cmd.InOrStdin()
	} else {
		fh, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fh.Close()
		rd = fh
	}

	d, err := dump.New(dump.Options{
		IDSizes:            idSizes.resolve(conf),
		SignatureCacheSize: conf.GetSignatureCacheSize(),
	})
	if err != nil {
		return err
	}
	p := &dump.Printer{
		Out:         cmd.OutOrStdout(),
		MaxHexBytes: conf.GetMaxHexBytes(),
		Highlight:   terminal.EntryHighlighter(colorEnabled()),
	}
	var n, failed int
	err = d.Run(rd, func(e *dump.Entry) error {
		n++
		if e.Err != nil {
			failed++
		}
		return p.Print(d, e)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d packets, %d not decoded\n", n, failed)
	return nil
}

func replCmd(cmd *cobra.Command, args []string) error {
	codec, err := newCodec(idSizes.resolve(conf))
	if err != nil {
		return err
	}
	c := *conf
	if color != "" {
		c.Color = color
	}
	term := terminal.New(&c, codec)
	status, err := term.Run()
	if err != nil {
		return err
	}
	if status != 0 {
		return fmt.Errorf("exit status %d", status)
	}
	return nil
}

// Package terminal implements an interactive packet encoder for the JDWP
// protocol.
package terminal

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cosiner/argv"
	"gopkg.in/yaml.v2"

	"github.com/go-delve/jdwp/pkg/jdwp"
)

type cmdfunc func(t *Term, args []string) error

type command struct {
	aliases        []string
	builtinAliases []string
	group          commandGroup
	helpMsg        string
	cmdFn          cmdfunc
}

// Returns true if the command string matches one of the aliases for this command
func (c command) match(cmdstr string) bool {
	for _, v := range c.aliases {
		if v == cmdstr {
			return true
		}
	}
	return false
}

// Commands represents the commands of the encoder. Any name that is not a
// builtin command is looked up in the protocol catalog and encoded.
type Commands struct {
	cmds []command

	// protocolAliases maps an alias to the catalog command it stands for.
	protocolAliases map[string]jdwp.Command
}

// ExitRequestError is returned by the exit command.
type ExitRequestError struct{}

func (ere ExitRequestError) Error() string {
	return ""
}

// DebugCommands returns a Commands struct with the default commands.
func DebugCommands() *Commands {
	c := &Commands{}

	c.cmds = []command{
		{aliases: []string{"help", "h"}, cmdFn: c.help, helpMsg: `Prints the help message.

	help [command]

Type "help" followed by the name of a command for more information about it.
The name of a protocol command, like ThreadReference.Frames, lists the keys
of its request.`},
		{aliases: []string{"commands", "cmds"}, group: protocolCmds, cmdFn: listCommands, helpMsg: `Lists the protocol commands.

	commands [prefix]

Prints every command of the catalog whose qualified name starts with prefix,
with its command set and command number.`},
		{aliases: []string{"decode"}, group: protocolCmds, cmdFn: decodeCommand, helpMsg: `Decodes a reply packet.

	decode [<Set.Command>] <hex>

Without a command name the packet is decoded as the reply to the last
encoded request. Decoding a VirtualMachine.IDSizes reply applies the
identifier sizes to the session.`},
		{aliases: []string{"sizes"}, group: sessionCmds, cmdFn: sizesCommand, helpMsg: `Prints or sets the identifier sizes.

	sizes
	sizes <width>
	sizes <field> <method> <object> <reftype> <frame>

The sizes can only be set once per session.`},
		{aliases: []string{"id"}, group: sessionCmds, cmdFn: idCommand, helpMsg: `Prints or sets the next transaction id.

	id [n]`},
		{aliases: []string{"config"}, group: configCmds, cmdFn: configureCmd, helpMsg: `Changes configuration parameters.

	config -list

Show all configuration parameters.

	config -save

Saves the configuration file to disk, overwriting the current configuration file.

	config <parameter> <value>

Changes the value of a configuration parameter.

	config alias <command> <alias>
	config alias <alias>

Defines <alias> as an alias to <command> or removes an alias.`},
		{aliases: []string{"exit", "quit", "q"}, cmdFn: exitCommand, helpMsg: "Exit the encoder."},
	}

	sort.Sort(byFirstAlias(c.cmds))
	return c
}

type byFirstAlias []command

func (a byFirstAlias) Len() int           { return len(a) }
func (a byFirstAlias) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byFirstAlias) Less(i, j int) bool { return a[i].aliases[0] < a[j].aliases[0] }

// Find will look up the command function for the given command input.
// If it cannot find the command it will default to noCmdAvailable().
func (c *Commands) Find(cmdstr string) cmdfunc {
	if cmdstr == "" {
		return nullCommand
	}

	for _, v := range c.cmds {
		if v.match(cmdstr) {
			return v.cmdFn
		}
	}

	if cmd, ok := c.protocolCommand(cmdstr); ok {
		return func(t *Term, args []string) error {
			return encodeCommand(t, cmd, args)
		}
	}

	return noCmdAvailable
}

func (c *Commands) protocolCommand(cmdstr string) (jdwp.Command, bool) {
	if cmd, ok := c.protocolAliases[cmdstr]; ok {
		return cmd, true
	}
	return jdwp.LookupCommand(cmdstr)
}

// Call takes a command to execute.
func (c *Commands) Call(cmdstr string, t *Term) error {
	args, err := splitArgs(cmdstr)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nullCommand(t, nil)
	}
	return c.Find(args[0])(t, args[1:])
}

func splitArgs(cmdstr string) ([]string, error) {
	if strings.TrimSpace(cmdstr) == "" {
		return nil, nil
	}
	v, err := argv.Argv(cmdstr,
		func(s string) (string, error) {
			return "", fmt.Errorf("backtick not supported in '%s'", s)
		},
		nil)
	if err != nil {
		return nil, err
	}
	if len(v) != 1 {
		return nil, fmt.Errorf("illegal command line '%s'", cmdstr)
	}
	return v[0], nil
}

// Merge takes aliases defined in the config struct and merges them with the default aliases.
// Keys naming a protocol command define aliases for it.
func (c *Commands) Merge(allAliases map[string][]string) {
	for i := range c.cmds {
		if c.cmds[i].builtinAliases != nil {
			c.cmds[i].aliases = append(c.cmds[i].aliases[:0], c.cmds[i].builtinAliases...)
		}
	}
	for i := range c.cmds {
		if aliases, ok := allAliases[c.cmds[i].aliases[0]]; ok {
			if c.cmds[i].builtinAliases == nil {
				c.cmds[i].builtinAliases = make([]string, len(c.cmds[i].aliases))
				copy(c.cmds[i].builtinAliases, c.cmds[i].aliases)
			}
			c.cmds[i].aliases = append(c.cmds[i].aliases, aliases...)
		}
	}
	c.protocolAliases = make(map[string]jdwp.Command)
	for name, aliases := range allAliases {
		cmd, ok := jdwp.LookupCommand(name)
		if !ok {
			continue
		}
		for _, alias := range aliases {
			c.protocolAliases[alias] = cmd
		}
	}
}

// complete returns the builtin commands, protocol commands and aliases
// starting with prefix.
func (c *Commands) complete(prefix string) []string {
	var r []string
	for _, cmd := range c.cmds {
		for _, alias := range cmd.aliases {
			if strings.HasPrefix(alias, prefix) {
				r = append(r, alias)
			}
		}
	}
	for alias := range c.protocolAliases {
		if strings.HasPrefix(alias, prefix) {
			r = append(r, alias)
		}
	}
	sort.Strings(r)
	return append(r, jdwp.CommandsWithPrefix(prefix)...)
}

func noCmdAvailable(t *Term, args []string) error {
	return errors.New("command not available")
}

func nullCommand(t *Term, args []string) error {
	return nil
}

func (c *Commands) help(t *Term, args []string) error {
	if len(args) > 0 {
		for _, cmd := range c.cmds {
			if cmd.match(args[0]) {
				fmt.Fprintln(t.stdout, cmd.helpMsg)
				return nil
			}
		}
		pc, ok := c.protocolCommand(args[0])
		if !ok {
			return noCmdAvailable(t, args)
		}
		tmpl, err := requestTemplate(pc)
		if err != nil {
			return err
		}
		fmt.Fprintf(t.stdout, "%v (%d/%d)\n", pc, pc.Set, pc.ID)
		if tmpl != "{}" {
			fmt.Fprintln(t.stdout, "Request keys:")
			for _, line := range strings.Split(tmpl, "\n") {
				fmt.Fprintf(t.stdout, "    %s\n", line)
			}
		}
		return nil
	}

	fmt.Fprintln(t.stdout, "The following commands are available:")

	for _, cgd := range commandGroupDescriptions {
		fmt.Fprintf(t.stdout, "\n%s:\n", cgd.description)
		w := new(tabwriter.Writer)
		w.Init(t.stdout, 0, 8, 0, '-', 0)
		for _, cmd := range c.cmds {
			if cmd.group != cgd.group {
				continue
			}
			h := cmd.helpMsg
			if idx := strings.Index(h, "\n"); idx >= 0 {
				h = h[:idx]
			}
			if len(cmd.aliases) > 1 {
				fmt.Fprintf(w, "    %s (alias: %s) \t %s\n", cmd.aliases[0], strings.Join(cmd.aliases[1:], " | "), h)
			} else {
				fmt.Fprintf(w, "    %s \t %s\n", cmd.aliases[0], h)
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(t.stdout)
	fmt.Fprintln(t.stdout, "Any other input is encoded as a protocol command: <Set.Command> [key=value ...]")
	fmt.Fprintln(t.stdout, "Type help followed by a command for full documentation.")
	return nil
}

func listCommands(t *Term, args []string) error {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	w := new(tabwriter.Writer)
	w.Init(t.stdout, 0, 8, 1, ' ', 0)
	for _, name := range jdwp.CommandsWithPrefix(prefix) {
		cmd, _ := jdwp.LookupCommand(name)
		fmt.Fprintf(w, "%s\t%d/%d\n", name, cmd.Set, cmd.ID)
	}
	return w.Flush()
}

func encodeCommand(t *Term, cmd jdwp.Command, args []string) error {
	req, err := NewRequest(cmd, args)
	if err != nil {
		return err
	}
	b, err := t.codec.EncodeCommand(t.nextID, req)
	if err != nil {
		return err
	}
	t.Println(t.highlight(ansiGreen, fmt.Sprintf("#%d %v", t.nextID, cmd)))
	fmt.Fprintf(t.stdout, "%x\n", b)
	t.nextID++
	t.last = req
	return nil
}

func decodeCommand(t *Term, args []string) error {
	var rep jdwp.Reply
	var err error
	switch len(args) {
	case 1:
		if t.last == nil {
			return errors.New("no request encoded yet, specify a command")
		}
		var b []byte
		if b, err = parseHex(args[0]); err != nil {
			return err
		}
		rep, err = t.codec.DecodeReply(t.last, b)
	case 2:
		cmd, ok := t.cmds.protocolCommand(args[0])
		if !ok {
			return fmt.Errorf("unknown command %q", args[0])
		}
		var b []byte
		if b, err = parseHex(args[1]); err != nil {
			return err
		}
		rep, err = t.codec.DecodeReplyFor(cmd, b)
	default:
		return errors.New("wrong number of arguments to decode")
	}
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	fmt.Fprint(t.stdout, string(out))
	return nil
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(s, " ", ""), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid packet: %v", err)
	}
	return b, nil
}

func sizesCommand(t *Term, args []string) error {
	var widths []int32
	for _, arg := range args {
		n, err := strconv.ParseInt(arg, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid width %q", arg)
		}
		widths = append(widths, int32(n))
	}
	switch len(widths) {
	case 0:
		fmt.Fprintln(t.stdout, t.codec.Sizes())
		return nil
	case 1:
		widths = []int32{widths[0], widths[0], widths[0], widths[0], widths[0]}
	case 5:
	default:
		return errors.New("wrong number of arguments to sizes")
	}
	return t.codec.Sizes().Set(jdwp.IDSizesReply{
		FieldIDSize:         widths[0],
		MethodIDSize:        widths[1],
		ObjectIDSize:        widths[2],
		ReferenceTypeIDSize: widths[3],
		FrameIDSize:         widths[4],
	})
}

func idCommand(t *Term, args []string) error {
	switch len(args) {
	case 0:
		fmt.Fprintln(t.stdout, t.nextID)
		return nil
	case 1:
		n, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		t.nextID = uint32(n)
		return nil
	}
	return errors.New("wrong number of arguments to id")
}

func exitCommand(t *Term, args []string) error {
	return ExitRequestError{}
}

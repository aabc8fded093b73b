package terminal

type commandGroup uint8

const (
	otherCmds commandGroup = iota
	protocolCmds
	sessionCmds
	configCmds
)

type commandGroupDescription struct {
	description string
	group       commandGroup
}

var commandGroupDescriptions = []commandGroupDescription{
	{"Encoding and decoding packets", protocolCmds},
	{"Session state", sessionCmds},
	{"Configuration", configCmds},
	{"Other commands", otherCmds},
}

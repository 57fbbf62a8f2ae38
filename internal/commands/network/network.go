// Package network declares the "net" module. It contributes no commands yet;
// selecting it only changes the prompt and resets the options.
package network

import (
	"xion/internal/commands"
	"xion/pkg/xiontypes"
)

// Module is the network module. Its simple name does not match the "net"
// registration name, so it is registered with an explicit reference.
var Module = &xiontypes.Module{
	Name: "Network",
}

func init() {
	commands.Declare(Module)
}

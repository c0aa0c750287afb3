// Package rpc allows to control a running emulator from another process.
package rpc

import "yane/emu/log"

var modRPC = log.NewModule("rpc")

const serviceName = "emu"

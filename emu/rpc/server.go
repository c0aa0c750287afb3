package rpc

import (
	"io"
	"net"
	"net/http"
	"net/rpc"

	"yane/emu"
)

// Emu is the set of emulator controls exposed by the server.
type Emu interface {
	Reset()
	SetPause(pause bool)
	Stop()
	Status() emu.Status
}

type emuProxy struct {
	emu Emu
}

func (ep *emuProxy) Reset(_, _ *struct{}) error             { ep.emu.Reset(); return nil }
func (ep *emuProxy) SetPause(pause bool, _ *struct{}) error { ep.emu.SetPause(pause); return nil }
func (ep *emuProxy) Stop(_, _ *struct{}) error              { ep.emu.Stop(); return nil }

func (ep *emuProxy) Status(_ *struct{}, reply *emu.Status) error {
	*reply = ep.emu.Status()
	return nil
}

type Server struct {
	io.Closer
	addr net.Addr
}

// NewServer starts serving RPC over HTTP on addr.
func NewServer(addr string, emu Emu) (*Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName(serviceName, &emuProxy{emu: emu}); err != nil {
		return nil, err
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, srv)
	go http.Serve(l, mux)

	modRPC.InfoZ("rpc server listening").String("addr", l.Addr().String()).End()
	return &Server{Closer: l, addr: l.Addr()}, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string { return s.addr.String() }

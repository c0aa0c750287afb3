package rpc

import (
	"fmt"
	"net/rpc"
	"time"

	"yane/emu"
)

type Client struct {
	client *rpc.Client
}

// NewClient connects to the server at addr, retrying a few times if the
// server isn't ready yet.
func NewClient(addr string) (*Client, error) {
	var (
		client *rpc.Client
		err    error
	)
	const maxretries = 5
	for i := range maxretries {
		if client, err = rpc.DialHTTP("tcp", addr); err == nil {
			break
		}
		modRPC.WarnZ("dial tcp failed").Error("err", err).Int("retry", i).End()
		time.Sleep(250 * time.Millisecond)
	}

	if err != nil {
		return nil, fmt.Errorf("dial failed max retries: %w", err)
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	modRPC.DebugZ("closing rpc client").End()
	return c.client.Close()
}

func (c *Client) Reset() error              { return call(c.client, "Reset", nil) }
func (c *Client) SetPause(pause bool) error { return call(c.client, "SetPause", pause) }
func (c *Client) Stop() error               { return call(c.client, "Stop", nil) }

func (c *Client) Status() (emu.Status, error) {
	return request[emu.Status](c.client, "Status", nil)
}

func call(client *rpc.Client, funcname string, args any) error {
	_, err := request[struct{}](client, funcname, args)
	return err
}

func request[T any](client *rpc.Client, funcname string, args any) (T, error) {
	if args == nil {
		args = &struct{}{}
	}
	var reply T
	if err := client.Call(serviceName+"."+funcname, args, &reply); err != nil {
		return reply, fmt.Errorf("rpc call %s failed: %w", funcname, err)
	}
	return reply, nil
}

package rpcclient

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"unitconv"
	unitconvmsgpack "unitconv/msgpack"
	unitconvrpc "unitconv/rpc"
)

// RemoteError is a non-zero response code from the server. It unwraps to the
// matching unitconv sentinel when there is one.
type RemoteError struct {
	Code    int32
	ErrCode string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return unitconv.ErrorFromCode(e.ErrCode)
}

// Client issues one request at a time over a single connection.
type Client struct {
	conn net.Conn
	mu   sync.Mutex
	pb   unitconvrpc.PacketBuffer
	buf  []byte
}

func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

func New(conn net.Conn) *Client {
	return &Client{conn: conn, buf: make([]byte, 4096)}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) call(ctx context.Context, fn string, arg any) (*unitconvrpc.Packet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req, err := unitconvrpc.NewRequest(fn, arg)
	if err != nil {
		return nil, err
	}
	frame, err := unitconvrpc.EncodePacket(req)
	if err != nil {
		return nil, err
	}

	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(fired)
		// unblock pending I/O once ctx is done
		_ = c.conn.SetDeadline(time.Unix(1, 0))
	})
	defer func() {
		if !stop() {
			// the callback started; its deadline must not outlive this call
			<-fired
		}
		_ = c.conn.SetDeadline(time.Time{})
	}()

	if _, err := c.conn.Write(frame); err != nil {
		return nil, c.ctxErr(ctx, err)
	}
	for {
		n, err := c.conn.Read(c.buf)
		if n > 0 {
			pkts, ferr := c.pb.Feed(c.buf[:n])
			for _, pkt := range pkts {
				if pkt.ID == req.ID {
					return pkt, nil
				}
			}
			if ferr != nil {
				return nil, ferr
			}
		}
		if err != nil {
			return nil, c.ctxErr(ctx, err)
		}
	}
}

func (c *Client) ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func decodeRemoteError(pkt *unitconvrpc.Packet) error {
	rerr := &RemoteError{Code: pkt.Code}
	var e unitconvmsgpack.Error
	if err := pkt.Decode(&e); err == nil {
		rerr.ErrCode = e.Code
		rerr.Message = e.Message
	}
	return rerr
}

// Convert asks the server to convert req.
func (c *Client) Convert(ctx context.Context, req unitconv.Request) (unitconv.Result, error) {
	wire := unitconvmsgpack.NewConvertRequest(req)
	pkt, err := c.call(ctx, unitconvrpc.FuncConvert, &wire)
	if err != nil {
		return unitconv.Result{}, err
	}
	if pkt.Code != unitconvrpc.CodeOK {
		return unitconv.Result{}, decodeRemoteError(pkt)
	}
	var resp unitconvmsgpack.ConvertResponse
	if err := pkt.Decode(&resp); err != nil {
		return unitconv.Result{}, fmt.Errorf("decode convert response: %w", err)
	}
	return unitconvmsgpack.ToResult(&resp), nil
}

// Catalog fetches and validates the server's catalog.
func (c *Client) Catalog(ctx context.Context) (*unitconv.Catalog, error) {
	pkt, err := c.call(ctx, unitconvrpc.FuncCatalog, nil)
	if err != nil {
		return nil, err
	}
	if pkt.Code != unitconvrpc.CodeOK {
		return nil, decodeRemoteError(pkt)
	}
	var wire unitconvmsgpack.Catalog
	if err := pkt.Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return unitconv.NewCatalog(wire.ToDefs())
}

package unitconvrpc

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	"unitconv"
	"unitconv/logging"
	unitconvmsgpack "unitconv/msgpack"
)

const maxAcceptDelay = time.Second

// Server answers Convert and Catalog requests against one catalog.
type Server struct {
	catalog *unitconv.Catalog
	log     *logging.Logger
}

func NewServer(catalog *unitconv.Catalog, log *logging.Logger) *Server {
	return &Server{catalog: catalog, log: log.With("component", "rpc")}
}

func codeFor(err error) int32 {
	switch {
	case errors.Is(err, unitconv.ErrMissingInput):
		return CodeMissingInput
	case errors.Is(err, unitconv.ErrIncompatibleUnits):
		return CodeIncompatibleUnits
	case errors.Is(err, unitconv.ErrOutOfRange):
		return CodeOutOfRange
	default:
		return CodeInternal
	}
}

func CreateRespPkt(req *Packet, code int32, payload any) *Packet {
	resp := &Packet{ID: req.ID, Type: TypeResp, Func: req.Func, Code: code}
	if payload != nil {
		body, err := msgpack.Marshal(payload)
		if err != nil {
			resp.Code = CodeInternal
			return resp
		}
		resp.Body = body
	}
	return resp
}

func CreateRespPktErr(req *Packet, code int32, errCode string, err error) *Packet {
	return CreateRespPkt(req, code, unitconvmsgpack.Error{Code: errCode, Message: err.Error()})
}

// ProcessPkt dispatches one request packet and returns its response.
func (s *Server) ProcessPkt(pkt *Packet) *Packet {
	if pkt.Type != TypeReq {
		return CreateRespPktErr(pkt, CodeBadArg, "not_a_request", ErrNotRequest)
	}
	switch pkt.Func {
	case "":
		return CreateRespPktErr(pkt, CodeNoFunc, "no_function", ErrReqHasNoFunc)
	case FuncCatalog:
		return CreateRespPkt(pkt, CodeOK, unitconvmsgpack.NewCatalog(s.catalog))
	case FuncConvert:
		var req unitconvmsgpack.ConvertRequest
		if err := pkt.Decode(&req); err != nil {
			return CreateRespPktErr(pkt, CodeBadArg, "bad_argument", err)
		}
		res, err := s.catalog.Convert(unitconvmsgpack.ToRequest(&req))
		if err != nil {
			s.log.Debug("conversion rejected", "id", pkt.ID, "from", req.From, "to", req.To, "error", err)
			return CreateRespPkt(pkt, codeFor(err), unitconvmsgpack.NewError(err))
		}
		return CreateRespPkt(pkt, CodeOK, unitconvmsgpack.NewConvertResponse(res))
	default:
		return CreateRespPktErr(pkt, CodeNoSuchFunc, "no_such_function", ErrNoSuchFunc)
	}
}

// ServeConn answers requests on conn until the peer hangs up or ctx is done.
// conn is closed on return.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) error {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	var pb PacketBuffer
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			pkts, ferr := pb.Feed(buf[:n])
			for _, pkt := range pkts {
				out, eerr := EncodePacket(s.ProcessPkt(pkt))
				if eerr != nil {
					return eerr
				}
				if _, werr := conn.Write(out); werr != nil {
					if ctx.Err() != nil {
						return nil
					}
					return werr
				}
			}
			if ferr != nil {
				return ferr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Serve accepts connections on ln until ctx is done or Accept fails with a
// non-temporary error. Temporary errors are retried with backoff. It
// closes ln and waits for open connections before returning. A shutdown
// caused by ctx returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return ln.Close()
	})

	s.log.Info("rpc listening", "addr", ln.Addr().String())
	var (
		acceptErr error
		tempDelay time.Duration
	)
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Temporary() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay = min(2*tempDelay, maxAcceptDelay)
				}
				s.log.Warn("rpc accept failed, retrying", "error", err, "delay", tempDelay)
				select {
				case <-time.After(tempDelay):
					continue
				case <-ctx.Done():
				}
				break
			}
			acceptErr = err
			break
		}
		tempDelay = 0
		remote := conn.RemoteAddr().String()
		s.log.Debug("rpc connection opened", "remote", remote)
		g.Go(func() error {
			if err := s.ServeConn(gctx, conn); err != nil {
				s.log.Warn("rpc connection failed", "remote", remote, "error", err)
			}
			s.log.Debug("rpc connection closed", "remote", remote)
			return nil
		})
	}
	cancel()
	_ = g.Wait()
	return acceptErr
}

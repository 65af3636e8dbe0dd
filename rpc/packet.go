package unitconvrpc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	TypeReq  int8 = 1
	TypeResp int8 = 2
)

const (
	FuncConvert = "Convert"
	FuncCatalog = "Catalog"
)

// Response codes.
const (
	CodeOK                int32 = 0
	CodeNoFunc            int32 = -201
	CodeNoSuchFunc        int32 = -202
	CodeBadArg            int32 = -204
	CodeMissingInput      int32 = -301
	CodeIncompatibleUnits int32 = -302
	CodeOutOfRange        int32 = -303
	CodeInternal          int32 = -500
)

// MaxPacketSize bounds a single frame body.
const MaxPacketSize = 1 << 20

var (
	ErrReqHasNoFunc   = errors.New("request has no function")
	ErrNoSuchFunc     = errors.New("no such function")
	ErrReqHasNoArg    = errors.New("request has no argument")
	ErrNotRequest     = errors.New("packet is not a request")
	ErrPacketTooLarge = errors.New("packet too large")
)

type Packet struct {
	ID   string `msgpack:"id"`
	Type int8   `msgpack:"type"`
	Func string `msgpack:"func,omitempty"`
	Code int32  `msgpack:"code"`
	Body []byte `msgpack:"body,omitempty"`
}

// NewRequest builds a request packet with a fresh ID. A nil arg leaves the
// body empty.
func NewRequest(fn string, arg any) (*Packet, error) {
	pkt := &Packet{ID: uuid.NewString(), Type: TypeReq, Func: fn}
	if arg != nil {
		body, err := msgpack.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("marshal %s argument: %w", fn, err)
		}
		pkt.Body = body
	}
	return pkt, nil
}

// Decode unmarshals the packet body into v.
func (p *Packet) Decode(v any) error {
	if len(p.Body) == 0 {
		return ErrReqHasNoArg
	}
	return msgpack.Unmarshal(p.Body, v)
}

// EncodePacket frames pkt as a 4-byte little-endian length followed by the
// msgpack-encoded packet.
func EncodePacket(pkt *Packet) ([]byte, error) {
	body, err := msgpack.Marshal(pkt)
	if err != nil {
		return nil, err
	}
	if len(body) > MaxPacketSize {
		return nil, ErrPacketTooLarge
	}
	var buf bytes.Buffer
	buf.Grow(4 + len(body))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(body)))
	buf.Write(body)
	return buf.Bytes(), nil
}

// PacketBuffer reassembles frames from a byte stream.
type PacketBuffer struct {
	buf bytes.Buffer
}

// Feed appends data and returns every complete packet. Partial frames stay
// buffered for the next call.
func (pb *PacketBuffer) Feed(data []byte) ([]*Packet, error) {
	pb.buf.Write(data)

	var results []*Packet
	for pb.buf.Len() >= 4 {
		length := binary.LittleEndian.Uint32(pb.buf.Bytes()[:4])
		if length > MaxPacketSize {
			pb.buf.Reset()
			return results, ErrPacketTooLarge
		}
		if pb.buf.Len() < 4+int(length) {
			// not enough data yet
			break
		}
		pb.buf.Next(4)
		frame := make([]byte, length)
		copy(frame, pb.buf.Next(int(length)))

		v := new(Packet)
		if err := msgpack.Unmarshal(frame, v); err != nil {
			return results, fmt.Errorf("decode packet: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

func (pb *PacketBuffer) Buffered() int {
	return pb.buf.Len()
}

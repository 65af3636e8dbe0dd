package unitconvrpc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEncode(t *testing.T, pkt *Packet) []byte {
	t.Helper()
	b, err := EncodePacket(pkt)
	require.NoError(t, err)
	return b
}

func TestPacketBufferSplitsAndJoinsFrames(t *testing.T) {
	a, err := NewRequest(FuncCatalog, nil)
	require.NoError(t, err)
	b, err := NewRequest(FuncConvert, map[string]string{"from": "Meters (m)"})
	require.NoError(t, err)

	stream := append(mustEncode(t, a), mustEncode(t, b)...)

	var pb PacketBuffer
	var got []*Packet
	// feed one byte at a time; frames must only appear once complete
	for i := range stream {
		pkts, err := pb.Feed(stream[i : i+1])
		require.NoError(t, err)
		got = append(got, pkts...)
	}
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, FuncCatalog, got[0].Func)
	assert.Equal(t, b.ID, got[1].ID)
	assert.Equal(t, b.Body, got[1].Body)
	assert.Zero(t, pb.Buffered())

	// both frames in one chunk
	pkts, err := pb.Feed(stream)
	require.NoError(t, err)
	assert.Len(t, pkts, 2)
}

func TestPacketBufferRejectsOversizedFrame(t *testing.T) {
	header := make([]byte, 4)
	binary.LittleEndian.PutUint32(header, MaxPacketSize+1)

	var pb PacketBuffer
	_, err := pb.Feed(header)
	assert.ErrorIs(t, err, ErrPacketTooLarge)
	assert.Zero(t, pb.Buffered())
}

func TestPacketBufferRejectsGarbage(t *testing.T) {
	frame := []byte{3, 0, 0, 0, 0xc1, 0xc1, 0xc1}
	var pb PacketBuffer
	_, err := pb.Feed(frame)
	assert.Error(t, err)
}

func TestNewRequestIDsAreUnique(t *testing.T) {
	a, err := NewRequest(FuncCatalog, nil)
	require.NoError(t, err)
	b, err := NewRequest(FuncCatalog, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, TypeReq, a.Type)
	assert.Empty(t, a.Body)
	assert.ErrorIs(t, a.Decode(&struct{}{}), ErrReqHasNoArg)
}

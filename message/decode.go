/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package message

import (
	"encoding/binary"

	"github.com/nabbar/rpclink/errors"
)

// DecodeHeader reads the fixed 12-byte header from the front of b.
func DecodeHeader(b []byte) (Header, errors.Error) {
	if len(b) < HeaderSize {
		return Header{}, errors.Pipe.Error()
	}

	h := Header{
		ID:       binary.LittleEndian.Uint32(b[0:4]),
		Length:   binary.LittleEndian.Uint32(b[4:8]),
		Protocol: b[8],
		Action:   b[9],
	}
	h.ParamIn = b[10] >> 4
	h.ParamOut = b[10] & 0x0f

	return h, nil
}

// DecodeParams reads the parameter descriptor vector following the
// header in b. b must start at the first descriptor byte and hold at
// least descriptorVectorSize(h.ParamIn, h.ParamOut) bytes; any buffer
// parameter's payload bytes are not yet attached (AttachBufferPayloads
// fills Param.Buffer once the remaining bytes have arrived).
func DecodeParams(b []byte, h Header) ([]Param, errors.Error) {
	n := int(h.ParamIn) + int(h.ParamOut)
	need := n * ParamSize
	if len(b) < need {
		return nil, errors.Pipe.Error()
	}

	params := make([]Param, n)
	for i := 0; i < n; i++ {
		off := i * ParamSize
		kind := ParamKind(b[off])
		if kind == KindShared {
			panic("message: shared-memory parameter is not supported")
		}
		params[i] = Param{
			Kind:   kind,
			Length: binary.LittleEndian.Uint32(b[off+4 : off+8]),
			Value:  binary.LittleEndian.Uint64(b[off+8 : off+16]),
		}
	}

	return params, nil
}

// BufferPayloadSize returns the total number of trailing payload bytes
// the buffer-kind parameters in params require.
func BufferPayloadSize(params []Param) uint32 {
	var n uint32
	for _, p := range params {
		if p.Kind == KindBuffer {
			n += p.Length
		}
	}
	return n
}

// AttachBufferPayloads slices payload out of b (the bytes immediately
// following the descriptor vector) into each buffer-kind parameter, in
// descriptor order, mutating params in place. b must hold at least
// BufferPayloadSize(params) bytes.
func AttachBufferPayloads(b []byte, params []Param) errors.Error {
	var cursor uint32
	need := BufferPayloadSize(params)
	if uint32(len(b)) < need {
		return errors.Pipe.Error()
	}

	for i := range params {
		if params[i].Kind != KindBuffer {
			continue
		}
		params[i].Buffer = b[cursor : cursor+params[i].Length]
		cursor += params[i].Length
	}

	return nil
}

// Decode reads a full message out of b, which must hold at least
// h.Length bytes starting at the header. Over-size messages must be
// rejected by the caller before calling Decode (TooLarge), Decode itself
// only validates internal consistency of the framing it is given.
func Decode(b []byte) (*Message, errors.Error) {
	h, err := DecodeHeader(b)
	if err != nil {
		return nil, err
	}

	descOff := HeaderSize
	descSize := int(descriptorVectorSize(h.ParamIn, h.ParamOut))
	if len(b) < descOff+descSize {
		return nil, errors.Pipe.Error()
	}

	params, err := DecodeParams(b[descOff:], h)
	if err != nil {
		return nil, err
	}

	payloadOff := descOff + descSize
	if err = AttachBufferPayloads(b[payloadOff:], params); err != nil {
		return nil, err
	}

	return &Message{Header: h, Params: params}, nil
}

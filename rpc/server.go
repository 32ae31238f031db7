// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/binary"
	"io"

	"github.com/bitmark-inc/logger"

	"github.com/maskvault-inc/maskvaultd/counter"
	"github.com/maskvault-inc/maskvaultd/fault"
)

// frames are a 4 byte big-endian length followed by one CBOR item
const maximumFrameSize = 1 << 20

// ServerArgument - the argument passed to the listener callback
type ServerArgument struct {
	Log        *logger.L
	Dispatcher *Dispatcher
}

var connectionCount counter.Counter

// ConnectionCount - number of clients currently connected
func ConnectionCount() uint64 {
	return connectionCount.Uint64()
}

// Callback - handle one client connection until it closes
func Callback(conn io.ReadWriteCloser, argument interface{}) {

	serverArgument := argument.(*ServerArgument)

	log := serverArgument.Log
	log.Info("starting…")

	connectionCount.Increment()
	defer connectionCount.Decrement()
	defer conn.Close()

loop:
	for {
		request, err := readFrame(conn)
		if nil != err {
			if io.EOF != err && io.ErrUnexpectedEOF != err && io.ErrClosedPipe != err {
				log.Warnf("read failed: %s", err)
			}
			break loop
		}

		reply := serverArgument.Dispatcher.Dispatch(request)

		if err := writeFrame(conn, reply); nil != err {
			log.Warnf("write failed: %s", err)
			break loop
		}
	}

	log.Info("finished")
}

func readFrame(conn io.Reader) ([]byte, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(conn, header); nil != err {
		return nil, err
	}

	size := binary.BigEndian.Uint32(header)
	if size > maximumFrameSize {
		return nil, fault.ErrCannotDecodeRequest
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(conn, data); nil != err {
		return nil, err
	}
	return data, nil
}

func writeFrame(conn io.Writer, data []byte) error {
	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, uint32(len(data)))

	if _, err := conn.Write(header); nil != err {
		return err
	}
	_, err := conn.Write(data)
	return err
}

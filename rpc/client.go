// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"fmt"
	"io"
)

// CallError - a failure reported by the daemon
type CallError struct {
	Code    int
	Message string
}

// Error - fulfil the error interface
func (callError *CallError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", callError.Code, callError.Message)
}

// Client - framed request/reply connection to a vault daemon
//
// not safe for concurrent calls; the daemon serialises requests
// anyway so one connection carries one call at a time
type Client struct {
	conn io.ReadWriteCloser
}

// NewClient - wrap an established connection
func NewClient(conn io.ReadWriteCloser) *Client {
	return &Client{conn: conn}
}

// Close - drop the connection
func (client *Client) Close() error {
	return client.conn.Close()
}

// Call - perform one request and decode its result
func (client *Client) Call(method string, origin string, arguments interface{}, reply interface{}) error {

	var params []byte
	if nil != arguments {
		encoded, err := encMode.Marshal(arguments)
		if nil != err {
			return err
		}
		params = encoded
	}

	request, err := encMode.Marshal(Request{
		Method: method,
		Origin: origin,
		Params: params,
	})
	if nil != err {
		return err
	}

	if err := writeFrame(client.conn, request); nil != err {
		return err
	}

	blob, err := readFrame(client.conn)
	if nil != err {
		return err
	}

	response := Response{}
	if err := decMode.Unmarshal(blob, &response); nil != err {
		return err
	}

	if !response.OK {
		return &CallError{
			Code:    response.Code,
			Message: response.Error,
		}
	}

	if nil != reply {
		return decMode.Unmarshal(response.Result, reply)
	}
	return nil
}

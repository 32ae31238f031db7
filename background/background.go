// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - long running maintenance goroutines
//
// a process receives a shutdown channel and must drain any pending
// work before signalling done; Stop blocks until every process has
package background

// channel pair for one running process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle to a running set of processes
type T struct {
	s []shutdown
}

// Process - the signature of a background process
type Process func(args interface{}, shutdown <-chan struct{}, done chan<- struct{})

// Processes - the list of processes to start together
type Processes []Process

// Start - run every process with a shared argument
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]shutdown, len(processes))

	for i, p := range processes {
		shutdownChannel := make(chan struct{})
		finishedChannel := make(chan struct{})
		register.s[i].shutdown = shutdownChannel
		register.s[i].finished = finishedChannel
		go p(args, shutdownChannel, finishedChannel)
	}
	return register
}

// Stop - signal every process and wait for all of them to finish
func Stop(t *T) {
	if nil == t {
		return
	}

	for _, s := range t.s {
		close(s.shutdown)
	}

	for _, s := range t.s {
		<-s.finished
	}
}

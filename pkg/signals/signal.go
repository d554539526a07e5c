/*
Source: https://github.com/kubernetes/sample-controller/tree/master/pkg/signals

Copyright 2017 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package signals

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"

	klog "k8s.io/klog/v2"
)

const threadDumpBufferSize = 1 * 1024 * 1024

var onlyOneShutdownSignalHandler = make(chan struct{})
var onlyOneThreaddumpSignalHandler = make(chan struct{})

// exit is replaced in tests
var exit = os.Exit

// SetupShutdownSignalHandler registered for SIGTERM and SIGINT. A stop channel is returned
// which is closed on one of these signals. If a second signal is caught, the program
// is terminated with exit code 1.
// Closing the stop channel lets the daemon close all tables so that pending
// writes reach the storage engine before the process ends.
func SetupShutdownSignalHandler() (stopCh <-chan struct{}) {
	close(onlyOneShutdownSignalHandler) // panics when called twice
	c := make(chan os.Signal, 2)
	signal.Notify(c, shutdownSignals...)
	return handleShutdown(c)
}

func handleShutdown(c <-chan os.Signal) <-chan struct{} {
	stop := make(chan struct{})
	go func() {
		sig := <-c
		klog.InfoS("Received shutdown signal", "signal", sig)
		close(stop)
		<-c
		exit(1) // second signal. Exit directly.
	}()
	return stop
}

// SetupThreadDumpSignalHandler registers a handler for SIGQUIT.
// In case a SIGQUIT is received a thread dump is written.
func SetupThreadDumpSignalHandler() {
	close(onlyOneThreaddumpSignalHandler) // panics when called twice
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGQUIT)
	go handleThreadDump(sigs, dumpGoroutines)
}

func handleThreadDump(sigs <-chan os.Signal, dump func(os.Signal)) {
	for sig := range sigs {
		dump(sig)
	}
}

func dumpGoroutines(sig os.Signal) {
	buf := make([]byte, threadDumpBufferSize)
	stacklen := runtime.Stack(buf, true)
	klog.InfoS("Received signal", "signal", sig)
	klog.InfoS("Goroutine dump", "dump", string(buf[:stacklen]))
}

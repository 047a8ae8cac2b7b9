// Package control turns operator input into non-blocking cancel checks.
//
// Every Source is polled by the scheduler once per WAITING tick. Poll
// never blocks: blocking inputs are read on helper goroutines that only
// record whether a cancel was seen.
//
// NewTerminalConsole puts an interactive stdin into raw mode so the cancel
// key is seen without Enter; NewConsole reads any other reader.
//
//	source := control.Any(
//	    control.NewConsole(os.Stdin),
//	    control.NewSignal(),
//	)
//	defer source.Close()
package control

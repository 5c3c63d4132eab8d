// Package ossim simulates a simplified operating-system kernel loop:
// processes are generated, admitted only when system resources can satisfy
// their declared demand, placed in a ready queue and executed by a single
// virtual CPU under Round-Robin time slicing.
//
// The core is the concurrent interaction of three collaborating services:
//
//   - messaging – a bounded producer/consumer queue with backpressure
//   - resource  – all-or-nothing admission against fixed per-class totals
//   - scheduler – quantum-based preemption over a FIFO ready queue
//
// End-users typically interact with the simulator via the high-level
// Service façade exposed by the root package:
//
//	srv, _ := ossim.New()
//	rt := srv.Runtime()
//	_ = rt.Start(ctx)
//	rt.SetRunning(true)
//	...
//	_ = rt.Shutdown(ctx)
//
// For more details see the individual sub-packages.
package ossim

// SPDX-License-Identifier: EPL-2.0

// Package analyzer runs the short-time analysis of the speech package over a
// whole signal.
//
// The signal is cut into frames of Config.FrameLength samples every
// Config.HopLength samples and every Config.Stride-th frame is analysed:
//
//	frame -> window -> center clip -> energy, zero crossings, autocorrelation
//
// Frames are independent, so they are measured concurrently with at most
// Config.Workers in flight. Results are stored by position and come back in
// temporal order no matter how the work was scheduled.
//
// # Logging
//
// Progress is logged at debug level to the logrus entry given with
// WithLogger, with the fields frames, analyzed and workers. Without a
// logger nothing is written.
package analyzer

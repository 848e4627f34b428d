// Package viz renders finished trajectory runs in the terminal.
//
//   - [Plot]: asciigraph chart of one sample series
//   - [SummaryPanel], [StatePanel]: lipgloss blocks of run figures
//   - [Replay]: Bubble Tea model that plays a run back on a Braille canvas
//
// # Replay keys
//
//	Space - Pause/Resume
//	R     - Restart
//	+/-   - Double/halve playback speed
//	Q     - Quit
package viz

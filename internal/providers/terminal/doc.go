// Package terminal runs a single command in an interactive shell on a
// pseudo-terminal and classifies how it ended.
//
// A Controller owns one Session. Start prints a banner, spawns the shell,
// submits the command and, after a short delay, an exit trailer in the
// shell's dialect ("exit $?", "exit $status", "exit $LASTEXITCODE") so the
// shell terminates with the command's status. Output is mirrored to the
// Display and captured line by line.
//
// Exit handling:
//   - exit code 0 closes the display with 0
//   - a non-zero code hands a Failure to the FailureHandler once and
//     leaves the display open
//   - a signal or an unknown status closes the display with 1
//   - a panic during handling closes the display with 1
//
// Architecture:
//   - Spawner/Process abstract the PTY so tests can drive fake shells
//   - an output pump and an exit waiter run per session; exit handling
//     waits for the pump to drain, bounded by DrainTimeout
//   - Manager tracks controllers by session ID
//   - ConsoleDisplay binds a session to the process's own terminal
package terminal

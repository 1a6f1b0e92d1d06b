// Package clipboard copies failure reports to the user's clipboard.
//
// Backends:
//   - System: atotto/clipboard (pbcopy, xclip/xsel, wl-copy, Windows API)
//   - OSC52: terminal escape sequence via aymanbagabas/go-osc52, wrapped
//     for tmux and screen; the only option over plain SSH
//
// Chain tries backends in order, recording each attempt in the
// liku_clipboard_writes_total metric.
package clipboard

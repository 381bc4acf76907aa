// Package cli provides the interactive gophboard command-line client.
//
// App wires configuration, the HTTP API client and a read-eval-print loop.
// A background watcher pings /api/health and flips the prompt between
// online and offline. Supported commands:
//   - signup / login / logout
//   - me: show the identity carried by the current token
//   - posts / addpost: browse and publish posts
//   - health: check the server right now
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// stdin is closed.
package cli

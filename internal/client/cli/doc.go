// Package cli provides the interactive ChatFlow terminal client.
//
// It wires configuration, the durable session store, the backend API
// client, and an interactive REPL over the application screens. Typical
// flow: restore a persisted session (or prompt for credentials), then
// execute user commands.
//
// Key screens:
//   - Login / Signup / Logout
//   - Profile view and edit
//   - User search with debounced queries and client-side filters
//   - Messages inbox and thread view (sample data, no transport)
//
// The REPL is started via App.Root(ctx), which blocks until the user
// exits. See App and runREPL for details.
package cli

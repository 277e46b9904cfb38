// Package mode holds the contracts shared by the input modes.
//
// A Mode turns key events into edits of the buffer shown in the host's
// active Window. Modes are registered by name with a Registry, which the
// host uses to pick the active one:
//
//	reg := mode.NewRegistry(log)
//	reg.RegisterGlobalMode(vim.New(host))
//	reg.RegisterGlobalMode(standard.New(host))
//	_ = reg.SetGlobalMode(vim.Name)
//
// # Editor modes
//
// Within a mode the editing state is one of the EditorMode values:
//
//	None ──Begin()──▶ Normal ◀──Esc── Insert
//	                    │ ▲
//	               v/V  │ │ Esc / operator
//	                    ▼ │
//	                  Visual          Normal ──:──▶ Ex ──Enter/Esc──▶ Normal
//
// Base carries what every mode shares: undo and redo through the buffer's
// History, the visual and insert anchors, and the global key bindings that
// apply before any modal parsing.
package mode

// Package remote exposes the menu controller to the network as a
// WebSocket command endpoint.
//
// Clients connect to ws://host:port/ws and send JSON commands:
//
//	{"action": "next"}
//	{"action": "prev"}
//	{"action": "inc", "steps": -1}
//	{"action": "wake"}
//	{"action": "sleep"}
//
// Commands are validated and delivered on a buffered channel. The control
// loop that owns the menu controller is the only consumer; when it falls
// behind, excess commands are dropped with a warning rather than blocking
// the connection reader. This keeps all controller state on a single
// goroutine.
//
// When announcement is enabled, the server registers itself over mDNS as a
// "_lcdmenu._tcp" service so clients can find it without configuration.
package remote

// Package devtools serves inspector targets to Chrome DevTools Protocol
// frontends over WebSocket, together with the HTTP discovery endpoints
// frontends poll to find them.
//
// Endpoints
//
//	GET /json/version          browser and protocol version
//	GET /json, GET /json/list  one descriptor per registered page
//	GET /devtools/page/{id}    WebSocket upgrade; one session per socket
//
// Every socket gets its own session on the page's inspector.Target. Outbound
// messages are queued per socket so that an agent's frontend channel never
// waits on the network; a frontend that lets its queue overflow is
// disconnected with a policy-violation close status.
package devtools

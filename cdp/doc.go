// Package cdp contains the Chrome DevTools Protocol envelope used between a
// debugger frontend and an inspector agent.
//
// Inbound text is turned into a PreparsedRequest by Preparse. Only the
// envelope (id, method, params) is validated up front; parameter values are
// decoded lazily through Params so that an agent only pays for the fields it
// reads. Every failure is classified:
//
//	*ParseError  the text is not well-formed JSON            (-32700)
//	*TypeError   the envelope or a field has the wrong shape (-32600)
//
// The Builders NewErrorResponse, NewResultResponse and NewEvent produce the
// outbound text an agent hands to its frontend channel.
package cdp

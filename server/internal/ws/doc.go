// Package ws implements the WebSocket hub behind the live dashboard page.
//
// Each connection owns a selection (launch site plus payload range). On
// connect the hub sends the page layout followed by one update per output,
// computed for the default selection. The client then reports control
// changes as input events; only the callbacks that depend on the changed
// input run, and their updates go back to that client alone.
//
// Messages sent to clients:
//
//	{"event": "layout", "data": { /* same schema as GET /api/v1/layout */ }}
//	{"event": "update", "data": {"output": "success-pie-chart", "data": {...}, "figure": "<svg ..."}}
//	{"event": "error",  "data": {"input": "payload-slider", "error": "..."}}
//
// Messages accepted from clients:
//
//	{"event": "input", "id": "site-dropdown",  "value": "KSC LC-39A"}
//	{"event": "input", "id": "payload-slider", "value": [2000, 8000]}
//
// Hub.Run re-sends layout and every output to all clients when the store
// swaps in a reloaded dataset. The upgrader accepts all origins; apply CORS
// restrictions at the reverse proxy. The endpoint is mounted at /ws/stream.
package ws

// Package client implements the transport layer of the recipe manager
// client: the Client interface the stores program against, a REST/JSON
// implementation over net/http, and the request/response pipeline that
// injects credentials and reacts globally to authorization failures.
package client

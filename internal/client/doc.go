// Package client implements a management client for the wmedium control
// socket. It is used by the wmediumctl tool and by the server's
// integration tests.
package client

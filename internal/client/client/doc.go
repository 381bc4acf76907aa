// Package client talks to the gophboard HTTP API on behalf of the CLI.
//
// HTTPClient implements the Client interface: signup and login store the
// returned bearer token, which is then sent with requests to protected
// routes until Logout. Error bodies of the form {"error": "..."} are decoded
// into *APIError; 401 responses additionally match ErrUnauthorized and
// transport failures match ErrUnavailable via errors.Is.
package client

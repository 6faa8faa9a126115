// Package loginflow wires an Authenticator into an HTTP login surface.
//
// The flow owns every post-authentication effect: minting tokens, setting
// cookies and firing the LoginCompleted notice. The authenticator stays a
// pure credential check, so the notice fires exactly once per successful
// login and always names the principal the session was issued for.
package loginflow

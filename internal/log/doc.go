// Package log provides secure logging built on top of the standard slog package.
//
// The SecureHandler masks sensitive information before it reaches the
// underlying handler:
//   - attributes whose key names a secret (password, token, cookie, session)
//   - values that look like credentials (JWT, bearer and basic auth, private keys)
//   - the password part of URL userinfo
//   - sensitive query parameter values inside URLs
//
// URLs are otherwise logged unchanged, so a record about
// "http://paypal.com@secure-login.top/?token=abc" still shows the host trick
// while the token is replaced by MaskValue.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("extracting features", "url", rawURL)
package log

// Package log provides slog loggers that mask sensitive information.
//
// Analyzed URLs are attacker-controlled and frequently embed victim data:
// email addresses, session tokens and one-time codes in the query string,
// or credentials in the userinfo part. The SecureHandler masks these before
// anything is written, in addition to the usual secrets (Authorization and
// Cookie headers, passwords, API keys, JWTs).
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("analysis completed",
//	    "url", "https://evil.example/login?email=a@b.c", // email=REDACTED
//	    "verdict", "Suspicious",
//	)
//
// The server uses NewSecureJSONLogger when --log-json is set.
package log

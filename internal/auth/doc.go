// package auth holds the credential check and the session tracker behind the web login.
//
// Passwords are stored as bcrypt digests. A browser session is a row in the
// sessions table; the cookie carries an HS256 token whose jti names that row,
// so a tampered or expired cookie never resolves to a session. Login
// replaces the row, so a token handed out before login stays anonymous.
package auth

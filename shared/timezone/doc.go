// Package timezone keeps every timestamp the service produces in one configured location.
//
// Hold expiry, receipt names and sweeper cut-offs are all computed from Now, so the database,
// the receipt store and the API agree on the same wall clock:
//
//	now := timezone.Now()
//	expiresAt := now.Add(5 * time.Minute)
//	name := timezone.Format(now, "20060102150405")
//
// The location is read from APP_TIMEZONE on first use. Use IANA names such as "UTC" or
// "Asia/Colombo"; an unknown name falls back to UTC.
package timezone

// Package timezone holds the application timezone.
//
// Init is called once at startup with the configured IANA name
// (APP_TIMEZONE). Until then every helper works in UTC.
//
//	now := timezone.Now()
//	t, err := timezone.Parse(time.DateOnly, "2025-07-01")
package timezone

// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Current time and day:
//     now := timezone.Now()                     // Current time in app timezone
//     today := timezone.StartOfDay(now)         // Midnight of the current day
//
//  2. Calendar dates as typed into the booking form:
//     checkIn, err := timezone.ParseDate("2024-06-01")
//
//  3. Formatting times in app timezone:
//     formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//
// The timezone is configured via the APP_TIMEZONE environment variable
// and is automatically initialized when the package is imported.
// Use standard IANA timezone database names for reliable cross-platform compatibility.
package timezone

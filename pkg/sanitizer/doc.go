// Package sanitizer normalizes user-supplied text before validation and storage.
//
// All functions are idempotent. Invalid input is returned in a form the
// validator will reject rather than silently dropped, so callers still get a
// ValidationError for garbage.
//
// Normalization includes:
//   - Names, cities, addresses: trim and collapse internal whitespace
//   - Emails: trim and lowercase
//   - Phone numbers: E.164 via libphonenumber, defaulting to DefaultRegion
//   - URLs: enforce a scheme, lowercase the host, drop utm_* tracking parameters
package sanitizer

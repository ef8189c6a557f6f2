// Package sanitizer normalizes untrusted user input before validation:
// whitespace-collapsed names and labels, E.164 phone numbers, lowercased
// email addresses. Sanitizers never reject input; they return a normalized
// value or the empty string, and validation decides what is acceptable.
package sanitizer

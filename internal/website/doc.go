// Package website fetches a web page and reduces it to the cleaned body
// text the script generator consumes. Fetch failures are logged and
// returned as empty text rather than errors.
package website

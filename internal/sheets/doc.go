// Package sheets appends index rows to a Google Sheets spreadsheet.
//
// Each synced transcript gets one row of [display date, document link] so
// the spreadsheet works as a browsable index of everything the service
// has published.
package sheets

// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package uhppoted-app-rollover rolls a monthly Google Sheets spreadsheet over to the next month.

uhppoted-app-rollover can be used from the command line but is really intended to be run from a cron job at the
start of each month. It finds the previous month's spreadsheet in Google Drive by title (e.g. กย.67), copies it to a
new spreadsheet titled with the current month (e.g. ตค.67) and then updates the month-end cells on every tab of the
copy in parallel. Dates and titles use the Buddhist era and Thai month abbreviations.

uhppoted-app-rollover supports the following commands:

  - authorise, to authorise application access to Google Drive and Google Sheets
  - rollover, to create and update the spreadsheet for the current (or an overridden) month
  - get, to download the month-end cells from every tab of a spreadsheet as a TSV file
  - version, to display the application version
*/
package rollover

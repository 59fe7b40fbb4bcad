// Copyright 2026 airwaylog. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package sleepdash is a single-user dashboard for daily sleep-therapy metrics
(AHI, mask leak rate, HRV coherence and subjective energy), stored in a Google
Sheets worksheet.

sleepdash can be used from the command line or run as a small HTTP dashboard
for entering and reviewing the daily log.

sleepdash supports the following commands:

  - get, to download the health log from the Google Sheets worksheet to a TSV file
  - add, to append a daily entry to the worksheet
  - correlate, to compute the Pearson correlation matrix over the numeric metrics
  - status, to report worksheet connectivity and the last modified time
  - serve, to run the HTTP dashboard
*/
package sleepdash

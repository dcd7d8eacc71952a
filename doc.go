// Copyright 2024 csiga-ovi. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package checkin-sheets is a small attendance check-in web application backed by an Excel workbook
stored in Google Drive.

The workbook has one worksheet per group of students, with the student names in the first column
and one column per date. The web server lists the groups, shows the students in a group and marks
a student present for today with a checkmark. Changes are uploaded back to Google Drive
periodically and on request.

checkin-sheets supports the following commands:

  - run, to download the workbook and run the check-in web server
  - get, to download the workbook from Google Drive to a local file
  - put, to upload a local workbook to Google Drive
  - export, to export the attendance register for a group to a TSV file or Google Sheets worksheet
  - authorise, to authorise access to Google Drive with OAuth2 client credentials
  - version, to display the current version
*/
package checkin

/*
Package etl implements a scheduled ETL job that pulls the daily install and sales counts for an
Android and an iOS app from the two vendor reporting systems and appends the normalized rows to a
Google Sheets worksheet used as a lightweight data warehouse.

zerocost-etl is intended to be run once a day from a cron job (or equivalent external scheduler).

zerocost-etl supports the following commands:

  - sync, to fetch the install counts for the target date from Google Play and the App Store and
    append them to the worksheet
  - version, to display the current version

Configuration is read once from the process environment at startup - see the config package for
the expected variables.
*/
package etl

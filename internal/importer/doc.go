// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package importer loads one delimited file into one table of an embedded
// SQL database inside a single transaction.
//
// # Flow
//
//  1. [NewJob] validates the configuration once, before anything runs.
//  2. [Prepare] reads the file, checks that every row has the same width and
//     synthesizes the CREATE TABLE statement when needed. No database call
//     is made before this step succeeds.
//  3. [Run] acquires a connection, issues BEGIN at the job's isolation level,
//     provisions the table (drop + create) when requested, inserts every row
//     with one prepared statement, then commits. Any failure rolls the whole
//     transaction back. The connection is closed on every path.
//
// # Errors
//
// Every returned error carries a kind from internal/errors:
// invalid_configuration, io_error, parse_error and shape_mismatch are raised
// before the database is touched; schema_error and insert_error are raised
// inside the transaction and trigger a rollback; transaction_error means
// BEGIN, COMMIT or ROLLBACK itself failed.
//
// # Events
//
// Progress is reported through a [Sink]; the package never writes to stdout.
package importer

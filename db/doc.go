// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on SQLite and PostgreSQL.

# Tables

  - lead: Contact record and request origin per submitted quiz
  - lead_answer: One row per answered question, value stored as JSON

# Relationships

	lead 1──* lead_answer

# Drivers

DriverName maps DATABASE_TYPE to a database/sql driver name:

	sqlite   → "sqlite"   (modernc.org/sqlite)
	postgres → "postgres" (github.com/lib/pq)
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags and
environment variables.

Flags take precedence over environment variables; a .env file in the
working directory is loaded first (missing files are ignored), so local
development needs no exported variables.

Settings:

  - PORT (-p): server port (default: 3001)
  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

The database URL is required. With the default sqlite type it is simply
a file path such as ./roomsync.db; :memory: works for throwaway runs.
*/
package cliparse

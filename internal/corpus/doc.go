// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

/*
Package corpus loads movie records for the recommendation engine.

Every source implements recommend.CorpusSource and returns records in a
stable order, which becomes the row order of the similarity matrices.

# Sources

  - DuckDBSource reads Parquet, CSV or TSV files through an in-memory DuckDB
    connection. Column names are configurable and NULL soups become empty
    strings. IMDb-style TSV exports (\N for NULL) are supported directly.
  - JSONSource reads a JSON array or a stream of JSON objects.
  - SQLiteSource reads one table of a SQLite database (.db, .sqlite, .sqlite3)
    opened read-only.
  - StaticSource serves records held in memory.
  - BreakerSource wraps any source with a circuit breaker so a failing file
    system or object store is not hammered by the refresh loop.

# Usage

	src, err := corpus.Open(corpus.Config{Path: "movies.parquet"}, logger)
	if err != nil {
	    return err
	}
	defer src.Close()
	engine.SetSource(src)
*/
package corpus

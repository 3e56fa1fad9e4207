// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package recommend

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Corpus is an ordered, immutable set of movies.
// Row position is the matrix index of every similarity matrix built from it.
type Corpus struct {
	records []MovieRecord
	rows    map[int]int // movie id -> row
	version string
}

// NewCorpus copies records into a new Corpus.
// Record order is preserved; duplicate ids are rejected.
func NewCorpus(records []MovieRecord) (*Corpus, error) {
	c := &Corpus{
		records: make([]MovieRecord, len(records)),
		rows:    make(map[int]int, len(records)),
	}
	copy(c.records, records)

	for i := range c.records {
		id := c.records[i].ID
		if prev, dup := c.rows[id]; dup {
			return nil, fmt.Errorf("duplicate movie id %d at rows %d and %d", id, prev, i)
		}
		c.rows[id] = i
	}

	c.version = fingerprint(c.records)
	return c, nil
}

// Len returns the number of movies.
func (c *Corpus) Len() int {
	return len(c.records)
}

// Version returns a content fingerprint of the corpus. Two corpora with the
// same records in the same order share a version.
func (c *Corpus) Version() string {
	return c.version
}

// ID returns the movie id at row.
func (c *Corpus) ID(row int) int {
	return c.records[row].ID
}

// Row returns the row of id and whether id is present.
func (c *Corpus) Row(id int) (int, bool) {
	row, ok := c.rows[id]
	return row, ok
}

// Record returns the record at row.
func (c *Corpus) Record(row int) MovieRecord {
	return c.records[row]
}

// Documents returns the text of every row for signal s, in row order.
func (c *Corpus) Documents(s Signal) []string {
	docs := make([]string, len(c.records))
	for i := range c.records {
		docs[i] = c.records[i].Text(s)
	}
	return docs
}

// fingerprint hashes ids and soups in row order.
func fingerprint(records []MovieRecord) string {
	d := xxhash.New()
	var buf []byte
	for i := range records {
		buf = strconv.AppendInt(buf[:0], int64(records[i].ID), 10)
		buf = append(buf, 0)
		_, _ = d.Write(buf)
		_, _ = d.WriteString(records[i].SoupPlot)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(records[i].SoupGeneral)
		_, _ = d.Write([]byte{0})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

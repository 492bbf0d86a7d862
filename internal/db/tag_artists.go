package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TagArtistRepository handles cached tag artist database operations.
type TagArtistRepository struct {
	pool *pgxpool.Pool
}

// ReplaceForTag swaps the cached artists of a tag for a fresh list.
func (r *TagArtistRepository) ReplaceForTag(ctx context.Context, tag string, artists []TagArtist) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM tag_artists WHERE tag = $1`, tag); err != nil {
		return fmt.Errorf("clearing tag artists: %w", err)
	}

	if len(artists) > 0 {
		query := `
			INSERT INTO tag_artists (tag, rank, artist_name, artist_url, fetched_at)
			SELECT * FROM unnest($1::text[], $2::int[], $3::text[], $4::text[], $5::timestamptz[])
		`

		tags := make([]string, len(artists))
		ranks := make([]int, len(artists))
		names := make([]string, len(artists))
		urls := make([]string, len(artists))
		fetchedAts := make([]time.Time, len(artists))

		for i, a := range artists {
			tags[i] = tag
			ranks[i] = a.Rank
			names[i] = a.Name
			urls[i] = a.URL
			fetchedAts[i] = a.FetchedAt
		}

		if _, err := tx.Exec(ctx, query, tags, ranks, names, urls, fetchedAts); err != nil {
			return fmt.Errorf("inserting tag artists: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing tag artists: %w", err)
	}
	return nil
}

// GetForTag retrieves the cached artists of a tag in rank order.
func (r *TagArtistRepository) GetForTag(ctx context.Context, tag string) ([]TagArtist, error) {
	query := `
		SELECT tag, rank, artist_name, artist_url, fetched_at
		FROM tag_artists
		WHERE tag = $1
		ORDER BY rank
	`
	rows, err := r.pool.Query(ctx, query, tag)
	if err != nil {
		return nil, fmt.Errorf("querying tag artists: %w", err)
	}
	defer rows.Close()

	var artists []TagArtist
	for rows.Next() {
		var a TagArtist
		if err := rows.Scan(
			&a.Tag,
			&a.Rank,
			&a.Name,
			&a.URL,
			&a.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning tag artist: %w", err)
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// DeleteStale removes cached artists fetched before olderThan.
func (r *TagArtistRepository) DeleteStale(ctx context.Context, olderThan time.Time) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM tag_artists WHERE fetched_at < $1`, olderThan); err != nil {
		return fmt.Errorf("deleting stale tag artists: %w", err)
	}
	return nil
}

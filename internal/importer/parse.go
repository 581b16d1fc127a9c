// Package importer loads movie catalogues exported as CSV into the movie
// store.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"

	"go.uber.org/zap"
)

// Columns are matched by header name, case-insensitively, in any order.
var columns = []string{
	"title", "rating", "duration", "genre", "synopsis", "director",
	"cast", "posterurl", "trailerurl", "releasedate", "enddate",
}

// exportedDate matches "December 24, 2025 at 1:00:00 PM UTC+7".
var exportedDate = regexp.MustCompile(`^(.+?) at (.+?)(?:\s+UTC([+-]\d{1,2})(?::?(\d{2}))?)?$`)

const exportedLayout = "January 2, 2006 3:04:05 PM"

// ParseReleaseDate reads the spreadsheet export format and falls back to
// RFC3339 and YYYY-MM-DD. An empty value is (nil, nil).
func ParseReleaseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if m := exportedDate.FindStringSubmatch(value); m != nil {
		loc := time.UTC
		if m[3] != "" {
			hours, _ := strconv.Atoi(m[3])
			minutes, _ := strconv.Atoi(m[4])
			offset := hours*3600 + sign(hours)*minutes*60
			loc = time.FixedZone("UTC"+m[3], offset)
		}
		t, err := time.ParseInLocation(exportedLayout, m[1]+" "+m[2], loc)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", value, err)
		}
		return &t, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("parse date %q: unknown format", value)
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}

// ParseMovies reads every data row into a movie. Bad numbers become zero
// and bad dates become nil, each with a warning; only a malformed file
// fails the parse.
func ParseMovies(r io.Reader, log *zap.Logger) ([]*entity.Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv is empty")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	if _, ok := index["title"]; !ok {
		return nil, errors.New("csv has no title column")
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			log.Warn("CSV column missing, using empty values", zap.String("column", col))
		}
	}

	var movies []*entity.Movie
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		movie := &entity.Movie{
			Title:      get("title"),
			Genre:      get("genre"),
			Synopsis:   get("synopsis"),
			Director:   get("director"),
			Cast:       get("cast"),
			PosterURL:  get("posterurl"),
			TrailerURL: get("trailerurl"),
		}

		if raw := get("rating"); raw != "" {
			if movie.Rating, err = strconv.ParseFloat(raw, 64); err != nil || !isFinite(movie.Rating) {
				log.Warn("Invalid rating", zap.Int("line", line), zap.String("value", raw))
				movie.Rating = 0
			}
		}
		if raw := get("duration"); raw != "" {
			if movie.Duration, err = leadingInt(raw); err != nil {
				log.Warn("Invalid duration", zap.Int("line", line), zap.String("value", raw))
			}
		}
		if movie.ReleaseDate, err = ParseReleaseDate(get("releasedate")); err != nil {
			log.Warn("Invalid date format", zap.Int("line", line), zap.Error(err))
		}
		if movie.EndDate, err = ParseReleaseDate(get("enddate")); err != nil {
			log.Warn("Invalid date format", zap.Int("line", line), zap.Error(err))
		}

		movies = append(movies, movie)
	}

	return movies, nil
}

var leadingDigits = regexp.MustCompile(`^\d+`)

// leadingInt reads "142 min" as 142.
func leadingInt(raw string) (int, error) {
	digits := leadingDigits.FindString(raw)
	if digits == "" {
		return 0, fmt.Errorf("no digits in %q", raw)
	}
	return strconv.Atoi(digits)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "telcli/internal/errors"
	"telcli/internal/temporal"
)

// nowUnix is a seam for collision tests; production code always uses the
// wall clock.
var nowUnix = func() int64 { return time.Now().Unix() }

// Store manages the year/month directory hierarchy that organized
// telemetry files live in. All paths it hands out are absolute.
type Store struct {
	root   string
	logger *slog.Logger
}

// PlaceOptions controls how Place treats the source file and an
// already-occupied destination.
type PlaceOptions struct {
	// Move removes the source after it lands in the store. The default
	// is to copy and leave the source untouched.
	Move bool
	// Overwrite replaces an existing file at the destination instead of
	// disambiguating the name.
	Overwrite bool
}

// NewStore creates a store rooted at the given directory. The root is
// created lazily; constructing a store never touches the filesystem.
func NewStore(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		root:   root,
		logger: logger.With(slog.String("component", "store")),
	}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// YearDir returns the directory for a year without creating it.
func (s *Store) YearDir(year int) string {
	return filepath.Join(s.root, fmt.Sprintf("%d", year))
}

// MonthDir returns the directory for a year/month pair without creating it.
func (s *Store) MonthDir(year, month int) string {
	return filepath.Join(s.YearDir(year), MonthDirName(month))
}

// MonthDirName returns the canonical month directory name, for example
// "03_March". The numeric prefix keeps directory listings in calendar
// order regardless of locale.
func MonthDirName(month int) string {
	return fmt.Sprintf("%02d_%s", month, temporal.Key{Year: 2000, Month: month}.MonthName())
}

// EnsureYearLayout creates the directory skeleton for a year: the year
// directory plus all twelve month subdirectories. It is idempotent and
// returns the month number to directory mapping.
func (s *Store) EnsureYearLayout(year int) (map[int]string, error) {
	dirs := make(map[int]string, 12)
	for month := 1; month <= 12; month++ {
		dir := s.MonthDir(year, month)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, apperrors.NewStorageError(
				fmt.Sprintf("failed to create month directory %s", dir), err)
		}
		dirs[month] = dir
	}
	s.logger.Debug("Year layout ensured",
		slog.Int("year", year),
		slog.String("dir", s.YearDir(year)))
	return dirs, nil
}

// Place files the source under <root>/<year>/<NN_Month>/ and returns the
// final destination path. The source must exist and the key must carry a
// valid year and month. When the destination name is taken and Overwrite
// is off, a unix-timestamp suffix is appended before the extension and
// incremented until a free name is found.
func (s *Store) Place(ctx context.Context, src string, key temporal.Key, opts PlaceOptions) (string, error) {
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewNotFoundError(fmt.Sprintf("source file %s", src))
		}
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to stat source file %s", src), err)
	}
	if !key.Valid() {
		return "", apperrors.NewTemporalKeyError(
			fmt.Sprintf("cannot place %s: temporal key %s is not valid", filepath.Base(src), key))
	}

	// Placing one file lays out the whole year so later months have a
	// home waiting for them.
	dirs, err := s.EnsureYearLayout(key.Year)
	if err != nil {
		return "", err
	}
	dir := dirs[key.Month]
	if err := probeWritable(dir); err != nil {
		return "", apperrors.NewPermissionError(fmt.Sprintf("month directory %s is not writable", dir))
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if !opts.Overwrite {
		dst = disambiguate(dst)
	}

	if opts.Move {
		if err := moveFile(src, dst); err != nil {
			return "", apperrors.NewStorageError(fmt.Sprintf("failed to move %s into store", filepath.Base(src)), err)
		}
	} else {
		if err := CopyFile(src, dst); err != nil {
			return "", apperrors.NewStorageError(fmt.Sprintf("failed to copy %s into store", filepath.Base(src)), err)
		}
	}

	s.logger.InfoContext(ctx, "File placed in store",
		slog.String("source", src),
		slog.String("destination", dst),
		slog.String("key", key.String()),
		slog.Bool("moved", opts.Move))
	return dst, nil
}

// List returns the organized files for a year, grouped by month. The map
// always carries all twelve month keys; months with no files map to empty
// slices, including when the year directory itself does not exist. Each
// month's files are sorted by name.
func (s *Store) List(year int) (map[int][]string, error) {
	out := make(map[int][]string, 12)
	for month := 1; month <= 12; month++ {
		files, err := s.listMonthDir(year, month)
		if err != nil {
			return nil, err
		}
		out[month] = files
	}
	return out, nil
}

// ListMonth returns the organized files for a single month, sorted by
// name. A missing month directory yields an empty slice.
func (s *Store) ListMonth(year, month int) ([]string, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("month must be between 1 and 12, got %d", month))
	}
	return s.listMonthDir(year, month)
}

func (s *Store) listMonthDir(year, month int) ([]string, error) {
	dir := s.MonthDir(year, month)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read month directory %s", dir), err)
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// disambiguate returns path unchanged when it is free, otherwise a
// variant with "_<unix timestamp>" inserted before the extension. The
// timestamp is incremented until an unoccupied name is found, so two
// files placed in the same second still land separately.
func disambiguate(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	ts := nowUnix()
	for {
		candidate := fmt.Sprintf("%s_%d%s", stem, ts, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		ts++
	}
}

// probeWritable verifies a directory accepts new files. Permission bits
// alone are not trusted; read-only mounts and ACLs only show up when a
// write is attempted.
func probeWritable(dir string) error {
	probe := filepath.Join(dir, ".write_test")
	f, err := os.Create(probe)
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(probe)
}

// CopyFile copies src to dst, creating the destination directory if
// needed. The destination is synced before close so a crash cannot leave
// a half-written file that looks complete.
func CopyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}
	return dstFile.Sync()
}

// moveFile moves src to dst. Rename is atomic when both ends are on the
// same filesystem; across filesystems it falls back to copy and delete.
func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := CopyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations used by default; an
// explicit store root from configuration or flags overrides StoreDir.
type Paths struct {
	ExecutableDir string
	StoreDir      string
	ReportsDir    string
	LogsDir       string

	// Config file probed at startup
	ConfigFile string
}

// GetPaths returns the application paths relative to the executable location.
// Paths are never resolved against the current working directory so the
// binary behaves the same no matter where it is invoked from.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return GetPathsWithBase(filepath.Dir(exe)), nil
}

// GetPathsWithBase returns paths rooted at an explicit base directory.
// Tests use this to build isolated layouts.
func GetPathsWithBase(baseDir string) *Paths {
	return &Paths{
		ExecutableDir: baseDir,
		StoreDir:      filepath.Join(baseDir, DefaultStoreDir),
		ReportsDir:    filepath.Join(baseDir, DefaultReportsDir),
		LogsDir:       filepath.Join(baseDir, DefaultLogsDir),
		ConfigFile:    filepath.Join(baseDir, "telcli.yaml"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.StoreDir,
		p.ReportsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetRelativePath returns a path relative to the executable directory
func (p *Paths) GetRelativePath(subpath string) string {
	return filepath.Join(p.ExecutableDir, subpath)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetAnnualReportPath returns the default artifact path for a year's report
// inside the store tree.
func (p *Paths) GetAnnualReportPath(year int) string {
	filename := fmt.Sprintf(AnnualReportPattern, year)
	return filepath.Join(p.StoreDir, fmt.Sprintf("%d", year), filename)
}

// GetDatedReportPath returns a timestamped report path, used when the caller
// wants artifacts kept apart between runs.
func (p *Paths) GetDatedReportPath(prefix string, ts time.Time) string {
	filename := fmt.Sprintf("%s_%s.xlsx", prefix, ts.Format("20060102_150405"))
	return filepath.Join(p.ReportsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("store", p.StoreDir),
			slog.String("reports", p.ReportsDir),
			slog.String("logs", p.LogsDir),
		),
		slog.String("config_file", p.ConfigFile))
}

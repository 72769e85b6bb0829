// Package importer reads Garmin Connect CSV exports from a sync directory
// and loads them into the training database. A local SQLite state file
// remembers which export files were already processed so repeated runs only
// touch new or changed files.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/coach"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	WorkoutsImported int
	WellnessImported int
	RowsSkipped      int
}

// Importer reads CSV exports from a directory and inserts data into the DB.
type Importer struct {
	db     *storage.DB
	coach  *coach.Coach
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. A nil state database disables file-level
// deduplication (every file is re-read).
func New(db *storage.DB, c *coach.Coach, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, coach: c, state: state, log: log, dryRun: dryRun}
}

// Import processes all .csv files under the given export directory. Files
// whose header carries an "Activity Type" column are treated as activity
// exports; everything else is treated as daily wellness.
func (imp *Importer) Import(ctx context.Context, exportDir string) (*Stats, error) {
	err := filepath.WalkDir(exportDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		if err := imp.importFile(ctx, exportDir, path); err != nil {
			imp.stats.FilesErrored++
			imp.log.Error("import failed", "file", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return &imp.stats, fmt.Errorf("walking %s: %w", exportDir, err)
	}
	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, root, path string) (err error) {
	relPath, relErr := filepath.Rel(root, path)
	if relErr != nil {
		relPath = path
	}

	if imp.state != nil {
		info, statErr := os.Stat(path)
		if statErr != nil {
			return fmt.Errorf("stat: %w", statErr)
		}
		hash, hashErr := HashFile(path)
		if hashErr != nil {
			return fmt.Errorf("hashing: %w", hashErr)
		}
		done, stateErr := imp.state.IsImported(relPath, info.Size(), hash)
		if stateErr != nil {
			return fmt.Errorf("checking state: %w", stateErr)
		}
		if done {
			imp.stats.FilesSkipped++
			return nil
		}
		// Only record files that imported cleanly so a retry re-reads them.
		defer func() {
			if err == nil && !imp.dryRun {
				if markErr := imp.state.MarkImported(relPath, info.Size(), hash); markErr != nil {
					imp.log.Warn("marking imported", "file", relPath, "error", markErr)
				}
			}
		}()
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	defer f.Close()

	kind, err := sniffKind(f)
	if err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("rewinding: %w", err)
	}

	switch kind {
	case kindActivities:
		err = imp.importActivities(ctx, relPath, f)
	case kindWellness:
		err = imp.importWellness(ctx, relPath, f)
	}
	if err != nil {
		return err
	}
	imp.stats.FilesProcessed++
	return nil
}

type fileKind int

const (
	kindActivities fileKind = iota
	kindWellness
)

// sniffKind reads the first line to decide which parser applies.
func sniffKind(f *os.File) (fileKind, error) {
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}
	firstLine := strings.ToLower(strings.SplitN(string(buf[:n]), "\n", 2)[0])
	if strings.Contains(firstLine, "activity type") {
		return kindActivities, nil
	}
	return kindWellness, nil
}

func (imp *Importer) importActivities(ctx context.Context, relPath string, f *os.File) error {
	workouts, skipped, err := parseActivities(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", relPath, err)
	}
	imp.stats.RowsSkipped += skipped

	for i := range workouts {
		if imp.dryRun {
			imp.stats.WorkoutsImported++
			continue
		}
		loadValue, err := imp.coach.IngestWorkout(ctx, &workouts[i])
		if err != nil {
			return fmt.Errorf("ingesting workout %s: %w", workouts[i].Date.Format("2006-01-02"), err)
		}
		imp.stats.WorkoutsImported++
		imp.log.Debug("workout imported",
			"date", workouts[i].Date.Format("2006-01-02"),
			"type", workouts[i].Type,
			"load", loadValue,
		)
	}
	return nil
}

func (imp *Importer) importWellness(ctx context.Context, relPath string, f *os.File) error {
	days, skipped, err := parseWellness(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", relPath, err)
	}
	imp.stats.RowsSkipped += skipped

	for i := range days {
		if imp.dryRun {
			imp.stats.WellnessImported++
			continue
		}
		if err := imp.db.UpsertWellness(ctx, &days[i]); err != nil {
			return fmt.Errorf("storing wellness %s: %w", days[i].Date.Format("2006-01-02"), err)
		}
		imp.stats.WellnessImported++
	}
	return nil
}

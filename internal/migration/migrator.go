package migration

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/legend-exp/detinfo/internal/fsutil"
	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/record"
	"github.com/legend-exp/detinfo/internal/timeutil"
)

// DetectorsDir is the subdirectory of the output directory holding migrated
// detector records.
const DetectorsDir = "detectors"

// DeadLayerFile is the default name of the dead-layer side file.
const DeadLayerFile = deadLayerKey + ".csv"

// Migrator runs the schema migration over a directory of records.
type Migrator struct {
	FS    fsutil.FileSystem
	Clock timeutil.Clock

	// DeadLayerCSV is where removed dead-layer values are written. Empty
	// means DeadLayerFile inside the output directory.
	DeadLayerCSV string
}

// NewMigrator returns a migrator over the real filesystem.
func NewMigrator() *Migrator {
	return &Migrator{FS: fsutil.OSFileSystem{}, Clock: timeutil.RealClock{}}
}

// Report summarises a finished migration run.
type Report struct {
	RunID      string
	Started    time.Time
	Duration   time.Duration
	Migrated   []string
	DeadLayers []DeadLayer
	CSVPath    string
}

type migrated struct {
	name string
	doc  *record.Object
}

// Run migrates every record in dir in into out/detectors. Every record is
// converted before anything is written: if any record fails, Run returns
// its *RecordError and writes nothing.
func (m *Migrator) Run(in, out string) (*Report, error) {
	if err := checkDirs(in, out); err != nil {
		return nil, err
	}

	clock := m.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	rep := &Report{RunID: uuid.New().String(), Started: clock.Now()}
	monitoring.Logf("migration %s: %s -> %s", rep.RunID, in, out)

	src := &record.Store{FS: m.FS, Dir: in}
	names, err := src.Names()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no detector records in %s", in)
	}

	done := make([]migrated, 0, len(names))
	for _, name := range names {
		old, err := src.Load(name)
		if err != nil {
			return nil, &RecordError{Name: name, Err: err}
		}
		doc, dl, err := Migrate(name, old)
		if err != nil {
			return nil, err
		}
		done = append(done, migrated{name: name, doc: doc})
		if dl != nil {
			rep.DeadLayers = append(rep.DeadLayers, *dl)
		}
	}

	dst := &record.Store{FS: m.FS, Dir: filepath.Join(out, DetectorsDir)}
	for _, d := range done {
		if err := dst.Save(d.name, d.doc); err != nil {
			return nil, err
		}
		rep.Migrated = append(rep.Migrated, d.name)
	}

	rep.CSVPath = m.DeadLayerCSV
	if rep.CSVPath == "" {
		rep.CSVPath = filepath.Join(out, DeadLayerFile)
	}
	if err := WriteDeadLayers(m.FS, rep.CSVPath, rep.DeadLayers); err != nil {
		return nil, err
	}
	monitoring.Logf("Dl info from geometry is saved to %s", rep.CSVPath)

	rep.Duration = clock.Since(rep.Started)
	monitoring.Logf("migration %s: %d records, %d dead layers", rep.RunID, len(rep.Migrated), len(rep.DeadLayers))
	return rep, nil
}

// checkDirs refuses to write migrated records over their inputs, also when
// the two are linked.
func checkDirs(in, out string) error {
	for _, dst := range []string{out, filepath.Join(out, DetectorsDir)} {
		same, err := fsutil.SameDir(in, dst)
		if err != nil {
			return err
		}
		if same {
			return fmt.Errorf("%w: %s", ErrSameDir, in)
		}
	}
	return nil
}

// WriteDeadLayers writes the dead-layer side file with a
// det_name,dl_thickness_in_mm header. The header is written even when there
// are no rows.
func WriteDeadLayers(fs fsutil.FileSystem, path string, rows []DeadLayer) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"det_name", deadLayerKey}); err != nil {
		f.Close()
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Name, strconv.FormatFloat(r.ThicknessMM, 'f', -1, 64)}); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

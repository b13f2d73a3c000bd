package sources

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/draftkit/valuation-api/internal/models"
)

// TableSet is a complete set of valuation inputs.
type TableSet struct {
	Tables []models.ProjectionTable
	ADP    []models.ADPEntry
}

// ProjectionSource loads the default projection and ADP tables.
type ProjectionSource interface {
	Load(ctx context.Context) (*TableSet, error)
}

// DirProjections loads <table>.csv files from a directory. Missing files are
// skipped; a directory without any projection file is an error.
type DirProjections struct {
	dir string
}

// NewDirProjections creates a loader rooted at dir.
func NewDirProjections(dir string) *DirProjections {
	return &DirProjections{dir: dir}
}

// Load reads every table file concurrently.
func (d *DirProjections) Load(ctx context.Context) (*TableSet, error) {
	tables := make([]*models.ProjectionTable, len(ProjectionTables))
	var adp []models.ADPEntry

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range ProjectionTables {
		g.Go(func() error {
			t, err := d.loadTable(ctx, name)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	g.Go(func() error {
		f, err := os.Open(d.path(TableADP))
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		defer f.Close()
		adp, err = ParseADP(f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &TableSet{ADP: adp}
	for _, t := range tables {
		if t != nil {
			set.Tables = append(set.Tables, *t)
		}
	}
	if len(set.Tables) == 0 {
		return nil, fmt.Errorf("no projection tables in %s", d.dir)
	}
	return set, nil
}

func (d *DirProjections) loadTable(ctx context.Context, name string) (*models.ProjectionTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(d.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ParseProjections(name, f)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (d *DirProjections) path(table string) string {
	return filepath.Join(d.dir, table+".csv")
}

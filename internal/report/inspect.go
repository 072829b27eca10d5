package report

import (
	"context"
	"log/slog"

	"telcli/internal/dataprocessing"
	"telcli/internal/infrastructure"
	"telcli/internal/workbook"
)

// Inspection previews how a workbook would be carved up by the engine
// without producing any output files.
type Inspection struct {
	Path   string            `json:"path"`
	Format string            `json:"format"`
	Sheets int               `json:"sheets"`
	Groups []GroupInspection `json:"groups"`
}

// GroupInspection describes one sheet group and its member profiles.
type GroupInspection struct {
	Key     string            `json:"key"`
	Members []SheetInspection `json:"members"`
}

// SheetInspection describes one sheet's fitness for aggregation.
type SheetInspection struct {
	Name            string   `json:"name"`
	Rows            int      `json:"rows"`
	ValueColumns    []string `json:"value_columns,omitempty"`
	TimestampColumn string   `json:"timestamp_column,omitempty"`
	Usable          bool     `json:"usable"`
	Reason          string   `json:"reason,omitempty"`
}

// Inspect opens a workbook and reports its detected format, sheet
// grouping, and the per-sheet profile the engine would compute under the
// given options. Unreadable sheets show up as unusable with a reason
// instead of failing the inspection.
func (s *Service) Inspect(ctx context.Context, path string, opts dataprocessing.Options) (*Inspection, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	format, err := workbook.DetectFormat(path)
	if err != nil {
		return nil, err
	}

	doc, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	sheetNames := doc.SheetNames()
	prefixLength := opts.PrefixLength
	if prefixLength < 1 {
		prefixLength = s.cfg.Processing.PrefixLength
	}
	groups := dataprocessing.GroupSheets(sheetNames, prefixLength)

	inspection := &Inspection{
		Path:   path,
		Format: string(format),
		Sheets: len(sheetNames),
	}
	for _, key := range groups.Order {
		group := GroupInspection{Key: key}
		for _, sheetName := range groups.Members[key] {
			group.Members = append(group.Members, s.inspectSheet(doc, sheetName, opts))
		}
		inspection.Groups = append(inspection.Groups, group)
	}

	s.logger.DebugContext(ctx, "Workbook inspected",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("sheets", len(sheetNames)),
		slog.Int("groups", groups.TotalGroups()))
	return inspection, nil
}

func (s *Service) inspectSheet(doc workbook.Document, sheetName string, opts dataprocessing.Options) SheetInspection {
	rows, err := doc.Rows(sheetName)
	if err != nil {
		return SheetInspection{Name: sheetName, Reason: err.Error()}
	}
	if len(rows) == 0 {
		return SheetInspection{Name: sheetName, Reason: "sheet is empty"}
	}

	profile := dataprocessing.ResolveProfile(sheetName, rows[0], opts)
	out := SheetInspection{
		Name:            sheetName,
		Rows:            len(rows) - 1,
		ValueColumns:    profile.PresentValueColumns,
		TimestampColumn: profile.TimestampColumn,
		Usable:          profile.Usable,
	}
	if !profile.Usable {
		out.Reason = unusableReason(profile, opts)
	}
	return out
}

// unusableReason spells out what a profile is missing, for display.
func unusableReason(profile dataprocessing.SheetProfile, opts dataprocessing.Options) string {
	if len(profile.PresentValueColumns) == 0 {
		return "no requested value columns present"
	}
	if opts.TimestampColumn != "" {
		return "timestamp column " + opts.TimestampColumn + " not present"
	}
	return "no time or date column detected"
}

package records

import (
	"context"
	"path/filepath"
)

// Kind identifies one of the four record sets that describe a corporate group.
type Kind string

const (
	KindRoster       Kind = "roster"
	KindOwnership    Kind = "ownership"
	KindTransactions Kind = "transactions"
	KindAttributes   Kind = "attributes"
)

// Kinds lists all record-set kinds in processing order.
var Kinds = []Kind{KindRoster, KindOwnership, KindTransactions, KindAttributes}

// fileSuffixes maps each record-set kind to the file name suffix used by the
// group data layout ({Group}{suffix} inside the group's directory).
var fileSuffixes = map[Kind]string{
	KindRoster:       "_Corporate_Structure.csv",
	KindOwnership:    "_Ownership.csv",
	KindTransactions: "_InternalDebts.csv",
	KindAttributes:   "_EntityAttributes.csv",
}

// GroupFile identifies a single record-set file for one corporate group.
// The actual content is retrieved via the associated Source.
type GroupFile struct {
	Group  string
	Kind   Kind
	Path   string
	Source Source
}

// Source retrieves the raw content of a record-set file. A read is a single
// atomic acquisition: open, read fully, close. Implementations report a
// missing file with an error wrapping fs.ErrNotExist so callers can tell
// absence apart from read failures.
type Source interface {
	Read(ctx context.Context, file GroupFile) ([]byte, error)
}

// GroupFiles returns the four record-set files for a group under baseDir,
// following the {Group}/{Group}_<set>.csv layout.
func GroupFiles(group string, baseDir string, source Source) []GroupFile {
	files := make([]GroupFile, 0, len(Kinds))
	for _, kind := range Kinds {
		files = append(files, GroupFile{
			Group:  group,
			Kind:   kind,
			Path:   filepath.Join(baseDir, group, group+fileSuffixes[kind]),
			Source: source,
		})
	}
	return files
}

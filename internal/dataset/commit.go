package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"benchmatch/internal/table"
	"benchmatch/internal/textutil"
)

// OutputFile pairs a result table with its file name inside the output
// directory.
type OutputFile struct {
	Name  string
	Table *table.Table
}

// CommitCSV writes every output file or none of them. Each table is staged to
// a temporary file in the output directory first; only when all stages
// succeed are the files renamed into place. A failure at any point removes
// the staged files and leaves existing outputs untouched.
func CommitCSV(dir string, files []OutputFile) (retErr error) {
	staged := make([]string, 0, len(files))
	defer func() {
		if retErr != nil {
			for _, path := range staged {
				os.Remove(path)
			}
		}
	}()

	for _, file := range files {
		tmp, err := stageCSV(dir, file)
		if err != nil {
			return err
		}
		staged = append(staged, tmp)
	}

	committed := make([]string, 0, len(files))
	for i, file := range files {
		final := filepath.Join(dir, file.Name)
		if err := os.Rename(staged[i], final); err != nil {
			// Undo earlier renames so a half-committed pair never remains.
			for j, path := range committed {
				os.Rename(path, staged[j])
			}
			return fmt.Errorf("commit %s: %w", file.Name, err)
		}
		committed = append(committed, final)
	}
	return nil
}

func stageCSV(dir string, file OutputFile) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+file.Name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", file.Name, err)
	}
	path := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(file.Table.Columns()); err != nil {
		tmp.Close()
		return path, fmt.Errorf("write %s header: %w", file.Name, err)
	}
	for i := 0; i < file.Table.Len(); i++ {
		cells := file.Table.Row(i).Cells()
		for ci, cell := range cells {
			// Missing values persist as the empty string.
			cells[ci] = textutil.CleanCell(cell)
		}
		if err := writer.Write(cells); err != nil {
			tmp.Close()
			return path, fmt.Errorf("write %s row %d: %w", file.Name, i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return path, fmt.Errorf("flush %s: %w", file.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return path, fmt.Errorf("close staged %s: %w", file.Name, err)
	}
	return path, nil
}

package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/cwbudde/benchlog/internal/store"
)

// FileSet holds the four files of one run: the index file and the
// fitness-aligned, evaluation-aligned and restart data files. A FileSet is
// owned by exactly one run and closed when the run is finalized.
type FileSet struct {
	// IndexPath is the .info file the run appends its instance and summary to.
	IndexPath string

	// BasePath is the data file path without extension.
	BasePath string

	// DataName is the .dat file name relative to the output folder, as
	// referenced from the index file.
	DataName string

	index      *store.AppendFile
	fitness    *store.AppendFile // .dat
	evaluation *store.AppendFile // .tdat
	restart    *store.AppendFile // .rdat
}

// indexFileName returns <prefix>_f<fid>_i<first>.info.
func indexFileName(prefix string, functionID, firstInstance int) string {
	return fmt.Sprintf("%s_f%d_i%d.%s", prefix, functionID, firstInstance, fileIndex)
}

// dataDirName returns data_f<fid>.
func dataDirName(functionID int) string {
	return fmt.Sprintf("data_f%d", functionID)
}

// dataFileName returns <prefix>_f<fid>_DIM<dim>_i<first>.
func dataFileName(prefix string, functionID, dimension, firstInstance int) string {
	return fmt.Sprintf("%s_f%d_DIM%d_i%d", prefix, functionID, dimension, firstInstance)
}

func openFile(p string) (*store.AppendFile, error) {
	f, err := store.OpenAppend(p)
	if err != nil {
		return nil, &FileError{Op: "open", Path: p, Err: err}
	}
	return f, nil
}

// openFileSet opens the files of family fam and appends instanceID to the
// current line of the index file, writing a new header block first if fam
// asks for one or the index file is new.
func openFileSet(opts Options, fam family, instanceID int) (fs *FileSet, err error) {
	dataDir := filepath.Join(opts.Folder, dataDirName(fam.functionID))
	if err := store.EnsureDir(dataDir); err != nil {
		return nil, &FileError{Op: "create", Path: dataDir, Err: err}
	}

	name := dataFileName(opts.Prefix, fam.functionID, fam.dimension, fam.firstInstance)
	fs = &FileSet{
		IndexPath: filepath.Join(opts.Folder, indexFileName(opts.Prefix, fam.functionID, fam.firstInstance)),
		BasePath:  filepath.Join(dataDir, name),
		DataName:  path.Join(dataDirName(fam.functionID), name+"."+fileFitness),
	}
	defer func() {
		if err != nil {
			fs.Close()
			fs = nil
		}
	}()

	if fs.index, err = openFile(fs.IndexPath); err != nil {
		return fs, err
	}
	if fs.fitness, err = openFile(fs.BasePath + "." + fileFitness); err != nil {
		return fs, err
	}
	if fs.evaluation, err = openFile(fs.BasePath + "." + fileEvaluation); err != nil {
		return fs, err
	}
	if fs.restart, err = openFile(fs.BasePath + "." + fileRestart); err != nil {
		return fs, err
	}

	newHeader := fam.newHeader || !fs.index.Existed()
	if newHeader {
		if fs.index.Existed() {
			fs.index.WriteString("\n")
		}
		fmt.Fprintf(fs.index, "funcId = %d, DIM = %d, Precision = %.3e, algId = '%s'\n",
			fam.functionID, fam.dimension, opts.Precision, opts.Algorithm)
		fs.index.WriteString("%\n")
		fs.index.WriteString(fs.DataName)
	}
	fmt.Fprintf(fs.index, ", %d", instanceID)
	if err = fs.index.Flush(); err != nil {
		return fs, &FileError{Op: "write", Path: fs.IndexPath, Err: err}
	}

	slog.Debug("Resolved file set",
		"function_id", fam.functionID,
		"dimension", fam.dimension,
		"instance_id", instanceID,
		"first_instance", fam.firstInstance,
		"new_header", newHeader,
		"index_file", fs.IndexPath,
	)
	return fs, nil
}

// Close flushes and closes every open file of the set.
func (fs *FileSet) Close() error {
	var errs []error
	for _, f := range []*store.AppendFile{fs.index, fs.fitness, fs.evaluation, fs.restart} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil {
			errs = append(errs, &FileError{Op: "close", Path: f.Path(), Err: err})
		}
	}
	fs.index, fs.fitness, fs.evaluation, fs.restart = nil, nil, nil, nil
	return errors.Join(errs...)
}

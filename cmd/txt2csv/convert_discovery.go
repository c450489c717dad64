package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	txt2csv "github.com/alnah/go-txt2csv"
	"github.com/alnah/go-txt2csv/internal/config"
	"github.com/alnah/go-txt2csv/internal/fileutil"
)

const csvExtension = ".csv"

// Sentinel errors for file discovery.
var (
	ErrOutputNotDir    = errors.New("output file given for several inputs; use a directory")
	ErrSameInputOutput = errors.New("output path is the input path")
	ErrOutputCollision = errors.New("several inputs map to the same output")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// outputTarget is where converted files go.
// At most one field is set; both empty means next to each input.
type outputTarget struct {
	file string
	dir  string
}

// resolveFiles turns positional inputs and config into the list of conversions.
// Without any input the default dataset.html -> dataset.csv pair is used.
func resolveFiles(positional []string, cfg *config.Config) ([]FileToConvert, error) {
	target := outputTarget{file: cfg.Output.Path, dir: cfg.Output.Dir}

	inputs := positional
	if len(inputs) == 0 && cfg.Input.Path != "" {
		inputs = []string{cfg.Input.Path}
	}
	if len(inputs) == 0 && target == (outputTarget{}) {
		return []FileToConvert{{InputPath: txt2csv.DefaultInputPath, OutputPath: txt2csv.DefaultOutputPath}}, nil
	}
	if len(inputs) == 0 {
		inputs = []string{txt2csv.DefaultInputPath}
	}

	return discoverAll(inputs, target, cfg.Input.Extensions)
}

// discoverAll discovers files for every input and checks the output mapping.
func discoverAll(inputs []string, target outputTarget, exts []string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, input := range inputs {
		found, err := discoverFiles(input, target, exts)
		if err != nil {
			return nil, fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s (extensions: %s)", ErrNoInput, strings.Join(inputs, ", "), strings.Join(exts, ", "))
	}
	if target.file != "" && len(files) > 1 {
		return nil, fmt.Errorf("%w: %s", ErrOutputNotDir, target.file)
	}

	seen := make(map[string]string, len(files))
	for _, f := range files {
		key := filepath.Clean(f.OutputPath)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s and %s -> %s", ErrOutputCollision, prev, f.InputPath, f.OutputPath)
		}
		seen[key] = f.InputPath
	}

	return files, nil
}

// discoverFiles finds the files to convert under inputPath.
// A missing input is still returned so the conversion reports it.
func discoverFiles(inputPath string, target outputTarget, exts []string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err != nil || !info.IsDir() {
		outPath, err := resolveOutputPath(inputPath, target, "")
		if err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.HasExtension(path, exts) {
			return nil
		}
		outPath, err := resolveOutputPath(path, target, inputPath)
		if err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the CSV output path for an input file.
// Under a directory target, the tree below baseInputDir is mirrored.
func resolveOutputPath(inputPath string, target outputTarget, baseInputDir string) (string, error) {
	var outPath string
	switch {
	case target.file != "":
		outPath = target.file
	case target.dir != "":
		rel := filepath.Base(inputPath)
		if baseInputDir != "" {
			if r, err := filepath.Rel(baseInputDir, inputPath); err == nil {
				rel = r
			}
		}
		outPath = filepath.Join(target.dir, fileutil.ReplaceExtension(rel, csvExtension))
	default:
		outPath = fileutil.ReplaceExtension(inputPath, csvExtension)
	}

	if filepath.Clean(outPath) == filepath.Clean(inputPath) {
		return "", fmt.Errorf("%w: %s", ErrSameInputOutput, inputPath)
	}
	return outPath, nil
}

// isCSVPath reports whether p names a .csv file rather than a directory.
func isCSVPath(p string) bool {
	return fileutil.HasExtension(p, []string{csvExtension})
}

package util

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// WriteFile writes data to path, creating the parent directory on demand.
// An existing file is overwritten.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, data, 0644)
}

// CreateArchive zips files flat into output. Missing files are skipped.
func CreateArchive(files []string, output string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return 0, fmt.Errorf("archive: %w", err)
	}

	out, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("archive: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			log.Printf("error closing archive %s: %v", output, cerr)
		}
	}()

	z := zip.NewWriter(out)

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	added := 0
	seen := map[string]bool{}
	for _, file := range sorted {
		if seen[file] {
			continue
		}
		seen[file] = true

		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := addFileToZip(z, file); err != nil {
			_ = z.Close()
			return added, err
		}
		added++
	}

	return added, z.Close()
}

func addFileToZip(z *zip.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing input file %s: %v", file, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = filepath.Base(file)
	header.Method = zip.Deflate

	w, err := z.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)
	return err
}

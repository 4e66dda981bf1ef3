package preflight

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"csv2phon/internal/csvio"
	"csv2phon/internal/description"
)

// CheckDirectoryAccess verifies that the directory exists and is
// readable and writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckReadableDirectory verifies that the directory exists and can be
// listed.
func CheckReadableDirectory(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "readable")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckEncoding verifies that the CSV encoding name resolves.
func CheckEncoding(name string) Result {
	if _, err := csvio.LookupEncoding(name); err != nil {
		return Result{Name: "CSV encoding", Detail: err.Error()}
	}
	return Result{Name: "CSV encoding", Passed: true, Detail: name}
}

// CheckFile verifies that path is a readable CSV whose header the description
// maps. Unmapped header columns and mapped columns missing from the header are
// reported as a warning.
func CheckFile(name, path string, opts csvio.Options, desc *description.Description) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}

	header, err := readHeader(path, opts)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}

	var unmapped []string
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
		if _, ok := desc.ColumnFor(h); !ok {
			unmapped = append(unmapped, h)
		}
	}
	var missing []string
	for _, c := range desc.Columns {
		if !c.IsDontImport() && !present[c.CSVColumn] {
			missing = append(missing, c.CSVColumn)
		}
	}

	detail := fmt.Sprintf("%s (%d columns)", path, len(header))
	var notes []string
	if len(unmapped) > 0 {
		notes = append(notes, "unmapped: "+strings.Join(unmapped, ", "))
	}
	if len(missing) > 0 {
		notes = append(notes, "not in header: "+strings.Join(missing, ", "))
	}
	if len(notes) > 0 {
		return Result{Name: name, Passed: true, Warning: true, Detail: detail + "; " + strings.Join(notes, "; ")}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

func readHeader(path string, opts csvio.Options) ([]string, error) {
	reader, err := csvio.Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	return header, err
}

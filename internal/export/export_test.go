package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/user/touchstone_go/internal/parser"
	"github.com/user/touchstone_go/internal/touchstone"
)

func openDataset(t *testing.T, content string) *touchstone.File {
	t.Helper()
	f := touchstone.New(parser.DefaultConfig())
	require.NoError(t, f.OpenReader(strings.NewReader(content), "filter.s2p"))
	return f
}

const filter = "# MHZ S RI R 75\n100 0.1 0.2 0.3 0.4 0.5 0.6 0.7 0.8\n200 1.1 1.2 1.3 1.4 1.5 1.6 1.7 1.8\n"

func TestHeader(t *testing.T) {
	ds := openDataset(t, filter)
	got := header(ds)
	require.Len(t, got, 9)
	assert.Equal(t, "Frequency (MHz)", got[0])
	assert.Equal(t, "S11 Real", got[1])
	assert.Equal(t, "S11 Imaginary", got[2])
	assert.Equal(t, "S21 Real", got[3])
	assert.Equal(t, "S22 Imaginary", got[8])
}

func TestSaveToXLSX(t *testing.T) {
	ds := openDataset(t, filter)
	path := filepath.Join(t.TempDir(), "filter.xlsx")
	require.NoError(t, SaveToXLSX(path, ds))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Options", "Data"}, f.GetSheetList())

	opts, err := f.GetRows("Options")
	require.NoError(t, err)
	require.Len(t, opts, 7)
	assert.Equal(t, []string{"File", "filter.s2p"}, opts[0])
	assert.Equal(t, []string{"Frequency Unit", "MHz"}, opts[1])
	assert.Equal(t, []string{"Format", "RI"}, opts[3])
	assert.Equal(t, []string{"Reference Resistance", "75"}, opts[4])
	assert.Equal(t, []string{"Ports", "2"}, opts[5])

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Frequency (MHz)", rows[0][0])
	assert.Equal(t, []string{"100", "0.1", "0.2", "0.3", "0.4", "0.5", "0.6", "0.7", "0.8"}, rows[1])
	assert.Equal(t, "200", rows[2][0])
	assert.Equal(t, "1.8", rows[2][8])
}

func TestSaveToTSV(t *testing.T) {
	ds := openDataset(t, filter)
	path := filepath.Join(t.TempDir(), "filter.tsv")
	require.NoError(t, SaveToTSV(path, ds))

	fp, err := os.Open(path)
	require.NoError(t, err)
	defer fp.Close()

	r := csv.NewReader(fp)
	r.Comma = '\t'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, header(ds), records[0])
	assert.Equal(t, []string{"200", "1.1", "1.2", "1.3", "1.4", "1.5", "1.6", "1.7", "1.8"}, records[2])
}

func TestSaveEmptyDataset(t *testing.T) {
	empty := touchstone.New(parser.DefaultConfig())
	dir := t.TempDir()

	assert.Error(t, SaveToXLSX(filepath.Join(dir, "empty.xlsx"), empty))
	assert.Error(t, SaveToTSV(filepath.Join(dir, "empty.tsv"), empty))

	_, err := os.Stat(filepath.Join(dir, "empty.tsv"))
	assert.True(t, os.IsNotExist(err))
}

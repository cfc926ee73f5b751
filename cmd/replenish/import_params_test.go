package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/reposia/internal/replenish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeParamsFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "params.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadParamsFile(t *testing.T) {
	path := writeParamsFile(t, ""+
		"group_id,safety_stock,do_not_buy\n"+
		"101.0,\"4,5\",0\n"+
		"200,2,1\n"+
		",9,0\n"+
		"ABC-1,,\n")

	records, err := readParamsFile(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, replenish.ParamRecord{GroupID: "101", SafetyStock: 4.5}, records[0])
	assert.Equal(t, replenish.ParamRecord{GroupID: "200", SafetyStock: 2, DoNotBuy: 1}, records[1])
	assert.Equal(t, replenish.ParamRecord{GroupID: "ABC-1"}, records[2])
}

func TestReadParamsFileColumnOrder(t *testing.T) {
	path := writeParamsFile(t, ""+
		"do_not_buy,group_id,safety_stock\n"+
		"1,300,7\n")

	records, err := readParamsFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, replenish.ParamRecord{GroupID: "300", SafetyStock: 7, DoNotBuy: 1}, records[0])
}

func TestReadParamsFileMissingGroupColumn(t *testing.T) {
	path := writeParamsFile(t, "safety_stock,do_not_buy\n4,0\n")

	_, err := readParamsFile(path)
	assert.ErrorContains(t, err, "missing group_id column")
}

func TestReadParamsFileMissingFile(t *testing.T) {
	_, err := readParamsFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 3, 7, 0, time.UTC)

func TestResultDirName(t *testing.T) {
	cfg := testSweep()
	assert.Equal(t, "tpch_scale1_runspercore3_2024-05-01_09-03-07", ResultDirName(cfg, fixedNow))

	cfg.ChunkSizeLabel = "_chunksizeMAX"
	cfg.Appendix = "_numa"
	assert.Equal(t, "tpch_scale1_chunksizeMAX_runspercore3_numa_2024-05-01_09-03-07", ResultDirName(cfg, fixedNow))

	cfg.ChunkSizeLabel = ""
	cfg.ChunkSize = 100000
	cfg.Scale = 0.1
	assert.Equal(t, "tpch_scale0.1_chunksize100000_runspercore3_numa_2024-05-01_09-03-07", ResultDirName(cfg, fixedNow))
}

func TestLayout_Prepare(t *testing.T) {
	cfg := testSweep()
	cfg.ResultBaseDir = filepath.Join(t.TempDir(), "results")

	l := NewLayout(cfg, fixedNow)
	assert.Equal(t, filepath.Join(cfg.ResultBaseDir, l.Name), l.Dir)

	require.NoError(t, l.Prepare())
	info, err := os.Stat(l.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// 已存在时不报错
	require.NoError(t, l.Prepare())
}

func TestLayout_PrepareFails(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results")
	require.NoError(t, os.WriteFile(base, []byte("not a dir"), 0o644))

	cfg := testSweep()
	cfg.ResultBaseDir = base
	assert.Error(t, NewLayout(cfg, fixedNow).Prepare())
}

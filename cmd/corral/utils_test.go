// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/corral-labs/corral/log"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range []cli.Flag{dataDirFlag, genesisFlag, cacheFlag, verbosityFlag, jsonLogsFlag} {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSelectGenesis(t *testing.T) {
	gene, err := selectGenesis(newContext(t))
	require.NoError(t, err)
	assert.Equal(t, "devnet", gene.Name())

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		`name: staging`,
		`owner: "0x00000000000000000000000000000000000000aa"`,
		`rewardPool: "1000"`,
	}, "\n")), 0o600))
	gene, err = selectGenesis(newContext(t, "--genesis", path))
	require.NoError(t, err)
	assert.Equal(t, "staging", gene.Name())

	_, err = selectGenesis(newContext(t, "--genesis", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("owner: 1\nunknown: true"), 0o600))
	_, err = selectGenesis(newContext(t, "--genesis", bad))
	assert.Error(t, err)
}

func TestMakeInstanceDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	ctx := newContext(t, "--data-dir", dataDir)
	gene, err := selectGenesis(ctx)
	require.NoError(t, err)

	dir, err := makeInstanceDir(ctx, gene)
	require.NoError(t, err)
	assert.Equal(t, dataDir, filepath.Dir(dir))
	assert.True(t, strings.HasPrefix(filepath.Base(dir), "instance-devnet-"))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	again, err := makeInstanceDir(ctx, gene)
	require.NoError(t, err)
	assert.Equal(t, dir, again)

	_, err = makeInstanceDir(newContext(t, "--data-dir", ""), gene)
	assert.Error(t, err)
}

func TestOpenPersistentDBs(t *testing.T) {
	dir := t.TempDir()
	ctx := newContext(t, "--cache", "16")

	mainDB, err := openMainDB(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, mainDB.Put([]byte("k"), []byte("v")))
	require.NoError(t, mainDB.Close())

	mainDB, err = openMainDB(ctx, dir)
	require.NoError(t, err)
	v, err := mainDB.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
	require.NoError(t, mainDB.Close())

	logDB, err := openLogDB(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs.db"), logDB.Path())
	require.NoError(t, logDB.Close())
}

func TestNormalizeCacheSize(t *testing.T) {
	assert.Equal(t, 128, normalizeCacheSize(1))
	assert.LessOrEqual(t, normalizeCacheSize(1<<30), 1<<30)
}

func TestInitLogger(t *testing.T) {
	level := initLogger(newContext(t, "--verbosity", "5", "--json-logs"))
	assert.Equal(t, log.LevelTrace, level.Level())
	level = initLogger(newContext(t))
	assert.Equal(t, log.LevelInfo, level.Level())
}

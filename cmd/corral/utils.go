// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/corral-labs/corral/chain"
	"github.com/corral-labs/corral/genesis"
	"github.com/corral-labs/corral/log"
	"github.com/corral-labs/corral/logdb"
	"github.com/corral-labs/corral/lvldb"
)

func initLogger(ctx *cli.Context) *slog.LevelVar {
	logLevel := log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name)))
	output := io.Writer(os.Stderr)

	var level slog.LevelVar
	level.Set(logLevel)

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(output, &level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(output, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return &level
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genesis file")
	}
	defer file.Close()

	gen, err := genesis.LoadCustomGenesis(file)
	if err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	customGen, err := genesis.NewCustomNet(gen)
	if err != nil {
		return nil, errors.Wrap(err, "build genesis")
	}
	return customGen, nil
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

// makeInstanceDir returns the directory holding the databases of the ledger
// started from gene. Every network gets its own instance.
func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return "", err
	}

	owner := gene.Owner()
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, gene.Name())
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%s-%x", name, owner.Bytes()[16:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func openMainDB(ctx *cli.Context, dataDir string) (*lvldb.LevelDB, error) {
	cacheMB := normalizeCacheSize(int(ctx.Uint64(cacheFlag.Name)))
	logger.Debug("cache size(MB)", "size", cacheMB)

	// Ensure Go's GC ignores the database cache for trigger percentage
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))
	logger.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache, err := suggestFDCache()
	if err != nil {
		return nil, err
	}
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open main database [%v]", dir)
	}
	return db, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() (int, error) {
	limit, err := fdlimit.Current()
	if err != nil {
		return 0, errors.Wrap(err, "get fd limit")
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120, nil
	}
	return n, nil
}

func openLogDB(dataDir string) (*logdb.LogDB, error) {
	dir := filepath.Join(dataDir, "logs.db")
	db, err := logdb.New(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "open log database [%v]", dir)
	}
	return db, nil
}

func openMemMainDB() (*lvldb.LevelDB, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, errors.Wrap(err, "open main database")
	}
	return db, nil
}

func openMemLogDB() (*logdb.LogDB, error) {
	db, err := logdb.NewMem()
	if err != nil {
		return nil, errors.Wrap(err, "open log database")
	}
	return db, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(
	gene *genesis.Genesis,
	chain *chain.Chain,
	dataDir string,
	apiURL string,
	metricsURL string,
	mining string,
) {
	head := chain.Head()
	owner := gene.Owner()

	info := fmt.Sprintf(`Starting %v
    Network     [ %v ]
    Owner       [ %v ]
    Best block  [ #%v ]
    Mining      [ %v ]
    Data dir    [ %v ]
    API portal  [ %v ]
    Metrics     [ %v ]
`,
		"Corral "+fullVersion(),
		gene.Name(),
		owner,
		head.Number,
		mining,
		dataDir,
		apiURL,
		func() string {
			if metricsURL == "" {
				return "Disabled"
			}
			return metricsURL
		}())

	if gene.Name() == "devnet" {
		info += "    Dev accounts\n"
		for i, a := range genesis.DevAccounts() {
			info += fmt.Sprintf("      %d %v %x\n", i, a.Address, crypto.FromECDSA(a.PrivateKey))
		}
	}
	fmt.Print(info)
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "io.corral-labs.corral")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "io.corral-labs.corral")
		} else {
			return filepath.Join(home, ".io.corral-labs.corral")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

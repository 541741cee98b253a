// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/corral-labs/corral/api"
	"github.com/corral-labs/corral/chain"
	"github.com/corral-labs/corral/cmd/corral/httpserver"
	"github.com/corral-labs/corral/cmd/corral/miner"
	"github.com/corral-labs/corral/health"
	"github.com/corral-labs/corral/log"
	"github.com/corral-labs/corral/logdb"
	"github.com/corral-labs/corral/lvldb"
	"github.com/corral-labs/corral/metrics"
	"github.com/corral-labs/corral/runtime"
	"github.com/corral-labs/corral/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "corral")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Corral",
		Usage:     "Node of the Corral NFT staking ledger",
		Copyright: "2026 The Corral developers",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			apiSlowQueriesThresholdFlag,
			enableAPILogsFlag,
			enableDevAPIFlag,
			onDemandFlag,
			blockInterval,
			persistFlag,
			cacheFlag,
			verbosityFlag,
			jsonLogsFlag,
			pprofFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)

	onDemand := ctx.Bool(onDemandFlag.Name)
	interval := ctx.Uint64(blockInterval.Name)
	if !onDemand && interval == 0 {
		return fmt.Errorf("-%s must be positive", blockInterval.Name)
	}

	// metrics must be switched on before any meter is created
	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return fmt.Errorf("unable to start metrics server - %w", err)
		}
		metricsURL = url
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	var (
		mainDB      *lvldb.LevelDB
		logDB       *logdb.LogDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
		if mainDB, err = openMainDB(ctx, instanceDir); err != nil {
			return err
		}
		defer func() { logger.Info("closing main database..."); mainDB.Close() }()
		if logDB, err = openLogDB(instanceDir); err != nil {
			return err
		}
		defer func() { logger.Info("closing log database..."); logDB.Close() }()
	} else {
		instanceDir = "Memory"
		if mainDB, err = openMemMainDB(); err != nil {
			return err
		}
		defer func() { logger.Info("closing main database..."); mainDB.Close() }()
		if logDB, err = openMemLogDB(); err != nil {
			return err
		}
		defer func() { logger.Info("closing log database..."); logDB.Close() }()
	}

	ch, err := chain.New(mainDB)
	if err != nil {
		return errors.Wrap(err, "initialize chain")
	}
	rt := runtime.New(state.New(mainDB), ch, logDB, onDemand)
	applied, err := rt.Genesis(gene.Apply)
	if err != nil {
		return errors.Wrap(err, "apply genesis")
	}
	if !applied {
		logger.Info("genesis already applied", "best", ch.BestBlock())
	}

	var enableAPILogs atomic.Bool
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	apiHandler, apiCloser := api.New(rt, logDB, api.Options{
		Network:         gene.Name(),
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		Timeout:         time.Duration(ctx.Uint64(apiTimeoutFlag.Name)) * time.Millisecond,
		EnableDevAPI:    ctx.Bool(enableDevAPIFlag.Name),
		EnableReqLogger: &enableAPILogs,
		SlowQueries:     time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
	})
	defer func() { logger.Info("closing subscriptions..."); apiCloser() }()

	apiURL, srvCloser, err := httpserver.StartAPIServer(ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	var maxBlockAge time.Duration
	if !onDemand {
		maxBlockAge = time.Duration(interval) * time.Second
	}
	nodeHealth := health.New(rt, maxBlockAge)
	var wg sync.WaitGroup
	defer wg.Wait()
	healthCtx, stopHealth := context.WithCancel(exitSignal)
	defer stopHealth()
	wg.Go(func() { nodeHealth.Run(healthCtx) })

	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, nodeHealth, &enableAPILogs)
		if err != nil {
			return fmt.Errorf("unable to start admin server - %w", err)
		}
		logger.Info("admin server started", "url", url)
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
	}

	if onDemand {
		printStartupMessage(gene, ch, instanceDir, apiURL, metricsURL, "on demand")
		<-exitSignal.Done()
		return nil
	}

	printStartupMessage(gene, ch, instanceDir, apiURL, metricsURL, fmt.Sprintf("every %vs", interval))
	return miner.New(rt, miner.Options{
		BlockInterval: time.Duration(interval) * time.Second,
		CheckClock:    true,
	}).Run(exitSignal)
}
